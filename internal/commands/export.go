package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	txlog "github.com/txnsift/txnsift/internal/log"
)

func newExportCommand(a *app) *cobra.Command {
	var flags loadFlags
	var output string
	var format string
	var edits []string

	cmd := &cobra.Command{
		Use:   "export [directory]",
		Short: "Save filtered, edited transactions to CSV or XLSX",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(cmd, &flags, args)
			if err != nil {
				return err
			}
			if err := applyEdits(s, edits); err != nil {
				return err
			}

			if !cmd.Flags().Changed("output") {
				output = a.cfg.Export.Path
			}
			if !cmd.Flags().Changed("format") {
				format = a.cfg.Export.Format
			}

			switch format {
			case "csv":
				err = s.Save(output)
			case "xlsx":
				err = s.SaveXLSX(output)
			default:
				return fmt.Errorf("unknown format %q: must be csv or xlsx", format)
			}
			if err != nil {
				return a.fail(txlog.ComponentExport, err)
			}

			a.log.WithComponent(txlog.ComponentExport).Info("export written",
				txlog.FieldPath, output,
				txlog.FieldCount, s.Len(),
				txlog.FieldTotal, s.Total().StringFixed(2))
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d transactions to %s\n", s.Len(), output)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file (default from config)")
	cmd.Flags().StringVar(&format, "format", "", "csv or xlsx (default from config)")
	cmd.Flags().StringArrayVar(&edits, "set", nil, `edit a visible row, e.g. --set "0:category=Groceries" (repeatable)`)

	return cmd
}

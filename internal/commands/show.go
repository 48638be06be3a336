package commands

import (
	"github.com/spf13/cobra"
)

func newShowCommand(a *app) *cobra.Command {
	var flags loadFlags

	cmd := &cobra.Command{
		Use:   "show [directory]",
		Short: "List filtered transactions and their total",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(cmd, &flags, args)
			if err != nil {
				return err
			}
			return printRecords(cmd.OutOrStdout(), s.Visible())
		},
	}
	flags.register(cmd)

	return cmd
}

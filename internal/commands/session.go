package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/txnsift/txnsift/internal/export"
	txlog "github.com/txnsift/txnsift/internal/log"
	"github.com/txnsift/txnsift/internal/memofilter"
	"github.com/txnsift/txnsift/internal/model"
	"github.com/txnsift/txnsift/internal/session"
)

// loadFlags are the import and filter flags shared by show, export and db import.
type loadFlags struct {
	category   string
	tag        string
	patterns   []string
	all        bool
	unfiltered bool // no blocklist flags registered; every record stays visible
}

func (f *loadFlags) register(cmd *cobra.Command) {
	f.registerDefaults(cmd)
	cmd.Flags().StringArrayVar(&f.patterns, "pattern", nil, "memo blocklist pattern, repeatable (replaces config patterns)")
	cmd.Flags().BoolVar(&f.all, "all", false, "ignore the memo blocklist")
}

func (f *loadFlags) registerDefaults(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.category, "category", "", "default category (overrides config)")
	cmd.Flags().StringVar(&f.tag, "tag", "", "default tag (overrides config)")
}

// openSession loads dir (or the configured import dir) into a new Session
// with the blocklist applied.
func (a *app) openSession(cmd *cobra.Command, f *loadFlags, args []string) (*session.Session, error) {
	dir := a.cfg.Import.Dir
	if len(args) > 0 {
		dir = args[0]
	}

	category := a.cfg.Import.DefaultCategory
	if cmd.Flags().Changed("category") {
		category = f.category
	}
	tag := a.cfg.Import.DefaultTag
	if cmd.Flags().Changed("tag") {
		tag = f.tag
	}

	s := session.New(category, tag)
	if err := s.Load(dir); err != nil {
		return nil, a.fail(txlog.ComponentImport, fmt.Errorf("loading %s: %w", dir, err))
	}

	patterns := a.cfg.Filter.Patterns
	if cmd.Flags().Changed("pattern") {
		patterns = f.patterns
	}
	if f.all || f.unfiltered {
		patterns = nil
	}
	if err := s.SetPatterns(memofilter.JoinPatterns(patterns)); err != nil {
		return nil, fmt.Errorf("memo filter: %w", err)
	}

	a.log.WithComponent(txlog.ComponentImport).Debug("loaded records",
		txlog.FieldDir, dir,
		txlog.FieldCount, len(s.Records()),
		txlog.FieldVisible, s.Len())
	return s, nil
}

// fail logs err at debug level under component and returns it unchanged.
func (a *app) fail(component string, err error) error {
	a.log.WithComponent(component).Debug("command failed", txlog.FieldError, err)
	return err
}

// applyEdits applies "row:column=value" edits to the visible rows.
func applyEdits(s *session.Session, edits []string) error {
	for _, e := range edits {
		target, value, ok := strings.Cut(e, "=")
		if !ok {
			return fmt.Errorf("edit %q: expected row:column=value", e)
		}
		rowStr, colStr, ok := strings.Cut(target, ":")
		if !ok {
			return fmt.Errorf("edit %q: expected row:column=value", e)
		}
		row, err := strconv.Atoi(strings.TrimSpace(rowStr))
		if err != nil {
			return fmt.Errorf("edit %q: invalid row: %w", e, err)
		}
		col, err := session.ParseColumn(colStr)
		if err != nil {
			return fmt.Errorf("edit %q: %w", e, err)
		}
		if err := s.SetField(row, col, value); err != nil {
			return fmt.Errorf("edit %q: %w", e, err)
		}
	}
	return nil
}

// printRecords writes a numbered table followed by the total.
func printRecords(w io.Writer, records []model.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROW\tDATE\tAMOUNT\tCATEGORY\tTAG\tDESCRIPTION\tMEMO")
	for i, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i,
			r.Date.Format(export.DateFormat),
			export.FormatCurrency(r.Amount),
			r.Category,
			r.Tag,
			r.Description,
			r.Memo)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total: %s\n", export.FormatCurrency(model.SumAmounts(records)))
	return err
}

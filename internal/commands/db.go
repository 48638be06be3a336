package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	txlog "github.com/txnsift/txnsift/internal/log"
	"github.com/txnsift/txnsift/internal/storage"
)

func newDBCommand(a *app) *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "SQLite storage operations",
	}
	dbCmd.AddCommand(newDBImportCommand(a))
	dbCmd.AddCommand(newDBQueryCommand(a))
	return dbCmd
}

func newDBImportCommand(a *app) *cobra.Command {
	flags := loadFlags{unfiltered: true}

	cmd := &cobra.Command{
		Use:   "import [directory]",
		Short: "Store every parsed transaction in the database",
		Long:  "Store every parsed transaction in the database. The memo blocklist does not apply.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(cmd, &flags, args)
			if err != nil {
				return err
			}

			store, err := storage.Open(cmd.Context(), a.cfg.Database.Path)
			if err != nil {
				return a.fail(txlog.ComponentStorage, fmt.Errorf("opening database: %w", err))
			}
			defer store.Close()

			n, err := store.Insert(cmd.Context(), s.Records())
			if err != nil {
				return a.fail(txlog.ComponentStorage, err)
			}

			a.log.WithComponent(txlog.ComponentStorage).Info("records stored",
				txlog.FieldPath, a.cfg.Database.Path,
				txlog.FieldCount, n)
			fmt.Fprintf(cmd.OutOrStdout(), "Stored %d transactions in %s\n", n, a.cfg.Database.Path)
			return nil
		},
	}
	flags.registerDefaults(cmd)

	return cmd
}

func newDBQueryCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query [sql]",
		Short: "Print stored transactions selected by SQL",
		Long: "Print stored transactions. The query must select amount, date, memo,\n" +
			"description, category, tag in that order. Without a query all rows are listed.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := storage.SelectAll
			if len(args) > 0 {
				query = args[0]
			}

			store, err := storage.Open(cmd.Context(), a.cfg.Database.Path)
			if err != nil {
				return a.fail(txlog.ComponentStorage, fmt.Errorf("opening database: %w", err))
			}
			defer store.Close()

			records, err := store.Query(cmd.Context(), query)
			if err != nil {
				return a.fail(txlog.ComponentStorage, err)
			}
			return printRecords(cmd.OutOrStdout(), records)
		},
	}

	return cmd
}

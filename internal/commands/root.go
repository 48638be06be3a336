package commands

import (
	"github.com/spf13/cobra"

	"github.com/txnsift/txnsift/internal/buildinfo"
	"github.com/txnsift/txnsift/internal/config"
	txlog "github.com/txnsift/txnsift/internal/log"
)

// app carries state shared by all subcommands for one invocation.
type app struct {
	configPath string
	envFile    string

	cfg *config.Config
	log *txlog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "txnsift",
		Short:   "Filter, tag and re-export bank CSV transactions",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.FileName, "config file")
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file with TXNSIFT_* overrides")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newShowCommand(a))
	rootCmd.AddCommand(newExportCommand(a))
	rootCmd.AddCommand(newDBCommand(a))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(a.envFile); err != nil {
		return err
	}
	level, err := txlog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = txlog.New(cmd.ErrOrStderr(), level)
	return nil
}

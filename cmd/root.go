package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rokuro32/staticamaster/internal/bank"
	"github.com/rokuro32/staticamaster/internal/config"
	"github.com/rokuro32/staticamaster/internal/logging"
	"github.com/rokuro32/staticamaster/internal/store"
)

var (
	appConfig *config.Config
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:          "staticamaster",
	Short:        "Physics quiz engine for statics, kinematics and waves",
	Long:         "staticamaster instantiates parameterized physics questions and scores learner answers.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		log, err := logging.New(cfg.Log, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		appConfig, logger = cfg, log
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STATICA_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")

	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(instantiateCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STATICA_DB env var or the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if appConfig != nil && appConfig.DB.Path != "" {
		return appConfig.DB.Path, store.EnsureDir(appConfig.DB.Path)
	}
	return store.DefaultDBPath()
}

// openStore opens the store at the resolved database path.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// loadBank returns the configured on-disk bank, or the embedded one.
func loadBank() (*bank.Bank, error) {
	if appConfig != nil && appConfig.Bank.Dir != "" {
		return bank.LoadDir(appConfig.Bank.Dir)
	}
	return bank.Default()
}

// seedFlag returns the --seed value and whether it was set.
func seedFlag(cmd *cobra.Command) (int64, bool) {
	if !cmd.Flags().Changed("seed") {
		return 0, false
	}
	seed, _ := cmd.Flags().GetInt64("seed")
	return seed, true
}

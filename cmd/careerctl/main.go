package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/khoahotran/career-path/internal/config"
	"github.com/khoahotran/career-path/pkg/logger"
)

var (
	configDir string

	cfg       config.Config
	appLogger logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "careerctl",
	Short:         "Operations tool for the CareerPath API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(configDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		appLogger = logger.NewZapLogger(cfg.App.Env, cfg.App.LogLevel)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appLogger != nil {
			_ = appLogger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory holding config.yaml and .env")
	rootCmd.AddCommand(migrateCmd, seedAdminCmd, backupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

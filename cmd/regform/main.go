package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-regform/internal/app"
	"github.com/goliatone/go-regform/internal/config"
	"github.com/goliatone/go-regform/internal/logger"
)

var (
	// Global flags
	configFile string
	envFile    string

	cfg         *config.Config
	log         *zap.Logger
	application *app.App
)

var rootCmd = &cobra.Command{
	Use:   "regform",
	Short: "Registration form with configurable questions",
	Long: `regform serves a registration form asking for a username, a password and a
configurable list of questions. Valid submissions have every answer recorded
and redirect to a thanks page.

Configuration is read from config.yaml, a .env file and REGFORM_* environment
variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if cmd.Annotations["skipApp"] == "true" {
			return nil
		}
		return setup(cmd)
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: config.yaml in ./config or .)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file loaded before reading the environment (default: .env if present)")

	rootCmd.AddCommand(serveCmd, askCmd, renderCmd, schemaCmd, openapiCmd, lintCmd)
}

func setup(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(config.LoadOptions{ConfigFile: configFile, EnvFile: envFile})
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.HTTP.Addr = serveAddr
	}

	log, err = logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	application, err = app.New(cfg, log, app.WithOutput(cmd.OutOrStdout()))
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

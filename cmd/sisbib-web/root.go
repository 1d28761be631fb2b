package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sisbib/sisbib-web/config"
	"github.com/sisbib/sisbib-web/internal/bootstrap"
)

var rootCmd = &cobra.Command{
	Use:           "sisbib-web",
	Short:         "Web front-end for the SisBib library system.",
	SilenceErrors: true,
	SilenceUsage:  true,
	// Running the binary without a subcommand serves HTTP.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the root command with a context canceled on SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd, notifyOverdueCmd, migrateCmd, purgeSessionsCmd, versionCmd)
}

// loadRuntime reads configuration and installs the process logger.
func loadRuntime() (config.AppConfig, *slog.Logger, error) {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return cfg, nil, err
	}
	return cfg, bootstrap.InitLogger(cfg.Observability.Logging), nil
}

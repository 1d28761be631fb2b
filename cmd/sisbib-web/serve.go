package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sisbib/sisbib-web/internal/bootstrap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting sisbib-web",
		"version", version,
		"addr", cfg.HTTP.Addr,
		"session_store", cfg.Session.Store,
	)

	app, err := bootstrap.NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close session store failed", "error", cerr)
		}
	}()

	return app.Run(ctx)
}

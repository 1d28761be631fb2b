package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	pgadapter "github.com/sisbib/sisbib-web/internal/adapters/postgres"
	"github.com/sisbib/sisbib-web/internal/bootstrap"
)

const defaultMigrationTimeout = 5 * time.Minute

var errNotPostgres = errors.New("SESSION_STORE is not postgres; nothing to do")

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the session store schema migrations.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		if !cfg.NeedsPostgres() {
			return errNotPostgres
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), defaultMigrationTimeout)
		defer cancel()

		pool, err := bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{DBConfig: cfg.Postgres, Logger: logger})
		if err != nil {
			return err
		}
		defer pool.Close()

		return bootstrap.RunMigrations(ctx, pool, logger)
	},
}

var purgeSessionsCmd = &cobra.Command{
	Use:   "purge-sessions",
	Short: "Delete expired sessions from the Postgres session store once.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		if !cfg.NeedsPostgres() {
			return errNotPostgres
		}

		pool, err := bootstrap.ConnectDB(cmd.Context(), bootstrap.DatabaseConfig{DBConfig: cfg.Postgres, Logger: logger})
		if err != nil {
			return err
		}
		defer pool.Close()

		n, err := pgadapter.NewSessionStore(pool).PurgeExpired(cmd.Context())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "purged %d expired sessions\n", n)
		return err
	},
}

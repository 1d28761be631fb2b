package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sisbib/sisbib-web/internal/bootstrap"
	apperrors "github.com/sisbib/sisbib-web/internal/errors"
)

var notifyOverdueCmd = &cobra.Command{
	Use:   "notify-overdue",
	Short: "Ask the backend to notify borrowers with overdue loans.",
	Long: "Calls the backend's overdue notification endpoint once and prints its summary.\n" +
		"Intended for cron jobs; the admin loans page offers the same action.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		client, err := bootstrap.NewBackendClient(cfg.Backend, logger)
		if err != nil {
			return err
		}
		return notifyOverdue(cmd.Context(), client, cmd.OutOrStdout())
	},
}

type overdueNotifier interface {
	NotifyOverdue(ctx context.Context) (string, error)
}

func notifyOverdue(ctx context.Context, api overdueNotifier, out io.Writer) error {
	msg, err := api.NotifyOverdue(ctx)
	if err != nil {
		if apperrors.IsRejected(err) {
			return fmt.Errorf("notify overdue: backend said %q", apperrors.UserMessage(err))
		}
		return fmt.Errorf("notify overdue: %w", err)
	}
	if msg == "" {
		msg = "Notificaciones enviadas con éxito."
	}
	_, err = fmt.Fprintln(out, msg)
	return err
}

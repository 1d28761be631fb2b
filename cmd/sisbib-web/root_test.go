package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sisbib/sisbib-web/internal/errors"
)

func TestRootCommand_RegistersCommands(t *testing.T) {
	for _, name := range []string{"serve", "notify-overdue", "migrate", "purge-sessions", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	require.NoError(t, versionCmd.RunE(versionCmd, nil))
	assert.Equal(t, "sisbib-web dev (none)\n", out.String())
}

func TestRunMain(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    int
		wantOut string
	}{
		{name: "success", err: nil, want: 0},
		{name: "failure", err: errors.New("boom"), want: 1, wantOut: "error: boom"},
		{name: "interrupted", err: context.Canceled, want: 130, wantOut: "canceled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			got := runMain(func() error { return tt.err }, &stderr)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOut, strings.TrimSpace(stderr.String()))
		})
	}
}

type notifierFunc func(ctx context.Context) (string, error)

func (f notifierFunc) NotifyOverdue(ctx context.Context) (string, error) { return f(ctx) }

func TestNotifyOverdue(t *testing.T) {
	t.Run("prints the backend summary", func(t *testing.T) {
		var out bytes.Buffer
		err := notifyOverdue(context.Background(), notifierFunc(func(context.Context) (string, error) {
			return "3 notificaciones enviadas", nil
		}), &out)
		require.NoError(t, err)
		assert.Equal(t, "3 notificaciones enviadas\n", out.String())
	})

	t.Run("default summary", func(t *testing.T) {
		var out bytes.Buffer
		err := notifyOverdue(context.Background(), notifierFunc(func(context.Context) (string, error) {
			return "", nil
		}), &out)
		require.NoError(t, err)
		assert.Equal(t, "Notificaciones enviadas con éxito.\n", out.String())
	})

	t.Run("rejection carries the backend message", func(t *testing.T) {
		err := notifyOverdue(context.Background(), notifierFunc(func(context.Context) (string, error) {
			return "", apperrors.Rejected("SMTP no configurado", 500)
		}), &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"SMTP no configurado"`)
	})

	t.Run("transport errors stay classified", func(t *testing.T) {
		err := notifyOverdue(context.Background(), notifierFunc(func(context.Context) (string, error) {
			return "", apperrors.Unavailable(errors.New("dial tcp: refused"))
		}), &bytes.Buffer{})
		require.Error(t, err)
		assert.True(t, apperrors.IsUnavailable(err))
	})
}

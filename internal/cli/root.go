// Package cli implements the blog-admin maintenance commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"blog-api/internal/observability"

	"github.com/spf13/cobra"
)

// Backend is what the admin commands operate on.
type Backend interface {
	Migrate(ctx context.Context) ([]string, error)
	SweepSessions(ctx context.Context) (int64, error)
	RevokeSessions(ctx context.Context, username string) (int, error)
	Close() error
}

// Opener connects a Backend. It runs once per command invocation.
type Opener func(ctx context.Context, logger *slog.Logger) (Backend, error)

type rootState struct {
	open      Opener
	logLevel  string
	logFormat string

	logger  *slog.Logger
	backend Backend
}

// NewRootCmd creates the root command of blog-admin.
func NewRootCmd(open Opener) *cobra.Command {
	st := &rootState{open: open}

	root := &cobra.Command{
		Use:   "blog-admin",
		Short: "Maintenance commands for the blog API",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			st.logger = observability.NewLogger(cmd.ErrOrStderr(), st.logLevel, st.logFormat)
			slog.SetDefault(st.logger)

			backend, err := st.open(cmd.Context(), st.logger)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			st.backend = backend
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if st.backend == nil {
				return nil
			}
			return st.backend.Close()
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&st.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&st.logFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newMigrateCmd(st),
		newSessionsCmd(st),
	)

	return root
}

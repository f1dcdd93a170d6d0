package cli

import (
	"errors"
	"fmt"
	"strings"

	"blog-api/internal/domain"

	"github.com/spf13/cobra"
)

func newSessionsCmd(st *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage login sessions",
	}
	cmd.AddCommand(newSweepCmd(st), newRevokeCmd(st))
	return cmd
}

func newSweepCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Delete expired sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := st.backend.SweepSessions(cmd.Context())
			if err != nil {
				return fmt.Errorf("sweep sessions: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d expired sessions\n", n)
			return nil
		},
	}
}

func newRevokeCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <username>",
		Short: "Log a user out everywhere",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := strings.ToLower(args[0])

			n, err := st.backend.RevokeSessions(cmd.Context(), username)
			if errors.Is(err, domain.ErrUserNotFound) {
				return fmt.Errorf("no user named %q", username)
			}
			if err != nil {
				return fmt.Errorf("revoke sessions: %w", err)
			}

			st.logger.Info("sessions revoked", "username", username, "count", n)
			fmt.Fprintf(cmd.OutOrStdout(), "Revoked %d sessions of %s\n", n, username)
			return nil
		},
	}
}

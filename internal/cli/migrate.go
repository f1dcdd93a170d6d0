package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := st.backend.Migrate(cmd.Context())
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				fmt.Fprintln(out, "Database is up to date")
				return nil
			}
			for _, name := range applied {
				fmt.Fprintf(out, "Applied %s\n", name)
			}
			return nil
		},
	}
}

package cli

import (
	"github.com/spf13/cobra"
)

func newDebugCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Debug commands (server must enable debug endpoints)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "storage",
		Short: "Dump the server's room and result store",
		RunE: func(cmd *cobra.Command, args []string) error {
			var snapshot map[string]any

			if err := client.Get("/api/v1/debug/storage", &snapshot); err != nil {
				return err
			}

			// Always JSON; the snapshot has no text rendering
			NewOutput(cmd.OutOrStdout(), "json").Print(snapshot)
			return nil
		},
	})

	return cmd
}

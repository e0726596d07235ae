package cli

import (
	"fmt"

	"github.com/curtisos/curtisos/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSyncEmailCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "sync-email",
		Short: "Import recent mail, triage it and create follow-up tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := load(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			res, err := rt.Services.EmailSync.Sync(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSyncResult(res))
			return nil
		},
	}
}

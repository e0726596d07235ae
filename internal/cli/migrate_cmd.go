package cli

import (
	"fmt"

	"github.com/curtisos/curtisos/internal/cli/formatter"
	"github.com/curtisos/curtisos/internal/db"
	"github.com/spf13/cobra"
)

func newMigrateCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Opening the runtime applies every migration.
			rt, err := load(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			rows := make([][]string, 0, len(db.Tables))
			for _, table := range db.Tables {
				var n int
				if err := rt.DB.QueryRowContext(cmd.Context(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
					return fmt.Errorf("counting %s: %w", table, err)
				}
				rows = append(rows, []string{table, fmt.Sprint(n)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Header("Schema ready"))
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"TABLE", "ROWS"}, rows))
			return nil
		},
	}
}

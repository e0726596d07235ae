package cli

import (
	"fmt"

	"github.com/curtisos/curtisos/internal/cli/formatter"
	"github.com/curtisos/curtisos/internal/domain"
	"github.com/spf13/cobra"
)

func newDashboardCmd(load loader) *cobra.Command {
	var ctxFilter string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show headline counts and revenue",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := load(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			c := domain.Context(ctxFilter)
			counts, err := rt.Services.Dashboard.Counts(cmd.Context(), c)
			if err != nil {
				return err
			}
			metrics, err := rt.Services.Revenue.Metrics(cmd.Context(), c)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDashboard(counts, metrics))
			return nil
		},
	}

	cmd.Flags().StringVar(&ctxFilter, "context", "", "Limit to one context (notrom, podcast, day_job, general)")
	return cmd
}

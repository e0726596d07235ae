package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/curtisos/curtisos/internal/cli/formatter"
	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/service"
	"github.com/spf13/cobra"
)

func newDevPlansCmd(load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "devplans [id]",
		Aliases: []string{"plans"},
		Short:   "Show dev plan progress",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := load(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx := cmd.Context()
			now := time.Now().UTC()

			if len(args) == 1 {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				view, err := rt.Services.DevPlans.GetByID(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDevPlan(*view, projectName(cmd, rt, view.ProjectID), now))
				return nil
			}

			plans, err := rt.Services.DevPlans.List(ctx)
			if err != nil {
				return err
			}
			projects, err := rt.Services.Projects.List(ctx, domain.ProjectFilter{})
			if err != nil {
				return err
			}
			names := make(map[int64]string, len(projects))
			for _, p := range projects {
				names[p.ID] = p.Name
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDevPlans(plans, names, now))
			return nil
		},
	}

	cmd.AddCommand(newDevPlanAdvanceCmd(load))
	return cmd
}

func newDevPlanAdvanceCmd(load loader) *cobra.Command {
	var stage string

	cmd := &cobra.Command{
		Use:   "advance <id>",
		Short: "Move a dev plan to its next stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			rt, err := load(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			view, err := rt.Services.DevPlans.AdvanceStage(cmd.Context(), id, service.AdvanceStageRequest{
				Stage: domain.Stage(stage),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDevPlan(*view, projectName(cmd, rt, view.ProjectID), time.Now().UTC()))
			return nil
		},
	}

	cmd.Flags().StringVar(&stage, "stage", "", "Expected next stage; refuses to advance anywhere else")
	return cmd
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// projectName falls back to "#id" when the project cannot be loaded.
func projectName(cmd *cobra.Command, rt *Runtime, id int64) string {
	p, err := rt.Services.Projects.GetByID(cmd.Context(), id)
	if err != nil {
		return fmt.Sprintf("#%d", id)
	}
	return p.Name
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/goals/internal/app"
	"github.com/runoshun/goals/internal/domain"
	"github.com/runoshun/goals/internal/usecase"
)

// newWeeklyCommand creates the weekly command.
func newWeeklyCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "weekly",
		Short: "Set the goal for this week",
		Long: `Ask for the goal of the current ISO week, show it and store it after
confirmation. An existing goal is offered as the default answer and is
replaced when confirmed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.withStore(cmd, func(c *app.Container) error {
				_, err := c.SetWeeklyGoalUseCase().Execute(cmd.Context(), usecase.SetWeeklyGoalInput{
					Calendar: domain.ResolveCalendar(c.Clock.Now()),
				})
				return handleInputClosed(cmd, err)
			})
		},
	}
}

// newDailyCommand creates the daily command.
func newDailyCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Set the objective for today",
		Long: `Show this week's goal (asking for it first if there is none), then ask
for today's objective and store it after confirmation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.withStore(cmd, func(c *app.Container) error {
				_, err := c.SetDailyObjectiveUseCase().Execute(cmd.Context(), usecase.SetDailyObjectiveInput{
					Calendar: domain.ResolveCalendar(c.Clock.Now()),
				})
				return handleInputClosed(cmd, err)
			})
		},
	}
}

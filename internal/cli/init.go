package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/goals/internal/app"
	"github.com/runoshun/goals/internal/usecase"
)

// newInitCommand creates the init command.
func newInitCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the store",
		Long: `Create the tables (or git ref namespace) used by goals.

Running it again is safe: existing data is kept, and task tables created
by older versions get their day columns added.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.withStore(cmd, func(c *app.Container) error {
				out, err := c.InitStoreUseCase().Execute(cmd.Context(), usecase.InitStoreInput{})
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized store in %s\n", out.Location)
				return nil
			})
		},
	}
}

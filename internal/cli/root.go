// Package cli provides the command-line interface for goals.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/goals/internal/app"
	"github.com/runoshun/goals/internal/domain"
	"github.com/runoshun/goals/internal/usecase"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupGoals = "goals"
	groupTasks = "tasks"
)

// ContainerFactory builds the container once global flags are parsed.
type ContainerFactory func(opts app.Options) (*app.Container, error)

// runtime holds the global flags and builds the container for a command.
type runtime struct {
	newContainer ContainerFactory
	configPath   string
	dbPath       string
}

// withConfig runs fn with a container whose store is not opened.
func (r *runtime) withConfig(cmd *cobra.Command, fn func(c *app.Container) error) error {
	c, err := r.newContainer(app.Options{
		In:         cmd.InOrStdin(),
		Out:        cmd.OutOrStdout(),
		ConfigPath: r.configPath,
		DBPath:     r.dbPath,
	})
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	for _, w := range c.Config.Warnings {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}
	return fn(c)
}

// withStore runs fn with a container whose store is open.
func (r *runtime) withStore(cmd *cobra.Command, fn func(c *app.Container) error) error {
	return r.withConfig(cmd, func(c *app.Container) error {
		if err := c.OpenStore(); err != nil {
			return err
		}
		return fn(c)
	})
}

// NewRootCommand creates the root command for goals.
// Without a subcommand it runs the wizard.
func NewRootCommand(newContainer ContainerFactory, version string) *cobra.Command {
	rt := &runtime{newContainer: newContainer}

	root := &cobra.Command{
		Use:   "goals",
		Short: "Weekly goal, daily objective and today's tasks",
		Long: `goals asks for a goal for this week, an objective for today that
works towards it, and the tasks for today.

Without a subcommand it runs the wizard: records that already exist for
this week or today are shown instead of asked for again, unfinished tasks
are reviewed one by one, and new tasks are added until an empty line.`,
		Version: version,
		Args:    cobra.NoArgs,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.withStore(cmd, func(c *app.Container) error {
				_, err := c.RunWizardUseCase().Execute(cmd.Context(), usecase.RunWizardInput{})
				return handleInputClosed(cmd, err)
			})
		},
	}

	root.PersistentFlags().StringVar(&rt.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/goals/config.toml)")
	root.PersistentFlags().StringVar(&rt.dbPath, "db", "", "SQLite database file (overrides [store] in the config)")

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupGoals, Title: "Goals:"},
		&cobra.Group{ID: groupTasks, Title: "Tasks:"},
	)

	// Setup commands
	initCmd := newInitCommand(rt)
	initCmd.GroupID = groupSetup

	configCmd := newConfigCommand(rt)
	configCmd.GroupID = groupSetup

	// Goal commands
	weeklyCmd := newWeeklyCommand(rt)
	weeklyCmd.GroupID = groupGoals

	dailyCmd := newDailyCommand(rt)
	dailyCmd.GroupID = groupGoals

	// Task commands
	listCmd := newListTasksCommand(rt)
	listCmd.GroupID = groupTasks

	doneCmd := newResolveCommand(rt, "done", domain.StatusDone)
	doneCmd.GroupID = groupTasks

	discardCmd := newResolveCommand(rt, "discard", domain.StatusDiscarded)
	discardCmd.GroupID = groupTasks

	root.AddCommand(
		initCmd,
		configCmd,
		weeklyCmd,
		dailyCmd,
		listCmd,
		doneCmd,
		discardCmd,
	)

	return root
}

// handleInputClosed turns the end of input into a notice: the interrupted
// step is abandoned and earlier steps stay saved.
func handleInputClosed(cmd *cobra.Command, err error) error {
	if errors.Is(err, domain.ErrInputClosed) {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Input closed; stopping here. Saved entries are kept.")
		return nil
	}
	return err
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/goals/internal/app"
	"github.com/runoshun/goals/internal/domain"
	"github.com/runoshun/goals/internal/usecase"
)

// newListTasksCommand creates the list-tasks command.
func newListTasksCommand(rt *runtime) *cobra.Command {
	var opts struct {
		Statuses []string
		All      bool
		Today    bool
		JSON     bool
	}

	cmd := &cobra.Command{
		Use:     "list-tasks",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `Display a list of tasks in insertion order.

By default, done and discarded tasks are hidden.
Use --all to show every task, or --status to pick statuses.

Output format is tab-separated with columns:
  ID, STATUS, DAY, TEXT

DAY is the day whose list the task is on (e.g. 2025-045), or "-".

Examples:
  # Unfinished tasks
  goals list-tasks

  # Everything on today's list, including done tasks
  goals list-tasks --today --all

  # Snoozed tasks as JSON
  goals list-tasks --status snoozed --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses := make([]domain.Status, 0, len(opts.Statuses))
			for _, s := range opts.Statuses {
				status, err := domain.ParseStatus(s)
				if err != nil {
					return err
				}
				statuses = append(statuses, status)
			}

			return rt.withStore(cmd, func(c *app.Container) error {
				input := usecase.ListTasksInput{
					Statuses:        statuses,
					IncludeTerminal: opts.All,
				}
				if opts.Today {
					today := domain.ResolveCalendar(c.Clock.Now()).Day()
					input.Day = &today
				}

				out, err := c.ListTasksUseCase().Execute(cmd.Context(), input)
				if err != nil {
					return err
				}

				if opts.JSON {
					return printTaskListJSON(cmd.OutOrStdout(), out.Tasks)
				}
				printTaskList(cmd.OutOrStdout(), out.Tasks)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "Show all tasks including done and discarded")
	cmd.Flags().BoolVarP(&opts.Today, "today", "t", false, "Show only tasks on today's list")
	cmd.Flags().StringArrayVar(&opts.Statuses, "status", nil, "Filter by status (todo, done, snoozed, discarded)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output in JSON format")

	return cmd
}

// printTaskList prints tasks in TSV format.
func printTaskList(w io.Writer, tasks []*domain.Task) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	// Header
	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tDAY\tTEXT")

	// Rows
	for _, task := range tasks {
		dayStr := "-"
		if task.Day != nil {
			dayStr = task.Day.String()
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			task.ID,
			task.Status.Display(),
			dayStr,
			task.Text,
		)
	}
}

// jsonTask is the JSON form of a task.
type jsonTask struct {
	Day    *int          `json:"day"`
	Year   *int          `json:"year"`
	Text   string        `json:"text"`
	Status domain.Status `json:"status"`
	ID     int64         `json:"id"`
}

// printTaskListJSON prints tasks as a JSON array.
func printTaskListJSON(w io.Writer, tasks []*domain.Task) error {
	out := make([]jsonTask, 0, len(tasks))
	for _, task := range tasks {
		jt := jsonTask{ID: task.ID, Text: task.Text, Status: task.Status}
		if task.Day != nil {
			day, year := task.Day.Day, task.Day.Year
			jt.Day, jt.Year = &day, &year
		}
		out = append(out, jt)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	return nil
}

// newResolveCommand creates a command that moves a task to a terminal status.
func newResolveCommand(rt *runtime, name string, status domain.Status) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <id>",
		Short: fmt.Sprintf("Mark a task as %s", strings.ToLower(status.Display())),
		Long: fmt.Sprintf(`Mark a task as %s.

Done and discarded are final: a task in either status cannot be changed again.`,
			strings.ToLower(status.Display())),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			return rt.withStore(cmd, func(c *app.Container) error {
				out, err := c.ResolveTaskUseCase().Execute(cmd.Context(), usecase.ResolveTaskInput{
					TaskID: id,
					Status: status,
				})
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task #%d marked as %s: %s\n",
					out.Task.ID, strings.ToLower(out.Task.Status.Display()), out.Task.Text)
				return nil
			})
		},
	}
}

// parseTaskID parses a task ID string, with or without a leading #.
func parseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("task ID must be positive")
	}
	return id, nil
}

// Package tui provides the terminal adapters: a lipgloss Presenter and a
// bubbletea Prompter.
package tui

import (
	"fmt"
	"io"

	"github.com/runoshun/goals/internal/domain"
)

// Ensure Presenter implements domain.Presenter.
var _ domain.Presenter = (*Presenter)(nil)

// Presenter writes entities to a terminal.
type Presenter struct {
	out    io.Writer
	styles Styles
}

// NewPresenter creates a Presenter writing to out.
func NewPresenter(out io.Writer, styles Styles) *Presenter {
	return &Presenter{out: out, styles: styles}
}

// Header shows a section title.
func (p *Presenter) Header(title string) {
	_, _ = fmt.Fprintln(p.out, p.styles.Title.Render(title))
}

// WeeklyGoal shows the goal for a week.
func (p *Presenter) WeeklyGoal(goal *domain.WeeklyGoal) {
	_, _ = fmt.Fprintf(p.out, "Your %s this week (%s) is: %s\n",
		p.styles.Label.Render("Goal"),
		p.styles.Key.Render(goal.Key.Label()),
		p.styles.GoalText.Render(goal.Text),
	)
}

// DailyObjective shows the objective for a day.
func (p *Presenter) DailyObjective(objective *domain.DailyObjective) {
	_, _ = fmt.Fprintf(p.out, "Your %s today (%s) is: %s\n",
		p.styles.Label.Render("Objective"),
		p.styles.Key.Render(objective.Key.Label()),
		p.styles.ObjectiveText.Render(objective.Text),
	)
}

// Tasks shows a titled task list.
func (p *Presenter) Tasks(title string, tasks []*domain.Task) {
	_, _ = fmt.Fprintln(p.out, p.styles.Title.Render(title))
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(p.out, p.styles.Empty.Render(" (none)"))
		return
	}
	for _, t := range tasks {
		_, _ = fmt.Fprintf(p.out, "%s %s\n", p.styles.TaskBullet.Render(" -"), p.styles.StatusStyle(t.Status).Render(t.Text))
	}
}

// Info shows a plain message.
func (p *Presenter) Info(msg string) {
	_, _ = fmt.Fprintln(p.out, msg)
}

package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/goals/internal/domain"
)

// Ensure Prompter implements domain.Prompter.
var _ domain.Prompter = (*Prompter)(nil)

// Prompter asks each question with a short-lived bubbletea program.
type Prompter struct {
	in     io.Reader
	out    io.Writer
	styles Styles
	keys   KeyMap
}

// NewPrompter creates a Prompter reading keys from in and drawing to out.
func NewPrompter(in io.Reader, out io.Writer, styles Styles) *Prompter {
	return &Prompter{in: in, out: out, styles: styles, keys: DefaultKeyMap()}
}

// PromptText asks for a line of text.
func (p *Prompter) PromptText(ctx context.Context, prompt domain.TextPrompt) (string, error) {
	final, err := p.run(ctx, newTextModel(prompt, p.styles, p.keys))
	if err != nil {
		return "", err
	}
	m, ok := final.(textModel)
	if !ok || !m.done {
		return "", domain.ErrInputClosed
	}
	return m.value, nil
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(ctx context.Context, prompt domain.ConfirmPrompt) (bool, error) {
	final, err := p.run(ctx, newConfirmModel(prompt, p.styles, p.keys))
	if err != nil {
		return false, err
	}
	m, ok := final.(confirmModel)
	if !ok || !m.done {
		return false, domain.ErrInputClosed
	}
	return m.value, nil
}

// ChooseDisposition asks what to do with an unfinished task.
func (p *Prompter) ChooseDisposition(ctx context.Context, task *domain.Task) (domain.Disposition, error) {
	final, err := p.run(ctx, newDispositionModel(task, p.styles, p.keys))
	if err != nil {
		return 0, err
	}
	m, ok := final.(dispositionModel)
	if !ok || !m.done {
		return 0, domain.ErrInputClosed
	}
	return m.selected(), nil
}

func (p *Prompter) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInputClosed, err)
	}
	return final, nil
}

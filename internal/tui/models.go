package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/goals/internal/domain"
)

// textCharLimit matches the column width of the original tasks table.
const textCharLimit = 255

// textModel asks for a line of text.
type textModel struct {
	input   textinput.Model
	prompt  domain.TextPrompt
	styles  Styles
	keys    KeyMap
	value   string
	done    bool
	aborted bool
}

func newTextModel(p domain.TextPrompt, styles Styles, keys KeyMap) textModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = textCharLimit
	ti.SetValue(p.Default)
	ti.CursorEnd()
	ti.Focus()

	return textModel{input: ti, prompt: p, styles: styles, keys: keys}
}

func (m textModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Submit):
			m.value = m.input.Value()
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textModel) View() string {
	question := m.styles.Question.Render("? " + m.prompt.Message)
	if m.done {
		return question + " " + m.styles.Answer.Render(m.value) + "\n"
	}
	if m.aborted {
		return question + "\n"
	}

	var b strings.Builder
	b.WriteString(question + "\n")
	b.WriteString(m.input.View() + "\n")
	if m.prompt.Help != "" {
		b.WriteString(m.styles.Help.Render("["+m.prompt.Help+"]") + "\n")
	}
	return b.String()
}

// confirmModel asks a yes/no question.
type confirmModel struct {
	prompt  domain.ConfirmPrompt
	styles  Styles
	keys    KeyMap
	value   bool
	done    bool
	aborted bool
}

func newConfirmModel(p domain.ConfirmPrompt, styles Styles, keys KeyMap) confirmModel {
	return confirmModel{prompt: p, styles: styles, keys: keys}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.value, m.done = true, true
	case key.Matches(keyMsg, m.keys.No):
		m.value, m.done = false, true
	case key.Matches(keyMsg, m.keys.Submit):
		m.value, m.done = m.prompt.Default, true
	case key.Matches(keyMsg, m.keys.Cancel):
		m.aborted = true
	default:
		return m, nil
	}
	return m, tea.Quit
}

func (m confirmModel) View() string {
	question := m.styles.Question.Render("? " + m.prompt.Message)
	if m.done {
		answer := "No"
		if m.value {
			answer = "Yes"
		}
		return question + " " + m.styles.Answer.Render(answer) + "\n"
	}
	if m.aborted {
		return question + "\n"
	}

	hint := "(y/N)"
	if m.prompt.Default {
		hint = "(Y/n)"
	}
	view := question + " " + m.styles.Help.Render(hint) + "\n"
	if m.prompt.Help != "" {
		view += m.styles.Help.Render("["+m.prompt.Help+"]") + "\n"
	}
	return view
}

// dispositionModel asks what to do with an unfinished task.
type dispositionModel struct {
	task    *domain.Task
	options []domain.Disposition
	styles  Styles
	keys    KeyMap
	cursor  int
	done    bool
	aborted bool
}

func newDispositionModel(task *domain.Task, styles Styles, keys KeyMap) dispositionModel {
	return dispositionModel{
		task:    task,
		options: domain.AllDispositions(),
		styles:  styles,
		keys:    keys,
	}
}

func (m dispositionModel) Init() tea.Cmd {
	return nil
}

func (m dispositionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Submit):
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Cancel):
		m.aborted = true
		return m, tea.Quit
	}
	return m, nil
}

// selected returns the disposition under the cursor.
func (m dispositionModel) selected() domain.Disposition {
	return m.options[m.cursor]
}

func (m dispositionModel) View() string {
	question := m.styles.Question.Render(fmt.Sprintf("? What about %q?", m.task.Text))
	if m.done {
		return question + " " + m.styles.Answer.Render(m.selected().Display()) + "\n"
	}
	if m.aborted {
		return question + "\n"
	}

	var b strings.Builder
	b.WriteString(question + "\n")
	for i, opt := range m.options {
		if i == m.cursor {
			b.WriteString(m.styles.Cursor.Render("> ") + m.styles.Selected.Render(opt.Display()) + "\n")
			continue
		}
		b.WriteString("  " + m.styles.Option.Render(opt.Display()) + "\n")
	}
	b.WriteString(m.styles.Help.Render("[↑/↓ to move, enter to select]") + "\n")
	return b.String()
}

// Package prompt implements a line-based Prompter for pipes and scripts.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/runoshun/goals/internal/domain"
)

// Ensure Line implements domain.Prompter.
var _ domain.Prompter = (*Line)(nil)

// Line reads one answer per line.
type Line struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLine creates a Line prompter reading from in and writing questions to out.
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{in: bufio.NewReader(in), out: out}
}

// PromptText asks for a line of text. An empty answer returns the default.
func (l *Line) PromptText(ctx context.Context, p domain.TextPrompt) (string, error) {
	question := "? " + p.Message
	if p.Default != "" {
		question += " (" + p.Default + ")"
	}
	l.ask(question, p.Help)

	answer, err := l.readLine(ctx)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return p.Default, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question until it gets a valid answer.
func (l *Line) Confirm(ctx context.Context, p domain.ConfirmPrompt) (bool, error) {
	hint := "(y/N)"
	if p.Default {
		hint = "(Y/n)"
	}
	for {
		l.ask("? "+p.Message+" "+hint, p.Help)

		answer, err := l.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return p.Default, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		_, _ = fmt.Fprintln(l.out, "Please answer y or n.")
	}
}

// ChooseDisposition lists the choices and reads a number until it gets a valid one.
func (l *Line) ChooseDisposition(ctx context.Context, task *domain.Task) (domain.Disposition, error) {
	options := domain.AllDispositions()
	for {
		_, _ = fmt.Fprintf(l.out, "? What about %q?\n", task.Text)
		for i, opt := range options {
			_, _ = fmt.Fprintf(l.out, "  %d) %s\n", i+1, opt.Display())
		}
		l.ask("Choice:", "")

		answer, err := l.readLine(ctx)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(answer)
		if convErr == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		_, _ = fmt.Fprintf(l.out, "Please enter a number between 1 and %d.\n", len(options))
	}
}

func (l *Line) ask(question, help string) {
	if help != "" {
		_, _ = fmt.Fprintf(l.out, "%s [%s] ", question, help)
		return
	}
	_, _ = fmt.Fprint(l.out, question+" ")
}

// readLine returns the next line without its line ending.
// A final line without a newline is still returned; end of input after it is ErrInputClosed.
func (l *Line) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInputClosed, err)
	}

	line, err := l.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", domain.ErrInputClosed
		}
		return "", fmt.Errorf("%w: %w", domain.ErrInputClosed, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

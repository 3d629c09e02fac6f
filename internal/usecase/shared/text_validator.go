package shared

import (
	"context"
	"strings"

	"github.com/runoshun/goals/internal/domain"
)

// ValidateText trims whitespace from the answer and validates it is not empty.
// Returns the trimmed text if valid, otherwise returns domain.ErrEmptyText.
func ValidateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", domain.ErrEmptyText
	}
	return trimmed, nil
}

// PromptNonEmpty asks p until the answer is not blank and returns it trimmed.
// Only a prompter error (such as domain.ErrInputClosed) ends the loop early.
func PromptNonEmpty(ctx context.Context, prompter domain.Prompter, p domain.TextPrompt) (string, error) {
	for {
		answer, err := prompter.PromptText(ctx, p)
		if err != nil {
			return "", err
		}
		if text, err := ValidateText(answer); err == nil {
			return text, nil
		}
	}
}

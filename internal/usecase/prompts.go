package usecase

import "github.com/runoshun/goals/internal/domain"

// Questions asked by the use cases.
var (
	WeeklyGoalPrompt = domain.TextPrompt{
		Message: "What is your goal for this week?",
		Help:    "What do you want to achieve?",
	}
	DailyObjectivePrompt = domain.TextPrompt{
		Message: "Today's objective:",
		Help:    "What to you want to do to get closer to this week's goal?",
	}
	NewTaskPrompt = domain.TextPrompt{
		Message: "New task for today:",
		Help:    "Leave empty when you are done",
	}
	ConfirmWeeklyGoalPrompt = domain.ConfirmPrompt{
		Message: "Is this correct?",
		Help:    "Confirm to store your goal for this week",
		Default: false,
	}
	ConfirmDailyObjectivePrompt = domain.ConfirmPrompt{
		Message: "Is this correct?",
		Help:    "Confirm to store today's objective",
		Default: false,
	}
)

// Messages shown by the use cases.
const (
	WizardTitle          = "Goals Wizard"
	UnfinishedTasksTitle = "You have the following unfinished tasks:"
	TodayTasksTitle      = "Today's tasks:"
	NoUnfinishedMessage  = "No unfinished tasks."
	CancelledMessage     = "Cancelled"
	ConfirmErrorMessage  = "Error reading answer, try again later"
)

// withDefault returns a copy of p pre-filled with value.
func withDefault(p domain.TextPrompt, value string) domain.TextPrompt {
	p.Default = value
	return p
}

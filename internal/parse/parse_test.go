package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinayaksoni1729/TaskX/internal/model"
)

// Фиксированный момент: среда, 5 марта 2025, 10:00 UTC
var wednesday = time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)

func due(t *testing.T, r Result) string {
	t.Helper()
	require.False(t, r.Due.IsZero(), "expected a due date")
	return r.Due.Format("2006-01-02 15:04")
}

func TestParse(t *testing.T) {
	p := New()

	tests := []struct {
		name          string
		input         string
		wantTitle     string
		wantDue       string // "" — даты нет
		wantRecurring string
		wantProject   string
	}{
		{
			name:          "recurrence phrase stripped from title",
			input:         "Submit report every week",
			wantTitle:     "Submit report",
			wantRecurring: model.RecurringWeekly,
		},
		{
			name:      "weekday resolves forward, not to the monday just passed",
			input:     "Doctor appointment monday at 1pm",
			wantTitle: "Doctor appointment",
			wantDue:   "2025-03-10 13:00",
		},
		{
			name:        "hashtag project plus relative date",
			input:       "Call mom tomorrow at 3pm #personal",
			wantTitle:   "Call mom",
			wantDue:     "2025-03-06 15:00",
			wantProject: "Personal",
		},
		{
			name:      "no date and no tags passes through",
			input:     "Buy groceries",
			wantTitle: "Buy groceries",
		},
		{
			name:          "every month",
			input:         "Pay rent every month",
			wantTitle:     "Pay rent",
			wantRecurring: model.RecurringMonthly,
		},
		{
			name:          "weekday-qualified recurrence keeps the weekday for the date",
			input:         "Team sync every monday",
			wantTitle:     "Team sync",
			wantDue:       "2025-03-10 09:00",
			wantRecurring: model.RecurringWeekly,
		},
		{
			name:      "same weekday with default time already past rolls a week forward",
			input:     "Gym wednesday",
			wantTitle: "Gym",
			wantDue:   "2025-03-12 09:00",
		},
		{
			name:      "same weekday with upcoming time stays today",
			input:     "Standup wednesday at 4pm",
			wantTitle: "Standup",
			wantDue:   "2025-03-05 16:00",
		},
		{
			name:      "explicit minutes preserved",
			input:     "Lunch friday at 12:30",
			wantTitle: "Lunch",
			wantDue:   "2025-03-07 12:30",
		},
		{
			name:      "relative hours keep the computed clock",
			input:     "Check oven in 2 hours",
			wantTitle: "Check oven",
			wantDue:   "2025-03-05 12:00",
		},
		{
			name:      "relative minutes keep the computed clock",
			input:     "Stretch in 30 minutes",
			wantTitle: "Stretch",
			wantDue:   "2025-03-05 10:30",
		},
		{
			name:        "prose project style",
			input:       "Prepare slides for work",
			wantTitle:   "Prepare slides",
			wantProject: "Work",
		},
		{
			name:      "whitespace-only input degrades to empty title",
			input:     "   ",
			wantTitle: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.input, wednesday)

			assert.Equal(t, tt.wantTitle, got.Title)
			assert.Equal(t, tt.wantRecurring, got.Recurring)
			assert.Equal(t, tt.wantProject, got.Project)

			if tt.wantDue == "" {
				assert.True(t, got.Due.IsZero(), "expected no due date, got %v", got.Due)
			} else {
				assert.Equal(t, tt.wantDue, due(t, got))
			}
		})
	}
}

func TestParse_Deterministic(t *testing.T) {
	p := New()

	first := p.Parse("Review PR friday at 2pm #work", wednesday)
	second := p.Parse("Review PR friday at 2pm #work", wednesday)

	assert.Equal(t, first, second)
}

func TestParse_WeekdayNeverInPast(t *testing.T) {
	p := New()

	days := []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
	for _, day := range days {
		t.Run(day, func(t *testing.T) {
			got := p.Parse("Errand "+day, wednesday)
			require.False(t, got.Due.IsZero())
			assert.False(t, got.Due.Before(wednesday), "resolved %s to the past: %v", day, got.Due)
		})
	}
}

func TestParse_LibraryClockNotClobbered(t *testing.T) {
	p := New()

	// Днем "tonight" без явного токена времени не должен
	// откатываться на 09:00 того же дня
	got := p.Parse("Take out trash tonight", wednesday)
	require.False(t, got.Due.IsZero())
	assert.Equal(t, wednesday.Day(), got.Due.Day())
	assert.True(t, got.Due.After(wednesday), "resolved to the past: %v", got.Due)
}

func TestParse_TitleNeverKeepsDateFragment(t *testing.T) {
	p := New()

	got := p.Parse("Dentist on thursday at 11am", wednesday)
	assert.Equal(t, "Dentist", got.Title)
	assert.Equal(t, "2025-03-06 11:00", due(t, got))
}

func TestNormalize_FirstMatchWins(t *testing.T) {
	residual, recurring, project := normalize("water plants every day for health")

	assert.Equal(t, "water plants", residual)
	assert.Equal(t, model.RecurringDaily, recurring)
	assert.Equal(t, "Health", project)
}

package model

import "time"

// Теги повторения задачи
const (
	RecurringDaily   = "daily"
	RecurringWeekly  = "weekly"
	RecurringMonthly = "monthly"
	RecurringYearly  = "yearly"
)

type Task struct {
	ID           string     `json:"id"`
	OwnerID      string     `json:"owner_id"`
	Title        string     `json:"title"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Priority     int        `json:"priority"`
	Project      string     `json:"project,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Recurring    string     `json:"recurring,omitempty"`
	ReminderSent bool       `json:"reminder_sent"`
	Version      int        `json:"version"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TaskFilter — сужение выборки на уровне репозитория.
// Нулевые значения означают "фильтр не применяется".
type TaskFilter struct {
	Completed *bool
	Project   *string
}

// Stats — счетчики задач одного владельца
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

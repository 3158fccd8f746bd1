package repo

import (
	"context"
	"time"

	"github.com/vinayaksoni1729/TaskX/internal/model"
)

// DueTask — задача вместе с email владельца для почтовых джобов.
// OwnerEmail пустой, если профиль владельца не найден.
type DueTask struct {
	model.Task
	OwnerEmail string
}

// TaskRepository определяет интерфейс для работы с задачами
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Get(ctx context.Context, ownerID, id string) (model.Task, error)
	List(ctx context.Context, ownerID string, filter model.TaskFilter) ([]model.Task, error)
	Update(ctx context.Context, t model.Task) (model.Task, error)
	Toggle(ctx context.Context, ownerID, id string, now time.Time) (model.Task, error)
	Delete(ctx context.Context, ownerID, id string) error
	Stats(ctx context.Context, ownerID string) (model.Stats, error)
	SaveIdempotencyKey(ctx context.Context, key string, resourceID string) error
	GetIdempotencyKey(ctx context.Context, key string) (string, error)
	DueForReminder(ctx context.Context, from, to time.Time) ([]DueTask, error)
	DueForReport(ctx context.Context, from, to time.Time) ([]DueTask, error)
	MarkReminderSent(ctx context.Context, id string) error
}

// UserRepository определяет интерфейс для работы с пользователями
type UserRepository interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
	UpsertProvider(ctx context.Context, u model.User) (model.User, error)
}

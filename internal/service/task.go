package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vinayaksoni1729/TaskX/internal/model"
	"github.com/vinayaksoni1729/TaskX/internal/parse"
	"github.com/vinayaksoni1729/TaskX/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
)

const defaultPriority = 4

type TaskService struct {
	repo   repo.TaskRepository
	parser *parse.Parser
}

func NewTaskService(repo repo.TaskRepository, parser *parse.Parser) *TaskService {
	return &TaskService{repo: repo, parser: parser}
}

func (s *TaskService) Create(ctx context.Context, ownerID string, t model.Task, idempKey string) (model.Task, error) {
	t.OwnerID = ownerID
	if t.Priority == 0 {
		t.Priority = defaultPriority
	}
	if err := s.validate(t); err != nil {
		return t, err
	}

	// Идемпотентность: повторная отправка с тем же ключом не плодит задачи
	if idempKey != "" {
		if existingID, err := s.repo.GetIdempotencyKey(ctx, idempKey); err == nil {
			return s.repo.Get(ctx, ownerID, existingID)
		}
	}

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return created, err
	}

	if idempKey != "" {
		s.repo.SaveIdempotencyKey(ctx, idempKey, created.ID)
	}

	return created, nil
}

// QuickAdd создает задачу из свободного текста через парсер.
// Пустой после обрезки ввод отклоняется до обращения к парсеру.
func (s *TaskService) QuickAdd(ctx context.Context, ownerID, rawText, idempKey string) (model.Task, error) {
	if strings.TrimSpace(rawText) == "" {
		return model.Task{}, ErrValidation
	}

	parsed := s.parser.Parse(rawText, time.Now())
	if parsed.Title == "" {
		return model.Task{}, ErrValidation
	}

	t := model.Task{
		Title:     parsed.Title,
		Recurring: parsed.Recurring,
		Project:   parsed.Project,
	}
	if !parsed.Due.IsZero() {
		due := parsed.Due
		t.Deadline = &due
	}

	return s.Create(ctx, ownerID, t, idempKey)
}

func (s *TaskService) Get(ctx context.Context, ownerID, id string) (model.Task, error) {
	return s.repo.Get(ctx, ownerID, id)
}

// List возвращает задачи владельца, отфильтрованные представлением.
// Представление — чистый предикат поверх коллекции (как в исходном UI).
func (s *TaskService) List(ctx context.Context, ownerID string, view model.View) ([]model.Task, error) {
	all, err := s.repo.List(ctx, ownerID, model.TaskFilter{})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tasks := make([]model.Task, 0, len(all))
	for _, t := range all {
		if view.Matches(t, now) {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (s *TaskService) Update(ctx context.Context, ownerID string, t model.Task) (model.Task, error) {
	t.OwnerID = ownerID
	if err := s.validate(t); err != nil {
		return t, err
	}
	return s.repo.Update(ctx, t)
}

func (s *TaskService) Toggle(ctx context.Context, ownerID, id string) (model.Task, error) {
	return s.repo.Toggle(ctx, ownerID, id, time.Now())
}

func (s *TaskService) Delete(ctx context.Context, ownerID, id string) error {
	return s.repo.Delete(ctx, ownerID, id)
}

func (s *TaskService) Stats(ctx context.Context, ownerID string) (model.Stats, error) {
	return s.repo.Stats(ctx, ownerID)
}

func (s *TaskService) validate(t model.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrValidation
	}
	if t.Priority < 1 || t.Priority > 4 {
		return ErrValidation
	}
	switch t.Recurring {
	case "", model.RecurringDaily, model.RecurringWeekly, model.RecurringMonthly, model.RecurringYearly:
	default:
		return ErrValidation
	}
	return nil
}

package jobs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vinayaksoni1729/TaskX/internal/repo"
	"github.com/vinayaksoni1729/TaskX/pkg/email"
)

// Summary — итог одного прогона джобы
type Summary struct {
	Matched int `json:"matched"`
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
}

// TaskSource — то, что джобам нужно от хранилища задач
type TaskSource interface {
	DueForReminder(ctx context.Context, from, to time.Time) ([]repo.DueTask, error)
	DueForReport(ctx context.Context, from, to time.Time) ([]repo.DueTask, error)
	MarkReminderSent(ctx context.Context, id string) error
}

// Reminder рассылает письма по задачам, дедлайн которых попадает
// в окно [now, now+lookahead]. Запускается внешним триггером,
// внутреннего расписания нет.
type Reminder struct {
	repo      TaskSource
	sender    email.Sender
	logger    *zap.Logger
	lookahead time.Duration
}

func NewReminder(taskRepo TaskSource, sender email.Sender, logger *zap.Logger, lookahead time.Duration) *Reminder {
	return &Reminder{
		repo:      taskRepo,
		sender:    sender,
		logger:    logger,
		lookahead: lookahead,
	}
}

func (j *Reminder) Run(ctx context.Context, now time.Time) (Summary, error) {
	tasks, err := j.repo.DueForReminder(ctx, now, now.Add(j.lookahead))
	if err != nil {
		return Summary{}, fmt.Errorf("query due tasks: %w", err)
	}

	summary := Summary{Matched: len(tasks)}

	for _, t := range tasks {
		// Профиль владельца не найден - пропускаем и идем дальше
		if t.OwnerEmail == "" {
			j.logger.Warn("no email for task owner, skipping",
				zap.String("task_id", t.ID),
				zap.String("owner_id", t.OwnerID),
			)
			summary.Skipped++
			continue
		}

		msg := email.Message{
			To:      t.OwnerEmail,
			Subject: fmt.Sprintf("Reminder: %s", t.Title),
			Text: fmt.Sprintf(
				"Hey! Just a reminder that your task %q is due at %s.\n\nDon't forget to complete it!",
				t.Title, t.Deadline.Local().Format("Jan 2, 2006 15:04"),
			),
		}

		// Сбой одного письма не прерывает весь прогон
		if err := j.sender.Send(ctx, msg); err != nil {
			j.logger.Error("reminder email failed",
				zap.String("task_id", t.ID),
				zap.String("to", t.OwnerEmail),
				zap.Error(err),
			)
			summary.Skipped++
			continue
		}

		// Отметка только после успешной отправки
		if err := j.repo.MarkReminderSent(ctx, t.ID); err != nil {
			j.logger.Error("failed to mark reminder sent", zap.String("task_id", t.ID), zap.Error(err))
		}

		summary.Sent++
	}

	return summary, nil
}

package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinayaksoni1729/TaskX/internal/model"
	"github.com/vinayaksoni1729/TaskX/internal/repo"
	"github.com/vinayaksoni1729/TaskX/tests"
)

func TestTaskRepo(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	pool, cleanup := tests.SetupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	taskRepo := repo.NewTaskRepo(pool)

	owner := tests.SeedUser(t, pool, "owner@example.com")
	stranger := tests.SeedUser(t, pool, "stranger@example.com")

	t.Run("create assigns id and defaults", func(t *testing.T) {
		created, err := taskRepo.Create(ctx, model.Task{
			OwnerID:  owner,
			Title:    "Buy groceries",
			Priority: 4,
		})
		require.NoError(t, err)

		assert.NotEmpty(t, created.ID)
		assert.Equal(t, owner, created.OwnerID)
		assert.False(t, created.Completed)
		assert.False(t, created.ReminderSent)
		assert.Equal(t, 1, created.Version)
		assert.NotZero(t, created.CreatedAt)
	})

	t.Run("tasks are never visible across owners", func(t *testing.T) {
		created, err := taskRepo.Create(ctx, model.Task{OwnerID: owner, Title: "Private", Priority: 4})
		require.NoError(t, err)

		_, err = taskRepo.Get(ctx, stranger, created.ID)
		assert.ErrorIs(t, err, repo.ErrorNotFound)

		err = taskRepo.Delete(ctx, stranger, created.ID)
		assert.ErrorIs(t, err, repo.ErrorNotFound)
	})

	t.Run("toggle sets and clears completed_at", func(t *testing.T) {
		created, err := taskRepo.Create(ctx, model.Task{OwnerID: owner, Title: "Toggle me", Priority: 4})
		require.NoError(t, err)

		now := time.Now().UTC()
		done, err := taskRepo.Toggle(ctx, owner, created.ID, now)
		require.NoError(t, err)
		assert.True(t, done.Completed)
		require.NotNil(t, done.CompletedAt)

		undone, err := taskRepo.Toggle(ctx, owner, created.ID, now)
		require.NoError(t, err)
		assert.False(t, undone.Completed)
		assert.Nil(t, undone.CompletedAt)
	})

	t.Run("optimistic update conflicts on stale version", func(t *testing.T) {
		created, err := taskRepo.Create(ctx, model.Task{OwnerID: owner, Title: "Versioned", Priority: 4})
		require.NoError(t, err)

		created.Title = "Edited once"
		updated, err := taskRepo.Update(ctx, created)
		require.NoError(t, err)
		assert.Equal(t, 2, updated.Version)

		created.Title = "Stale edit"
		_, err = taskRepo.Update(ctx, created) // старая версия
		assert.ErrorIs(t, err, repo.ErrorConflict)
	})

	t.Run("rescheduling clears the reminder flag", func(t *testing.T) {
		deadline := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
		created, err := taskRepo.Create(ctx, model.Task{OwnerID: owner, Title: "Reschedule me", Priority: 4, Deadline: &deadline})
		require.NoError(t, err)

		require.NoError(t, taskRepo.MarkReminderSent(ctx, created.ID))

		// Правка без переноса срока отметку не трогает
		created.Title = "Still due"
		same, err := taskRepo.Update(ctx, created)
		require.NoError(t, err)
		assert.True(t, same.ReminderSent)

		moved := deadline.Add(24 * time.Hour)
		same.Deadline = &moved
		rescheduled, err := taskRepo.Update(ctx, same)
		require.NoError(t, err)
		assert.False(t, rescheduled.ReminderSent)
	})

	t.Run("list filters by project", func(t *testing.T) {
		tests.TruncateTables(t, pool)
		owner = tests.SeedUser(t, pool, "owner@example.com")

		_, err := taskRepo.Create(ctx, model.Task{OwnerID: owner, Title: "Work thing", Priority: 4, Project: "Work"})
		require.NoError(t, err)
		_, err = taskRepo.Create(ctx, model.Task{OwnerID: owner, Title: "Home thing", Priority: 4, Project: "Personal"})
		require.NoError(t, err)

		project := "Work"
		got, err := taskRepo.List(ctx, owner, model.TaskFilter{Project: &project})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Work thing", got[0].Title)
	})

	t.Run("stats", func(t *testing.T) {
		tests.TruncateTables(t, pool)
		owner = tests.SeedUser(t, pool, "owner@example.com")

		created, err := taskRepo.Create(ctx, model.Task{OwnerID: owner, Title: "One", Priority: 4})
		require.NoError(t, err)
		_, err = taskRepo.Create(ctx, model.Task{OwnerID: owner, Title: "Two", Priority: 4})
		require.NoError(t, err)

		_, err = taskRepo.Toggle(ctx, owner, created.ID, time.Now())
		require.NoError(t, err)

		stats, err := taskRepo.Stats(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, model.Stats{Total: 2, Completed: 1}, stats)
	})
}

func TestTaskRepo_DueQueries(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	pool, cleanup := tests.SetupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	taskRepo := repo.NewTaskRepo(pool)

	now := time.Now().UTC().Truncate(time.Second)
	owner := tests.SeedUser(t, pool, "owner@example.com")

	soon := tests.SeedDueTask(t, pool, owner, "Due soon", now.Add(5*time.Minute), false)
	tests.SeedDueTask(t, pool, owner, "Due later", now.Add(2*time.Hour), false)
	tests.SeedDueTask(t, pool, owner, "Already done", now.Add(5*time.Minute), true)
	orphanOwner := "no-such-user"
	tests.SeedDueTask(t, pool, orphanOwner, "Orphan", now.Add(5*time.Minute), false)

	t.Run("reminder window excludes completed and already reminded", func(t *testing.T) {
		due, err := taskRepo.DueForReminder(ctx, now, now.Add(10*time.Minute))
		require.NoError(t, err)
		require.Len(t, due, 2)

		byTitle := map[string]repo.DueTask{}
		for _, d := range due {
			byTitle[d.Title] = d
		}
		assert.Equal(t, "owner@example.com", byTitle["Due soon"].OwnerEmail)
		// Профиль владельца отсутствует - email пустой, задача все равно в выборке
		assert.Equal(t, "", byTitle["Orphan"].OwnerEmail)

		require.NoError(t, taskRepo.MarkReminderSent(ctx, soon))

		again, err := taskRepo.DueForReminder(ctx, now, now.Add(10*time.Minute))
		require.NoError(t, err)
		require.Len(t, again, 1)
		assert.Equal(t, "Orphan", again[0].Title)
	})

	t.Run("report window includes completed tasks", func(t *testing.T) {
		due, err := taskRepo.DueForReport(ctx, now, now.Add(10*time.Minute))
		require.NoError(t, err)
		assert.Len(t, due, 3)
	})
}

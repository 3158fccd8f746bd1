package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vinayaksoni1729/TaskX/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

const taskColumns = `id, owner_id, title, completed, completed_at, priority, project,
	deadline, recurring, reminder_sent, version, created_at, updated_at`

type TaskRepo struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

func scanTask(row pgx.Row) (model.Task, error) {
	var t model.Task
	err := row.Scan(
		&t.ID, &t.OwnerID, &t.Title, &t.Completed, &t.CompletedAt, &t.Priority,
		&t.Project, &t.Deadline, &t.Recurring, &t.ReminderSent, &t.Version,
		&t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	// id выдается хранилищем при создании, дальше неизменяем
	t.ID = uuid.NewString()

	created, err := scanTask(r.pool.QueryRow(ctx, `
		INSERT INTO tasks (id, owner_id, title, priority, project, deadline, recurring)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+taskColumns,
		t.ID, t.OwnerID, t.Title, t.Priority, t.Project, t.Deadline, t.Recurring,
	))
	return created, mapError(err)
}

func (r *TaskRepo) Get(ctx context.Context, ownerID, id string) (model.Task, error) {
	t, err := scanTask(r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID))

	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, err
}

func (r *TaskRepo) List(ctx context.Context, ownerID string, filter model.TaskFilter) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE owner_id = $1
		  AND ($2::boolean IS NULL OR completed = $2)
		  AND ($3::text IS NULL OR project = $3)
		ORDER BY created_at DESC, id DESC
	`, ownerID, filter.Completed, filter.Project)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Update: перенос дедлайна снимает отметку напоминания,
// по новому сроку письмо должно уйти заново
func (r *TaskRepo) Update(ctx context.Context, t model.Task) (model.Task, error) {
	updated, err := scanTask(r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET title = $3, priority = $4, project = $5, deadline = $6, recurring = $7,
		    reminder_sent = reminder_sent AND deadline IS NOT DISTINCT FROM $6,
		    version = version + 1, updated_at = now()
		WHERE id = $1 AND owner_id = $2 AND version = $8
		RETURNING `+taskColumns,
		t.ID, t.OwnerID, t.Title, t.Priority, t.Project, t.Deadline, t.Recurring, t.Version,
	))

	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrorConflict
	}
	return updated, err
}

// Toggle переключает completed и ведет completed_at:
// ставит отметку при завершении, сбрасывает при возврате в работу
func (r *TaskRepo) Toggle(ctx context.Context, ownerID, id string, now time.Time) (model.Task, error) {
	t, err := scanTask(r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET completed = NOT completed,
		    completed_at = CASE WHEN NOT completed THEN $3 ELSE NULL END,
		    version = version + 1, updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING `+taskColumns,
		id, ownerID, now,
	))

	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, err
}

func (r *TaskRepo) Delete(ctx context.Context, ownerID, id string) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1 AND owner_id = $2", id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *TaskRepo) Stats(ctx context.Context, ownerID string) (model.Stats, error) {
	var s model.Stats
	err := r.pool.QueryRow(ctx, `
		SELECT count(*), count(*) FILTER (WHERE completed)
		FROM tasks
		WHERE owner_id = $1
	`, ownerID).Scan(&s.Total, &s.Completed)
	return s, err
}

func (r *TaskRepo) SaveIdempotencyKey(ctx context.Context, key string, resourceID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO idempotency_keys (key, resource_id) VALUES ($1, $2)
		ON CONFLICT (key) DO NOTHING
	`, key, resourceID)
	return err
}

func (r *TaskRepo) GetIdempotencyKey(ctx context.Context, key string) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		SELECT resource_id FROM idempotency_keys WHERE key = $1
	`, key).Scan(&id)

	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrorNotFound
	}
	return id, err
}

// DueForReminder — незавершенные задачи с дедлайном в окне упреждения,
// по которым напоминание еще не уходило
func (r *TaskRepo) DueForReminder(ctx context.Context, from, to time.Time) ([]DueTask, error) {
	return r.dueTasks(ctx, `
		SELECT `+prefixed("t", taskColumns)+`, coalesce(u.email, '')
		FROM tasks t
		LEFT JOIN users u ON u.id = t.owner_id
		WHERE t.deadline >= $1 AND t.deadline <= $2
		  AND NOT t.completed AND NOT t.reminder_sent
		ORDER BY t.deadline
	`, from, to)
}

// DueForReport — все задачи с дедлайном в отчетном периоде
func (r *TaskRepo) DueForReport(ctx context.Context, from, to time.Time) ([]DueTask, error) {
	return r.dueTasks(ctx, `
		SELECT `+prefixed("t", taskColumns)+`, coalesce(u.email, '')
		FROM tasks t
		LEFT JOIN users u ON u.id = t.owner_id
		WHERE t.deadline >= $1 AND t.deadline <= $2
		ORDER BY t.owner_id, t.deadline
	`, from, to)
}

func (r *TaskRepo) dueTasks(ctx context.Context, query string, from, to time.Time) ([]DueTask, error) {
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]DueTask, 0)
	for rows.Next() {
		var d DueTask
		if err := rows.Scan(
			&d.ID, &d.OwnerID, &d.Title, &d.Completed, &d.CompletedAt, &d.Priority,
			&d.Project, &d.Deadline, &d.Recurring, &d.ReminderSent, &d.Version,
			&d.CreatedAt, &d.UpdatedAt, &d.OwnerEmail,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, d)
	}
	return tasks, rows.Err()
}

// MarkReminderSent ставится только после успешной отправки письма
func (r *TaskRepo) MarkReminderSent(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, "UPDATE tasks SET reminder_sent = true WHERE id = $1", id)
	return err
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return ErrorConflict
		}
	}
	return err
}

// prefixed добавляет алиас таблицы к списку колонок
func prefixed(alias, columns string) string {
	out := ""
	for i, c := range splitColumns(columns) {
		if i > 0 {
			out += ", "
		}
		out += alias + "." + c
	}
	return out
}

func splitColumns(columns string) []string {
	fields := []string{}
	for _, f := range strings.Split(columns, ",") {
		fields = append(fields, strings.TrimSpace(f))
	}
	return fields
}

package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vinayaksoni1729/TaskX/internal/model"
)

const userColumns = `id, email, display_name, password_hash, auth_provider, created_at`

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.PasswordHash, &u.AuthProvider, &u.CreatedAt)
	return u, err
}

func (r *UserRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	u.ID = uuid.NewString()

	created, err := scanUser(r.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, display_name, password_hash, auth_provider)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		u.ID, u.Email, u.DisplayName, u.PasswordHash, u.AuthProvider,
	))
	return created, mapError(err) // duplicate email -> ErrorConflict
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, email))

	if errors.Is(err, pgx.ErrNoRows) {
		return u, ErrorNotFound
	}
	return u, err
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return u, ErrorNotFound
	}
	return u, err
}

// UpsertProvider создает или обновляет пользователя после входа
// через внешнего провайдера (merge по email, как в исходном хранилище)
func (r *UserRepo) UpsertProvider(ctx context.Context, u model.User) (model.User, error) {
	upserted, err := scanUser(r.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, display_name, password_hash, auth_provider)
		VALUES ($1, $2, $3, '', $4)
		ON CONFLICT (email) DO UPDATE
		SET display_name = excluded.display_name, auth_provider = excluded.auth_provider
		RETURNING `+userColumns,
		uuid.NewString(), u.Email, u.DisplayName, u.AuthProvider,
	))
	return upserted, err
}

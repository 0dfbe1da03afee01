package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventku/auth-api/internal/domain/entity"
	"github.com/eventku/auth-api/internal/domain/repository"
)

const userColumns = `id, fullname, username, email, password_hash, role, activation_code, is_active, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Fullname, &u.Username, &u.Email, &u.Password, &u.Role,
		&u.ActivationCode, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (fullname, username, email, password_hash, role, activation_code, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, u.Fullname, u.Username, u.Email, u.Password, u.Role, u.ActivationCode, u.IsActive)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

// FindActiveByIdentifier matches the identifier against username or email.
// The is_active filter lives in the query so inactive accounts resolve the
// same way as missing ones.
func (r *UserRepository) FindActiveByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE (username = $1 OR email = $1) AND is_active = TRUE
	`, identifier)
	return scanUser(row)
}

// Activate is a single atomic find-and-update on the activation code.
func (r *UserRepository) Activate(ctx context.Context, code string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET is_active = TRUE, updated_at = NOW()
		WHERE activation_code = $1
		RETURNING `+userColumns+`
	`, code)
	return scanUser(row)
}

var _ repository.UserRepository = (*UserRepository)(nil)

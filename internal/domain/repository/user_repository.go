package repository

import (
	"context"
	"errors"

	"github.com/eventku/auth-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no record matches the given criteria.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint on username or
	// email rejects a write. Uniqueness is enforced by the store, never by
	// a read-then-write check in the application.
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository defines the persistence port for user records.
type UserRepository interface {
	// Create persists a new user and fills in ID and timestamps.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// FindActiveByIdentifier resolves a username or email to an active
	// user. Inactive records are unresolvable through this method.
	FindActiveByIdentifier(ctx context.Context, identifier string) (*entity.User, error)
	// Activate flips is_active on the record holding the given activation
	// code and returns it. ErrNotFound when no record matches.
	Activate(ctx context.Context, code string) (*entity.User, error)
}

package store

import (
	"context"
	"errors"

	"github.com/parkmoor/clubhouse/internal/portal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep
// concerns tidy and testable.
type Store interface {
	Users() Users
	LoginEvents() LoginEvents

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back when fn
	// returns an error and committing otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetByID returns a user by id.
	GetByID(ctx context.Context, id string) (domain.User, error)

	// GetByUsername is an exact-match lookup used during login. No
	// case folding.
	GetByUsername(ctx context.Context, username string) (domain.User, error)

	// Create inserts a new user (id is provided by the app via ULID).
	// Username uniqueness is enforced by the backend constraint, never
	// by a pre-check; a violation returns ErrAlreadyExists.
	Create(ctx context.Context, u domain.User) error

	// Count returns the total number of users.
	Count(ctx context.Context) (int64, error)
}

type LoginEvents interface {
	// Create appends one login event. Events are never updated or
	// deleted by this system.
	Create(ctx context.Context, ev domain.LoginEvent) error

	// ListRecentByUser returns the newest events for a user, newest
	// first, capped at limit.
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]domain.LoginEvent, error)

	// CountByStatus returns the number of recorded events with the
	// given status.
	CountByStatus(ctx context.Context, status string) (int64, error)
}

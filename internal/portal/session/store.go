// Package session tracks server-side login sessions. The client holds
// only a signed cookie token referencing a session id; every request is
// validated against the store, so revocation (logout) is immediate.
package session

import (
	"context"
	"errors"

	"github.com/parkmoor/clubhouse/internal/portal/domain"
)

// ErrNotFound reports that a session does not exist or has expired.
var ErrNotFound = errors.New("session: not found")

// Store defines how sessions are stored and retrieved. Implementations
// must be safe for concurrent use and enforce expiry themselves.
type Store interface {
	Create(ctx context.Context, s domain.Session) error
	Get(ctx context.Context, sessionID string) (domain.Session, error)

	// Delete removes a session. Deleting an absent session is not an
	// error; logout has to be idempotent.
	Delete(ctx context.Context, sessionID string) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}

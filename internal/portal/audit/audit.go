// Package audit records login attempts. Sinks are best-effort by
// contract: the login flow logs a failed write and answers the client
// as if nothing happened.
package audit

import (
	"context"

	"github.com/parkmoor/clubhouse/internal/portal/domain"
)

// Sink persists one login event per authentication attempt. The two
// production implementations write to the relational login_events table
// and to the object storage bucket; both carry identical payloads so
// the medium stays an interchangeable deployment choice.
type Sink interface {
	Record(ctx context.Context, ev domain.LoginEvent) error
}

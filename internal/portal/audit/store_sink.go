package audit

import (
	"context"

	"github.com/parkmoor/clubhouse/internal/portal/domain"
	"github.com/parkmoor/clubhouse/internal/portal/store"
)

// StoreSink appends login events to the relational login_events table.
type StoreSink struct {
	Store store.Store
}

func (s *StoreSink) Record(ctx context.Context, ev domain.LoginEvent) error {
	return s.Store.LoginEvents().Create(ctx, ev)
}

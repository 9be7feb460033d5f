package service

import (
	"context"

	"github.com/parkmoor/clubhouse/internal/portal/domain"
	"github.com/parkmoor/clubhouse/internal/portal/store"
)

// ActivityService reads recorded login events back for display.
type ActivityService struct {
	Store store.Store
}

// Recent returns the user's newest login events, newest first.
func (s *ActivityService) Recent(ctx context.Context, userID string, limit int) ([]domain.LoginEvent, error) {
	if limit <= 0 {
		limit = 10
	}

	ctx, cancel := boundCtx(ctx)
	defer cancel()

	events, err := s.Store.LoginEvents().ListRecentByUser(ctx, userID, limit)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return events, nil
}

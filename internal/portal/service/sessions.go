package service

import (
	"context"
	"errors"

	"github.com/parkmoor/clubhouse/internal/portal/domain"
	"github.com/parkmoor/clubhouse/internal/portal/session"
)

// SessionService validates and destroys sessions.
type SessionService struct {
	Sessions session.Store
}

// Get returns the live session for id, or session.ErrNotFound.
func (s *SessionService) Get(ctx context.Context, sessionID string) (domain.Session, error) {
	ctx, cancel := boundCtx(ctx)
	defer cancel()

	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return domain.Session{}, err
		}
		return domain.Session{}, mapStoreErr(err)
	}
	return sess, nil
}

// Logout destroys the session unconditionally. Logging out an already
// dead session is not an error.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	ctx, cancel := boundCtx(ctx)
	defer cancel()

	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

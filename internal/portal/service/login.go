package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/parkmoor/clubhouse/internal/portal/audit"
	"github.com/parkmoor/clubhouse/internal/portal/domain"
	"github.com/parkmoor/clubhouse/internal/portal/session"
	"github.com/parkmoor/clubhouse/internal/portal/store"
	"github.com/parkmoor/clubhouse/pkg/cryptox"
	"github.com/parkmoor/clubhouse/pkg/idx"
	"github.com/parkmoor/clubhouse/pkg/slogx"
)

// LoginService authenticates users and establishes sessions. Every
// attempt that reaches an authentication decision emits exactly one
// LoginEvent through the audit sink, after the decision, regardless of
// outcome. Audit is best-effort: a sink failure is logged and the
// client response is unchanged.
type LoginService struct {
	Store      store.Store
	Sessions   session.Store
	Audit      audit.Sink
	SessionTTL time.Duration
}

// Login verifies credentials for username and, on success, creates a
// server-side session. ip is recorded with the audit event.
//
// An unknown username still pays for a hash verification against a
// fixed dummy hash so lookup misses are not distinguishable by timing.
func (s *LoginService) Login(ctx context.Context, username, password, ip string) (domain.Session, error) {
	start := time.Now()
	username = strings.TrimSpace(username)

	if username == "" || password == "" {
		return domain.Session{}, ErrValidation
	}

	ctx, cancel := boundCtx(ctx)
	defer cancel()

	var userID *string
	status := domain.LoginFailed

	user, err := s.Store.Users().GetByUsername(ctx, username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		_ = cryptox.VerifyPassword(password, cryptox.DummyHash)
	case err != nil:
		// No authentication decision was reached; nothing to audit.
		return domain.Session{}, mapStoreErr(err)
	default:
		userID = &user.ID
		if cryptox.VerifyPassword(password, user.PasswordHash) == nil {
			status = domain.LoginSuccess
		}
	}

	record := func() {
		ev := domain.LoginEvent{
			ID:        idx.New().String(),
			UserID:    userID,
			Username:  username,
			IP:        ip,
			Status:    status,
			LatencyMS: time.Since(start).Milliseconds(),
			CreatedAt: time.Now().UTC(),
		}
		if err := s.Audit.Record(ctx, ev); err != nil {
			slogx.FromContext(ctx).Error("audit write failed",
				"username", username, "status", status, "err", err)
		}
	}

	if status != domain.LoginSuccess {
		record()
		return domain.Session{}, ErrBadCredentials
	}

	now := time.Now().UTC()
	sess := domain.Session{
		ID:        idx.New().String(),
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.SessionTTL),
	}
	if err := s.Sessions.Create(ctx, sess); err != nil {
		record()
		return domain.Session{}, mapStoreErr(err)
	}

	record()
	return sess, nil
}

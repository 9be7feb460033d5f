package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/parkmoor/clubhouse/internal/portal/domain"
	"github.com/parkmoor/clubhouse/internal/portal/session"
	"github.com/parkmoor/clubhouse/pkg/idx"
)

func TestSessionService(t *testing.T) {
	ctx := context.Background()

	newSession := func(t *testing.T, store session.Store) domain.Session {
		t.Helper()
		now := time.Now().UTC()
		sess := domain.Session{
			ID:        idx.New().String(),
			UserID:    idx.New().String(),
			Username:  "alice",
			CreatedAt: now,
			ExpiresAt: now.Add(time.Hour),
		}
		require.NoError(t, store.Create(ctx, sess))
		return sess
	}

	t.Run("get returns the live session", func(t *testing.T) {
		store := session.NewMemoryStore()
		svc := &SessionService{Sessions: store}
		sess := newSession(t, store)

		got, err := svc.Get(ctx, sess.ID)
		require.NoError(t, err)
		require.Equal(t, sess.UserID, got.UserID)
	})

	t.Run("get reports unknown sessions", func(t *testing.T) {
		svc := &SessionService{Sessions: session.NewMemoryStore()}

		_, err := svc.Get(ctx, idx.New().String())
		require.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("logout destroys the session", func(t *testing.T) {
		store := session.NewMemoryStore()
		svc := &SessionService{Sessions: store}
		sess := newSession(t, store)

		require.NoError(t, svc.Logout(ctx, sess.ID))

		_, err := svc.Get(ctx, sess.ID)
		require.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("logout is idempotent", func(t *testing.T) {
		store := session.NewMemoryStore()
		svc := &SessionService{Sessions: store}
		sess := newSession(t, store)

		require.NoError(t, svc.Logout(ctx, sess.ID))
		require.NoError(t, svc.Logout(ctx, sess.ID))
		require.NoError(t, svc.Logout(ctx, ""))
	})

	t.Run("unreachable backend maps to ErrStoreUnavailable", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)

		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		svc := &SessionService{Sessions: session.NewRedisStore(client)}

		mr.Close()

		_, err = svc.Get(ctx, idx.New().String())
		require.ErrorIs(t, err, ErrStoreUnavailable)
		require.NotErrorIs(t, err, session.ErrNotFound)

		require.ErrorIs(t, svc.Logout(ctx, idx.New().String()), ErrStoreUnavailable)
	})
}

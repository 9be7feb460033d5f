package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/parkmoor/clubhouse/internal/portal/domain"
	"github.com/parkmoor/clubhouse/internal/portal/store"
	"github.com/parkmoor/clubhouse/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "portal.db") + "?_pragma=busy_timeout(10000)"
	st, err := NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newUser(username string) domain.User {
	return domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$argon2id$not-a-real-hash",
	}
}

func TestUsersRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	t.Run("create and fetch", func(t *testing.T) {
		u := newUser("alice")
		require.NoError(t, st.Users().Create(ctx, u))

		byName, err := st.Users().GetByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, u.ID, byName.ID)
		require.Equal(t, u.Email, byName.Email)
		require.Equal(t, u.PasswordHash, byName.PasswordHash)
		require.False(t, byName.CreatedAt.IsZero())

		byID, err := st.Users().GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, u.Username, byID.Username)
	})

	t.Run("missing user maps to ErrNotFound", func(t *testing.T) {
		_, err := st.Users().GetByUsername(ctx, "nobody")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = st.Users().GetByID(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate username maps to ErrAlreadyExists", func(t *testing.T) {
		err := st.Users().Create(ctx, newUser("alice"))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("count reflects inserts", func(t *testing.T) {
		n, err := st.Users().Count(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
	})
}

func TestConcurrentCreateSameUsername(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	const workers = 8

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = st.Users().Create(ctx, newUser("contested"))
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, store.ErrAlreadyExists):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, won)
	require.Equal(t, workers-1, lost)
}

func TestLoginEventsRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	alice := newUser("alice")
	require.NoError(t, st.Users().Create(ctx, alice))

	newEvent := func(userID *string, status string, at time.Time) domain.LoginEvent {
		return domain.LoginEvent{
			ID:        idx.New().String(),
			UserID:    userID,
			Username:  "alice",
			IP:        "203.0.113.7",
			Status:    status,
			LatencyMS: 12,
			CreatedAt: at,
		}
	}

	base := time.Now().UTC().Truncate(time.Second)

	t.Run("create with and without user id", func(t *testing.T) {
		require.NoError(t, st.LoginEvents().Create(ctx, newEvent(&alice.ID, domain.LoginSuccess, base)))
		require.NoError(t, st.LoginEvents().Create(ctx, newEvent(&alice.ID, domain.LoginFailed, base.Add(time.Second))))
		require.NoError(t, st.LoginEvents().Create(ctx, newEvent(nil, domain.LoginFailed, base.Add(2*time.Second))))
	})

	t.Run("list returns the user's events newest first", func(t *testing.T) {
		events, err := st.LoginEvents().ListRecentByUser(ctx, alice.ID, 10)
		require.NoError(t, err)
		require.Len(t, events, 2)
		require.Equal(t, domain.LoginFailed, events[0].Status)
		require.Equal(t, domain.LoginSuccess, events[1].Status)
		require.NotNil(t, events[0].UserID)
		require.Equal(t, alice.ID, *events[0].UserID)
	})

	t.Run("list honours the limit", func(t *testing.T) {
		events, err := st.LoginEvents().ListRecentByUser(ctx, alice.ID, 1)
		require.NoError(t, err)
		require.Len(t, events, 1)
		require.Equal(t, domain.LoginFailed, events[0].Status)
	})

	t.Run("count by status spans all users", func(t *testing.T) {
		failed, err := st.LoginEvents().CountByStatus(ctx, domain.LoginFailed)
		require.NoError(t, err)
		require.EqualValues(t, 2, failed)

		succeeded, err := st.LoginEvents().CountByStatus(ctx, domain.LoginSuccess)
		require.NoError(t, err)
		require.EqualValues(t, 1, succeeded)
	})
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	t.Run("commit persists", func(t *testing.T) {
		err := st.WithTx(ctx, func(tx store.Tx) error {
			return tx.Users().Create(ctx, newUser("alice"))
		})
		require.NoError(t, err)

		_, err = st.Users().GetByUsername(ctx, "alice")
		require.NoError(t, err)
	})

	t.Run("error rolls back", func(t *testing.T) {
		sentinel := errors.New("boom")
		err := st.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Users().Create(ctx, newUser("bob")); err != nil {
				return err
			}
			return sentinel
		})
		require.ErrorIs(t, err, sentinel)

		_, err = st.Users().GetByUsername(ctx, "bob")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

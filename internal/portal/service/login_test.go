package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/parkmoor/clubhouse/internal/portal/audit"
	"github.com/parkmoor/clubhouse/internal/portal/domain"
	"github.com/parkmoor/clubhouse/internal/portal/session"
)

func newLoginFixture(t *testing.T) (*LoginService, *session.MemoryStore, *audit.CaptureSink) {
	t.Helper()

	st := newTestStore(t)
	sessions := session.NewMemoryStore()
	sink := &audit.CaptureSink{}

	signup := &SignupService{Store: st}
	_, err := signup.Signup(context.Background(), "alice", "alice@example.com", "correct horse battery")
	require.NoError(t, err)

	svc := &LoginService{
		Store:      st,
		Sessions:   sessions,
		Audit:      sink,
		SessionTTL: time.Hour,
	}
	return svc, sessions, sink
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success creates a session and records it", func(t *testing.T) {
		svc, sessions, sink := newLoginFixture(t)

		sess, err := svc.Login(ctx, "alice", "correct horse battery", "203.0.113.7")
		require.NoError(t, err)
		require.NotEmpty(t, sess.ID)
		require.Equal(t, "alice", sess.Username)
		require.True(t, sess.ExpiresAt.After(sess.CreatedAt))

		stored, err := sessions.Get(ctx, sess.ID)
		require.NoError(t, err)
		require.Equal(t, sess.UserID, stored.UserID)

		events := sink.Events()
		require.Len(t, events, 1)
		require.Equal(t, domain.LoginSuccess, events[0].Status)
		require.Equal(t, "alice", events[0].Username)
		require.Equal(t, "203.0.113.7", events[0].IP)
		require.NotNil(t, events[0].UserID)
		require.Equal(t, sess.UserID, *events[0].UserID)
		require.GreaterOrEqual(t, events[0].LatencyMS, int64(0))
	})

	t.Run("wrong password records the found user id", func(t *testing.T) {
		svc, sessions, sink := newLoginFixture(t)

		_, err := svc.Login(ctx, "alice", "not her password", "203.0.113.7")
		require.ErrorIs(t, err, ErrBadCredentials)

		events := sink.Events()
		require.Len(t, events, 1)
		require.Equal(t, domain.LoginFailed, events[0].Status)
		require.NotNil(t, events[0].UserID)

		_, err = sessions.Get(ctx, events[0].ID)
		require.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("unknown username records no user id", func(t *testing.T) {
		svc, _, sink := newLoginFixture(t)

		_, err := svc.Login(ctx, "mallory", "anything at all", "203.0.113.7")
		require.ErrorIs(t, err, ErrBadCredentials)

		events := sink.Events()
		require.Len(t, events, 1)
		require.Equal(t, domain.LoginFailed, events[0].Status)
		require.Nil(t, events[0].UserID)
		require.Equal(t, "mallory", events[0].Username)
	})

	t.Run("failure message never reveals which field was wrong", func(t *testing.T) {
		svc, _, _ := newLoginFixture(t)

		_, errUnknown := svc.Login(ctx, "mallory", "anything at all", "")
		_, errWrong := svc.Login(ctx, "alice", "not her password", "")
		require.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("empty input is rejected before any audit", func(t *testing.T) {
		svc, _, sink := newLoginFixture(t)

		_, err := svc.Login(ctx, "", "", "203.0.113.7")
		require.ErrorIs(t, err, ErrValidation)
		require.Empty(t, sink.Events())
	})

	t.Run("audit failure does not block the login", func(t *testing.T) {
		svc, sessions, sink := newLoginFixture(t)
		sink.Err = errors.New("sink down")

		sess, err := svc.Login(ctx, "alice", "correct horse battery", "203.0.113.7")
		require.NoError(t, err)

		_, err = sessions.Get(ctx, sess.ID)
		require.NoError(t, err)
	})

	t.Run("events accumulate one per attempt", func(t *testing.T) {
		svc, _, sink := newLoginFixture(t)

		_, _ = svc.Login(ctx, "alice", "correct horse battery", "")
		_, _ = svc.Login(ctx, "alice", "wrong", "")
		_, _ = svc.Login(ctx, "nobody", "wrong", "")

		events := sink.Events()
		require.Len(t, events, 3)
		require.Equal(t, domain.LoginSuccess, events[0].Status)
		require.Equal(t, domain.LoginFailed, events[1].Status)
		require.Equal(t, domain.LoginFailed, events[2].Status)
	})
}

func TestLoginStoreUnavailable(t *testing.T) {
	ctx := context.Background()

	t.Run("exhausted pool fails within the bounded wait", func(t *testing.T) {
		svc, _, sink := newLoginFixture(t)

		old := storeTimeout
		storeTimeout = 250 * time.Millisecond
		t.Cleanup(func() { storeTimeout = old })

		// The in-memory store runs on a single pooled connection; an
		// open transaction holds it so the lookup has to wait.
		tx, err := svc.Store.Tx(ctx)
		require.NoError(t, err)
		t.Cleanup(func() { _ = tx.Rollback() })

		start := time.Now()
		_, err = svc.Login(ctx, "alice", "correct horse battery", "203.0.113.7")
		require.ErrorIs(t, err, ErrStoreUnavailable)
		require.NotErrorIs(t, err, ErrBadCredentials)
		require.Less(t, time.Since(start), 3*time.Second)

		// No authentication decision was reached, so nothing was audited.
		require.Empty(t, sink.Events())
	})

	t.Run("closed store maps to ErrStoreUnavailable", func(t *testing.T) {
		st := newTestStore(t)
		signup := &SignupService{Store: st}
		_, err := signup.Signup(ctx, "alice", "", "correct horse battery")
		require.NoError(t, err)
		require.NoError(t, st.Close())

		sink := &audit.CaptureSink{}
		svc := &LoginService{
			Store:      st,
			Sessions:   session.NewMemoryStore(),
			Audit:      sink,
			SessionTTL: time.Hour,
		}

		_, err = svc.Login(ctx, "alice", "correct horse battery", "")
		require.ErrorIs(t, err, ErrStoreUnavailable)
		require.NotErrorIs(t, err, ErrBadCredentials)
		require.Empty(t, sink.Events())
	})
}

func TestLoginEventsPersistThroughStoreSink(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	signup := &SignupService{Store: st}
	user, err := signup.Signup(ctx, "alice", "", "correct horse battery")
	require.NoError(t, err)

	svc := &LoginService{
		Store:      st,
		Sessions:   session.NewMemoryStore(),
		Audit:      &audit.StoreSink{Store: st},
		SessionTTL: time.Hour,
	}

	_, err = svc.Login(ctx, "alice", "correct horse battery", "198.51.100.2")
	require.NoError(t, err)
	_, err = svc.Login(ctx, "alice", "wrong password here", "198.51.100.2")
	require.ErrorIs(t, err, ErrBadCredentials)

	activity := &ActivityService{Store: st}
	events, err := activity.Recent(ctx, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Newest first.
	require.Equal(t, domain.LoginFailed, events[0].Status)
	require.Equal(t, domain.LoginSuccess, events[1].Status)
}

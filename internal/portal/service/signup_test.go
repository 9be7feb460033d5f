package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/parkmoor/clubhouse/internal/portal/store/drivers/sqlite"
	"github.com/parkmoor/clubhouse/pkg/cryptox"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	svc := &SignupService{Store: newTestStore(t)}

	t.Run("creates the account", func(t *testing.T) {
		user, err := svc.Signup(ctx, "alice", "alice@example.com", "correct horse battery")
		require.NoError(t, err)
		require.NotEmpty(t, user.ID)
		require.Equal(t, "alice", user.Username)
		require.Equal(t, "alice@example.com", user.Email)

		stored, err := svc.Store.Users().GetByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, user.ID, stored.ID)
	})

	t.Run("never stores the plaintext password", func(t *testing.T) {
		stored, err := svc.Store.Users().GetByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotContains(t, stored.PasswordHash, "correct horse battery")
		require.NoError(t, cryptox.VerifyPassword("correct horse battery", stored.PasswordHash))
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		_, err := svc.Signup(ctx, "alice", "", "another password")
		require.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("trims the username before storing", func(t *testing.T) {
		user, err := svc.Signup(ctx, "  bob  ", "", "bob's fine password")
		require.NoError(t, err)
		require.Equal(t, "bob", user.Username)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		tests := []struct {
			name     string
			username string
			password string
		}{
			{"empty username", "", "long enough password"},
			{"whitespace username", "   ", "long enough password"},
			{"empty password", "carol", ""},
			{"short password", "carol", "short"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Signup(ctx, tt.username, "", tt.password)
				require.ErrorIs(t, err, ErrValidation)
			})
		}
	})
}

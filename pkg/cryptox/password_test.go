package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "clubhouse-test-pepper")
	SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "пароль密码"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, hash)

			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"),
				"hash should be in PHC format")

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6, "PHC hash should have 6 parts")
			require.NotEqual(t, tt.password, hash)
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	password := "samepassword"

	hash1, err := HashPassword(password)
	require.NoError(t, err)
	hash2, err := HashPassword(password)
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	require.NoError(t, VerifyPassword("correct horse battery staple", hash))
	require.ErrorIs(t, VerifyPassword("wrong password", hash), ErrMismatch)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456,t=2,p=1"},
		{"bad salt encoding", "$argon2id$v=19$m=19456,t=2,p=1$!!!!$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPassword("anything", tt.hash)
			require.Error(t, err)
			require.NotErrorIs(t, err, ErrMismatch)
		})
	}
}

func TestDummyHash_NeverMatches(t *testing.T) {
	for _, pw := range []string{"", "password", "hunter2", strings.Repeat("x", 64)} {
		require.ErrorIs(t, VerifyPassword(pw, DummyHash), ErrMismatch)
	}
}

func TestGetPepper_ConcurrentFirstUse(t *testing.T) {
	pepperPath := filepath.Join(t.TempDir(), "pepper")
	SetPepperPath(pepperPath)
	t.Cleanup(func() {
		SetPepperPath(filepath.Join(os.TempDir(), "clubhouse-test-pepper"))
	})

	const workers = 16

	var wg sync.WaitGroup
	peppers := make([]string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			peppers[i] = GetPepper()
		}(i)
	}
	wg.Wait()

	require.NotEmpty(t, peppers[0])
	for _, p := range peppers[1:] {
		require.Equal(t, peppers[0], p)
	}

	// Every caller got the pepper that was actually persisted.
	persisted, err := os.ReadFile(pepperPath)
	require.NoError(t, err)
	require.Equal(t, peppers[0], string(persisted))
}

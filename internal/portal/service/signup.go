package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/parkmoor/clubhouse/internal/portal/domain"
	"github.com/parkmoor/clubhouse/internal/portal/store"
	"github.com/parkmoor/clubhouse/pkg/cryptox"
	"github.com/parkmoor/clubhouse/pkg/idx"
)

// MinPasswordLength is the floor for new account passwords.
const MinPasswordLength = 8

// SignupService creates accounts. Uniqueness is left entirely to the
// store's backend constraint so two concurrent signups for the same
// username resolve to exactly one winner.
type SignupService struct {
	Store store.Store
}

// Signup validates input, hashes the password and inserts the user. No
// session is created; the caller sends the new user to the login form.
func (s *SignupService) Signup(ctx context.Context, username, email, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return domain.User{}, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if password == "" {
		return domain.User{}, fmt.Errorf("%w: password is required", ErrValidation)
	}
	if len(password) < MinPasswordLength {
		return domain.User{}, fmt.Errorf("%w: password must be at least %d characters",
			ErrValidation, MinPasswordLength)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	ctx, cancel := boundCtx(ctx)
	defer cancel()

	if err := s.Store.Users().Create(ctx, user); err != nil {
		if errors.Is(mapStoreErr(err), store.ErrAlreadyExists) {
			return domain.User{}, ErrAlreadyExists
		}
		return domain.User{}, mapStoreErr(err)
	}

	return user, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/parkmoor/clubhouse/internal/portal/store"
)

// storeTimeout bounds how long any single backend call may wait,
// pool acquisition included. A var so tests can shrink it.
var storeTimeout = 5 * time.Second

// boundCtx derives a deadline-carrying context for backend calls.
// Contexts that already carry a deadline are passed through untouched.
func boundCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, storeTimeout)
}

var (
	// ErrValidation reports missing or malformed form input. Nothing
	// is persisted.
	ErrValidation = errors.New("validation failed")

	// ErrAlreadyExists reports a signup for a taken username.
	ErrAlreadyExists = errors.New("user already exists")

	// ErrBadCredentials reports a failed authentication. The message
	// shown to users never distinguishes unknown-username from
	// wrong-password.
	ErrBadCredentials = errors.New("invalid username or password")

	// ErrStoreUnavailable reports that a backing store could not be
	// reached. Surfaced as a 5xx; safe to retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// mapStoreErr passes through the domain-meaningful store errors and
// classifies everything else (pool acquisition timeout, backend down,
// driver failures) as ErrStoreUnavailable, keeping the raw cause
// attached for the server log only.
func mapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrAlreadyExists) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

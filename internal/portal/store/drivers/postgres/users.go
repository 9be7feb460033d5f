package postgres

import (
	"context"

	"github.com/parkmoor/clubhouse/internal/portal/domain"
)

type usersRepo struct {
	db querier
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	const q = `SELECT id, username, email, password_hash, created_at, updated_at
	           FROM users WHERE id = $1`

	var u domain.User
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	const q = `SELECT id, username, email, password_hash, created_at, updated_at
	           FROM users WHERE username = $1`

	var u domain.User
	err := r.db.QueryRowContext(ctx, q, username).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) Create(ctx context.Context, u domain.User) error {
	const q = `INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
	           VALUES ($1, $2, $3, $4, $5, $6)`

	now := utcNow()
	if _, err := r.db.ExecContext(ctx, q, u.ID, u.Username, u.Email, u.PasswordHash, now, now); err != nil {
		return mapConstraint(err)
	}
	return nil
}

func (r *usersRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

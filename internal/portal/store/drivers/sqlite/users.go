package sqlite

import (
	"context"

	"github.com/parkmoor/clubhouse/internal/portal/domain"
)

type usersRepo struct {
	db querier
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	const q = `SELECT id, username, email, password_hash, created_at, updated_at
	           FROM users WHERE id = ?`

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
	           FROM users WHERE username = ?`

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
	           VALUES (?, ?, ?, ?, ?, ?)`

	now := utcNow()
	_, err := r.db.ExecContext(ctx, q, u.ID, u.Username, u.Email, u.PasswordHash, now, now)
	if err != nil {
		return mapConstraint(err)
	}
	return nil
}

func (r *usersRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

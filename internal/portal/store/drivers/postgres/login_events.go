package postgres

import (
	"context"
	"database/sql"

	"github.com/parkmoor/clubhouse/internal/portal/domain"
)

type loginEventsRepo struct {
	db querier
}

func (r *loginEventsRepo) Create(ctx context.Context, ev domain.LoginEvent) error {
	const q = `INSERT INTO login_events (id, user_id, username, ip, status, latency_ms, created_at)
	           VALUES ($1, $2, $3, $4, $5, $6, $7)`

	created := ev.CreatedAt
	if created.IsZero() {
		created = utcNow()
	}

	_, err := r.db.ExecContext(ctx, q,
		ev.ID, mapOptionalString(ev.UserID), ev.Username, ev.IP, ev.Status, ev.LatencyMS, created,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return nil
}

func (r *loginEventsRepo) ListRecentByUser(ctx context.Context, userID string, limit int) ([]domain.LoginEvent, error) {
	const q = `SELECT id, user_id, username, ip, status, latency_ms, created_at
	           FROM login_events WHERE user_id = $1
	           ORDER BY created_at DESC, id DESC LIMIT $2`

	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.LoginEvent
	for rows.Next() {
		var (
			ev     domain.LoginEvent
			userID sql.NullString
		)
		if err := rows.Scan(&ev.ID, &userID, &ev.Username, &ev.IP, &ev.Status, &ev.LatencyMS, &ev.CreatedAt); err != nil {
			return nil, err
		}
		ev.UserID = mapNullString(userID)
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (r *loginEventsRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM login_events WHERE status = $1`, status).Scan(&n)
	return n, err
}

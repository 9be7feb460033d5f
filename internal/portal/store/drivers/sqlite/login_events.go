package sqlite

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
	           VALUES (?, ?, ?, ?, ?, ?, ?)`

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
	           FROM login_events WHERE user_id = ?
	           ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.LoginEvent
	for rows.Next() {
		ev, err := scanLoginEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (r *loginEventsRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM login_events WHERE status = ?`, status).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLoginEvent(rs rowScanner) (domain.LoginEvent, error) {
	var (
		ev     domain.LoginEvent
		userID sql.NullString
	)
	if err := rs.Scan(&ev.ID, &userID, &ev.Username, &ev.IP, &ev.Status, &ev.LatencyMS, &ev.CreatedAt); err != nil {
		return domain.LoginEvent{}, err
	}
	ev.UserID = mapNullString(userID)
	return ev, nil
}

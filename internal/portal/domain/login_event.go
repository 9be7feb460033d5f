package domain

import "time"

// Login attempt outcomes.
const (
	LoginSuccess = "SUCCESS"
	LoginFailed  = "FAILED"
)

// LoginEvent is the append-only audit record of one login attempt.
// Exactly one is emitted per attempt regardless of outcome. UserID is
// nil only when the attempted username does not exist; a wrong password
// for a real account still records that account's id.
type LoginEvent struct {
	ID        string
	UserID    *string
	Username  string
	IP        string
	Status    string // LoginSuccess or LoginFailed
	LatencyMS int64
	CreatedAt time.Time
}

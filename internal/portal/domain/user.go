package domain

import "time"

type User struct {
	ID           string
	Username     string // unique, immutable after creation
	Email        string // optional
	PasswordHash string // argon2 encoded, never the plaintext
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package domain

import "time"

// User is a registered account. PasswordHash holds the encoded argon2id
// hash; it never crosses the service boundary in responses or logs.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

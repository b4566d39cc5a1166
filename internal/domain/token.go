package domain

import "time"

// AuthToken is a personal access token. Only the SHA-256 hash of the secret
// half is stored; the plaintext form "<id>.<secret>" is shown to the client
// once at issue time.
type AuthToken struct {
	ID         string     `json:"id"`
	UserID     int64      `json:"user_id"`
	SecretHash string     `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
}

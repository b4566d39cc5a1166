package sqlite

import (
	"database/sql"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// TokenRepository handles personal access token persistence.
type TokenRepository struct {
	db *sql.DB
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Create inserts a new token.
func (r *TokenRepository) Create(token *domain.AuthToken) error {
	_, err := r.db.Exec(`
		INSERT INTO auth_tokens (id, user_id, secret_hash, created_at)
		VALUES (?, ?, ?, ?)
	`,
		token.ID,
		token.UserID,
		token.SecretHash,
		token.CreatedAt.Format(time.RFC3339),
	)
	return err
}

// GetByID retrieves a token by its ID.
func (r *TokenRepository) GetByID(id string) (*domain.AuthToken, error) {
	row := r.db.QueryRow(`
		SELECT id, user_id, secret_hash, created_at, last_used_at
		FROM auth_tokens WHERE id = ?
	`, id)

	var token domain.AuthToken
	var createdAt string
	var lastUsedAt sql.NullString

	err := row.Scan(&token.ID, &token.UserID, &token.SecretHash, &createdAt, &lastUsedAt)
	if err != nil {
		return nil, err
	}

	token.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if lastUsedAt.Valid {
		t, _ := time.Parse(time.RFC3339, lastUsedAt.String)
		token.LastUsedAt = &t
	}
	return &token, nil
}

// TouchLastUsed records when the token was last presented.
func (r *TokenRepository) TouchLastUsed(id string, now time.Time) error {
	_, err := r.db.Exec(
		"UPDATE auth_tokens SET last_used_at = ? WHERE id = ?",
		now.Format(time.RFC3339), id,
	)
	return err
}

// Delete revokes a token.
func (r *TokenRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM auth_tokens WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

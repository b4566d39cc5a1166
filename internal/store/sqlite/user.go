package sqlite

import (
	"database/sql"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and fills in its generated ID.
func (r *UserRepository) Create(user *domain.User) error {
	result, err := r.db.Exec(`
		INSERT INTO users (name, email, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		user.Name,
		user.Email,
		user.PasswordHash,
		string(user.Role),
		user.CreatedAt.Format(time.RFC3339),
		user.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

// GetByID retrieves a user by its ID.
func (r *UserRepository) GetByID(id int64) (*domain.User, error) {
	row := r.db.QueryRow(`
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users WHERE id = ?
	`, id)
	return scanUser(row)
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(email string) (*domain.User, error) {
	row := r.db.QueryRow(`
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users WHERE email = ?
	`, email)
	return scanUser(row)
}

// EmailExists checks whether a user with the given email already exists.
func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", email).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var role, createdAt, updatedAt string

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&role,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Role = domain.Role(role)
	user.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	user.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &user, nil
}

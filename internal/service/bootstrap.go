package service

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// EnsureManager creates the manager account with the given credentials when
// no user with that email exists yet. Role assignment has no API surface, so
// the first manager is seeded from configuration at startup.
func (s *AuthService) EnsureManager(name, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.userRepo.EmailExists(email)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	if existing {
		user, err := s.userRepo.GetByEmail(email)
		if err != nil {
			return nil, domain.NewInternalError(err)
		}
		return user, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleManager,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, domain.NewInternalError(err)
	}
	return user, nil
}

package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"net/mail"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store/sqlite"
)

// AuthService handles registration, login, logout, and token verification.
type AuthService struct {
	userRepo  *sqlite.UserRepository
	tokenRepo *sqlite.TokenRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo *sqlite.UserRepository, tokenRepo *sqlite.TokenRepository) *AuthService {
	return &AuthService{userRepo: userRepo, tokenRepo: tokenRepo}
}

// RegisterInput contains the input for registering a user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Validate validates the register input.
func (in RegisterInput) Validate() map[string][]string {
	errors := map[string][]string{}

	if strings.TrimSpace(in.Name) == "" {
		errors["name"] = append(errors["name"], "The name field is required.")
	}
	if strings.TrimSpace(in.Email) == "" {
		errors["email"] = append(errors["email"], "The email field is required.")
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		errors["email"] = append(errors["email"], "The email must be a valid email address.")
	}
	if in.Password == "" {
		errors["password"] = append(errors["password"], "The password field is required.")
	} else if len(in.Password) < 8 {
		errors["password"] = append(errors["password"], "The password must be at least 8 characters.")
	}

	if len(errors) == 0 {
		return nil
	}
	return errors
}

// Register creates a new user with the default role and issues a token.
func (s *AuthService) Register(in RegisterInput) (*domain.User, string, error) {
	if errs := in.Validate(); errs != nil {
		return nil, "", domain.NewValidationError(errs)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	taken, err := s.userRepo.EmailExists(email)
	if err != nil {
		return nil, "", domain.NewInternalError(err)
	}
	if taken {
		return nil, "", domain.NewEmailTakenError(email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", domain.NewInternalError(err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, "", domain.NewInternalError(err)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", domain.NewInvalidCredentialsError()
		}
		return nil, "", domain.NewInternalError(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.NewInvalidCredentialsError()
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout revokes the presented token.
func (s *AuthService) Logout(plaintext string) error {
	id, _, ok := splitToken(plaintext)
	if !ok {
		return domain.NewUnauthenticatedError()
	}
	if err := s.tokenRepo.Delete(id); err != nil {
		if err == sql.ErrNoRows {
			return domain.NewUnauthenticatedError()
		}
		return domain.NewInternalError(err)
	}
	return nil
}

// Verify resolves a plaintext token to its user. The secret is compared in
// constant time against the stored hash.
func (s *AuthService) Verify(plaintext string) (*domain.User, error) {
	id, secret, ok := splitToken(plaintext)
	if !ok {
		return nil, domain.NewUnauthenticatedError()
	}

	token, err := s.tokenRepo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewUnauthenticatedError()
		}
		return nil, domain.NewInternalError(err)
	}

	if subtle.ConstantTimeCompare([]byte(hashSecret(secret)), []byte(token.SecretHash)) != 1 {
		return nil, domain.NewUnauthenticatedError()
	}

	user, err := s.userRepo.GetByID(token.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewUnauthenticatedError()
		}
		return nil, domain.NewInternalError(err)
	}

	if err := s.tokenRepo.TouchLastUsed(id, time.Now().UTC()); err != nil {
		return nil, domain.NewInternalError(err)
	}
	return user, nil
}

// issueToken mints a token for the user and returns its plaintext form
// "<id>.<secret>". Only the secret's hash is persisted.
func (s *AuthService) issueToken(userID int64) (string, error) {
	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", domain.NewInternalError(err)
	}
	secret := hex.EncodeToString(secretBytes)

	token := &domain.AuthToken{
		ID:         ulid.Make().String(),
		UserID:     userID,
		SecretHash: hashSecret(secret),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.tokenRepo.Create(token); err != nil {
		return "", domain.NewInternalError(err)
	}

	return token.ID + "." + secret, nil
}

func hashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

func splitToken(plaintext string) (id, secret string, ok bool) {
	id, secret, found := strings.Cut(plaintext, ".")
	if !found || id == "" || secret == "" {
		return "", "", false
	}
	return id, secret, true
}

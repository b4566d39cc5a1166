package handler

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/api/middleware"
	"github.com/taskdeck/taskdeck/internal/api/request"
	"github.com/taskdeck/taskdeck/internal/api/response"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/service"
)

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /v1/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError(map[string][]string{
			"body": {"Invalid JSON body."},
		}))
		return
	}

	user, token, err := h.auth.Register(service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "User registered successfully", map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Login handles POST /v1/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError(map[string][]string{
			"body": {"Invalid JSON body."},
		}))
		return
	}

	if errs := req.Validate(); errs != nil {
		response.Error(w, domain.NewValidationError(errs))
		return
	}

	user, token, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Successfully logged in", map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Logout handles POST /v1/logout. The current token is revoked.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(middleware.GetToken(r.Context())); err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Successfully logged out", nil)
}

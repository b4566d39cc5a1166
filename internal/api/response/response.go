// Package response shapes the JSON envelope returned by every endpoint.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// Envelope is the uniform response body: {success, message, data, meta?,
// errors?}.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// PageMeta is the pagination metadata for page-based listings.
type PageMeta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// OffsetMeta is the pagination metadata for offset-based listings.
type OffsetMeta struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Total  int `json:"total"`
}

// Debug controls whether internal error detail is included in 500 responses.
// It must stay false in production builds.
var Debug = false

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Success sends a success envelope.
func Success(w http.ResponseWriter, status int, message string, data interface{}) {
	JSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// SuccessWithMeta sends a success envelope with pagination metadata.
func SuccessWithMeta(w http.ResponseWriter, message string, data, meta interface{}) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data, Meta: meta})
}

// Error translates a domain error into the envelope with the mapped status
// code. Non-domain errors become a generic 500.
func Error(w http.ResponseWriter, err error) {
	domainErr, ok := err.(*domain.Error)
	if !ok {
		domainErr = domain.NewInternalError(err)
	}

	env := Envelope{Success: false, Message: domainErr.Message}

	if errs, ok := domainErr.Context["errors"]; ok {
		env.Errors = errs
	}

	if domainErr.Code == domain.ErrCodeInternalError {
		env.Message = "Server Error"
		if Debug {
			if cause, ok := domainErr.Context["cause"]; ok {
				env.Errors = map[string]interface{}{"cause": cause}
			}
		}
	}

	JSON(w, statusFor(domainErr.Code), env)
}

func statusFor(code domain.ErrorCode) int {
	switch code {
	case domain.ErrCodeTaskNotFound, domain.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domain.ErrCodeForbidden:
		return http.StatusForbidden
	case domain.ErrCodeUnauthenticated, domain.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case domain.ErrCodeValidationFailed, domain.ErrCodeEmailTaken:
		return http.StatusUnprocessableEntity
	case domain.ErrCodeAlreadyAssigned, domain.ErrCodeDependenciesNotMet:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

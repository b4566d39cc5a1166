package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/store/sqlite"
)

func newAuthService(t *testing.T) *service.AuthService {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "mw.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return service.NewAuthService(sqlite.NewUserRepository(db), sqlite.NewTokenRepository(db))
}

func TestAuthenticate(t *testing.T) {
	auth := newAuthService(t)
	user, token, err := auth.Register(service.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	var gotActor *domain.User
	var gotToken string
	handler := Authenticate(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotActor = GetActor(r.Context())
		gotToken = GetToken(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	require.NotNil(t, gotActor)
	assert.Equal(t, user.ID, gotActor.ID)
	assert.Equal(t, token, gotToken)
}

func TestAuthenticate_Rejections(t *testing.T) {
	auth := newAuthService(t)

	handler := Authenticate(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"empty bearer", "Bearer "},
		{"unknown token", "Bearer deadbeef.cafe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Unauthenticated.")
		})
	}
}

func TestGetActor_EmptyContext(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.Nil(t, GetActor(r.Context()))
	assert.Empty(t, GetToken(r.Context()))
}

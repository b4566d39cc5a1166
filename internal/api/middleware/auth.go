package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taskdeck/taskdeck/internal/api/response"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/service"
)

type contextKey string

const (
	// ActorKey is the context key for the authenticated user.
	ActorKey contextKey = "actor"
	// TokenKey is the context key for the presented plaintext token.
	TokenKey contextKey = "token"
)

// Authenticate resolves the bearer token to a user and stores both in the
// request context. Requests without a valid token get a 401 envelope.
func Authenticate(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				response.Error(w, domain.NewUnauthenticatedError())
				return
			}

			actor, err := auth.Verify(token)
			if err != nil {
				response.Error(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), ActorKey, actor)
			ctx = context.WithValue(ctx, TokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetActor retrieves the authenticated user from context.
func GetActor(ctx context.Context) *domain.User {
	if actor, ok := ctx.Value(ActorKey).(*domain.User); ok {
		return actor
	}
	return nil
}

// GetToken retrieves the presented plaintext token from context.
func GetToken(ctx context.Context) string {
	if token, ok := ctx.Value(TokenKey).(string); ok {
		return token
	}
	return ""
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

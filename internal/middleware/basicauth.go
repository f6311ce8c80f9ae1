// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/todokeeper/internal/models"
	"go.uber.org/zap"
)

type ctxKey string

const userKey ctxKey = "user"

// Realm is advertised in the WWW-Authenticate challenge.
const Realm = "todos"

// Authenticator checks a username/password pair.
type Authenticator interface {
	// Authenticate returns nil for valid credentials and
	// models.ErrUnauthenticated otherwise.
	Authenticate(ctx context.Context, username, password string) error
}

// BasicAuth is a middleware that enforces HTTP Basic authentication on
// every request it wraps.
//
// Requests without credentials, or whose credentials are rejected by auth,
// get 401 with a Basic challenge and never reach next. On success the
// username is stored in the request context.
func BasicAuth(auth Authenticator, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				unauthorized(w)
				return
			}
			if err := auth.Authenticate(r.Context(), username, password); err != nil {
				if !errors.Is(err, models.ErrUnauthenticated) {
					log.Error("credential check failed", zap.Error(err))
				}
				unauthorized(w)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="`+Realm+`", charset="UTF-8"`)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: models.ErrUnauthenticated.Error()})
}

// GetUserFromContext extracts the authenticated username from the request
// context. Returns an empty string if not found.
func GetUserFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}

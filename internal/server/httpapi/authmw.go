package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/neogulmap/zonemap/internal/server/auth"
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	userEmailKey contextKey = "userEmail"
)

// UserID returns the authenticated account ID from the request context.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// UserEmail returns the authenticated email from the request context.
func UserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(userEmailKey).(string)
	return email, ok
}

// Authenticate verifies the bearer token and stores the caller's identity
// in the request context. Requests without valid credentials get the bare
// 401 envelope.
func Authenticate(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				WriteUnauthorized(w, r)
				return
			}

			claims, err := auth.Parse(token, secret)
			if err != nil {
				WriteUnauthorized(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			ctx = context.WithValue(ctx, userEmailKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

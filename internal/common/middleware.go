package common

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userContextKey contextKey = "user"

// UserIDFrom returns the authenticated user id attached by the auth
// middleware, if any.
func UserIDFrom(ctx context.Context) (uint64, bool) {
	claims, ok := ctx.Value(userContextKey).(*Claims)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}

func withClaims(r *http.Request, claims *Claims) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userContextKey, claims))
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// RequireAuth rejects requests without a valid bearer token and attaches the
// verified claims to the request context.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			WriteError(w, NewUnauthorized("Authorization required"), false)
			return
		}

		claims, err := ValidToken(token)
		if err != nil {
			WriteError(w, err, false)
			return
		}

		next.ServeHTTP(w, withClaims(r, claims))
	})
}

// OptionalAuth attaches claims when a valid token is present but lets the
// request through either way. An invalid token is treated as anonymous.
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := bearerToken(r); ok {
			if claims, err := ValidToken(token); err == nil {
				r = withClaims(r, claims)
			}
		}
		next.ServeHTTP(w, r)
	})
}

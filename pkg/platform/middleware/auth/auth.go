// Package auth provides bearer-token middleware for the service API. Tokens
// are HS256 JWTs signed with a shared key; the subject claim identifies the
// calling system and is stamped into the request context.
package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"cleargate/pkg/domainerrors"
	"cleargate/pkg/platform/httputil"
	"cleargate/pkg/requestcontext"
)

const bearerPrefix = "Bearer "

// RequireAuth validates the Authorization header on every request. A missing
// or invalid token gets a 401 JSON envelope; valid requests continue with the
// token subject in the context.
func RequireAuth(signingKey string, logger *slog.Logger) func(http.Handler) http.Handler {
	key := []byte(signingKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				httputil.WriteError(w, domainerrors.New(domainerrors.CodeUnauthorized, "bearer token required"))
				return
			}

			token, err := jwt.Parse(strings.TrimPrefix(header, bearerPrefix), func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
				}
				return key, nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !token.Valid {
				if logger != nil {
					logger.DebugContext(r.Context(), "token validation failed", "error", err)
				}
				httputil.WriteError(w, domainerrors.New(domainerrors.CodeUnauthorized, "invalid token"))
				return
			}

			subject, _ := token.Claims.GetSubject()
			ctx := requestcontext.WithSubject(r.Context(), subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

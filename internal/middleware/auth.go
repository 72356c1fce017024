package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/partsflow/procurement-service/internal/utils"
	"github.com/partsflow/procurement-service/pkg/jwtutil"
)

type contextKey string

// ClaimsKey locates the authenticated user's claims in the request context.
const ClaimsKey contextKey = "userClaims"

// Paths reachable without a token.
var skipAuthPaths = map[string]bool{
	"/api/ping":          true,
	"/api/auth/login":    true,
	"/api/auth/register": true,
	"/metrics":           true,
}

// Auth validates the Bearer token on every request outside the skip list and
// stores the claims in the request context.
func Auth(signingKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skipAuthPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.SendErrorResponse(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found {
				utils.SendErrorResponse(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			claims, err := jwtutil.ValidateToken(signingKey, tokenString)
			if err != nil {
				utils.SendErrorResponse(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extracts the authenticated claims, if any.
func ClaimsFromContext(ctx context.Context) (*jwtutil.UserClaims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*jwtutil.UserClaims)
	return claims, ok
}

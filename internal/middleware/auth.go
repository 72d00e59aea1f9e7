package middleware

import (
	"context"
	"net/http"
	"strings"

	"storefront-auth/internal/session"
)

// unexported, collision-proof context key
type claimsContextKeyType struct{}

var claimsKey = claimsContextKeyType{}

// ClaimsFromContext extracts the verified session claims from context.
func ClaimsFromContext(ctx context.Context) (*session.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*session.Claims)
	return claims, ok
}

type AuthMiddleware struct {
	Tokens      *session.Issuer
	Revocations session.Revoker
}

func NewAuthMiddleware(tokens *session.Issuer, revocations session.Revoker) *AuthMiddleware {
	return &AuthMiddleware{
		Tokens:      tokens,
		Revocations: revocations,
	}
}

// tokenFromRequest reads the session cookie, falling back to a
// Bearer header for non-browser clients.
func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}

func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read session token
		token := tokenFromRequest(r)
		if token == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 2. Verify signature and expiry
		claims, err := a.Tokens.Verify(token)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 3. Reject tokens revoked by logout
		revoked, err := a.Revocations.IsRevoked(r.Context(), claims.ID)
		if err != nil || revoked {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 4. Attach claims to context
		ctx := context.WithValue(r.Context(), claimsKey, claims)

		// 5. Continue request
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

package middleware

import (
	"errors"
	"net/http"

	"github.com/ghlaw/taskdesk/internal/api/shared"
	"github.com/ghlaw/taskdesk/internal/service/auth"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates Bearer tokens from the Authorization header and
// adds the token claims to the request context for authorized requests.
// Missing, malformed, expired, and invalid-signature tokens all produce the
// same 401 envelope so a caller cannot probe which check failed.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.ExtractBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid or missing token")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) || errors.Is(err, auth.ErrInvalidToken) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid or missing token")
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"Internal server error", err)
			return
		}

		ctx := shared.WithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ghlaw/taskdesk/internal/domain"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT containing the user's identity,
	// email, and role, valid for the configured lifetime.
	// Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, userID uuid.UUID, email string, role domain.UserRole) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns ErrExpiredToken when the token is past its expiry and
	// ErrInvalidToken for every other failure (bad signature, malformed
	// token, wrong algorithm); callers must present both identically to
	// clients.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the decoded payload of a signed token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"sub"`

	// Email is the user's login email at issuance time.
	Email string `json:"email"`

	// Role is the user's role at issuance time.
	Role domain.UserRole `json:"role"`

	// Standard registered JWT claims
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

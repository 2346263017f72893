package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghlaw/taskdesk/internal/domain"
)

const testSecret = "test-secret-that-is-at-least-32-chars"

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		secret  string
		wantErr bool
	}{
		{
			name:    "valid_secret",
			secret:  testSecret,
			wantErr: false,
		},
		{
			name:    "secret_too_short",
			secret:  "short",
			wantErr: true,
		},
		{
			name:    "empty_secret",
			secret:  "",
			wantErr: true,
		},
		{
			name:    "exactly_32_chars",
			secret:  "01234567890123456789012345678901",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, err := NewJWTService(tt.secret, 24*time.Hour)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(testSecret, 24*time.Hour)
	require.NoError(t, err)

	userID := uuid.New()
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, userID, "dana@example.com", domain.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "dana@example.com", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.WithinDuration(t, claims.IssuedAt.Add(24*time.Hour), claims.ExpiresAt, time.Second)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(testSecret, 24*time.Hour)
	require.NoError(t, err)

	other, err := NewJWTService("another-secret-that-is-32-chars-long", 24*time.Hour)
	require.NoError(t, err)

	ctx := context.Background()
	token, err := svc.GenerateToken(ctx, uuid.New(), "dana@example.com", domain.RoleUser)
	require.NoError(t, err)

	claims, err := other.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestValidateTokenExpired(t *testing.T) {
	t.Parallel()

	baseTime := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	currentTime := baseTime

	svc := NewTestJWTService(testSecret, 24*time.Hour, func() time.Time {
		return currentTime
	})

	ctx := context.Background()
	token, err := svc.GenerateToken(ctx, uuid.New(), "dana@example.com", domain.RoleUser)
	require.NoError(t, err)

	// Still valid just inside the lifetime window.
	currentTime = baseTime.Add(24*time.Hour - time.Minute)
	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", claims.Email)

	// Expired once the window has passed, despite a correct signature.
	currentTime = baseTime.Add(24*time.Hour + time.Minute)
	claims, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestValidateTokenMalformed(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(testSecret, 24*time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty_string", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "truncated", token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9"},
		{name: "wrong_segments", token: "a.b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims, err := svc.ValidateToken(context.Background(), tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestValidateTokenNonUUIDSubject(t *testing.T) {
	t.Parallel()

	// A token whose subject is not a UUID must be rejected even though the
	// signature verifies.
	svc := NewTestJWTService(testSecret, 24*time.Hour, nil)

	now := time.Now()
	badClaims := jwtCustomClaims{
		Email: "dana@example.com",
		Role:  string(domain.RoleUser),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, badClaims).
		SignedString([]byte(testSecret))
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

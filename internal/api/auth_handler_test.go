package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghlaw/taskdesk/internal/domain"
	"github.com/ghlaw/taskdesk/internal/service/auth"
	"github.com/ghlaw/taskdesk/internal/store"
)

const authTestSecret = "test-secret-that-is-at-least-32-chars"

func newAuthRouter(userStore store.UserStore, audit store.AuditStore, verifier auth.PasswordVerifier) http.Handler {
	jwtService := auth.NewTestJWTService(authTestSecret, 24*time.Hour, nil)
	h := NewAuthHandler(userStore, audit, jwtService, verifier, nil)

	r := chi.NewRouter()
	r.Post("/api/auth/register", h.Register)
	r.Post("/api/auth/login", h.Login)
	return r
}

func activeUser() *domain.User {
	return &domain.User{
		ID:             uuid.New(),
		Email:          "dana@example.com",
		Name:           "Dana",
		HashedPassword: "$2a$10$fakefakefakefakefakefake",
		Role:           domain.RoleUser,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	var created *domain.User
	userStore := &mockUserStore{
		createFn: func(_ context.Context, user *domain.User) error {
			created = user
			return nil
		},
	}
	audit := &mockAuditStore{}
	router := newAuthRouter(userStore, audit, &stubVerifier{})

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "dana@example.com",
		"name":     "Dana",
		"password": "longenough1",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, created)

	assert.Equal(t, domain.RoleUser, created.Role)
	assert.NotEmpty(t, created.HashedPassword)
	assert.NotEqual(t, "longenough1", created.HashedPassword)

	// The response carries the public view only, never the hash.
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "dana@example.com", resp["email"])
	assert.NotContains(t, rec.Body.String(), created.HashedPassword)

	entries := audit.recorded()
	require.Len(t, entries, 1)
	assert.Equal(t, "user.register", entries[0].Action)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	existing := activeUser()
	userStore := &mockUserStore{
		getByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			if email == existing.Email {
				return existing, nil
			}
			return nil, store.ErrUserNotFound
		},
	}
	router := newAuthRouter(userStore, &mockAuditStore{}, &stubVerifier{})

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    existing.Email,
		"name":     "Dana",
		"password": "longenough1",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "User already exists")
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{
			name:    "short_password",
			payload: map[string]any{"email": "a@x.com", "name": "A", "password": "short"},
		},
		{
			name:    "invalid_email",
			payload: map[string]any{"email": "not-an-email", "name": "A", "password": "longenough1"},
		},
		{
			name:    "invalid_role",
			payload: map[string]any{"email": "a@x.com", "name": "A", "password": "longenough1", "role": "superuser"},
		},
		{
			name:    "missing_name",
			payload: map[string]any{"email": "a@x.com", "password": "longenough1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := newAuthRouter(&mockUserStore{}, &mockAuditStore{}, &stubVerifier{})
			rec := doJSON(t, router, http.MethodPost, "/api/auth/register", tt.payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	user := activeUser()
	lastLoginStamped := false
	userStore := &mockUserStore{
		getByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, store.ErrUserNotFound
		},
		updateLastLoginFn: func(_ context.Context, id uuid.UUID) error {
			lastLoginStamped = true
			return nil
		},
	}
	router := newAuthRouter(userStore, &mockAuditStore{}, &stubVerifier{accept: "correct-password"})

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    user.Email,
		"password": "correct-password",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, lastLoginStamped)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, user.Email, resp.User.Email)

	// The minted token must validate and carry the user's identity.
	jwtService := auth.NewTestJWTService(authTestSecret, 24*time.Hour, nil)
	claims, err := jwtService.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Role, claims.Role)
}

func TestLoginInvalidCredentials(t *testing.T) {
	t.Parallel()

	user := activeUser()
	userStore := &mockUserStore{
		getByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, store.ErrUserNotFound
		},
	}
	router := newAuthRouter(userStore, &mockAuditStore{}, &stubVerifier{accept: "correct-password"})

	// Wrong password and unknown email must be indistinguishable.
	wrongPassword := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    user.Email,
		"password": "wrong-password",
	})
	unknownEmail := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "nobody@example.com",
		"password": "correct-password",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestLoginDisabledAccount(t *testing.T) {
	t.Parallel()

	user := activeUser()
	user.IsActive = false
	userStore := &mockUserStore{
		getByEmailFn: func(_ context.Context, _ string) (*domain.User, error) {
			return user, nil
		},
	}
	router := newAuthRouter(userStore, &mockAuditStore{}, &stubVerifier{accept: "correct-password"})

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    user.Email,
		"password": "correct-password",
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "disabled")
}

func TestLoginSucceedsWhenLastLoginStampFails(t *testing.T) {
	t.Parallel()

	user := activeUser()
	userStore := &mockUserStore{
		getByEmailFn: func(_ context.Context, _ string) (*domain.User, error) {
			return user, nil
		},
		updateLastLoginFn: func(_ context.Context, _ uuid.UUID) error {
			return store.ErrUserNotFound
		},
	}
	router := newAuthRouter(userStore, &mockAuditStore{}, &stubVerifier{accept: "correct-password"})

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    user.Email,
		"password": "correct-password",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
}

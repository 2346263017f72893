package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/ghlaw/taskdesk/internal/api/shared"
	"github.com/ghlaw/taskdesk/internal/domain"
	"github.com/ghlaw/taskdesk/internal/platform/logger"
	"github.com/ghlaw/taskdesk/internal/service/auth"
	"github.com/ghlaw/taskdesk/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore        store.UserStore
	auditStore       store.AuditStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	validator        *validator.Validate
	logger           *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	auditStore store.AuditStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	log *slog.Logger,
) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{
		userStore:        userStore,
		auditStore:       auditStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		validator:        validator.New(),
		logger:           log.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	// Duplicate registration is a BadRequest, checked before creating.
	// The unique constraint still backstops concurrent registrations.
	_, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err == nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "User already exists")
		return
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Internal server error", err)
		return
	}

	role := domain.UserRole("")
	if req.Role != nil {
		role = domain.UserRole(*req.Role)
	}

	user, err := domain.NewUser(req.Email, req.Name, role)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	user.HashedPassword, err = auth.HashPassword(req.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Internal server error", err)
		return
	}

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "User already exists")
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	recordAudit(r, h.auditStore, &user.ID, "user.register", "user", user.ID)

	shared.RespondWithJSON(w, r, http.StatusCreated, NewUserResponse(user))
}

// Login handles POST /api/auth/login.
// A nonexistent email and a wrong password produce identical responses.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Internal server error", err)
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !user.IsActive {
		shared.RespondWithError(w, r, http.StatusForbidden, "User account is disabled")
		return
	}

	// Best-effort: a failed stamp must not block the login.
	if err := h.userStore.UpdateLastLogin(r.Context(), user.ID); err != nil {
		log.Warn("failed to update last login",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID, user.Email, user.Role)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Internal server error", err)
		return
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))
	recordAudit(r, h.auditStore, &user.ID, "user.login", "user", user.ID)

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Token: token,
		User:  NewUserResponse(user),
	})
}

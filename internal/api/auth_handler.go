package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/primetrade/taskboard-api/internal/api/shared"
	"github.com/primetrade/taskboard-api/internal/domain"
	"github.com/primetrade/taskboard-api/internal/platform/logger"
	"github.com/primetrade/taskboard-api/internal/redact"
	"github.com/primetrade/taskboard-api/internal/service/auth"
	"github.com/primetrade/taskboard-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	logger           *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		logger:           logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /auth/register.
// New accounts always get the regular user role; admins are provisioned
// through seeding, never through this endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := domain.NewUser(req.Email, req.Password, domain.RoleUser)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Email already exists")
			return
		}
		if errors.Is(err, domain.ErrValidation) {
			shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
			return
		}
		log.Error("failed to create user", "error", redact.Error(err))
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create user", err)
		return
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))

	shared.RespondWithJSON(w, r, http.StatusCreated, RegisterResponse{
		User: NewUserResponse(user),
	})
}

// Login handles POST /auth/login.
// Unknown emails and wrong passwords produce the same response so the
// endpoint never reveals which of the two failed.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized,
				GetSafeErrorMessage(auth.ErrInvalidCredentials))
			return
		}
		log.Error("failed to get user by email", "error", redact.Error(err))
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to authenticate user", err)
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized,
			GetSafeErrorMessage(auth.ErrInvalidCredentials))
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID, user.Role)
	if err != nil {
		log.Error("failed to generate token",
			"error", redact.Error(err),
			"user_id", user.ID)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		Token: token,
		User:  NewUserResponse(user),
	})
}

package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"coursehub/application/ports"
	"coursehub/domain/admins"
	"coursehub/pkg/auth"
	"coursehub/pkg/common"
	pkgerrors "coursehub/pkg/errors"
	"coursehub/pkg/utils"
)

// maxAuthBody bounds the auth request payloads
const maxAuthBody = 16 << 10

// SignupRequest is the DTO for POST /auth/signup
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest is the DTO for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest is the DTO for POST /auth/change-password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=128"`
}

// adminView is the admin payload returned to clients
type adminView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// AuthHandler serves admin signup, login and profile endpoints
type AuthHandler struct {
	repo         ports.AdminRepository
	tokens       *auth.JWTManager
	errorHandler *pkgerrors.ErrorHandler
	logger       *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	repo ports.AdminRepository,
	tokens *auth.JWTManager,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		repo:         repo,
		tokens:       tokens,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := common.ParseJSONBody(w, r, &req, maxAuthBody); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		details := utils.ValidationFieldErrors(&req)
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("invalid signup request").WithDetails(details))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewInternalError("failed to hash password").WithCause(err))
		return
	}

	admin := &admins.Admin{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := admin.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.repo.Create(r.Context(), admin); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	token, err := h.tokens.GenerateToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewInternalError("failed to issue token").WithCause(err))
		return
	}

	h.logger.Info("Admin registered", zap.String("email", admin.Email))
	common.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"admin": viewOf(admin),
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := common.ParseJSONBody(w, r, &req, maxAuthBody); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		details := utils.ValidationFieldErrors(&req)
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("invalid login request").WithDetails(details))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	admin, err := h.repo.FindByEmail(r.Context(), email)
	if err != nil {
		// Same response for unknown email and bad password
		if pkgerrors.IsNotFound(err) {
			h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("invalid credentials"))
			return
		}
		h.errorHandler.Handle(w, r, err)
		return
	}

	if !auth.CheckPassword(admin.PasswordHash, req.Password) {
		h.logger.Warn("Failed login attempt", zap.String("email", email))
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("invalid credentials"))
		return
	}

	token, err := h.tokens.GenerateToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewInternalError("failed to issue token").WithCause(err))
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"admin": viewOf(admin),
	})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("unauthorized"))
		return
	}

	admin, err := h.repo.FindByEmail(r.Context(), user.Email)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"admin": viewOf(admin)})
}

// ChangePassword handles POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("unauthorized"))
		return
	}

	var req ChangePasswordRequest
	if err := common.ParseJSONBody(w, r, &req, maxAuthBody); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		details := utils.ValidationFieldErrors(&req)
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("invalid change-password request").WithDetails(details))
		return
	}

	admin, err := h.repo.FindByEmail(r.Context(), user.Email)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	if !auth.CheckPassword(admin.PasswordHash, req.CurrentPassword) {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("current password is incorrect"))
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewInternalError("failed to hash password").WithCause(err))
		return
	}
	if err := h.repo.UpdatePassword(r.Context(), admin.Email, hash); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("Password changed", zap.String("email", admin.Email))
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"message": "password updated"})
}

func viewOf(admin *admins.Admin) adminView {
	return adminView{
		ID:    admin.ID,
		Email: admin.Email,
		Name:  admin.Name,
		Role:  admin.Role,
	}
}

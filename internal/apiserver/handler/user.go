package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/crmdeck/crmdeck/internal/apiserver/database"
	"github.com/crmdeck/crmdeck/internal/common/cnst"
	"github.com/crmdeck/crmdeck/internal/common/dto"
	"github.com/crmdeck/crmdeck/internal/i18n"
)

// ListUsers returns all users across tenants. Routed behind the
// superadmin-only middleware.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.db.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternal)
		return
	}

	out := make([]dto.User, 0, len(users))
	for _, u := range users {
		out = append(out, toUserDTO(u))
	}
	c.JSON(http.StatusOK, out)
}

// CreateUser creates an account inside the tenant named by tenant_code.
// The login email is unique across all tenants.
func (h *Handler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.NewErrorWithCode("api.user.invalid_request", i18n.ErrorBadRequest))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := h.db.GetUserByEmail(c.Request.Context(), email); err == nil {
		i18n.RespondWithError(c, i18n.ErrEmailExists.WithParam("Email", email))
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		h.logger.Error("failed to check email", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternal)
		return
	}

	tenant, err := h.db.GetTenantByCode(c.Request.Context(), req.TenantCode)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			i18n.RespondWithError(c, i18n.ErrUnknownTenant.WithParam("Code", req.TenantCode))
			return
		}
		h.logger.Error("failed to resolve tenant", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternal)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternal)
		return
	}

	role := req.Role
	if role == "" {
		role = cnst.RoleRep
	}

	user := &database.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		TenantID:     tenant.ID,
	}
	if err := h.db.CreateUser(c.Request.Context(), user); err != nil {
		h.logger.Error("failed to create user", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternal)
		return
	}
	user.Tenant = tenant

	h.logger.Info("user created",
		zap.String("email", user.Email),
		zap.String("role", user.Role),
		zap.String("tenant", tenant.Code))
	c.JSON(http.StatusCreated, toUserDTO(user))
}

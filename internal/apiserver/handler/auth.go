package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/crmdeck/crmdeck/internal/apiserver/database"
	"github.com/crmdeck/crmdeck/internal/apiserver/tokenstore"
	"github.com/crmdeck/crmdeck/internal/common/cnst"
	"github.com/crmdeck/crmdeck/internal/common/dto"
	"github.com/crmdeck/crmdeck/internal/i18n"
)

// Login authenticates a user against email, password, and tenant code.
// Superadmins skip the tenant check and always land in the master
// tenant; everyone else must name the tenant they belong to.
func (h *Handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadCredentials)
		return
	}

	user, err := h.db.GetUserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			i18n.RespondWithError(c, i18n.ErrBadCredentials)
			return
		}
		h.logger.Error("failed to look up user", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternal)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		i18n.RespondWithError(c, i18n.ErrBadCredentials)
		return
	}

	if user.Tenant == nil {
		i18n.RespondWithError(c, i18n.ErrNoTenantAssigned)
		return
	}

	if user.Role != cnst.RoleSuperAdmin {
		code := strings.TrimSpace(req.TenantCode)
		if code == "" {
			i18n.RespondWithError(c, i18n.ErrTenantCodeRequired)
			return
		}
		if !strings.EqualFold(code, user.Tenant.Code) {
			i18n.RespondWithError(c, i18n.ErrTenantMismatch)
			return
		}
	}

	token, err := h.jwt.GenerateToken(user.ID, user.Email, user.Role, user.Tenant.Code)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternal)
		return
	}

	now := time.Now()
	if err := h.tokens.Save(c.Request.Context(), &tokenstore.Token{
		AccessToken: token,
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.Role,
		TenantCode:  user.Tenant.Code,
		ExpiresAt:   now.Add(h.jwt.Duration()).Unix(),
		CreatedAt:   now.Unix(),
	}); err != nil {
		h.logger.Error("failed to save token", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternal)
		return
	}

	h.logger.Info("user logged in",
		zap.Uint("user_id", user.ID),
		zap.String("role", user.Role),
		zap.String("tenant", user.Tenant.Code))

	c.JSON(http.StatusOK, dto.LoginResponse{
		User:   toUserDTO(user),
		Tenant: toTenantDTO(user.Tenant),
		Token:  token,
	})
}

// Me resolves the bearer token to the account it was issued for. A
// token that logout already revoked is rejected even while the JWT
// itself is still within its lifetime.
func (h *Handler) Me(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		i18n.RespondWithError(c, i18n.ErrNotAuthenticated)
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrSessionRevoked)
		return
	}
	if _, err := h.tokens.Get(c.Request.Context(), token); err != nil {
		i18n.RespondWithError(c, i18n.ErrSessionRevoked)
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			i18n.RespondWithError(c, i18n.ErrSessionRevoked)
			return
		}
		h.logger.Error("failed to look up user", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternal)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		User:   toUserDTO(user),
		Tenant: toTenantDTO(user.Tenant),
	})
}

// Logout revokes the bearer token carried by the request. Unknown
// tokens are treated as already logged out.
func (h *Handler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token != "" {
		if err := h.tokens.Delete(c.Request.Context(), token); err != nil {
			h.logger.Warn("failed to revoke token", zap.Error(err))
		}
	}
	i18n.RespondWithSuccess(c, http.StatusOK, "api.auth.logged_out", nil)
}

package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/crmdeck/crmdeck/internal/apiserver/database"
	"github.com/crmdeck/crmdeck/internal/common/dto"
	"github.com/crmdeck/crmdeck/internal/i18n"
	"github.com/crmdeck/crmdeck/pkg/utils"
)

// ListTenants returns every tenant, master included. The console is
// responsible for hiding the master tenant from management listings.
func (h *Handler) ListTenants(c *gin.Context) {
	tenants, err := h.db.ListTenants(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list tenants", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternal)
		return
	}

	out := make([]dto.Tenant, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, toTenantDTO(t))
	}
	c.JSON(http.StatusOK, out)
}

// CreateTenant provisions a new tenant. An empty code is derived from
// the name; a duplicate code is a conflict.
func (h *Handler) CreateTenant(c *gin.Context) {
	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.NewErrorWithCode("api.tenant.invalid_request", i18n.ErrorBadRequest))
		return
	}

	code := utils.Slugify(utils.FirstNonEmpty(req.Code, req.Name))

	if _, err := h.db.GetTenantByCode(c.Request.Context(), code); err == nil {
		i18n.RespondWithError(c, i18n.ErrTenantExists.WithParam("Code", code))
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		h.logger.Error("failed to check tenant code", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternal)
		return
	}

	tenant := &database.Tenant{
		Name:         strings.TrimSpace(req.Name),
		Code:         code,
		PrimaryColor: req.PrimaryColor,
	}
	if err := h.db.CreateTenant(c.Request.Context(), tenant); err != nil {
		h.logger.Error("failed to create tenant", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternal)
		return
	}

	h.logger.Info("tenant created", zap.String("code", tenant.Code))
	c.JSON(http.StatusCreated, toTenantDTO(tenant))
}

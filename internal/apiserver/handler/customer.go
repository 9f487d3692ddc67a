package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/crmdeck/crmdeck/internal/apiserver/database"
	"github.com/crmdeck/crmdeck/internal/common/dto"
	"github.com/crmdeck/crmdeck/internal/i18n"
)

// resolveTenant looks up the tenant named in the query or body, mapping
// a miss to a 404.
func (h *Handler) resolveTenant(c *gin.Context, code string) (*database.Tenant, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		i18n.RespondWithError(c, i18n.ErrTenantCodeRequired)
		return nil, false
	}

	tenant, err := h.db.GetTenantByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			i18n.RespondWithError(c, i18n.ErrTenantNotFound.WithParam("Code", code))
			return nil, false
		}
		h.logger.Error("failed to resolve tenant", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternal)
		return nil, false
	}
	return tenant, true
}

// ListCustomers serves the legacy customer surface consumed by the
// per-tenant CRM screen. Rows come back newest first.
func (h *Handler) ListCustomers(c *gin.Context) {
	tenant, ok := h.resolveTenant(c, c.Query("tenant_code"))
	if !ok {
		return
	}

	contacts, err := h.db.ListContacts(c.Request.Context(), tenant.ID, c.Query("search"))
	if err != nil {
		h.logger.Error("failed to list customers", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternal)
		return
	}

	out := make([]dto.Customer, 0, len(contacts))
	for _, contact := range contacts {
		out = append(out, toContactDTO(contact, tenant.Code))
	}
	c.JSON(http.StatusOK, out)
}

// CreateCustomer adds a customer to a tenant, get-or-creating the
// company row when a company name is given.
func (h *Handler) CreateCustomer(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.NewErrorWithCode("api.customer.invalid_request", i18n.ErrorBadRequest))
		return
	}

	tenant, ok := h.resolveTenant(c, req.TenantCode)
	if !ok {
		return
	}

	company, err := h.db.GetOrCreateCompany(c.Request.Context(), tenant.ID, strings.TrimSpace(req.CompanyName))
	if err != nil {
		h.logger.Error("failed to resolve company", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternal)
		return
	}

	contact := &database.Contact{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		Address:  strings.TrimSpace(req.Address),
		TenantID: tenant.ID,
	}
	if company != nil {
		contact.CompanyID = company.ID
	}
	if err := h.db.CreateContact(c.Request.Context(), contact); err != nil {
		h.logger.Error("failed to create customer", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternal)
		return
	}
	contact.Company = company

	h.logger.Info("customer created",
		zap.Uint("id", contact.ID),
		zap.String("tenant", tenant.Code))
	c.JSON(http.StatusCreated, toContactDTO(contact, tenant.Code))
}

// GetContact returns one contact scoped to its tenant
func (h *Handler) GetContact(c *gin.Context) {
	tenant, ok := h.resolveTenant(c, c.Query("tenant_code"))
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrContactNotFound)
		return
	}

	contact, err := h.db.GetContact(c.Request.Context(), tenant.ID, uint(id))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			i18n.RespondWithError(c, i18n.ErrContactNotFound.WithParam("ID", id))
			return
		}
		h.logger.Error("failed to get contact", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternal)
		return
	}
	c.JSON(http.StatusOK, toContactDTO(contact, tenant.Code))
}

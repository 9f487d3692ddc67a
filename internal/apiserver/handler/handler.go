// Package handler implements the CRM HTTP API on top of the database
// and token store layers.
package handler

import (
	"go.uber.org/zap"

	"github.com/crmdeck/crmdeck/internal/apiserver/database"
	"github.com/crmdeck/crmdeck/internal/apiserver/tokenstore"
	"github.com/crmdeck/crmdeck/internal/auth/jwt"
	"github.com/crmdeck/crmdeck/internal/common/dto"
)

// Handler bundles the dependencies shared by all route handlers
type Handler struct {
	db     database.Database
	jwt    *jwt.Service
	tokens tokenstore.Store
	logger *zap.Logger
}

// NewHandler creates a handler backed by the given stores
func NewHandler(db database.Database, jwtService *jwt.Service, tokens tokenstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		db:     db,
		jwt:    jwtService,
		tokens: tokens,
		logger: logger.Named("handler"),
	}
}

func toTenantDTO(t *database.Tenant) dto.Tenant {
	if t == nil {
		return dto.Tenant{}
	}
	return dto.Tenant{
		ID:           t.ID,
		Name:         t.Name,
		Code:         t.Code,
		PrimaryColor: t.PrimaryColor,
	}
}

func toUserDTO(u *database.User) dto.User {
	out := dto.User{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
	}
	if u.Tenant != nil {
		out.TenantCode = u.Tenant.Code
	}
	return out
}

func toContactDTO(c *database.Contact, tenantCode string) dto.Contact {
	out := dto.Contact{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		CompanyID:  c.CompanyID,
		TenantID:   c.TenantID,
		TenantCode: tenantCode,
	}
	if c.Company != nil {
		out.CompanyName = c.Company.Name
	}
	return out
}

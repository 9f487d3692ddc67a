package apiserver

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/crmdeck/crmdeck/internal/apiserver/database"
	"github.com/crmdeck/crmdeck/internal/common/cnst"
)

type seedUser struct {
	fullName string
	email    string
	password string
	role     string
	tenant   string
}

type seedContact struct {
	name    string
	email   string
	phone   string
	company string
	tenant  string
}

var seedTenants = []database.Tenant{
	{Name: "Master Admin", Code: cnst.MasterTenantCode},
	{Name: "Home Depot", Code: "home_depot", PrimaryColor: "#F96302"},
	{Name: "Walmart", Code: "walmart", PrimaryColor: "#0071CE"},
	{Name: "Target", Code: "target", PrimaryColor: "#CC0000"},
}

var seedUsers = []seedUser{
	{"Super Admin", "admin@crm.com", "admin123", cnst.RoleSuperAdmin, cnst.MasterTenantCode},
	{"Dana Field", "dana@homedepot.com", "pass1234", cnst.RoleManager, "home_depot"},
	{"Omar Reyes", "omar@homedepot.com", "pass1234", cnst.RoleRep, "home_depot"},
	{"Lena Ortiz", "lena@walmart.com", "pass1234", cnst.RoleManager, "walmart"},
	{"Kai Chen", "kai@walmart.com", "pass1234", cnst.RoleRep, "walmart"},
	{"Ruth Adler", "ruth@target.com", "pass1234", cnst.RoleRep, "target"},
}

var seedContacts = []seedContact{
	{"Alice Martin", "alice@acme.com", "555-0101", "Acme Corp", "home_depot"},
	{"Bruno Silva", "bruno@globex.com", "555-0102", "Globex", "home_depot"},
	{"Carla Nguyen", "carla@initech.com", "555-0103", "Initech", "walmart"},
	{"Derek Boone", "derek@umbrella.io", "555-0104", "Umbrella", "target"},
}

// Seed provisions the master tenant, the superadmin account, and a demo
// data set. It is idempotent: anything already present is left alone.
func Seed(ctx context.Context, db database.Database, logger *zap.Logger) error {
	tenantIDs := make(map[string]uint, len(seedTenants))

	for i := range seedTenants {
		t := seedTenants[i]
		existing, err := db.GetTenantByCode(ctx, t.Code)
		switch {
		case err == nil:
			tenantIDs[t.Code] = existing.ID
			continue
		case !errors.Is(err, database.ErrNotFound):
			return fmt.Errorf("check tenant %s: %w", t.Code, err)
		}

		if err := db.CreateTenant(ctx, &t); err != nil {
			return fmt.Errorf("seed tenant %s: %w", t.Code, err)
		}
		tenantIDs[t.Code] = t.ID
		logger.Info("seeded tenant", zap.String("code", t.Code))
	}

	for _, u := range seedUsers {
		if _, err := db.GetUserByEmail(ctx, u.email); err == nil {
			continue
		} else if !errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("check user %s: %w", u.email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.email, err)
		}
		if err := db.CreateUser(ctx, &database.User{
			FullName:     u.fullName,
			Email:        u.email,
			PasswordHash: string(hash),
			Role:         u.role,
			TenantID:     tenantIDs[u.tenant],
		}); err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
		logger.Info("seeded user", zap.String("email", u.email), zap.String("role", u.role))
	}

	for _, sc := range seedContacts {
		tenantID := tenantIDs[sc.tenant]
		existing, err := db.ListContacts(ctx, tenantID, sc.name)
		if err != nil {
			return fmt.Errorf("check contact %s: %w", sc.name, err)
		}
		if len(existing) > 0 {
			continue
		}

		company, err := db.GetOrCreateCompany(ctx, tenantID, sc.company)
		if err != nil {
			return fmt.Errorf("seed company %s: %w", sc.company, err)
		}
		contact := &database.Contact{
			Name:     sc.name,
			Email:    sc.email,
			Phone:    sc.phone,
			TenantID: tenantID,
		}
		if company != nil {
			contact.CompanyID = company.ID
		}
		if err := db.CreateContact(ctx, contact); err != nil {
			return fmt.Errorf("seed contact %s: %w", sc.name, err)
		}
	}

	return nil
}

package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/crmdeck/crmdeck/internal/common/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) Database {
	t.Helper()
	db, err := NewSQLite(&config.DatabaseConfig{
		Type:   "sqlite",
		DBName: filepath.Join(t.TempDir(), "crm.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestTenantRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tenant := &Tenant{Name: "Acme Corp", Code: "acme_corp", PrimaryColor: "#CC0000"}
	assert.NoError(t, db.CreateTenant(ctx, tenant))
	assert.NotZero(t, tenant.ID)

	got, err := db.GetTenantByCode(ctx, "acme_corp")
	assert.NoError(t, err)
	assert.Equal(t, "Acme Corp", got.Name)

	_, err = db.GetTenantByCode(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	// Duplicate code violates the unique index
	assert.Error(t, db.CreateTenant(ctx, &Tenant{Name: "Other", Code: "acme_corp"}))

	all, err := db.ListTenants(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tenant := &Tenant{Name: "Walmart", Code: "walmart"}
	require.NoError(t, db.CreateTenant(ctx, tenant))

	user := &User{FullName: "Walmart Rep", Email: "rep@walmart.com", PasswordHash: "x", Role: "rep", TenantID: tenant.ID}
	assert.NoError(t, db.CreateUser(ctx, user))

	got, err := db.GetUserByEmail(ctx, "rep@walmart.com")
	assert.NoError(t, err)
	require.NotNil(t, got.Tenant)
	assert.Equal(t, "walmart", got.Tenant.Code)

	byID, err := db.GetUserByID(ctx, user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "rep@walmart.com", byID.Email)

	_, err = db.GetUserByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	users, err := db.ListUsers(ctx)
	assert.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestGetOrCreateCompany(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tenant := &Tenant{Name: "Target", Code: "target"}
	require.NoError(t, db.CreateTenant(ctx, tenant))

	// Empty name: no company
	company, err := db.GetOrCreateCompany(ctx, tenant.ID, "")
	assert.NoError(t, err)
	assert.Nil(t, company)

	first, err := db.GetOrCreateCompany(ctx, tenant.ID, "Globex")
	assert.NoError(t, err)
	require.NotNil(t, first)

	second, err := db.GetOrCreateCompany(ctx, tenant.ID, "Globex")
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestContactsScopedSearchAndOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	t1 := &Tenant{Name: "Home Depot", Code: "home_depot"}
	t2 := &Tenant{Name: "Walmart", Code: "walmart"}
	require.NoError(t, db.CreateTenant(ctx, t1))
	require.NoError(t, db.CreateTenant(ctx, t2))

	company, err := db.GetOrCreateCompany(ctx, t1.ID, "Acme Corp")
	require.NoError(t, err)

	old := &Contact{Name: "Old Contact", TenantID: t1.ID, CreatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, db.CreateContact(ctx, old))
	recent := &Contact{Name: "Jane Smith", Email: "jane@acme.com", CompanyID: company.ID, TenantID: t1.ID}
	require.NoError(t, db.CreateContact(ctx, recent))
	other := &Contact{Name: "Other Tenant", TenantID: t2.ID}
	require.NoError(t, db.CreateContact(ctx, other))

	// Tenant isolation and newest-first ordering
	list, err := db.ListContacts(ctx, t1.ID, "")
	assert.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Jane Smith", list[0].Name)
	assert.Equal(t, "Old Contact", list[1].Name)

	// Case-insensitive search over company name
	found, err := db.ListContacts(ctx, t1.ID, "ACME")
	assert.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Jane Smith", found[0].Name)
	require.NotNil(t, found[0].Company)
	assert.Equal(t, "Acme Corp", found[0].Company.Name)

	// No match is an empty list, not an error
	none, err := db.ListContacts(ctx, t1.ID, "xyz")
	assert.NoError(t, err)
	assert.Empty(t, none)

	got, err := db.GetContact(ctx, t1.ID, recent.ID)
	assert.NoError(t, err)
	assert.Equal(t, "jane@acme.com", got.Email)

	// Contacts of another tenant are invisible
	_, err = db.GetContact(ctx, t2.ID, recent.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFactory(t *testing.T) {
	_, err := NewDatabase(&config.DatabaseConfig{Type: "oracle"})
	assert.Error(t, err)

	db, err := NewDatabase(&config.DatabaseConfig{Type: "sqlite", DBName: filepath.Join(t.TempDir(), "f.db")})
	assert.NoError(t, err)
	assert.NoError(t, db.Close())
}

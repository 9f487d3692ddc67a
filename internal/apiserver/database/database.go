package database

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("record not found")

// Database defines the persistence operations the CRM handlers need.
type Database interface {
	// Close closes the database connection.
	Close() error

	// GetTenantByCode returns the tenant with the given code.
	GetTenantByCode(ctx context.Context, code string) (*Tenant, error)

	// ListTenants returns all tenants, including the master tenant.
	ListTenants(ctx context.Context) ([]*Tenant, error)

	// CreateTenant creates a new tenant.
	CreateTenant(ctx context.Context, tenant *Tenant) error

	// GetUserByEmail returns the user with the given login email.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByID returns the user with the given id.
	GetUserByID(ctx context.Context, id uint) (*User, error)

	// ListUsers returns all users across tenants.
	ListUsers(ctx context.Context) ([]*User, error)

	// CreateUser creates a new user.
	CreateUser(ctx context.Context, user *User) error

	// GetOrCreateCompany finds a company by name within a tenant,
	// creating it when absent. An empty name yields (nil, nil).
	GetOrCreateCompany(ctx context.Context, tenantID uint, name string) (*Company, error)

	// CreateContact creates a new contact.
	CreateContact(ctx context.Context, contact *Contact) error

	// GetContact returns one contact scoped to a tenant.
	GetContact(ctx context.Context, tenantID, id uint) (*Contact, error)

	// ListContacts returns a tenant's contacts, newest first. A non-empty
	// search narrows by name, email, phone, or company name.
	ListContacts(ctx context.Context, tenantID uint, search string) ([]*Contact, error)
}

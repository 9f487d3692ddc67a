package database

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// store is the gorm-backed implementation shared by every driver.
type store struct {
	db *gorm.DB
}

func newStore(gormDB *gorm.DB) (*store, error) {
	if err := gormDB.AutoMigrate(&Tenant{}, &User{}, &Company{}, &Contact{}); err != nil {
		return nil, err
	}
	return &store{db: gormDB}, nil
}

func (s *store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *store) GetTenantByCode(ctx context.Context, code string) (*Tenant, error) {
	var tenant Tenant
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (s *store) ListTenants(ctx context.Context) ([]*Tenant, error) {
	var tenants []*Tenant
	err := s.db.WithContext(ctx).Order("id asc").Find(&tenants).Error
	return tenants, err
}

func (s *store) CreateTenant(ctx context.Context, tenant *Tenant) error {
	return s.db.WithContext(ctx).Create(tenant).Error
}

func (s *store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Preload("Tenant").Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *store) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Preload("Tenant").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *store) ListUsers(ctx context.Context) ([]*User, error) {
	var users []*User
	err := s.db.WithContext(ctx).Preload("Tenant").Order("id asc").Find(&users).Error
	return users, err
}

func (s *store) CreateUser(ctx context.Context, user *User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *store) GetOrCreateCompany(ctx context.Context, tenantID uint, name string) (*Company, error) {
	if name == "" {
		return nil, nil
	}

	var company Company
	err := s.db.WithContext(ctx).
		Where("name = ? AND tenant_id = ?", name, tenantID).
		First(&company).Error
	if err == nil {
		return &company, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	company = Company{Name: name, TenantID: tenantID}
	if err := s.db.WithContext(ctx).Create(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (s *store) CreateContact(ctx context.Context, contact *Contact) error {
	return s.db.WithContext(ctx).Create(contact).Error
}

func (s *store) GetContact(ctx context.Context, tenantID, id uint) (*Contact, error) {
	var contact Contact
	err := s.db.WithContext(ctx).
		Preload("Company").
		Where("tenant_id = ?", tenantID).
		First(&contact, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *store) ListContacts(ctx context.Context, tenantID uint, search string) ([]*Contact, error) {
	q := s.db.WithContext(ctx).
		Model(&Contact{}).
		Preload("Company").
		Joins("LEFT JOIN companies ON companies.id = contacts.company_id").
		Where("contacts.tenant_id = ?", tenantID)

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(contacts.name) LIKE ? OR LOWER(contacts.email) LIKE ? OR LOWER(contacts.phone) LIKE ? OR LOWER(companies.name) LIKE ?",
			like, like, like, like,
		)
	}

	var contacts []*Contact
	err := q.Order("contacts.created_at desc, contacts.id desc").Find(&contacts).Error
	return contacts, err
}

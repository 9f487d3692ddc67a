package database

import "time"

// Tenant represents a company/organization boundary
type Tenant struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Code         string    `json:"code" gorm:"type:varchar(100);uniqueIndex;not null"`
	PrimaryColor string    `json:"primary_color,omitempty" gorm:"type:varchar(20)"`
	CreatedAt    time.Time `json:"created_at"`
}

// User represents a CRM account
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	FullName     string    `json:"full_name" gorm:"type:varchar(100);not null"`
	Email        string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         string    `json:"role" gorm:"type:varchar(30);not null;default:'clerk'"`
	TenantID     uint      `json:"tenant_id" gorm:"index;not null"`
	Tenant       *Tenant   `json:"-" gorm:"foreignKey:TenantID"`
	CreatedAt    time.Time `json:"created_at"`
}

// Company groups contacts inside a tenant
type Company struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(255);index;not null"`
	Industry  string    `json:"industry,omitempty" gorm:"type:varchar(100)"`
	Website   string    `json:"website,omitempty" gorm:"type:varchar(255)"`
	Address   string    `json:"address,omitempty" gorm:"type:varchar(255)"`
	TenantID  uint      `json:"tenant_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Contact is a customer record belonging to exactly one tenant
type Contact struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Email     string    `json:"email,omitempty" gorm:"type:varchar(255);index"`
	Phone     string    `json:"phone,omitempty" gorm:"type:varchar(50)"`
	Address   string    `json:"address,omitempty" gorm:"type:varchar(255)"`
	CompanyID uint      `json:"company_id,omitempty" gorm:"index"`
	Company   *Company  `json:"-" gorm:"foreignKey:CompanyID"`
	TenantID  uint      `json:"tenant_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

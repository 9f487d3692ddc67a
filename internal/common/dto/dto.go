// Package dto holds the JSON shapes shared by the CRM backend and the
// console client. Field names follow the wire contract, snake_case.
package dto

// Tenant is a company/organization boundary
type Tenant struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	PrimaryColor string `json:"primary_color,omitempty"`
}

// User is an account that can log into the CRM
type User struct {
	ID         uint   `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	TenantCode string `json:"tenant_code,omitempty"`
}

// Customer is the legacy contact shape used by the per-tenant CRM screen
type Customer struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	Address     string `json:"address,omitempty"`
	CompanyID   uint   `json:"company_id,omitempty"`
	TenantID    uint   `json:"tenant_id,omitempty"`
	TenantCode  string `json:"tenant_code,omitempty"`
}

// Contact is the richer contact surface; on the wire it is a superset
// of Customer, so the same shape is reused.
type Contact = Customer

// LoginRequest represents a login request
type LoginRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	TenantCode string `json:"tenant_code"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	User   User   `json:"user"`
	Tenant Tenant `json:"tenant"`
	Token  string `json:"token,omitempty"`
}

// CreateTenantRequest represents a request to provision a company.
// An empty code is derived from the name server-side.
type CreateTenantRequest struct {
	Name         string `json:"name" binding:"required"`
	Code         string `json:"code"`
	PrimaryColor string `json:"primary_color"`
}

// CreateUserRequest represents a request to create a user
type CreateUserRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Role       string `json:"role"`
	TenantCode string `json:"tenant_code" binding:"required"`
}

// CreateCustomerRequest carries the add-customer form fields
type CreateCustomerRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	TenantCode  string `json:"tenant_code"`
}

// ErrorResponse is the error envelope returned by the backend. Detail
// carries the human-readable reason.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

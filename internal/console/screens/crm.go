package screens

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/crmdeck/crmdeck/internal/common/dto"
	"github.com/crmdeck/crmdeck/internal/console/api"
	"github.com/crmdeck/crmdeck/internal/console/listview"
	"github.com/crmdeck/crmdeck/internal/console/session"
	"github.com/crmdeck/crmdeck/internal/console/toast"
)

var customerSearchKeys = []string{"name", "email", "phone", "company_name"}

// CRMScreen is the per-tenant customer view. Every query is scoped to
// the session's tenant; a session without a tenant code redirects to
// login instead of issuing an unscoped request.
type CRMScreen struct {
	client   *api.Client
	sessions session.Store
	toasts   *toast.Queue
	logger   *zap.Logger

	mu        sync.Mutex
	customers []dto.Customer
	loading   bool
	adding    bool
	seq       uint64
	search    string
	sort      listview.Sort
}

// NewCRMScreen creates the customer screen
func NewCRMScreen(client *api.Client, sessions session.Store, toasts *toast.Queue, logger *zap.Logger) *CRMScreen {
	return &CRMScreen{
		client:   client,
		sessions: sessions,
		toasts:   toasts,
		logger:   logger.Named("crm"),
	}
}

// requireTenant loads the session and enforces the tenant-code guard
func (s *CRMScreen) requireTenant() (*session.Session, error) {
	sess, err := s.sessions.Load()
	if err != nil {
		return nil, ErrRedirectToLogin
	}
	if sess.TenantCode == "" {
		return nil, ErrRedirectToLogin
	}
	return sess, nil
}

// Tenant returns the active tenant for branding the screen header
func (s *CRMScreen) Tenant() (dto.Tenant, error) {
	sess, err := s.requireTenant()
	if err != nil {
		return dto.Tenant{}, err
	}
	return sess.Tenant, nil
}

// SetSearch updates the search text sent to the backend on Load
func (s *CRMScreen) SetSearch(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = text
}

// ToggleSort applies the column toggle rule to the customer table
func (s *CRMScreen) ToggleSort(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = s.sort.Toggle(key)
}

// Loading reports whether a customer fetch is in flight
func (s *CRMScreen) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Load fetches the tenant's customers. Responses superseded by a newer
// load are dropped rather than applied out of order.
func (s *CRMScreen) Load(ctx context.Context) error {
	sess, err := s.requireTenant()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.loading = true
	s.seq++
	seq := s.seq
	search := s.search
	s.mu.Unlock()

	customers, err := s.client.ListCustomers(ctx, sess.TenantCode, search)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return nil
	}
	s.loading = false
	if err != nil {
		s.toasts.Push(toast.Error, "Failed to load customers", errDetail(err))
		return err
	}
	s.customers = customers
	return nil
}

// Visible returns the customer rows to render, client-side sorted
func (s *CRMScreen) Visible() []dto.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	return listview.Apply(s.customers, listview.Query{
		SearchKeys: customerSearchKeys,
		Sort:       s.sort,
	}, customerField)
}

// AddCustomer validates the form and creates a customer in the
// session's tenant.
func (s *CRMScreen) AddCustomer(ctx context.Context, name, email, phone, companyName, address string) (*dto.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}

	sess, err := s.requireTenant()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.adding {
		s.mu.Unlock()
		return nil, ErrInFlight
	}
	s.adding = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.adding = false
		s.mu.Unlock()
	}()

	created, err := s.client.CreateCustomer(ctx, dto.CreateCustomerRequest{
		Name:        name,
		Email:       strings.TrimSpace(email),
		Phone:       strings.TrimSpace(phone),
		CompanyName: strings.TrimSpace(companyName),
		Address:     strings.TrimSpace(address),
		TenantCode:  sess.TenantCode,
	})
	if err != nil {
		s.toasts.Push(toast.Error, "Failed to add customer", errDetail(err))
		return nil, err
	}

	s.mu.Lock()
	// Newest first, matching the backend's ordering
	s.customers = append([]dto.Customer{*created}, s.customers...)
	s.mu.Unlock()

	s.logger.Info("customer added",
		zap.Uint("id", created.ID),
		zap.String("tenant", sess.TenantCode))
	s.toasts.Push(toast.Success, "Customer added", created.Name)
	return created, nil
}

func customerField(c dto.Customer, field string) string {
	switch field {
	case "name":
		return c.Name
	case "email":
		return c.Email
	case "phone":
		return c.Phone
	case "company_name":
		return c.CompanyName
	case "address":
		return c.Address
	default:
		return ""
	}
}

package screens

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/crmdeck/crmdeck/internal/common/cnst"
	"github.com/crmdeck/crmdeck/internal/common/dto"
	"github.com/crmdeck/crmdeck/internal/console/api"
	"github.com/crmdeck/crmdeck/internal/console/listview"
	"github.com/crmdeck/crmdeck/internal/console/session"
	"github.com/crmdeck/crmdeck/internal/console/toast"
	"github.com/crmdeck/crmdeck/pkg/utils"
)

var tenantSearchKeys = []string{"name", "code"}
var userSearchKeys = []string{"full_name", "email", "tenant_code"}

// AdminScreen is the super-admin console: tenant provisioning and user
// management across tenants.
type AdminScreen struct {
	client   *api.Client
	sessions session.Store
	toasts   *toast.Queue
	logger   *zap.Logger

	mu sync.Mutex

	tenants []dto.Tenant
	users   []dto.User

	loadingTenants bool
	loadingUsers   bool
	creatingTenant bool
	creatingUser   bool

	// Request-sequence tokens: a response is applied only when it still
	// belongs to the newest request for that collection.
	tenantSeq uint64
	userSeq   uint64

	search     string
	roleFilter string
	tenantSort listview.Sort
	userSort   listview.Sort
}

// NewAdminScreen creates the admin console screen
func NewAdminScreen(client *api.Client, sessions session.Store, toasts *toast.Queue, logger *zap.Logger) *AdminScreen {
	return &AdminScreen{
		client:     client,
		sessions:   sessions,
		toasts:     toasts,
		logger:     logger.Named("admin"),
		roleFilter: cnst.RoleFilterAll,
	}
}

// requireSuperadmin loads the session and rejects everyone else
func (s *AdminScreen) requireSuperadmin() (*session.Session, error) {
	sess, err := s.sessions.Load()
	if err != nil {
		return nil, ErrRedirectToLogin
	}
	if sess.Role != cnst.RoleSuperAdmin {
		return nil, ErrRedirectToLogin
	}
	return sess, nil
}

// LoadTenants fetches the tenant list. Loads may overlap; only the
// newest request's response is applied, older ones are dropped.
func (s *AdminScreen) LoadTenants(ctx context.Context) error {
	if _, err := s.requireSuperadmin(); err != nil {
		return err
	}

	s.mu.Lock()
	s.loadingTenants = true
	s.tenantSeq++
	seq := s.tenantSeq
	s.mu.Unlock()

	tenants, err := s.client.ListTenants(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.tenantSeq {
		// A newer load superseded this one
		return nil
	}
	s.loadingTenants = false
	if err != nil {
		s.toasts.Push(toast.Error, "Failed to load companies", errDetail(err))
		return err
	}
	s.tenants = tenants
	return nil
}

// LoadUsers fetches all users, authorized by the session's user id
func (s *AdminScreen) LoadUsers(ctx context.Context) error {
	sess, err := s.requireSuperadmin()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.loadingUsers = true
	s.userSeq++
	seq := s.userSeq
	s.mu.Unlock()

	users, err := s.client.ListUsers(ctx, sess.UserID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.userSeq {
		return nil
	}
	s.loadingUsers = false
	if err != nil {
		s.toasts.Push(toast.Error, "Failed to load users", errDetail(err))
		return err
	}
	s.users = users
	return nil
}

// Loading reports the in-flight flags for the two collections
func (s *AdminScreen) Loading() (tenants, users bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadingTenants, s.loadingUsers
}

// SetSearch updates the free-text filter applied to both tables
func (s *AdminScreen) SetSearch(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = text
}

// SetRoleFilter narrows the user table to one role; cnst.RoleFilterAll
// clears it.
func (s *AdminScreen) SetRoleFilter(role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roleFilter = role
}

// ToggleTenantSort applies the column toggle rule to the tenant table
func (s *AdminScreen) ToggleTenantSort(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenantSort = s.tenantSort.Toggle(key)
}

// ToggleUserSort applies the column toggle rule to the user table
func (s *AdminScreen) ToggleUserSort(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userSort = s.userSort.Toggle(key)
}

// VisibleTenants returns the rows to render, hiding the master tenant
func (s *AdminScreen) VisibleTenants() []dto.Tenant {
	s.mu.Lock()
	defer s.mu.Unlock()

	withoutMaster := make([]dto.Tenant, 0, len(s.tenants))
	for _, t := range s.tenants {
		if t.Code == cnst.MasterTenantCode {
			continue
		}
		withoutMaster = append(withoutMaster, t)
	}

	return listview.Apply(withoutMaster, listview.Query{
		Search:     s.search,
		SearchKeys: tenantSearchKeys,
		Sort:       s.tenantSort,
	}, tenantField)
}

// VisibleUsers returns the user rows to render
func (s *AdminScreen) VisibleUsers() []dto.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return listview.Apply(s.users, listview.Query{
		Search:      s.search,
		SearchKeys:  userSearchKeys,
		FilterKey:   "role",
		FilterValue: s.roleFilter,
		Sort:        s.userSort,
	}, userField)
}

// CreateTenant validates the form and provisions a company. An empty
// code is derived from the name.
func (s *AdminScreen) CreateTenant(ctx context.Context, name, code, primaryColor string) (*dto.Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	if code == "" {
		code = utils.Slugify(name)
	}

	if _, err := s.requireSuperadmin(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.creatingTenant {
		s.mu.Unlock()
		return nil, ErrInFlight
	}
	s.creatingTenant = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.creatingTenant = false
		s.mu.Unlock()
	}()

	created, err := s.client.CreateTenant(ctx, dto.CreateTenantRequest{
		Name:         name,
		Code:         code,
		PrimaryColor: primaryColor,
	})
	if err != nil {
		s.toasts.Push(toast.Error, "Failed to create company", errDetail(err))
		return nil, err
	}

	s.mu.Lock()
	s.tenants = append(s.tenants, *created)
	s.mu.Unlock()

	s.logger.Info("tenant created", zap.String("code", created.Code))
	s.toasts.Push(toast.Success, "Company created", created.Name)
	return created, nil
}

// CreateUser validates the form and creates an account in the tenant
// named by tenantCode.
func (s *AdminScreen) CreateUser(ctx context.Context, fullName, email, password, role, tenantCode string) (*dto.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	switch {
	case fullName == "":
		return nil, &ValidationError{Field: "full_name", Reason: "required"}
	case email == "":
		return nil, &ValidationError{Field: "email", Reason: "required"}
	case password == "":
		return nil, &ValidationError{Field: "password", Reason: "required"}
	case tenantCode == "":
		return nil, &ValidationError{Field: "tenant_code", Reason: "required"}
	}

	sess, err := s.requireSuperadmin()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.creatingUser {
		s.mu.Unlock()
		return nil, ErrInFlight
	}
	s.creatingUser = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.creatingUser = false
		s.mu.Unlock()
	}()

	created, err := s.client.CreateUser(ctx, sess.UserID, dto.CreateUserRequest{
		FullName:   fullName,
		Email:      email,
		Password:   password,
		Role:       role,
		TenantCode: tenantCode,
	})
	if err != nil {
		s.toasts.Push(toast.Error, "Failed to create user", errDetail(err))
		return nil, err
	}

	s.mu.Lock()
	s.users = append(s.users, *created)
	s.mu.Unlock()

	s.logger.Info("user created", zap.String("email", created.Email))
	s.toasts.Push(toast.Success, "User created", created.FullName)
	return created, nil
}

func tenantField(t dto.Tenant, field string) string {
	switch field {
	case "name":
		return t.Name
	case "code":
		return t.Code
	default:
		return ""
	}
}

func userField(u dto.User, field string) string {
	switch field {
	case "full_name":
		return u.FullName
	case "email":
		return u.Email
	case "role":
		return u.Role
	case "tenant_code":
		return u.TenantCode
	default:
		return ""
	}
}

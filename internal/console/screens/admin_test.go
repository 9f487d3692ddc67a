package screens

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crmdeck/crmdeck/internal/common/cnst"
	"github.com/crmdeck/crmdeck/internal/common/dto"
	"github.com/crmdeck/crmdeck/internal/console/api"
	"github.com/crmdeck/crmdeck/internal/console/session"
	"github.com/crmdeck/crmdeck/internal/console/toast"
)

func superadminSession() *session.Session {
	return &session.Session{
		UserID: 1, Role: cnst.RoleSuperAdmin, UserEmail: "admin@crm.com",
		TenantCode: cnst.MasterTenantCode, TenantName: "Master Admin",
	}
}

func newAdminScreen(t *testing.T, handler http.Handler) (*AdminScreen, session.Store, *toast.Queue) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sessions := session.NewMemoryStore()
	toasts := toast.NewQueue(time.Minute)
	t.Cleanup(toasts.Close)

	return NewAdminScreen(api.NewClient(srv.URL), sessions, toasts, zap.NewNop()), sessions, toasts
}

func TestAdminRequiresSuperadmin(t *testing.T) {
	s, sessions, _ := newAdminScreen(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	assert.ErrorIs(t, s.LoadTenants(context.Background()), ErrRedirectToLogin)

	require.NoError(t, sessions.Save(&session.Session{UserID: 5, Role: cnst.RoleRep, TenantCode: "walmart"}))
	assert.ErrorIs(t, s.LoadUsers(context.Background()), ErrRedirectToLogin)
	_, err := s.CreateTenant(context.Background(), "Costco", "", "")
	assert.ErrorIs(t, err, ErrRedirectToLogin)
}

func TestVisibleTenantsHideMasterAndFilterSort(t *testing.T) {
	s, sessions, _ := newAdminScreen(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]dto.Tenant{
			{ID: 1, Name: "Master Admin", Code: cnst.MasterTenantCode},
			{ID: 2, Name: "Walmart", Code: "walmart"},
			{ID: 3, Name: "acme corp", Code: "acme"},
			{ID: 4, Name: "Target", Code: "target"},
		})
	}))
	require.NoError(t, sessions.Save(superadminSession()))
	require.NoError(t, s.LoadTenants(context.Background()))

	visible := s.VisibleTenants()
	require.Len(t, visible, 3)
	for _, v := range visible {
		assert.NotEqual(t, cnst.MasterTenantCode, v.Code)
	}

	s.ToggleTenantSort("name")
	visible = s.VisibleTenants()
	assert.Equal(t, []string{"acme corp", "Target", "Walmart"}, tenantNames(visible))

	s.ToggleTenantSort("name")
	visible = s.VisibleTenants()
	assert.Equal(t, []string{"Walmart", "Target", "acme corp"}, tenantNames(visible))

	s.SetSearch("ACME")
	visible = s.VisibleTenants()
	require.Len(t, visible, 1)
	assert.Equal(t, "acme corp", visible[0].Name)
}

func TestVisibleUsersRoleFilter(t *testing.T) {
	s, sessions, _ := newAdminScreen(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.Header.Get(cnst.XUserID))
		_ = json.NewEncoder(w).Encode([]dto.User{
			{ID: 10, FullName: "Bob", Role: cnst.RoleRep, TenantCode: "walmart"},
			{ID: 11, FullName: "Ann", Role: cnst.RoleManager, TenantCode: "target"},
		})
	}))
	require.NoError(t, sessions.Save(superadminSession()))
	require.NoError(t, s.LoadUsers(context.Background()))

	assert.Len(t, s.VisibleUsers(), 2)

	s.SetRoleFilter(cnst.RoleManager)
	visible := s.VisibleUsers()
	require.Len(t, visible, 1)
	assert.Equal(t, "Ann", visible[0].FullName)

	s.SetRoleFilter(cnst.RoleFilterAll)
	assert.Len(t, s.VisibleUsers(), 2)
}

func TestCreateTenantDerivesCodeAndToasts(t *testing.T) {
	s, sessions, toasts := newAdminScreen(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req dto.CreateTenantRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "costco_wholesale", req.Code)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(dto.Tenant{ID: 9, Name: req.Name, Code: req.Code})
	}))
	require.NoError(t, sessions.Save(superadminSession()))

	created, err := s.CreateTenant(context.Background(), "Costco Wholesale", "", "#E31837")
	require.NoError(t, err)
	assert.Equal(t, "costco_wholesale", created.Code)

	// The new tenant appears without a reload
	assert.Len(t, s.VisibleTenants(), 1)

	items := toasts.Snapshot()
	require.Len(t, items, 1)
	assert.Equal(t, toast.Success, items[0].Kind)
}

func TestCreateTenantValidation(t *testing.T) {
	s, sessions, _ := newAdminScreen(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))
	require.NoError(t, sessions.Save(superadminSession()))

	_, err := s.CreateTenant(context.Background(), "   ", "", "")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)
}

func TestCreateTenantConflictToast(t *testing.T) {
	s, sessions, toasts := newAdminScreen(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail":"Tenant with code 'walmart' already exists"}`))
	}))
	require.NoError(t, sessions.Save(superadminSession()))

	_, err := s.CreateTenant(context.Background(), "Walmart", "walmart", "")
	require.Error(t, err)

	items := toasts.Snapshot()
	require.Len(t, items, 1)
	assert.Equal(t, toast.Error, items[0].Kind)
	assert.Contains(t, items[0].Message, "already exists")
}

func TestCreateUserValidationOrder(t *testing.T) {
	s, sessions, _ := newAdminScreen(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))
	require.NoError(t, sessions.Save(superadminSession()))

	var ve *ValidationError
	_, err := s.CreateUser(context.Background(), "", "a@b.c", "pw", "rep", "walmart")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "full_name", ve.Field)

	_, err = s.CreateUser(context.Background(), "Ann", "a@b.c", "pw", "rep", "")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "tenant_code", ve.Field)
}

func TestStaleTenantResponseIsDropped(t *testing.T) {
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex
	s, sessions, _ := newAdminScreen(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()

		if first {
			<-release // hold the first response until the second is done
			_ = json.NewEncoder(w).Encode([]dto.Tenant{{ID: 1, Name: "Stale", Code: "stale"}})
			return
		}
		_ = json.NewEncoder(w).Encode([]dto.Tenant{{ID: 2, Name: "Fresh", Code: "fresh"}})
	}))
	require.NoError(t, sessions.Save(superadminSession()))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.LoadTenants(context.Background())
	}()

	// Wait until the first request is parked in the handler
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1
	}, time.Second, time.Millisecond)

	require.NoError(t, s.LoadTenants(context.Background()))
	close(release)
	wg.Wait()

	visible := s.VisibleTenants()
	require.Len(t, visible, 1)
	assert.Equal(t, "Fresh", visible[0].Name)
}

func tenantNames(ts []dto.Tenant) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Name)
	}
	return out
}

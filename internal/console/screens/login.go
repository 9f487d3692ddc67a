package screens

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/crmdeck/crmdeck/internal/common/cnst"
	"github.com/crmdeck/crmdeck/internal/common/dto"
	"github.com/crmdeck/crmdeck/internal/console/api"
	"github.com/crmdeck/crmdeck/internal/console/session"
	"github.com/crmdeck/crmdeck/internal/console/toast"
)

// LoginScreen authenticates a user and establishes the session
type LoginScreen struct {
	client   *api.Client
	sessions session.Store
	toasts   *toast.Queue
	logger   *zap.Logger

	mu         sync.Mutex
	submitting bool
}

// NewLoginScreen creates the login screen
func NewLoginScreen(client *api.Client, sessions session.Store, toasts *toast.Queue, logger *zap.Logger) *LoginScreen {
	return &LoginScreen{
		client:   client,
		sessions: sessions,
		toasts:   toasts,
		logger:   logger.Named("login"),
	}
}

// Submitting reports whether a login is currently in flight
func (s *LoginScreen) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Submit validates the form, performs the login call, and on success
// saves the session and returns the screen the user lands on.
func (s *LoginScreen) Submit(ctx context.Context, email, password, tenantCode string) (Route, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return RouteLogin, &ValidationError{Field: "email", Reason: "required"}
	}
	if password == "" {
		return RouteLogin, &ValidationError{Field: "password", Reason: "required"}
	}

	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return RouteLogin, ErrInFlight
	}
	s.submitting = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	resp, err := s.client.Login(ctx, dto.LoginRequest{
		Email:      email,
		Password:   password,
		TenantCode: strings.TrimSpace(tenantCode),
	})
	if err != nil {
		s.toasts.Push(toast.Error, "Login failed", errDetail(err))
		return RouteLogin, err
	}

	if err := s.sessions.Save(session.FromLogin(resp)); err != nil {
		s.logger.Error("failed to persist session", zap.Error(err))
		return RouteLogin, err
	}

	s.logger.Info("logged in",
		zap.String("email", resp.User.Email),
		zap.String("role", resp.User.Role),
		zap.String("tenant", resp.Tenant.Code))
	s.toasts.Push(toast.Success, "Welcome back", resp.User.FullName)

	return RouteForRole(resp.User.Role), nil
}

// Logout revokes the token, clears the session, and routes to login.
// A failed revocation still clears locally.
func (s *LoginScreen) Logout(ctx context.Context) Route {
	if sess, err := s.sessions.Load(); err == nil && sess.Token != "" {
		if err := s.client.Logout(ctx, sess.Token); err != nil {
			s.logger.Warn("server-side logout failed", zap.Error(err))
		}
	}
	if err := s.sessions.Clear(); err != nil {
		s.logger.Warn("failed to clear session", zap.Error(err))
	}
	return RouteLogin
}

// errDetail prefers the backend's detail message over transport noise
func errDetail(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return err.Error()
}

// RoleHome resolves the saved session to a landing screen, or sends
// the user to login when no session exists.
func (s *LoginScreen) RoleHome() Route {
	sess, err := s.sessions.Load()
	if err != nil {
		return RouteLogin
	}
	if sess.Role != cnst.RoleSuperAdmin && sess.TenantCode == "" {
		return RouteLogin
	}
	return RouteForRole(sess.Role)
}

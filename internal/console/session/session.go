// Package session persists the authenticated identity and active
// tenant scope between console invocations.
package session

import (
	"errors"

	"github.com/crmdeck/crmdeck/internal/common/dto"
)

// ErrNoSession is returned when no session has been saved or it was cleared
var ErrNoSession = errors.New("no active session")

// Session is the state written once after a successful login.
type Session struct {
	UserID     uint       `json:"user_id"`
	Role       string     `json:"role"`
	UserEmail  string     `json:"user_email"`
	Tenant     dto.Tenant `json:"tenant"`
	TenantCode string     `json:"tenant_code"`
	TenantName string     `json:"tenant_name"`
	Token      string     `json:"token,omitempty"`
}

// FromLogin builds the session recorded for a login response
func FromLogin(resp *dto.LoginResponse) *Session {
	return &Session{
		UserID:     resp.User.ID,
		Role:       resp.User.Role,
		UserEmail:  resp.User.Email,
		Tenant:     resp.Tenant,
		TenantCode: resp.Tenant.Code,
		TenantName: resp.Tenant.Name,
		Token:      resp.Token,
	}
}

// Store holds at most one session
type Store interface {
	// Load returns the saved session, or ErrNoSession.
	Load() (*Session, error)
	// Save overwrites the stored session wholesale.
	Save(s *Session) error
	// Clear removes the session. Clearing an empty store is a no-op.
	Clear() error
}

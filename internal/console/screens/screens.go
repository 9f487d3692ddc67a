// Package screens holds the console's interactive state machines: the
// login screen, the super-admin console, and the per-tenant CRM view.
// Each screen owns its own state; the session store is the only thing
// shared between them.
package screens

import (
	"errors"

	"github.com/crmdeck/crmdeck/internal/common/cnst"
)

// Route names a top-level screen
type Route string

const (
	RouteLogin Route = "login"
	RouteAdmin Route = "admin"
	RouteCRM   Route = "crm"
)

var (
	// ErrInFlight means the same action is already running; the caller
	// should not resubmit.
	ErrInFlight = errors.New("action already in flight")
	// ErrRedirectToLogin means required session context is absent and
	// the only recovery is the login screen.
	ErrRedirectToLogin = errors.New("session required, redirect to login")
)

// ValidationError is a client-side form failure attached to one field,
// raised before any request is issued.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// RouteForRole decides where a fresh login lands
func RouteForRole(role string) Route {
	if role == cnst.RoleSuperAdmin {
		return RouteAdmin
	}
	return RouteCRM
}

// RoleLabel renders a role tag for display. Unknown tags read as
// sales reps.
func RoleLabel(role string) string {
	switch role {
	case cnst.RoleSuperAdmin:
		return "Super Admin"
	case cnst.RoleManager:
		return "Manager"
	default:
		return "Sales Rep"
	}
}

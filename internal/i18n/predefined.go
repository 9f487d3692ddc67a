package i18n

// Predefined errors for the CRM API. Message IDs resolve against the
// TOML files under configs/i18n.
var (
	ErrBadCredentials     = NewErrorWithCode("api.auth.bad_credentials", ErrorUnauthorized)
	ErrTenantMismatch     = NewErrorWithCode("api.auth.tenant_mismatch", ErrorUnauthorized)
	ErrTenantCodeRequired = NewErrorWithCode("api.auth.tenant_code_required", ErrorBadRequest)
	ErrNoTenantAssigned   = NewErrorWithCode("api.auth.no_tenant_assigned", ErrorBadRequest)
	ErrNotAuthenticated   = NewErrorWithCode("api.auth.not_authenticated", ErrorUnauthorized)
	ErrSessionRevoked     = NewErrorWithCode("api.auth.session_revoked", ErrorUnauthorized)
	ErrSuperadminOnly     = NewErrorWithCode("api.auth.superadmin_only", ErrorForbidden)

	ErrTenantExists   = NewErrorWithCode("api.tenant.exists", ErrorConflict)
	ErrTenantNotFound = NewErrorWithCode("api.tenant.not_found", ErrorNotFound)
	ErrUnknownTenant  = NewErrorWithCode("api.tenant.unknown", ErrorBadRequest)

	ErrEmailExists     = NewErrorWithCode("api.user.email_exists", ErrorConflict)
	ErrContactNotFound = NewErrorWithCode("api.contact.not_found", ErrorNotFound)

	ErrInternal = NewErrorWithCode("api.internal", ErrorInternalServer)
)

package cnst

// MasterTenantCode is the reserved tenant code for the super-admin
// context. It is never shown in tenant-management listings.
const MasterTenantCode = "master"

// Roles recognized by the console. The set is open: unknown role tags
// coming from the backend are tolerated and shown as sales reps.
const (
	RoleSuperAdmin = "superadmin"
	RoleManager    = "manager"
	RoleRep        = "rep"
)

// RoleFilterAll is the sentinel value meaning "do not filter by role".
const RoleFilterAll = "all"

// XUserID is the header carrying the caller identity on the users
// endpoints. The backend resolves it to a user row for authorization.
const XUserID = "user_id"

// Supported languages for translated messages
const (
	LangEN = "en"
	LangES = "es"
)

// AcceptLanguage is the header used to negotiate the response language.
const AcceptLanguage = "Accept-Language"

package domain

// Role identifies one of the four tenant/actor categories the portal serves.
// The set is closed: tokens, cookies and route prefixes are all keyed by it.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleClient     Role = "client"
	RoleUser       Role = "user"
)

// AllRoles lists every role in a fixed order.
func AllRoles() []Role {
	return []Role{RoleSuperAdmin, RoleAdmin, RoleClient, RoleUser}
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleClient, RoleUser:
		return true
	}
	return false
}

// CredentialKey is the storage key holding this role's bearer token
// (cookie name in the portal, localStorage key in legacy clients).
func (r Role) CredentialKey() string {
	return "token_" + string(r)
}

// LoginPath is the role's dedicated login route. There is no unified login:
// a guard that bounces a navigation must always target the route's own role.
func (r Role) LoginPath() string {
	switch r {
	case RoleSuperAdmin:
		return "/super-admin/login"
	case RoleAdmin:
		return "/admin/login"
	case RoleClient:
		return "/client/login"
	default:
		return "/user/login"
	}
}

// DashboardPath is where a guest-only route redirects an already
// authenticated session of this role.
func (r Role) DashboardPath() string {
	switch r {
	case RoleSuperAdmin:
		return "/super-admin/overview"
	case RoleAdmin:
		return "/admin/overview"
	case RoleClient:
		return "/client/overview"
	default:
		return "/mobile/user/dashboard"
	}
}

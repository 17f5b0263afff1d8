package models

// Role is a staff role as reported by the backend.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleManager   Role = "MANAGER"
	RoleCashier   Role = "CASHIER"
	RoleWaiter    Role = "WAITER"
	RoleCook      Role = "COOK"
	RoleBartender Role = "BARTENDER"
)

// Roles lists every known role.
var Roles = []Role{RoleAdmin, RoleManager, RoleCashier, RoleWaiter, RoleCook, RoleBartender}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User is the authenticated staff member.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
}

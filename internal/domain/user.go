package domain

type ContextKey string

const UserContextKey ContextKey = "user"

// Roles allowed through the shipping permission gate.
const (
	RoleAdmin       = "admin"
	RoleShopManager = "shop_manager"
)

// User is the partial principal built from token claims.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// CanManageShipping reports whether the user may read or edit shipping configuration.
func (u *User) CanManageShipping() bool {
	return u != nil && (u.Role == RoleAdmin || u.Role == RoleShopManager)
}

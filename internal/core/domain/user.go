package domain

import (
	"errors"
	"time"
)

// Role is the closed set of actor types on the platform.
type Role string

const (
	RolePro    Role = "pro"
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePro, RoleClient, RoleAdmin:
		return true
	}
	return false
}

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrInvalidRegistration = errors.New("invalid registration details")
var ErrUnknownRole = errors.New("unknown role")
var ErrSelfDeletion = errors.New("cannot delete own account")
var ErrForbidden = errors.New("access forbidden")

// User models an authenticated actor in the system. PasswordHash is empty for
// OAuth-only accounts; such accounts can never pass a password login.
type User struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	Role               Role      `json:"role"`
	Country            string    `json:"country,omitempty"`
	City               string    `json:"city,omitempty"`
	Timezone           string    `json:"timezone,omitempty"`
	SubscriptionTier   string    `json:"subscription_tier,omitempty"`
	SubscriptionStatus string    `json:"subscription_status,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NavItem is a single entry in a role's navigation set.
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon"`
}

// navigationSets is the static role → navigation mapping. Item sets depend on
// role only, never on per-user attributes.
var navigationSets = map[Role][]NavItem{
	RolePro: {
		{Label: "Dashboard", Path: "/pro", Icon: "layout-dashboard"},
		{Label: "Projects", Path: "/pro/projects", Icon: "briefcase"},
		{Label: "Invoices", Path: "/pro/invoices", Icon: "receipt"},
		{Label: "Reporting", Path: "/pro/reporting", Icon: "bar-chart"},
	},
	RoleClient: {
		{Label: "Dashboard", Path: "/client", Icon: "layout-dashboard"},
		{Label: "Projects", Path: "/client/projects", Icon: "briefcase"},
		{Label: "Invoices", Path: "/client/invoices", Icon: "receipt"},
	},
	RoleAdmin: {
		{Label: "Overview", Path: "/admin", Icon: "layout-dashboard"},
		{Label: "Users", Path: "/admin/users", Icon: "users"},
		{Label: "Transactions", Path: "/admin/transactions", Icon: "credit-card"},
	},
}

var dashboardRoots = map[Role]string{
	RolePro:    "/pro",
	RoleClient: "/client",
	RoleAdmin:  "/admin",
}

// NavigationFor returns the navigation set and dashboard root for a role.
// Unknown roles fail closed: no default set is ever handed out.
func NavigationFor(role Role) ([]NavItem, string, error) {
	items, ok := navigationSets[role]
	if !ok {
		return nil, "", ErrUnknownRole
	}
	return items, dashboardRoots[role], nil
}

package ports

import (
	"context"

	"github.com/promarket/marketplace-api/internal/core/domain"
)

// ListUsersFilter carries query parameters for the admin user listing.
type ListUsersFilter struct {
	Role  domain.Role // optional: filter by role
	Page  int         // 1-based
	Limit int         // max rows per page (capped by the service)
}

// UserUpdate carries the mutable fields of a user record. Nil pointers mean
// "leave unchanged". Role and email are immutable through this path.
type UserUpdate struct {
	Name               *string
	Country            *string
	City               *string
	Timezone           *string
	SubscriptionTier   *string
	SubscriptionStatus *string
}

// UserRepository defines persistence operations for user records.
// Emails are stored lowercased; lookups expect pre-normalized input.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// CountByRole returns the number of users per role across the platform.
	CountByRole(ctx context.Context) (map[domain.Role]int64, error)
	// ListPros returns public marketplace listings (pros only, no pagination cap
	// beyond limit).
	ListPros(ctx context.Context, page, limit int) ([]*domain.User, int64, error)
}

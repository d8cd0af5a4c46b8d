package ports

import (
	"context"

	"github.com/promarket/marketplace-api/internal/core/domain"
)

// ListUsersInput carries parameters for the admin user listing endpoint.
type ListUsersInput struct {
	Role  string
	Page  int
	Limit int
}

// ListUsersResult is a page of users plus pagination info.
type ListUsersResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UpdateUserInput carries the admin-editable fields; nil means unchanged.
type UpdateUserInput struct {
	Name               *string
	Country            *string
	City               *string
	Timezone           *string
	SubscriptionTier   *string
	SubscriptionStatus *string
}

// UserService defines admin user lifecycle operations plus the public
// marketplace listing.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, input ListUsersInput) (*ListUsersResult, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	// Delete removes a user. callerID is the requesting admin; deleting one's
	// own account is rejected with domain.ErrSelfDeletion before any other check.
	Delete(ctx context.Context, callerID, id string) error
	ListMarketplacePros(ctx context.Context, page, limit int) (*ListUsersResult, error)
}

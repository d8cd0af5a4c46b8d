package ports

import (
	"context"

	"github.com/promarket/marketplace-api/internal/core/domain"
)

// RegisterInput carries all data needed to create a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Country  string
	City     string
	Timezone string
}

// AuthService implements registration and credential exchange.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies email+password and mints a session token. Unknown email
	// and wrong password both fail with domain.ErrInvalidCredentials; callers
	// must not be able to tell them apart.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

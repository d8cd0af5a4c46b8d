package handler

import "github.com/promarket/marketplace-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=pro client admin"`
	Country  string `json:"country"`
	City     string `json:"city"`
	Timezone string `json:"timezone"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Token         string           `json:"token,omitempty"`
	User          *domain.User     `json:"user,omitempty"`
	Navigation    []domain.NavItem `json:"navigation,omitempty"`
	DashboardPath string           `json:"dashboard_path,omitempty"`
}

package ports

import (
	"context"
	"time"

	"github.com/promarket/marketplace-api/internal/core/domain"
)

// ListProjectsFilter carries query parameters for listing projects.
// ProID/ClientID scoping is always enforced by the service layer for non-admin
// callers.
type ListProjectsFilter struct {
	ProID    string // non-empty = scoped to pro
	ClientID string // non-empty = scoped to client
	Status   domain.ProjectStatus
	Page     int
	Limit    int
}

// ProjectUpdate carries the mutable fields of a project. Nil pointers mean
// "leave unchanged"; Milestones/Deliverables, when non-nil, replace the stored
// slices wholesale.
type ProjectUpdate struct {
	Title        *string
	Description  *string
	Status       *domain.ProjectStatus
	Budget       *float64
	StartDate    *time.Time
	EndDate      *time.Time
	Milestones   []domain.Milestone
	Deliverables []domain.Deliverable
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter ListProjectsFilter) ([]*domain.Project, int64, error)
	Update(ctx context.Context, id string, update ProjectUpdate) (*domain.Project, error)
	Delete(ctx context.Context, id string) error

	// CountOpen returns the number of planning/active projects for a pro
	// (all pros when proID is empty).
	CountOpen(ctx context.Context, proID string) (int64, error)
	// CountOpenCreatedBetween returns the number of planning/active projects
	// for a pro created inside [from, to).
	CountOpenCreatedBetween(ctx context.Context, proID string, from, to time.Time) (int64, error)
	// OpenClientIDs returns the distinct client ids of a pro's planning/active
	// projects.
	OpenClientIDs(ctx context.Context, proID string) ([]string, error)
	// CountByStatus returns project counts grouped by status for a pro
	// (platform-wide when proID is empty).
	CountByStatus(ctx context.Context, proID string) (map[domain.ProjectStatus]int64, error)
}

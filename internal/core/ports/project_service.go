package ports

import (
	"context"
	"time"

	"github.com/promarket/marketplace-api/internal/core/domain"
)

// Actor identifies the authenticated caller for ownership checks.
type Actor struct {
	UserID string
	Role   domain.Role
}

// MilestoneInput is a milestone as submitted by the caller.
type MilestoneInput struct {
	Title      string
	TargetDate time.Time
	Completed  bool
}

// DeliverableInput is a deliverable as submitted by the caller.
type DeliverableInput struct {
	Title       string
	Description string
	Delivered   bool
}

// CreateProjectInput carries all data needed to create a project. The pro id
// comes from the session, never from the payload.
type CreateProjectInput struct {
	Title        string
	Description  string
	ClientID     string
	Budget       float64
	Currency     string
	StartDate    time.Time
	EndDate      time.Time
	Milestones   []MilestoneInput
	Deliverables []DeliverableInput
}

// PatchProjectInput carries a partial update. Nil means unchanged;
// Milestones/Deliverables replace the stored slices wholesale when non-nil.
type PatchProjectInput struct {
	Title        *string
	Description  *string
	Status       *string
	Budget       *float64
	StartDate    *time.Time
	EndDate      *time.Time
	Milestones   []MilestoneInput
	Deliverables []DeliverableInput
}

// ListProjectsInput carries parameters for the list endpoint.
type ListProjectsInput struct {
	Status string
	Page   int
	Limit  int
}

// ListProjectsResult is a page of projects plus pagination info.
type ListProjectsResult struct {
	Items      []*domain.Project
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProjectService defines use-case operations for projects. Every operation
// receives the acting user and enforces ownership: only the owning pro or the
// owning client may read or mutate a project (admins may read).
type ProjectService interface {
	Create(ctx context.Context, actor Actor, input CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.Project, error)
	List(ctx context.Context, actor Actor, input ListProjectsInput) (*ListProjectsResult, error)
	Patch(ctx context.Context, actor Actor, id string, input PatchProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

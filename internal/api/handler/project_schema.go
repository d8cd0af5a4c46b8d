package handler

import (
	"time"

	"github.com/promarket/marketplace-api/internal/core/domain"
)

type milestoneRequest struct {
	Title      string    `json:"title"       validate:"required"`
	TargetDate time.Time `json:"target_date" validate:"required"`
	Completed  bool      `json:"completed"`
}

type deliverableRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Delivered   bool   `json:"delivered"`
}

type createProjectRequest struct {
	Title        string               `json:"title"      validate:"required"`
	Description  string               `json:"description"`
	ClientID     string               `json:"client_id"  validate:"required"`
	Budget       float64              `json:"budget"     validate:"required,gt=0"`
	Currency     string               `json:"currency"   validate:"required,len=3"`
	StartDate    time.Time            `json:"start_date" validate:"required"`
	EndDate      time.Time            `json:"end_date"`
	Milestones   []milestoneRequest   `json:"milestones"   validate:"omitempty,dive"`
	Deliverables []deliverableRequest `json:"deliverables" validate:"omitempty,dive"`
}

// patchProjectRequest carries a partial update: nil fields stay unchanged,
// non-nil milestone/deliverable slices replace the stored ones wholesale.
type patchProjectRequest struct {
	Title        *string              `json:"title"`
	Description  *string              `json:"description"`
	Status       *string              `json:"status"`
	Budget       *float64             `json:"budget"`
	StartDate    *time.Time           `json:"start_date"`
	EndDate      *time.Time           `json:"end_date"`
	Milestones   []milestoneRequest   `json:"milestones"   validate:"omitempty,dive"`
	Deliverables []deliverableRequest `json:"deliverables" validate:"omitempty,dive"`
}

type listProjectsResponse struct {
	Data       []*domain.Project  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

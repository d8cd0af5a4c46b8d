package domain

import (
	"errors"
	"time"
)

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

// projectTransitions defines the allowed state machine transitions.
// completed and cancelled are terminal.
var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectPlanning: {ProjectActive, ProjectOnHold, ProjectCancelled},
	ProjectActive:   {ProjectOnHold, ProjectCompleted, ProjectCancelled},
	ProjectOnHold:   {ProjectActive, ProjectCancelled},
}

var ErrProjectNotFound = errors.New("project not found")
var ErrInvalidProjectTransition = errors.New("invalid project status transition")
var ErrUnknownProjectStatus = errors.New("unknown project status")

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s ProjectStatus) CanTransitionTo(next ProjectStatus) bool {
	for _, allowed := range projectTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Open reports whether the project counts toward "active" dashboard metrics.
func (s ProjectStatus) Open() bool {
	return s == ProjectPlanning || s == ProjectActive
}

// Label returns the human-friendly chart label for a status.
func (s ProjectStatus) Label() string {
	switch s {
	case ProjectPlanning:
		return "Planning"
	case ProjectActive:
		return "Active"
	case ProjectOnHold:
		return "On Hold"
	case ProjectCompleted:
		return "Completed"
	case ProjectCancelled:
		return "Cancelled"
	}
	return string(s)
}

// Color returns the chart color associated with a status.
func (s ProjectStatus) Color() string {
	switch s {
	case ProjectPlanning:
		return "#6366f1"
	case ProjectActive:
		return "#22c55e"
	case ProjectOnHold:
		return "#f59e0b"
	case ProjectCompleted:
		return "#3b82f6"
	case ProjectCancelled:
		return "#ef4444"
	}
	return "#9ca3af"
}

// Milestone is a dated phase inside a project.
type Milestone struct {
	Title      string    `json:"title" bson:"title"`
	TargetDate time.Time `json:"target_date" bson:"target_date"`
	Completed  bool      `json:"completed" bson:"completed"`
}

// Deliverable is a concrete output promised to the client.
type Deliverable struct {
	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Delivered   bool   `json:"delivered" bson:"delivered"`
}

// Project is a work engagement between exactly one pro and one client.
type Project struct {
	ID           string        `json:"id" bson:"_id,omitempty"`
	Title        string        `json:"title" bson:"title"`
	Description  string        `json:"description,omitempty" bson:"description,omitempty"`
	Status       ProjectStatus `json:"status" bson:"status"`
	Budget       float64       `json:"budget" bson:"budget"`
	Currency     string        `json:"currency" bson:"currency"`
	StartDate    time.Time     `json:"start_date" bson:"start_date"`
	EndDate      time.Time     `json:"end_date,omitempty" bson:"end_date,omitempty"`
	ProID        string        `json:"pro_id" bson:"pro_id"`
	ClientID     string        `json:"client_id" bson:"client_id"`
	Milestones   []Milestone   `json:"milestones,omitempty" bson:"milestones,omitempty"`
	Deliverables []Deliverable `json:"deliverables,omitempty" bson:"deliverables,omitempty"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" bson:"updated_at"`
}

// OwnedBy reports whether the given user may operate on the project as one of
// its two parties.
func (p *Project) OwnedBy(userID string) bool {
	return p.ProID == userID || p.ClientID == userID
}

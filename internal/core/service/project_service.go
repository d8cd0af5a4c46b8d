package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/promarket/marketplace-api/internal/core/domain"
	"github.com/promarket/marketplace-api/internal/core/ports"
)

// ProjectService implements project CRUD with party-scoped authorization.
type ProjectService struct {
	repo   ports.ProjectRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, users ports.UserRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, users: users, logger: logger}
}

// Create opens a new project in planning state. Only pros create projects, and
// the named client must exist and hold the client role.
func (s *ProjectService) Create(ctx context.Context, actor ports.Actor, input ports.CreateProjectInput) (*domain.Project, error) {
	if actor.Role != domain.RolePro {
		return nil, domain.ErrForbidden
	}

	client, err := s.users.FindByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if client.Role != domain.RoleClient {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now().UTC()
	project := &domain.Project{
		Title:        input.Title,
		Description:  input.Description,
		Status:       domain.ProjectPlanning,
		Budget:       input.Budget,
		Currency:     input.Currency,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		ProID:        actor.UserID,
		ClientID:     input.ClientID,
		Milestones:   toMilestones(input.Milestones),
		Deliverables: toDeliverables(input.Deliverables),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().Str("project_id", created.ID).Str("pro_id", actor.UserID).Msg("project created")
	return created, nil
}

func (s *ProjectService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && !project.OwnedBy(actor.UserID) {
		return nil, domain.ErrForbidden
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context, actor ports.Actor, input ports.ListProjectsInput) (*ports.ListProjectsResult, error) {
	status := domain.ProjectStatus(input.Status)
	if input.Status != "" && !status.Valid() {
		return nil, domain.ErrUnknownProjectStatus
	}

	filter := ports.ListProjectsFilter{Status: status}
	switch actor.Role {
	case domain.RolePro:
		filter.ProID = actor.UserID
	case domain.RoleClient:
		filter.ClientID = actor.UserID
	case domain.RoleAdmin:
		// unscoped
	default:
		return nil, domain.ErrForbidden
	}

	filter.Page, filter.Limit = clampPage(input.Page, input.Limit)
	projects, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListProjectsResult{
		Items:      projects,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// Patch applies a partial update. Status changes are validated against the
// transition table; milestones and deliverables replace the stored slices
// wholesale when present.
func (s *ProjectService) Patch(ctx context.Context, actor ports.Actor, id string, input ports.PatchProjectInput) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !project.OwnedBy(actor.UserID) {
		return nil, domain.ErrForbidden
	}

	update := ports.ProjectUpdate{
		Title:       input.Title,
		Description: input.Description,
		Budget:      input.Budget,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}
	if input.Status != nil {
		next := domain.ProjectStatus(*input.Status)
		if !next.Valid() {
			return nil, domain.ErrUnknownProjectStatus
		}
		if next != project.Status && !project.Status.CanTransitionTo(next) {
			return nil, domain.ErrInvalidProjectTransition
		}
		update.Status = &next
	}
	if input.Milestones != nil {
		update.Milestones = toMilestones(input.Milestones)
	}
	if input.Deliverables != nil {
		update.Deliverables = toDeliverables(input.Deliverables)
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("project_id", id).Str("updated_by", actor.UserID).Msg("project updated")
	return updated, nil
}

func (s *ProjectService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role != domain.RoleAdmin && !project.OwnedBy(actor.UserID) {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("project_id", id).Str("deleted_by", actor.UserID).Msg("project deleted")
	return nil
}

func toMilestones(in []ports.MilestoneInput) []domain.Milestone {
	out := make([]domain.Milestone, len(in))
	for i, m := range in {
		out[i] = domain.Milestone{Title: m.Title, TargetDate: m.TargetDate, Completed: m.Completed}
	}
	return out
}

func toDeliverables(in []ports.DeliverableInput) []domain.Deliverable {
	out := make([]domain.Deliverable, len(in))
	for i, d := range in {
		out[i] = domain.Deliverable{Title: d.Title, Description: d.Description, Delivered: d.Delivered}
	}
	return out
}

package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/promarket/marketplace-api/internal/core/domain"
	"github.com/promarket/marketplace-api/internal/core/ports"
)

const maxPageLimit = 100

// UserService implements admin user lifecycle management and the public
// marketplace listing.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, input ports.ListUsersInput) (*ports.ListUsersResult, error) {
	role := domain.Role(input.Role)
	if input.Role != "" && !role.Valid() {
		return nil, domain.ErrUnknownRole
	}

	page, limit := clampPage(input.Page, input.Limit)
	users, total, err := s.repo.List(ctx, ports.ListUsersFilter{Role: role, Page: page, Limit: limit})
	if err != nil {
		return nil, err
	}

	return &ports.ListUsersResult{
		Items:      users,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	updated, err := s.repo.Update(ctx, id, ports.UserUpdate{
		Name:               input.Name,
		Country:            input.Country,
		City:               input.City,
		Timezone:           input.Timezone,
		SubscriptionTier:   input.SubscriptionTier,
		SubscriptionStatus: input.SubscriptionStatus,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Msg("user updated")
	return updated, nil
}

// Delete removes a user. The self-deletion guard runs before any other check.
func (s *UserService) Delete(ctx context.Context, callerID, id string) error {
	if callerID == id {
		return domain.ErrSelfDeletion
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Str("deleted_by", callerID).Msg("user deleted")
	return nil
}

func (s *UserService) ListMarketplacePros(ctx context.Context, page, limit int) (*ports.ListUsersResult, error) {
	page, limit = clampPage(page, limit)
	pros, total, err := s.repo.ListPros(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return &ports.ListUsersResult{
		Items:      pros,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

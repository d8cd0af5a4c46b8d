package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/promarket/marketplace-api/internal/core/domain"
	"github.com/promarket/marketplace-api/internal/core/ports"
)

// InvoiceService implements invoice creation and role-scoped reads. Commission
// figures are computed at read time from the configured platform rate; they are
// never persisted.
type InvoiceService struct {
	repo           ports.InvoiceRepository
	payments       ports.PaymentRepository
	users          ports.UserRepository
	commissionRate float64
	logger         zerolog.Logger
}

func NewInvoiceService(
	repo ports.InvoiceRepository,
	payments ports.PaymentRepository,
	users ports.UserRepository,
	commissionRate float64,
	logger zerolog.Logger,
) *InvoiceService {
	return &InvoiceService{
		repo:           repo,
		payments:       payments,
		users:          users,
		commissionRate: commissionRate,
		logger:         logger,
	}
}

func (s *InvoiceService) Create(ctx context.Context, actor ports.Actor, input ports.CreateInvoiceInput) (*ports.InvoiceView, error) {
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

	items := make([]domain.LineItem, len(input.LineItems))
	var subtotal float64
	for i, li := range input.LineItems {
		amount := roundMoney(li.Quantity * li.UnitPrice)
		items[i] = domain.LineItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Amount:      amount,
		}
		subtotal += amount
	}
	subtotal = roundMoney(subtotal)
	tax := roundMoney(subtotal * input.TaxRate)

	seq, err := s.repo.NextSequence(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invoice := &domain.Invoice{
		Number:    fmt.Sprintf("INV-%06d", seq),
		ProID:     actor.UserID,
		ClientID:  input.ClientID,
		ProjectID: input.ProjectID,
		LineItems: items,
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     roundMoney(subtotal + tax),
		Currency:  input.Currency,
		Status:    domain.InvoiceDraft,
		DueDate:   input.DueDate,
		StatusHistory: []domain.StatusChange{
			{Status: domain.InvoiceDraft, Timestamp: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, invoice)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create invoice")
		return nil, err
	}

	s.logger.Info().Str("number", created.Number).Str("pro_id", actor.UserID).Msg("invoice created")
	return s.view(created), nil
}

func (s *InvoiceService) Get(ctx context.Context, actor ports.Actor, number string) (*ports.InvoiceView, error) {
	invoice, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && !invoice.OwnedBy(actor.UserID) {
		return nil, domain.ErrForbidden
	}
	return s.view(invoice), nil
}

func (s *InvoiceService) List(ctx context.Context, actor ports.Actor, input ports.ListInvoicesInput) (*ports.ListInvoicesResult, error) {
	status := domain.InvoiceStatus(input.Status)
	if input.Status != "" && !status.Valid() {
		return nil, domain.ErrUnknownInvoiceStatus
	}

	filter := ports.ListInvoicesFilter{Status: status}
	switch actor.Role {
	case domain.RolePro:
		filter.ProID = actor.UserID
	case domain.RoleClient:
		filter.ClientID = actor.UserID
	case domain.RoleAdmin:
		// unscoped: the transactions view
	default:
		return nil, domain.ErrForbidden
	}

	filter.Page, filter.Limit = clampPage(input.Page, input.Limit)
	invoices, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]ports.InvoiceView, len(invoices))
	for i, inv := range invoices {
		views[i] = *s.view(inv)
	}

	return &ports.ListInvoicesResult{
		Items:      views,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// SetStatus applies a manual transition. Marking an invoice paid is reserved
// for the payment event pipeline.
func (s *InvoiceService) SetStatus(ctx context.Context, actor ports.Actor, number, status string) (*ports.InvoiceView, error) {
	next := domain.InvoiceStatus(status)
	if !next.Valid() {
		return nil, domain.ErrUnknownInvoiceStatus
	}
	if next == domain.InvoicePaid {
		return nil, domain.ErrInvalidInvoiceTransition
	}

	invoice, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && invoice.ProID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if !invoice.Status.CanTransitionTo(next) {
		return nil, domain.ErrInvalidInvoiceTransition
	}

	if err := s.payments.UpdateInvoiceStatus(ctx, number, next, time.Now().UTC(), "manual"); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("number", number).Str("status", status).Str("updated_by", actor.UserID).Msg("invoice status changed")
	return s.view(updated), nil
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *InvoiceService) view(inv *domain.Invoice) *ports.InvoiceView {
	return &ports.InvoiceView{
		Invoice:    inv,
		Commission: inv.Commission(s.commissionRate),
		NetToPro:   inv.NetToPro(s.commissionRate),
	}
}

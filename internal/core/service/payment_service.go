package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/promarket/marketplace-api/internal/core/domain"
	"github.com/promarket/marketplace-api/internal/core/ports"
	"github.com/promarket/marketplace-api/internal/metrics"
)

// PaymentDedup abstracts the idempotency store (Redis).
type PaymentDedup interface {
	IsDuplicate(ctx context.Context, invoiceNumber, status string, ts time.Time) (bool, error)
	Mark(ctx context.Context, invoiceNumber, status string, ts time.Time) error
}

type paymentService struct {
	invoiceRepo ports.InvoiceRepository
	paymentRepo ports.PaymentRepository
	dedup       PaymentDedup
	log         zerolog.Logger
}

// NewPaymentService returns a PaymentService implementation.
func NewPaymentService(
	invoiceRepo ports.InvoiceRepository,
	paymentRepo ports.PaymentRepository,
	dedup PaymentDedup,
	log zerolog.Logger,
) ports.PaymentService {
	return &paymentService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		dedup:       dedup,
		log:         log,
	}
}

// Process validates, deduplicates, and applies a single payment event.
func (s *paymentService) Process(ctx context.Context, in ports.PaymentEventInput) error {
	start := time.Now()
	newStatus := domain.InvoiceStatus(in.Status)

	// 1. Idempotency check. Duplicates are silently skipped.
	isDup, err := s.dedup.IsDuplicate(ctx, in.InvoiceNumber, in.Status, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("invoice", in.InvoiceNumber).Msg("dedup check failed, processing anyway")
	} else if isDup {
		metrics.PaymentsDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("invoice", in.InvoiceNumber).Str("status", in.Status).Msg("duplicate event skipped")
		return nil
	}
	metrics.PaymentsDedupTotal.WithLabelValues("miss").Inc()

	// 2. Find the invoice.
	invoice, err := s.invoiceRepo.FindByNumber(ctx, in.InvoiceNumber)
	if err != nil {
		metrics.PaymentsErrorsTotal.WithLabelValues("invoice_not_found").Inc()
		return fmt.Errorf("process payment event: %w", err)
	}

	// 3. Validate the state machine transition.
	if !invoice.Status.CanTransitionTo(newStatus) {
		metrics.PaymentsErrorsTotal.WithLabelValues("invalid_transition").Inc()
		return fmt.Errorf("process payment event: %w (from %s to %s)", domain.ErrInvalidInvoiceTransition, invoice.Status, newStatus)
	}

	// 4. Mark as processed before writing (prevents duplicate processing on retry).
	if markErr := s.dedup.Mark(ctx, in.InvoiceNumber, in.Status, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("invoice", in.InvoiceNumber).Msg("failed to set dedup key")
	}

	// 5. Atomically update invoice status + history (paid_at set on paid).
	if err := s.paymentRepo.UpdateInvoiceStatus(ctx, in.InvoiceNumber, newStatus, in.Timestamp, in.Source); err != nil {
		metrics.PaymentsErrorsTotal.WithLabelValues("update_failed").Inc()
		return fmt.Errorf("process payment event: update status: %w", err)
	}

	// 6. Insert into the audit trail (non-fatal on failure).
	auditEvent := &domain.PaymentEvent{
		InvoiceNumber: in.InvoiceNumber,
		Status:        newStatus,
		Timestamp:     in.Timestamp,
		Source:        in.Source,
		Reference:     in.Reference,
	}
	if err := s.paymentRepo.InsertEvent(ctx, auditEvent); err != nil {
		s.log.Warn().Err(err).Str("invoice", in.InvoiceNumber).Msg("failed to insert audit event")
	}

	metrics.PaymentsProcessedTotal.WithLabelValues(in.Status, in.Source).Inc()
	metrics.PaymentProcessingDuration.WithLabelValues(in.Status).Observe(time.Since(start).Seconds())

	s.log.Info().
		Str("invoice", in.InvoiceNumber).
		Str("status", in.Status).
		Str("source", in.Source).
		Msg("payment event processed")

	return nil
}

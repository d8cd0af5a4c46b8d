package ports

import (
	"context"
	"time"

	"github.com/promarket/marketplace-api/internal/core/domain"
)

// PaymentRepository handles atomic invoice status updates driven by payment
// events, plus the audit trail.
type PaymentRepository interface {
	// UpdateInvoiceStatus atomically sets the invoice's new status and appends
	// a history entry. paid_at is set when the new status is paid.
	UpdateInvoiceStatus(
		ctx context.Context,
		number string,
		status domain.InvoiceStatus,
		ts time.Time,
		source string,
	) error

	// InsertEvent persists an event to the payment_events audit collection.
	InsertEvent(ctx context.Context, event *domain.PaymentEvent) error
}

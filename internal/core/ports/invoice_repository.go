package ports

import (
	"context"
	"time"

	"github.com/promarket/marketplace-api/internal/core/domain"
)

// ListInvoicesFilter carries query parameters for listing invoices.
type ListInvoicesFilter struct {
	ProID    string
	ClientID string
	Status   domain.InvoiceStatus
	Page     int
	Limit    int
}

// MonthlyRevenuePoint is one month's paid revenue, keyed as "YYYY-MM".
type MonthlyRevenuePoint struct {
	Month   string
	Revenue float64
}

// InvoiceRepository defines persistence operations for invoices, including the
// aggregate sub-queries the dashboard relies on.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	FindByNumber(ctx context.Context, number string) (*domain.Invoice, error)
	List(ctx context.Context, filter ListInvoicesFilter) ([]*domain.Invoice, int64, error)
	// NextSequence atomically increments and returns the invoice counter.
	NextSequence(ctx context.Context) (int64, error)

	// SumPaidBetween sums invoice totals with status paid and paid_at inside
	// [from, to), scoped to a pro (platform-wide when proID is empty).
	SumPaidBetween(ctx context.Context, proID string, from, to time.Time) (float64, error)
	// ClientIDsInvoicedBetween returns the distinct client ids with any invoice
	// created inside [from, to) for the given pro.
	ClientIDsInvoicedBetween(ctx context.Context, proID string, from, to time.Time) ([]string, error)
	// MonthlyRevenue returns per-calendar-month paid revenue for the trailing
	// months window ending at now, scoped to a pro. Months with no revenue are
	// absent from the result.
	MonthlyRevenue(ctx context.Context, proID string, months int, now time.Time) ([]MonthlyRevenuePoint, error)
}

package ports

import (
	"context"
	"time"

	"github.com/promarket/marketplace-api/internal/core/domain"
)

// LineItemInput is a single billed line as submitted by the pro. Amount is
// computed server-side as quantity × unit price.
type LineItemInput struct {
	Description string
	Quantity    float64
	UnitPrice   float64
}

// CreateInvoiceInput carries all data needed to create an invoice. The pro id
// comes from the session.
type CreateInvoiceInput struct {
	ClientID  string
	ProjectID string
	LineItems []LineItemInput
	TaxRate   float64 // e.g. 0.16; applied to the computed subtotal
	Currency  string
	DueDate   time.Time
}

// InvoiceView is an invoice enriched with the read-time commission figures.
type InvoiceView struct {
	Invoice    *domain.Invoice
	Commission float64
	NetToPro   float64
}

// ListInvoicesInput carries parameters for the list endpoint.
type ListInvoicesInput struct {
	Status string
	Page   int
	Limit  int
}

// ListInvoicesResult is a page of invoice views plus pagination info.
type ListInvoicesResult struct {
	Items      []InvoiceView
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// InvoiceService defines use-case operations for invoices. Listing is scoped
// to the acting party; admins see everything (the transactions view).
type InvoiceService interface {
	Create(ctx context.Context, actor Actor, input CreateInvoiceInput) (*InvoiceView, error)
	Get(ctx context.Context, actor Actor, number string) (*InvoiceView, error)
	List(ctx context.Context, actor Actor, input ListInvoicesInput) (*ListInvoicesResult, error)
	// SetStatus applies a manual transition (draft→sent, sent→overdue,
	// →cancelled). Marking paid is reserved for the payment event pipeline.
	SetStatus(ctx context.Context, actor Actor, number, status string) (*InvoiceView, error)
}

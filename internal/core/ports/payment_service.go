package ports

import (
	"context"
	"time"
)

// PaymentEventInput is the DTO passed from the transport layer to PaymentService.
type PaymentEventInput struct {
	InvoiceNumber string
	Status        string
	Timestamp     time.Time
	Source        string
	Reference     string // optional
}

// PaymentService processes incoming out-of-band payment events.
type PaymentService interface {
	Process(ctx context.Context, event PaymentEventInput) error
}

package domain

import "time"

// PaymentEvent represents a status update received from an out-of-band payment
// source (a processor callback, a bank feed, or manual reconciliation).
type PaymentEvent struct {
	InvoiceNumber string
	Status        InvoiceStatus
	Timestamp     time.Time
	Source        string
	Reference     string // optional processor reference
}

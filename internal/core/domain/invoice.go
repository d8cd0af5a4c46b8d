package domain

import (
	"errors"
	"math"
	"time"
)

// InvoiceStatus represents the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// invoiceTransitions defines the allowed state machine transitions.
// paid and cancelled are terminal; paid is only ever reached through a
// payment event.
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceDraft:   {InvoiceSent, InvoiceCancelled},
	InvoiceSent:    {InvoicePaid, InvoiceOverdue, InvoiceCancelled},
	InvoiceOverdue: {InvoicePaid, InvoiceCancelled},
}

var ErrInvoiceNotFound = errors.New("invoice not found")
var ErrInvalidInvoiceTransition = errors.New("invalid invoice status transition")
var ErrUnknownInvoiceStatus = errors.New("unknown invoice status")

// Valid reports whether s is a known invoice status.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue, InvoiceCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	for _, allowed := range invoiceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// LineItem is a single billed line on an invoice.
type LineItem struct {
	Description string  `json:"description" bson:"description"`
	Quantity    float64 `json:"quantity" bson:"quantity"`
	UnitPrice   float64 `json:"unit_price" bson:"unit_price"`
	Amount      float64 `json:"amount" bson:"amount"`
}

// StatusChange records a single invoice status transition.
type StatusChange struct {
	Status    InvoiceStatus `json:"status" bson:"status"`
	Timestamp time.Time     `json:"timestamp" bson:"timestamp"`
	Notes     string        `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Invoice is a billing record tied to a pro and a client, optionally linked to
// a project. Commission is never stored; it is recomputed on read from the
// configured platform rate.
type Invoice struct {
	ID            string         `json:"id" bson:"_id,omitempty"`
	Number        string         `json:"number" bson:"number"`
	ProID         string         `json:"pro_id" bson:"pro_id"`
	ClientID      string         `json:"client_id" bson:"client_id"`
	ProjectID     string         `json:"project_id,omitempty" bson:"project_id,omitempty"`
	LineItems     []LineItem     `json:"line_items" bson:"line_items"`
	Subtotal      float64        `json:"subtotal" bson:"subtotal"`
	Tax           float64        `json:"tax" bson:"tax"`
	Total         float64        `json:"total" bson:"total"`
	Currency      string         `json:"currency" bson:"currency"`
	Status        InvoiceStatus  `json:"status" bson:"status"`
	DueDate       time.Time      `json:"due_date" bson:"due_date"`
	PaidAt        *time.Time     `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
	StatusHistory []StatusChange `json:"status_history,omitempty" bson:"status_history,omitempty"`
	CreatedAt     time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" bson:"updated_at"`
}

// Commission returns the platform's cut of this invoice at the given rate,
// rounded to cents.
func (i *Invoice) Commission(rate float64) float64 {
	return roundCents(i.Total * rate)
}

// NetToPro returns the amount owed to the pro after commission at the given rate.
func (i *Invoice) NetToPro(rate float64) float64 {
	return roundCents(i.Total - i.Total*rate)
}

// OwnedBy reports whether the given user is one of the invoice's two parties.
func (i *Invoice) OwnedBy(userID string) bool {
	return i.ProID == userID || i.ClientID == userID
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

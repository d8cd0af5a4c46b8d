package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/promarket/marketplace-api/internal/core/domain"
)

const paymentEventsCollection = "payment_events"

// PaymentRepository applies payment-driven invoice status updates and keeps
// the audit trail.
type PaymentRepository struct {
	invoices *mongo.Collection
	events   *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{
		invoices: db.Collection(invoicesCollection),
		events:   db.Collection(paymentEventsCollection),
	}
}

// UpdateInvoiceStatus atomically sets the invoice's new status and appends a
// history entry. paid_at is set when the new status is paid.
func (r *PaymentRepository) UpdateInvoiceStatus(
	ctx context.Context,
	number string,
	status domain.InvoiceStatus,
	ts time.Time,
	source string,
) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}
	if status == domain.InvoicePaid {
		set["paid_at"] = ts
	}

	update := bson.M{
		"$set": set,
		"$push": bson.M{
			"status_history": domain.StatusChange{
				Status:    status,
				Timestamp: ts,
				Notes:     source,
			},
		},
	}

	res, err := r.invoices.UpdateOne(ctx, bson.M{"number": number}, update)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

type paymentEventDoc struct {
	InvoiceNumber string    `bson:"invoice_number"`
	Status        string    `bson:"status"`
	Timestamp     time.Time `bson:"timestamp"`
	Source        string    `bson:"source"`
	Reference     string    `bson:"reference,omitempty"`
	ReceivedAt    time.Time `bson:"received_at"`
}

// InsertEvent persists an event to the payment_events audit collection.
func (r *PaymentRepository) InsertEvent(ctx context.Context, event *domain.PaymentEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := paymentEventDoc{
		InvoiceNumber: event.InvoiceNumber,
		Status:        string(event.Status),
		Timestamp:     event.Timestamp,
		Source:        event.Source,
		Reference:     event.Reference,
		ReceivedAt:    time.Now().UTC(),
	}
	if _, err := r.events.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert payment event: %w", err)
	}
	return nil
}

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// PaymentDedup provides idempotency checks for payment events backed by Redis.
// Key format: payment:dedup:<invoice_number>:<status>:<unix_timestamp>
type PaymentDedup struct {
	client *redis.Client
}

// NewPaymentDedup creates a PaymentDedup wrapping the given Redis client.
func NewPaymentDedup(client *redis.Client) *PaymentDedup {
	return &PaymentDedup{client: client}
}

// IsDuplicate reports whether this exact event has already been processed.
func (d *PaymentDedup) IsDuplicate(ctx context.Context, invoiceNumber, status string, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(invoiceNumber, status, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this event has been processed (expires after dedupTTL).
func (d *PaymentDedup) Mark(ctx context.Context, invoiceNumber, status string, ts time.Time) error {
	return d.client.Set(ctx, d.key(invoiceNumber, status, ts), "1", dedupTTL).Err()
}

func (d *PaymentDedup) key(invoiceNumber, status string, ts time.Time) string {
	return fmt.Sprintf("payment:dedup:%s:%s:%d", invoiceNumber, status, ts.Unix())
}

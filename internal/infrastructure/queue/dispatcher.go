package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/promarket/marketplace-api/internal/core/ports"
	"github.com/promarket/marketplace-api/internal/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes payment events to a fixed set of workers using consistent
// hashing on the invoice number, guaranteeing per-invoice event ordering.
type Dispatcher struct {
	workers []chan ports.PaymentEventInput
	service ports.PaymentService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.PaymentService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.PaymentEventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.PaymentEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its invoice number.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.PaymentEventInput) {
	i := d.shardIndex(event.InvoiceNumber)
	d.workers[i] <- event
	metrics.PaymentsQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// EnqueueBatch enqueues multiple events preserving per-invoice ordering.
func (d *Dispatcher) EnqueueBatch(events []ports.PaymentEventInput) {
	for _, e := range events {
		d.Enqueue(e)
	}
}

// shardIndex maps an invoice number deterministically to a worker index.
func (d *Dispatcher) shardIndex(invoiceNumber string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(invoiceNumber))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.PaymentEventInput) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.PaymentsQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
			if err := d.service.Process(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("invoice_number", event.InvoiceNumber).
					Int("worker_id", id).
					Msg("payment event processing failed")
			}
		}
	}
}

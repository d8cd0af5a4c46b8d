package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/promarket/marketplace-api/internal/core/ports"
)

type recordingService struct {
	mu     sync.Mutex
	events []ports.PaymentEventInput
	done   chan struct{}
	want   int
}

func newRecordingService(want int) *recordingService {
	return &recordingService{done: make(chan struct{}), want: want}
}

func (s *recordingService) Process(_ context.Context, event ports.PaymentEventInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) == s.want {
		close(s.done)
	}
	return nil
}

func TestDispatcher_ProcessesAllEvents(t *testing.T) {
	svc := newRecordingService(3)
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.EnqueueBatch([]ports.PaymentEventInput{
		{InvoiceNumber: "INV-000001", Status: "paid"},
		{InvoiceNumber: "INV-000002", Status: "overdue"},
		{InvoiceNumber: "INV-000003", Status: "paid"},
	})

	select {
	case <-svc.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for events; got %d", len(svc.events))
	}
}

// Events for one invoice always land on the same worker, preserving order.
func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, nil, zerolog.Nop())

	first := d.shardIndex("INV-000042")
	for i := 0; i < 100; i++ {
		if got := d.shardIndex("INV-000042"); got != first {
			t.Fatalf("shard changed between calls: %d vs %d", first, got)
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard out of range: %d", first)
	}
}

func TestDispatcher_PerInvoiceOrdering(t *testing.T) {
	svc := newRecordingService(3)
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.EnqueueBatch([]ports.PaymentEventInput{
		{InvoiceNumber: "INV-000007", Status: "sent"},
		{InvoiceNumber: "INV-000007", Status: "overdue"},
		{InvoiceNumber: "INV-000007", Status: "paid"},
	})

	select {
	case <-svc.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for events")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	want := []string{"sent", "overdue", "paid"}
	for i, event := range svc.events {
		if event.Status != want[i] {
			t.Fatalf("event %d out of order: got %s, want %s", i, event.Status, want[i])
		}
	}
}

func TestDispatcher_DefaultsWorkerCount(t *testing.T) {
	d := NewDispatcher(0, nil, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

package domain

import "testing"

func TestInvoiceStatus_CanTransitionTo(t *testing.T) {
	allowed := []struct{ from, to InvoiceStatus }{
		{InvoiceDraft, InvoiceSent},
		{InvoiceDraft, InvoiceCancelled},
		{InvoiceSent, InvoicePaid},
		{InvoiceSent, InvoiceOverdue},
		{InvoiceSent, InvoiceCancelled},
		{InvoiceOverdue, InvoicePaid},
		{InvoiceOverdue, InvoiceCancelled},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransitionTo(tc.to) {
			t.Fatalf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to InvoiceStatus }{
		{InvoiceDraft, InvoicePaid},
		{InvoiceDraft, InvoiceOverdue},
		{InvoicePaid, InvoiceSent},
		{InvoicePaid, InvoiceCancelled},
		{InvoiceCancelled, InvoiceSent},
		{InvoiceSent, InvoiceDraft},
	}
	for _, tc := range denied {
		if tc.from.CanTransitionTo(tc.to) {
			t.Fatalf("%s -> %s should be denied", tc.from, tc.to)
		}
	}
}

func TestInvoice_CommissionRounding(t *testing.T) {
	cases := []struct {
		total, rate, commission, net float64
	}{
		{1000, 0.13, 130, 870},
		{1160, 0.13, 150.80, 1009.20},
		{99.99, 0.13, 13.00, 86.99},
		{0, 0.13, 0, 0},
		{1000, 0, 0, 1000},
	}
	for _, tc := range cases {
		inv := &Invoice{Total: tc.total}
		if got := inv.Commission(tc.rate); got != tc.commission {
			t.Fatalf("Commission(%v @ %v) = %v, want %v", tc.total, tc.rate, got, tc.commission)
		}
		if got := inv.NetToPro(tc.rate); got != tc.net {
			t.Fatalf("NetToPro(%v @ %v) = %v, want %v", tc.total, tc.rate, got, tc.net)
		}
	}
}

func TestInvoice_OwnedBy(t *testing.T) {
	inv := &Invoice{ProID: "pro_1", ClientID: "client_1"}
	if !inv.OwnedBy("pro_1") || !inv.OwnedBy("client_1") {
		t.Fatalf("both parties own the invoice")
	}
	if inv.OwnedBy("stranger") {
		t.Fatalf("non-parties never own the invoice")
	}
}

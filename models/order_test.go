package models

import "testing"

func TestParseOrderStatusAcceptsClosedSet(t *testing.T) {
	cases := map[string]OrderStatus{
		"Pending":     OrderStatusPending,
		"pending":     OrderStatusPending,
		"PROCESSING":  OrderStatusProcessing,
		"Shipped":     OrderStatusShipped,
		"delivered":   OrderStatusDelivered,
		" Cancelled ": OrderStatusCancelled,
	}
	for input, want := range cases {
		got, err := ParseOrderStatus(input)
		if err != nil {
			t.Fatalf("ParseOrderStatus(%q) returned error: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseOrderStatus(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestParseOrderStatusRejectsUnknown(t *testing.T) {
	for _, input := range []string{"", "Placed", "refunded", "DONE", "pending2"} {
		if _, err := ParseOrderStatus(input); err == nil {
			t.Fatalf("ParseOrderStatus(%q) should have been rejected", input)
		}
	}
}

package model

import "testing"

func TestOrderStatusValid(t *testing.T) {
	for _, s := range OrderStatuses {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []OrderStatus{"", "pending", "Shipped", "Teleported"} {
		if s.Valid() {
			t.Errorf("%q should not be valid", s)
		}
	}
}

func TestCartTotal(t *testing.T) {
	lines := []CartLine{
		{Quantity: 2, Product: Product{Price: 800}},
		{Quantity: 1, Product: Product{Price: 300}},
	}
	if got := CartTotal(lines); got != 1900 {
		t.Errorf("expected 1900, got %v", got)
	}
	if got := CartTotal(nil); got != 0 {
		t.Errorf("expected 0 for empty cart, got %v", got)
	}
}

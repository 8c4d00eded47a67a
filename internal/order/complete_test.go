package order

import (
	"testing"

	"github.com/joseph-ayodele/order-intake/internal/entity"
)

func fullOrder() *entity.OrderRecord {
	return &entity.OrderRecord{
		Items:           []entity.OrderItem{{Product: "salmon", Quantity: "10 lbs"}},
		DeliveryDate:    "Friday, July 25, 2025",
		DeliveryAddress: "123 Main St, Seattle, WA",
	}
}

func TestIsComplete(t *testing.T) {
	if !IsComplete(fullOrder(), "WA") {
		t.Fatal("expected full order to be complete")
	}
}

func TestIsCompleteMissingPieces(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*entity.OrderRecord)
	}{
		{"no items", func(o *entity.OrderRecord) { o.Items = nil }},
		{"blank date", func(o *entity.OrderRecord) { o.DeliveryDate = "   " }},
		{"empty date", func(o *entity.OrderRecord) { o.DeliveryDate = "" }},
		{"incomplete address", func(o *entity.OrderRecord) { o.DeliveryAddress = "123 Main St" }},
		{"empty address", func(o *entity.OrderRecord) { o.DeliveryAddress = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := fullOrder()
			tt.mutate(o)
			if IsComplete(o, "WA") {
				t.Errorf("order with %s should be incomplete", tt.name)
			}
		})
	}
}

func TestIsCompleteNilOrder(t *testing.T) {
	if IsComplete(nil, "WA") {
		t.Fatal("nil order must be incomplete")
	}
}

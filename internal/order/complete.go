package order

import (
	"strings"

	"github.com/joseph-ayodele/order-intake/internal/entity"
)

// IsComplete reports whether an extracted order has everything needed to ask
// the customer for confirmation: at least one item, a delivery date, and a
// deliverable address. Re-checked on every extraction, never cached.
func IsComplete(o *entity.OrderRecord, regionCode string) bool {
	if o == nil {
		return false
	}
	if len(o.Items) == 0 {
		return false
	}
	if strings.TrimSpace(o.DeliveryDate) == "" {
		return false
	}
	return IsAddressComplete(o.DeliveryAddress, regionCode)
}

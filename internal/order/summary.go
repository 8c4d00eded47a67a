package order

import (
	"strings"

	"github.com/joseph-ayodele/order-intake/internal/entity"
)

// ConfirmationSummary renders the itemized order readback sent when an order
// becomes complete, ending with the CONFIRM instruction.
func ConfirmationSummary(o *entity.OrderRecord) string {
	if o == nil {
		return "I couldn't find any order details in our conversation."
	}

	var b strings.Builder
	b.WriteString("Got it! Here's the order I have:\n")
	for _, item := range o.Items {
		b.WriteString("• ")
		b.WriteString(strings.TrimSpace(item.Quantity + " " + item.Product))
		b.WriteString("\n")
	}
	b.WriteString("• Delivery date: ")
	b.WriteString(orNotSpecified(o.DeliveryDate))
	b.WriteString("\n• Address: ")
	b.WriteString(orNotSpecified(o.DeliveryAddress))

	if notes := strings.TrimSpace(o.Notes); notes != "" && !isNoNotes(notes) {
		b.WriteString("\n• Notes: ")
		b.WriteString(notes)
	}

	b.WriteString("\n\nIf everything looks good, reply CONFIRM and I'll lock it in. If something's off, just let me know!")
	return b.String()
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return strings.TrimSpace(s)
}

func isNoNotes(notes string) bool {
	switch strings.ToLower(notes) {
	case "none", "n/a":
		return true
	}
	return false
}

package order

import (
	"strings"

	"github.com/joseph-ayodele/order-intake/constants"
)

// IsConfirmation reports whether a message is an explicit order
// confirmation. Exact token match after trim + upper-case only: "confirm"
// and " CONFIRM " count, "confirm please" and "CONFIRMED" do not.
func IsConfirmation(message string) bool {
	return strings.ToUpper(strings.TrimSpace(message)) == constants.ConfirmToken
}

// IsReset reports whether a message is the explicit reset command.
func IsReset(message string) bool {
	return strings.ToUpper(strings.TrimSpace(message)) == constants.ResetCommand
}

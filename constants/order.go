package constants

// ConfirmToken is the only message that commits an order. Exact match after
// trimming and upper-casing; anything fuzzier risks a false-positive commit.
const ConfirmToken = "CONFIRM"

// ResetCommand clears the transcript and starts the conversation over.
const ResetCommand = "RESET"

// DefaultRegionCode is appended to addresses that omit a state. The business
// only delivers in Washington.
const DefaultRegionCode = "WA"

// OrderStatusConfirmed is the status written with every committed ledger row.
const OrderStatusConfirmed = "Confirmed"

// UnknownBusiness is the business-name fallback when an address has no
// comma-separated leading segment.
const UnknownBusiness = "Unknown Business"

// LedgerHeader is the fixed column layout of every delivery-date sheet.
var LedgerHeader = []string{
	"Order Time",
	"Customer Phone",
	"Business Name",
	"Order Items",
	"Delivery Address",
	"Delivery Date",
	"Notes",
	"Status",
}

package entity

// OrderItem is one product line in an order. Quantity is free text,
// normalized to pounds by the extraction contract ("10 lbs"), never a typed
// number.
type OrderItem struct {
	Product  string `json:"product"`
	Quantity string `json:"quantity"`
}

// OrderRecord is the structured extraction of a conversation transcript.
// DeliveryDate is an absolute human-readable description ("Friday, July 25,
// 2025"); relative phrases are resolved before this record exists.
// DeliveryAddress follows "street, city[, state]" with the default region
// applied when no state was given.
type OrderRecord struct {
	Items           []OrderItem `json:"items"`
	DeliveryDate    string      `json:"delivery_date"`
	DeliveryAddress string      `json:"delivery_address"`
	Notes           string      `json:"notes,omitempty"`
}

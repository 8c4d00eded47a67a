package entity

import "time"

// Direction tags a turn as customer-sent or assistant-sent.
type Direction string

// Stable values (store these exact strings in the transcript DB).
const (
	DirectionInbound  Direction = "received" // from the customer
	DirectionOutbound Direction = "sent"     // from the assistant
)

// Turn is one message in a conversation. Immutable once recorded; a
// customer's transcript is the ascending-time sequence of its turns.
type Turn struct {
	ID        string    `json:"id"`
	Direction Direction `json:"direction"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Inbound reports whether the turn came from the customer.
func (t Turn) Inbound() bool {
	return t.Direction == DirectionInbound
}

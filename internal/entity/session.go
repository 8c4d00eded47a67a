package entity

import "github.com/joseph-ayodele/order-intake/constants"

// Session tracks where one customer's conversation stands. PendingOrder is a
// cache of the last extraction, never authoritative: the transcript is the
// source of truth and the order is re-derived before any commit.
type Session struct {
	CustomerID   string                 `json:"customer_id"`
	State        constants.SessionState `json:"state"`
	PendingOrder *OrderRecord           `json:"pending_order,omitempty"`
}

// NewSession starts a fresh chatting-state session for a customer.
func NewSession(customerID string) *Session {
	return &Session{
		CustomerID: customerID,
		State:      constants.StateChatting,
	}
}

package constants

// SessionState is the canonical state of a customer conversation.
type SessionState string

// Stable values (store these exact strings).
const (
	StateChatting   SessionState = "CHATTING"   // collecting order details
	StateConfirming SessionState = "CONFIRMING" // summary sent, waiting for CONFIRM
	StateConfirmed  SessionState = "CONFIRMED"  // terminal; session is reset after commit
)

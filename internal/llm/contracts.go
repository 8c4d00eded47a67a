package llm

import "context"

// Chat roles understood by the completion collaborator.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged turn passed to the collaborator. Calls are
// stateless; the full context travels with every request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer is the text-completion collaborator. Both the conversational
// reply path and the order extractor depend on it.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

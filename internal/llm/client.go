package llm

import "context"

// Message is one role-tagged entry of a prompt ("system", "user" or
// "assistant").
type Message struct {
	Role    string
	Content string
}

// Response carries the generated reply plus the token accounting the
// provider reported for the call.
type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client turns an ordered prompt into a single reply. Implementations
// wrap one completion provider; callers pick one via the factory.
type Client interface {
	Generate(ctx context.Context, messages []Message) (Response, error)
}

package driven

import "context"

// ChatService produces a text completion for a fixed system instruction plus
// one composed user message. Calls are synchronous; there is no retry or
// cancellation contract beyond the transport's own timeout.
type ChatService interface {
	// Chat sends the conversation and returns the completion text.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the chat model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}

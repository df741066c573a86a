package provider

import (
	"context"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Response represents the output from the model.
type Response struct {
	Content string `json:"content"`
	Usage   Usage  `json:"usage"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Options tune a single generation call.
type Options struct {
	Temperature      float32
	MaxTokens        int
	FrequencyPenalty float32
	PresencePenalty  float32
}

// DefaultOptions suit letter drafting: warm but not rambling.
var DefaultOptions = Options{
	Temperature:      0.8,
	MaxTokens:        1500,
	FrequencyPenalty: 0.4,
	PresencePenalty:  0.3,
}

// Provider is the text-generation boundary. The core treats any error as
// "no draft this round" and never retries internally; cancellation is the
// caller's context.
type Provider interface {
	// Generate sends the prompt messages to the model and returns the
	// drafted text.
	Generate(ctx context.Context, messages []Message, opts Options) (*Response, error)

	// Name returns the provider identifier (e.g. "openai", "ollama").
	Name() string
}

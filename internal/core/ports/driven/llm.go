package driven

import "context"

// LLMService generates answer text from a grounded prompt.
//
// Generation failures propagate as *domain.BackendError; the core only
// substitutes canned text when retrieval produced no evidence at all,
// never on a failed generation call.
//
// Implementations may include:
//   - Ollama (local models)
//   - OpenAI / Anthropic hosted models
type LLMService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}

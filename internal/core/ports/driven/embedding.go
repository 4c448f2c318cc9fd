package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// It is used both for document chunks at ingestion time and for query
// text at retrieval time; both must go through the same model.
//
// Backend failures are returned as *domain.BackendError with the cause
// preserved. The core never retries internally: retrying a model call
// silently could duplicate cost without guaranteed benefit, so retry
// policy belongs to the serving layer.
//
// Implementations may include:
//   - Ollama (mxbai-embed-large, nomic-embed-text)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates one embedding per input, preserving order.
	// Implementations log throughput periodically for long batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 1024).
	// This must match the ChunkStore's indexed dimensionality.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

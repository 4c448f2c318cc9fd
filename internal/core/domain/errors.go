package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid caller input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrQueryTooShort indicates the query text is below the configured
	// minimum length. This is a validation failure, not a pipeline failure.
	ErrQueryTooShort = errors.New("query too short")

	// ErrNoPapers indicates the paper source returned nothing to ingest.
	ErrNoPapers = errors.New("no papers found")

	// ErrInvalidChunking indicates chunk size and overlap are incompatible
	// (overlap must be strictly smaller than the chunk size).
	ErrInvalidChunking = errors.New("chunk overlap must be smaller than chunk size")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the generation service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrStoreUnavailable indicates the chunk store is not configured.
	ErrStoreUnavailable = errors.New("chunk store unavailable")
)

// BackendError wraps a collaborator failure with the backend that raised it.
// The cause is preserved and never retried or masked by the core; callers
// translate it into a protocol-appropriate failure.
type BackendError struct {
	// Backend identifies the collaborator ("arxiv", "embedding",
	// "generation", "storage").
	Backend string

	// Op is the operation that failed (e.g., "fetch", "embed", "search").
	Op string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend: %s: %v", e.Backend, e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *BackendError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a caller input problem rather than
// a collaborator failure. Validation errors are surfaced immediately and
// never retried.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrQueryTooShort) ||
		errors.Is(err, ErrNoPapers)
}

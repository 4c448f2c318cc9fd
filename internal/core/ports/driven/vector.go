package driven

import (
	"context"

	"github.com/candela-labs/scholar-cli/internal/core/domain"
)

// ChunkStore persists embedded chunks and serves similarity search.
//
// The store owns the chunks once inserted; the core never mutates or
// deletes them. Inserts are assumed idempotent enough that a cancelled
// ingestion batch leaves only the chunks persisted before cancellation.
type ChunkStore interface {
	// Insert persists one embedded chunk.
	Insert(ctx context.Context, chunk domain.Chunk) error

	// Search returns up to limit matches for the query vector, ordered by
	// descending similarity score in [0,1]. numCandidates is the superset
	// the store should consider before ranking; searching more candidates
	// than the limit reduces false negatives from approximate indexing.
	Search(ctx context.Context, vector []float32, numCandidates, limit int) ([]domain.Match, error)

	// Close releases resources.
	Close() error
}

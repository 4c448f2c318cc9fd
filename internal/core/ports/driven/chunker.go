package driven

import "github.com/candela-labs/scholar-cli/internal/core/domain"

// Chunker splits normalised abstract text into overlapping chunks.
//
// Every emitted chunk carries the paper's denormalised metadata and a
// zero-based position, and its text never exceeds the configured chunk
// size except when the whole text fit in a single chunk.
type Chunker interface {
	// Chunk splits text derived from paper into ordered chunks.
	// Returns nil for empty text.
	Chunk(paper domain.Paper, text string) ([]domain.Chunk, error)
}

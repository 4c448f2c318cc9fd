// Package memory provides an in-memory chunk store.
//
// Every search is an exhaustive scan, so it suits tests and small
// corpora. Scores follow the same (1+cosine)/2 convention the
// persistent stores use, keeping them in [0,1].
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/candela-labs/scholar-cli/internal/core/domain"
	"github.com/candela-labs/scholar-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ChunkStore = (*Store)(nil)

// Store holds embedded chunks in memory.
type Store struct {
	mu     sync.RWMutex
	chunks []domain.Chunk
}

// NewStore creates an empty in-memory chunk store.
func NewStore() *Store {
	return &Store{}
}

// Insert persists one embedded chunk.
func (s *Store) Insert(ctx context.Context, chunk domain.Chunk) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.chunks = append(s.chunks, chunk)
	return nil
}

// Search scans all chunks, scores them against the query vector and
// returns the top matches in descending score order. numCandidates is
// ignored: an exhaustive scan already considers every chunk.
func (s *Store) Search(ctx context.Context, vector []float32, numCandidates, limit int) ([]domain.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]domain.Match, 0, len(s.chunks))
	for _, chunk := range s.chunks {
		matches = append(matches, domain.Match{
			ArxivID:  chunk.ArxivID,
			Title:    chunk.Title,
			Text:     chunk.Text,
			Position: chunk.Position,
			Score:    Similarity(vector, chunk.Embedding),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

// Len returns the number of stored chunks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// Similarity maps the cosine of two vectors into [0,1] as (1+cos)/2,
// matching Atlas's vectorSearchScore for cosine indexes. Mismatched or
// empty vectors score zero.
func Similarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return (1 + cos) / 2
}

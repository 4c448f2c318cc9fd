package driven

import (
	"context"

	"github.com/candela-labs/scholar-cli/internal/core/domain"
)

// PaperSource fetches paper metadata and abstracts from a bibliographic API.
//
// Implementations fetch in batches and respect the provider's rate limits
// internally (the arXiv API asks for a pause between consecutive requests).
// The source may return fewer papers than requested. Individual entries
// that fail to parse are skipped with a warning; they never fail the batch.
type PaperSource interface {
	// Fetch returns up to maxResults papers in the provider's order.
	Fetch(ctx context.Context, maxResults int) ([]domain.Paper, error)

	// Close releases resources.
	Close() error
}

package driving

import (
	"context"

	"github.com/candela-labs/scholar-cli/internal/core/domain"
)

// IngestService orchestrates fetch, normalise, chunk, embed, and persist
// for a batch of papers.
type IngestService interface {
	// Ingest fetches up to maxPapers papers and indexes their abstracts.
	// Returns domain.ErrNoPapers when the source has nothing to offer.
	// Any collaborator failure aborts the batch and surfaces its cause;
	// there are no partial-success commit semantics.
	Ingest(ctx context.Context, maxPapers int) (domain.IngestStats, error)
}

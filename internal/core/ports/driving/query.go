package driving

import (
	"context"

	"github.com/candela-labs/scholar-cli/internal/core/domain"
)

// QueryService answers natural-language questions grounded in the
// indexed corpus.
type QueryService interface {
	// Query embeds the question, retrieves matching chunks, and returns
	// a generated answer with a deduplicated reference list.
	// Questions below the configured minimum length are rejected with
	// domain.ErrQueryTooShort. An empty retrieval result is not an error:
	// the answer carries a fixed insufficiency notice and no references.
	Query(ctx context.Context, question string) (domain.Answer, error)
}

package services

import "github.com/candela-labs/scholar-cli/internal/core/domain"

// Deduplicate collapses multiple chunk matches from the same paper into
// one reference each, preserving first-seen order.
//
// Precondition: matches arrive sorted by descending score (the retrieval
// engine enforces this), so the first match seen for a paper already
// carries its highest score. Later matches for the same paper are dropped
// without updating the score.
func Deduplicate(matches []domain.Match) []domain.Reference {
	references := make([]domain.Reference, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))

	for _, m := range matches {
		if _, ok := seen[m.ArxivID]; ok {
			continue
		}
		seen[m.ArxivID] = struct{}{}
		references = append(references, domain.Reference{
			ArxivID: m.ArxivID,
			Title:   m.Title,
			Score:   m.Score,
		})
	}

	return references
}

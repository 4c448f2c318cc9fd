package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/candela-labs/scholar-cli/internal/core/domain"
	"github.com/candela-labs/scholar-cli/internal/core/ports/driven"
	"github.com/candela-labs/scholar-cli/internal/core/ports/driving"
	"github.com/candela-labs/scholar-cli/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService answers questions grounded in the indexed corpus. It
// embeds the question, retrieves score-gated matches, synthesises an
// answer, and attaches deduplicated references.
type QueryService struct {
	embedder driven.EmbeddingService
	store    driven.ChunkStore
	llm      driven.LLMService
	settings domain.Settings
}

// NewQueryService creates a new query service.
func NewQueryService(
	embedder driven.EmbeddingService,
	store driven.ChunkStore,
	llm driven.LLMService,
	settings domain.Settings,
) *QueryService {
	return &QueryService{
		embedder: embedder,
		store:    store,
		llm:      llm,
		settings: settings,
	}
}

// Query answers a natural-language question over the indexed abstracts.
func (s *QueryService) Query(ctx context.Context, question string) (domain.Answer, error) {
	logger.Section("Query")

	question = strings.TrimSpace(question)
	if utf8.RuneCountInString(question) < s.settings.MinQueryLength {
		return domain.Answer{}, fmt.Errorf("%w: need at least %d characters",
			domain.ErrQueryTooShort, s.settings.MinQueryLength)
	}
	if s.embedder == nil {
		return domain.Answer{}, domain.ErrEmbeddingUnavailable
	}
	if s.store == nil {
		return domain.Answer{}, domain.ErrStoreUnavailable
	}
	if s.llm == nil {
		return domain.Answer{}, domain.ErrLLMUnavailable
	}

	matches, err := s.retrieve(ctx, question)
	if err != nil {
		return domain.Answer{}, err
	}

	text, err := s.synthesise(ctx, question, matches)
	if err != nil {
		return domain.Answer{}, err
	}

	answer := domain.Answer{
		Text:       text,
		References: Deduplicate(matches),
	}
	logger.Info("Query complete: %d matches, %d unique papers", len(matches), len(answer.References))

	return answer, nil
}

// retrieve embeds the question and runs a score-gated similarity search.
// An empty result is not an error.
func (s *QueryService) retrieve(ctx context.Context, question string) ([]domain.Match, error) {
	logger.Debug("Embedding query (%d chars)", len(question))
	vector, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	limit := s.settings.TopK
	candidates := limit * s.settings.Oversample
	logger.Debug("Similarity search: limit=%d candidates=%d", limit, candidates)

	matches, err := s.store.Search(ctx, vector, candidates, limit)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	matches = ensureDescending(matches)

	filtered := matches[:0]
	for _, m := range matches {
		if m.Score >= s.settings.MinScore {
			filtered = append(filtered, m)
		}
	}
	logger.Debug("%d of %d matches cleared threshold %.2f", len(filtered), len(matches), s.settings.MinScore)

	return filtered, nil
}

// ensureDescending enforces the store's descending-score contract.
// Reference deduplication relies on it (first seen must be highest
// scored), so a violation is repaired and logged rather than assumed away.
func ensureDescending(matches []domain.Match) []domain.Match {
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			logger.Warn("Store returned matches out of score order, re-sorting")
			sort.SliceStable(matches, func(a, b int) bool {
				return matches[a].Score > matches[b].Score
			})
			break
		}
	}
	return matches
}

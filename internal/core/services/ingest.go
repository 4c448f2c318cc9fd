package services

import (
	"context"
	"fmt"

	"github.com/candela-labs/scholar-cli/internal/core/domain"
	"github.com/candela-labs/scholar-cli/internal/core/ports/driven"
	"github.com/candela-labs/scholar-cli/internal/core/ports/driving"
	"github.com/candela-labs/scholar-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService orchestrates the ingestion pipeline:
// fetch -> normalise -> chunk -> embed -> persist.
//
// Papers are processed sequentially, chunk by chunk, to respect the rate
// limits of the fetch and inference collaborators. Any collaborator
// failure aborts the batch and surfaces its cause; resumability is a
// storage-layer concern.
type IngestService struct {
	source     driven.PaperSource
	normaliser driven.Normaliser
	chunker    driven.Chunker
	embedder   driven.EmbeddingService
	store      driven.ChunkStore
}

// NewIngestService creates a new ingestion service.
func NewIngestService(
	source driven.PaperSource,
	normaliser driven.Normaliser,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	store driven.ChunkStore,
) *IngestService {
	return &IngestService{
		source:     source,
		normaliser: normaliser,
		chunker:    chunker,
		embedder:   embedder,
		store:      store,
	}
}

// Ingest fetches up to maxPapers papers and indexes their abstracts.
func (s *IngestService) Ingest(ctx context.Context, maxPapers int) (domain.IngestStats, error) {
	logger.Section("Ingestion")

	if maxPapers <= 0 {
		return domain.IngestStats{}, fmt.Errorf("%w: max papers must be positive", domain.ErrInvalidInput)
	}
	if s.embedder == nil {
		return domain.IngestStats{}, domain.ErrEmbeddingUnavailable
	}
	if s.store == nil {
		return domain.IngestStats{}, domain.ErrStoreUnavailable
	}

	logger.Info("Fetching up to %d papers", maxPapers)
	papers, err := s.source.Fetch(ctx, maxPapers)
	if err != nil {
		return domain.IngestStats{}, fmt.Errorf("fetch papers: %w", err)
	}
	if len(papers) == 0 {
		return domain.IngestStats{}, domain.ErrNoPapers
	}

	totalChunks := 0
	for i, paper := range papers {
		logger.Info("Processing paper %d/%d: %s", i+1, len(papers), paper.ArxivID)

		clean := s.normaliser.Normalise(paper.Abstract)
		chunks, err := s.chunker.Chunk(paper, clean)
		if err != nil {
			return domain.IngestStats{}, fmt.Errorf("chunk %s: %w", paper.ArxivID, err)
		}
		if len(chunks) == 0 {
			logger.Warn("Paper %s has an empty abstract, skipping", paper.ArxivID)
			continue
		}

		texts := make([]string, len(chunks))
		for j := range chunks {
			texts[j] = chunks[j].Text
		}

		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return domain.IngestStats{}, fmt.Errorf("embed chunks of %s: %w", paper.ArxivID, err)
		}

		for j := range chunks {
			chunks[j].Embedding = vectors[j]
			if err := s.store.Insert(ctx, chunks[j]); err != nil {
				return domain.IngestStats{}, fmt.Errorf("persist chunk %d of %s: %w", chunks[j].Position, paper.ArxivID, err)
			}
		}

		totalChunks += len(chunks)
		logger.Debug("Stored %d chunks for %s", len(chunks), paper.ArxivID)
	}

	stats := domain.IngestStats{
		PapersProcessed: len(papers),
		ChunksCreated:   totalChunks,
	}
	stats.Message = fmt.Sprintf("Successfully ingested %d papers with %d chunks", stats.PapersProcessed, stats.ChunksCreated)
	logger.Info("%s", stats.Message)

	return stats, nil
}

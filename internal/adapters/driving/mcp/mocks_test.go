package mcp

import (
	"context"

	"github.com/candela-labs/scholar-cli/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	answer       domain.Answer
	err          error
	lastQuestion string
}

func (m *mockQueryService) Query(_ context.Context, question string) (domain.Answer, error) {
	m.lastQuestion = question
	return m.answer, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	stats   domain.IngestStats
	err     error
	lastMax int
}

func (m *mockIngestService) Ingest(_ context.Context, maxPapers int) (domain.IngestStats, error) {
	m.lastMax = maxPapers
	return m.stats, m.err
}

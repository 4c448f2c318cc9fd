package services

import (
	"context"

	"github.com/candela-labs/scholar-cli/internal/core/domain"
	"github.com/candela-labs/scholar-cli/internal/core/ports/driven"
)

// --- Mock implementations shared by the service tests ---

// mockPaperSource implements driven.PaperSource.
type mockPaperSource struct {
	papers   []domain.Paper
	fetchErr error

	requested int
}

func (m *mockPaperSource) Fetch(_ context.Context, maxResults int) ([]domain.Paper, error) {
	m.requested = maxResults
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	if maxResults < len(m.papers) {
		return m.papers[:maxResults], nil
	}
	return m.papers, nil
}

func (m *mockPaperSource) Close() error { return nil }

// mockEmbeddingService implements driven.EmbeddingService. It returns a
// fixed-dimension vector derived from nothing in particular.
type mockEmbeddingService struct {
	dims     int
	embedErr error

	embedCalls int
	batchCalls int
}

func (m *mockEmbeddingService) vector() []float32 {
	dims := m.dims
	if dims == 0 {
		dims = 4
	}
	v := make([]float32, dims)
	for i := range v {
		v[i] = 0.1
	}
	return v
}

func (m *mockEmbeddingService) Embed(_ context.Context, _ string) ([]float32, error) {
	m.embedCalls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vector(), nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.batchCalls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = m.vector()
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int              { return m.dims }
func (m *mockEmbeddingService) ModelName() string            { return "mock-embed" }
func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error                 { return nil }

// mockChunkStore implements driven.ChunkStore.
type mockChunkStore struct {
	inserted  []domain.Chunk
	insertErr error

	matches   []domain.Match
	searchErr error

	lastCandidates int
	lastLimit      int
}

func (m *mockChunkStore) Insert(_ context.Context, chunk domain.Chunk) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, chunk)
	return nil
}

func (m *mockChunkStore) Search(_ context.Context, _ []float32, numCandidates, limit int) ([]domain.Match, error) {
	m.lastCandidates = numCandidates
	m.lastLimit = limit
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.matches, nil
}

func (m *mockChunkStore) Close() error { return nil }

// mockLLMService implements driven.LLMService and records every prompt.
type mockLLMService struct {
	response    string
	generateErr error

	prompts []string
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.generateErr != nil {
		return "", m.generateErr
	}
	return m.response, nil
}

func (m *mockLLMService) ModelName() string            { return "mock-llm" }
func (m *mockLLMService) Ping(_ context.Context) error { return nil }
func (m *mockLLMService) Close() error                 { return nil }

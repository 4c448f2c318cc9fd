package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candela-labs/scholar-cli/internal/core/domain"
)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("returns answer with references", func(t *testing.T) {
		mockQuery := &mockQueryService{
			answer: domain.Answer{
				Text: "Wound healing proceeds in overlapping phases.",
				References: []domain.Reference{
					{ArxivID: "2401.00001", Title: "Tissue Repair Dynamics", Score: 0.91},
				},
			},
		}

		server := newTestServer(t, &Ports{Query: mockQuery, Ingest: &mockIngestService{}})

		input := QueryInput{Question: "What are the phases of wound healing in tissue?"}
		_, output, err := server.handleQuery(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "Wound healing proceeds in overlapping phases.", output.Answer)
		require.Len(t, output.References, 1)
		assert.Equal(t, "2401.00001", output.References[0].ArxivID)
		assert.Equal(t, "Tissue Repair Dynamics", output.References[0].Title)
		assert.Equal(t, 0.91, output.References[0].Score)
		assert.Equal(t, input.Question, mockQuery.lastQuestion)
	})

	t.Run("returns error on query failure", func(t *testing.T) {
		mockQuery := &mockQueryService{err: domain.ErrQueryTooShort}

		server := newTestServer(t, &Ports{Query: mockQuery, Ingest: &mockIngestService{}})

		_, _, err := server.handleQuery(ctx, nil, QueryInput{Question: "short"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrQueryTooShort))
	})
}

func TestServer_handleIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ingest stats", func(t *testing.T) {
		mockIngest := &mockIngestService{
			stats: domain.IngestStats{
				PapersProcessed: 3,
				ChunksCreated:   12,
				Message:         "Successfully ingested 3 papers with 12 chunks",
			},
		}

		server := newTestServer(t, &Ports{Query: &mockQueryService{}, Ingest: mockIngest})

		_, output, err := server.handleIngest(ctx, nil, IngestInput{MaxPapers: 3})

		require.NoError(t, err)
		assert.Equal(t, 3, output.PapersProcessed)
		assert.Equal(t, 12, output.ChunksCreated)
		assert.Contains(t, output.Message, "3 papers")
		assert.Equal(t, 3, mockIngest.lastMax)
	})

	t.Run("defaults max papers", func(t *testing.T) {
		mockIngest := &mockIngestService{}

		server := newTestServer(t, &Ports{Query: &mockQueryService{}, Ingest: mockIngest})

		_, _, err := server.handleIngest(ctx, nil, IngestInput{})
		require.NoError(t, err)
		assert.Equal(t, defaultIngestMax, mockIngest.lastMax)
	})

	t.Run("returns error on ingest failure", func(t *testing.T) {
		mockIngest := &mockIngestService{err: domain.ErrNoPapers}

		server := newTestServer(t, &Ports{Query: &mockQueryService{}, Ingest: mockIngest})

		_, _, err := server.handleIngest(ctx, nil, IngestInput{MaxPapers: 5})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNoPapers))
	})
}

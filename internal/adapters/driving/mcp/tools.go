package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// QueryInput is the input schema for the query_papers tool.
type QueryInput struct {
	Question string `json:"question" jsonschema:"the research question to answer from indexed papers"`
}

// QueryOutput is the output schema for the query_papers tool.
type QueryOutput struct {
	Answer     string            `json:"answer"`
	References []ReferenceOutput `json:"references"`
}

// ReferenceOutput represents a single cited paper.
type ReferenceOutput struct {
	ArxivID string  `json:"arxiv_id"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
}

// IngestInput is the input schema for the ingest_papers tool.
type IngestInput struct {
	MaxPapers int `json:"max_papers,omitempty" jsonschema:"maximum number of papers to fetch (default 10)"`
}

// IngestOutput is the output schema for the ingest_papers tool.
type IngestOutput struct {
	PapersProcessed int    `json:"papers_processed"`
	ChunksCreated   int    `json:"chunks_created"`
	Message         string `json:"message"`
}

// defaultIngestMax bounds an unspecified ingest request.
const defaultIngestMax = 10

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_papers",
		Description: "Answer a research question using indexed scientific papers, with citations",
	}, s.handleQuery)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_papers",
		Description: "Fetch recent papers from arXiv, chunk and embed them into the local index",
	}, s.handleIngest)
}

// handleQuery handles the query_papers tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	answer, err := s.ports.Query.Query(ctx, input.Question)
	if err != nil {
		return nil, QueryOutput{}, err
	}

	output := QueryOutput{
		Answer:     answer.Text,
		References: make([]ReferenceOutput, len(answer.References)),
	}
	for i := range answer.References {
		output.References[i] = ReferenceOutput{
			ArxivID: answer.References[i].ArxivID,
			Title:   answer.References[i].Title,
			Score:   answer.References[i].Score,
		}
	}

	return nil, output, nil
}

// handleIngest handles the ingest_papers tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	maxPapers := input.MaxPapers
	if maxPapers <= 0 {
		maxPapers = defaultIngestMax
	}

	stats, err := s.ports.Ingest.Ingest(ctx, maxPapers)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	return nil, IngestOutput{
		PapersProcessed: stats.PapersProcessed,
		ChunksCreated:   stats.ChunksCreated,
		Message:         stats.Message,
	}, nil
}

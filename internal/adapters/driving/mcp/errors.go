// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants ingest papers and run grounded queries against
// the local research corpus.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")

// ErrMissingIngestService is returned when the ingest service is not provided.
var ErrMissingIngestService = errors.New("mcp: ingest service is required")

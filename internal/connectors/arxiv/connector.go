// Package arxiv fetches paper metadata and abstracts from the arXiv
// Atom API.
package arxiv

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/candela-labs/scholar-cli/internal/core/domain"
	"github.com/candela-labs/scholar-cli/internal/core/ports/driven"
	"github.com/candela-labs/scholar-cli/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.PaperSource = (*Connector)(nil)

// Default configuration values.
const (
	// DefaultBaseURL is the arXiv export API endpoint.
	DefaultBaseURL = "https://export.arxiv.org/api/query"

	// DefaultQuery selects tissues-and-organs quantitative biology papers.
	DefaultQuery = "cat:q-bio.TO"

	// DefaultTimeout is the per-request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRequestInterval is the mandatory pause between consecutive
	// API requests. arXiv asks clients for no more than one request
	// every three seconds.
	DefaultRequestInterval = 3 * time.Second

	// batchSize is the page size requested from the API.
	batchSize = 50
)

// Config holds configuration for the arXiv connector.
type Config struct {
	// BaseURL is the API endpoint (default: export.arxiv.org).
	BaseURL string

	// Query is the arXiv search query (default: cat:q-bio.TO).
	Query string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// RequestInterval is the pause enforced between requests
	// (default: 3s). Tests shorten it.
	RequestInterval time.Duration
}

// Connector is a paged client for the arXiv Atom API. Request pacing is
// enforced internally with a token bucket so callers never need to sleep.
type Connector struct {
	client  *http.Client
	baseURL string
	query   string
	limiter *rate.Limiter
}

// New creates a new arXiv connector.
func New(cfg Config) *Connector {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Query == "" {
		cfg.Query = DefaultQuery
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestInterval == 0 {
		cfg.RequestInterval = DefaultRequestInterval
	}

	return &Connector{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		query:   cfg.Query,
		limiter: rate.NewLimiter(rate.Every(cfg.RequestInterval), 1),
	}
}

// Fetch returns up to maxResults papers, newest first. The API is paged
// in batches; the feed may be exhausted before maxResults is reached.
// Entries that fail to parse are skipped with a warning.
func (c *Connector) Fetch(ctx context.Context, maxResults int) ([]domain.Paper, error) {
	if maxResults <= 0 {
		return nil, fmt.Errorf("%w: max results must be positive", domain.ErrInvalidInput)
	}

	logger.Info("Fetching up to %d papers from arXiv (%s)", maxResults, c.query)

	var papers []domain.Paper
	for start := 0; start < maxResults; start += batchSize {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		current := batchSize
		if remaining := maxResults - start; remaining < current {
			current = remaining
		}

		logger.Debug("Fetching batch %d to %d", start, start+current)
		batch, err := c.fetchBatch(ctx, start, current)
		if err != nil {
			return nil, &domain.BackendError{Backend: "arxiv", Op: "fetch", Err: err}
		}

		papers = append(papers, batch...)
		logger.Debug("Got %d papers in batch", len(batch))

		// Fewer entries than requested means the feed is exhausted.
		if len(batch) < current {
			break
		}
	}

	logger.Info("Total papers fetched: %d", len(papers))
	return papers, nil
}

// Close releases resources.
func (c *Connector) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

func (c *Connector) fetchBatch(ctx context.Context, start, count int) ([]domain.Paper, error) {
	params := url.Values{}
	params.Set("search_query", c.query)
	params.Set("start", strconv.Itoa(start))
	params.Set("max_results", strconv.Itoa(count))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv error (status %d)", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return parseFeed(body)
}

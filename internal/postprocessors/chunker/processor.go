// Package chunker splits normalised abstracts into overlapping,
// sentence-boundary-aware chunks.
package chunker

import (
	"strings"

	"github.com/google/uuid"

	"github.com/candela-labs/scholar-cli/internal/core/domain"
	"github.com/candela-labs/scholar-cli/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.Chunker = (*Processor)(nil)

// DefaultChunkSize is the default maximum chunk length in characters.
const DefaultChunkSize = domain.DefaultChunkSize

// DefaultOverlap is the default number of overlapping characters.
const DefaultOverlap = domain.DefaultChunkOverlap

// Processor splits text into chunks of at most chunkSize characters,
// preferring to end each chunk after a full sentence. Consecutive chunks
// share overlap characters of context so an embedding still sees both
// sides of a split sentence.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the maximum chunk length in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
// An overlap equal to or larger than the chunk size cannot make progress,
// so it is rejected as a configuration error rather than clamped.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.overlap >= p.chunkSize {
		return nil, domain.ErrInvalidChunking
	}

	return p, nil
}

// Chunk splits text into ordered chunks carrying the paper's metadata.
// Returns nil for empty text.
func (p *Processor) Chunk(paper domain.Paper, text string) ([]domain.Chunk, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	pieces := p.split(text)

	chunks := make([]domain.Chunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			ArxivID:    paper.ArxivID,
			Title:      paper.Title,
			Authors:    paper.Authors,
			Published:  paper.Published,
			Categories: paper.Categories,
			Text:       piece,
			Position:   i,
		})
	}

	return chunks, nil
}

// split scans forward over text emitting windows of at most chunkSize
// characters, ending each window at the last ". " inside it when one
// exists past the window start. This is a heuristic: a chunk ends on a
// sentence when possible, not always.
func (p *Processor) split(text string) []string {
	if len(text) <= p.chunkSize {
		return []string{text}
	}

	var pieces []string
	start := 0

	for start < len(text) {
		end := start + p.chunkSize
		if end < len(text) {
			if cut := strings.LastIndex(text[start:end], ". "); cut > 0 {
				end = start + cut + 1
			}
		} else {
			end = len(text)
		}

		if piece := strings.TrimSpace(text[start:end]); piece != "" {
			pieces = append(pieces, piece)
		}

		// The next window must start past the current one even when the
		// sentence cut landed inside the overlap region.
		next := end - p.overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return pieces
}

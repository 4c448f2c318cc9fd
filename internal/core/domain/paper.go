package domain

import "time"

// Paper represents a scientific paper fetched from the bibliographic source.
// It is immutable once created; identity is the arXiv ID.
type Paper struct {
	// ArxivID is the unique arXiv identifier (e.g., "2301.12345v1").
	ArxivID string

	// Title is the paper title with whitespace collapsed.
	Title string

	// Authors is the ordered author list. Never empty for a valid paper.
	Authors []string

	// Published is the submission timestamp.
	Published time.Time

	// Categories are the arXiv category tags (e.g., "q-bio.TO").
	// Never empty for a valid paper.
	Categories []string

	// Abstract is the raw abstract text before normalisation.
	Abstract string
}

// Chunk is an embedded text segment derived from exactly one paper.
// Paper metadata is denormalised onto the chunk so retrieval results
// carry their citation without a second lookup.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// ArxivID links to the paper this chunk was derived from.
	ArxivID string

	// Title is the source paper's title.
	Title string

	// Authors is the source paper's author list.
	Authors []string

	// Published is the source paper's submission timestamp.
	Published time.Time

	// Categories are the source paper's category tags.
	Categories []string

	// Text is the chunk's text span. Its length never exceeds the
	// configured chunk size unless the whole abstract fit in one chunk.
	Text string

	// Position is the zero-based ordinal within the paper.
	Position int

	// Embedding is the vector representation, set after embedding.
	Embedding []float32
}

// Match is a retrieval result: a chunk's denormalised fields plus the
// similarity score reported by the vector store. Matches exist only
// within one retrieval call.
type Match struct {
	// ArxivID is the matched chunk's source paper.
	ArxivID string

	// Title is the source paper's title.
	Title string

	// Text is the matched chunk's text.
	Text string

	// Position is the chunk's ordinal within the paper.
	Position int

	// Score is the similarity score in [0,1], higher is more relevant.
	Score float64
}

// Reference is a deduplicated paper-level citation. When several chunks
// of the same paper match a query, one Reference carries the highest
// score observed among them.
type Reference struct {
	// ArxivID is the cited paper.
	ArxivID string

	// Title is the cited paper's title.
	Title string

	// Score is the best similarity score among the paper's matches.
	Score float64
}

// Answer is the synthesiser output: generated text plus the ordered
// references that grounded it.
type Answer struct {
	// Text is the generated answer, or the fixed insufficiency notice
	// when no evidence cleared the retrieval threshold.
	Text string

	// References lists the papers the answer is grounded on, in
	// first-retrieved order. Empty when Text is the insufficiency notice.
	References []Reference
}

// IngestStats summarises one ingestion batch.
type IngestStats struct {
	// PapersProcessed is the number of papers fetched and chunked.
	PapersProcessed int

	// ChunksCreated is the total number of chunks persisted.
	ChunksCreated int

	// Message is a human-readable summary of the batch.
	Message string
}

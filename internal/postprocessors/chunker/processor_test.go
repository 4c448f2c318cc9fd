package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candela-labs/scholar-cli/internal/core/domain"
)

func testPaper() domain.Paper {
	return domain.Paper{
		ArxivID:    "2301.12345v1",
		Title:      "Autophagy in Tissue Homeostasis",
		Authors:    []string{"J. Doe", "A. Smith"},
		Categories: []string{"q-bio.TO"},
	}
}

func TestNew_RejectsOverlapNotSmallerThanSize(t *testing.T) {
	_, err := New(WithChunkSize(100), WithOverlap(100))
	assert.ErrorIs(t, err, domain.ErrInvalidChunking)

	_, err = New(WithChunkSize(100), WithOverlap(150))
	assert.ErrorIs(t, err, domain.ErrInvalidChunking)

	_, err = New(WithChunkSize(100), WithOverlap(99))
	assert.NoError(t, err)
}

func TestChunk_ShortTextSingleChunk(t *testing.T) {
	p, err := New(WithChunkSize(100), WithOverlap(20))
	require.NoError(t, err)

	chunks, err := p.Chunk(testPaper(), "  Short abstract about autophagy.  ")
	require.NoError(t, err)

	require.Len(t, chunks, 1)
	assert.Equal(t, "Short abstract about autophagy.", chunks[0].Text)
	assert.Equal(t, 0, chunks[0].Position)
}

func TestChunk_EmptyTextNoChunks(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	chunks, err := p.Chunk(testPaper(), "   \n\t  ")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestChunk_LongTextRespectsSizeLimit(t *testing.T) {
	p, err := New(WithChunkSize(150), WithOverlap(0))
	require.NoError(t, err)

	text := strings.TrimSpace(strings.Repeat("word ", 200))
	chunks, err := p.Chunk(testPaper(), text)
	require.NoError(t, err)

	assert.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c.Text), 150)
		assert.NotEmpty(t, strings.TrimSpace(c.Text))
	}
}

func TestChunk_PrefersSentenceBoundary(t *testing.T) {
	p, err := New(WithChunkSize(50), WithOverlap(10))
	require.NoError(t, err)

	text := "First sentence here. Second sentence follows on. Third sentence closes the abstract out fully."
	chunks, err := p.Chunk(testPaper(), text)
	require.NoError(t, err)

	require.NotEmpty(t, chunks)
	// The first window [0,50) contains ". " after both sentences; the
	// chunk must end after the last full sentence inside it.
	assert.Equal(t, "First sentence here. Second sentence follows on.", chunks[0].Text)
}

func TestChunk_OverlapSharesContext(t *testing.T) {
	p, err := New(WithChunkSize(100), WithOverlap(20))
	require.NoError(t, err)

	text := strings.TrimSpace(strings.Repeat("abcdefghi ", 30))
	chunks, err := p.Chunk(testPaper(), text)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	// Each chunk after the first starts with text already seen at the
	// tail of its predecessor.
	for i := 1; i < len(chunks); i++ {
		head := chunks[i].Text[:10]
		assert.Contains(t, chunks[i-1].Text, head,
			"chunk %d should share overlap with chunk %d", i, i-1)
	}
}

func TestChunk_PositionsAreSequential(t *testing.T) {
	p, err := New(WithChunkSize(80), WithOverlap(10))
	require.NoError(t, err)

	text := strings.TrimSpace(strings.Repeat("sentence parts flow onward. ", 20))
	chunks, err := p.Chunk(testPaper(), text)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for i, c := range chunks {
		assert.Equal(t, i, c.Position)
	}
}

func TestChunk_CarriesPaperMetadata(t *testing.T) {
	p, err := New(WithChunkSize(60), WithOverlap(5))
	require.NoError(t, err)

	paper := testPaper()
	text := strings.TrimSpace(strings.Repeat("metadata rides along on every chunk. ", 6))
	chunks, err := p.Chunk(paper, text)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	seen := map[string]bool{}
	for _, c := range chunks {
		assert.Equal(t, paper.ArxivID, c.ArxivID)
		assert.Equal(t, paper.Title, c.Title)
		assert.Equal(t, paper.Authors, c.Authors)
		assert.Equal(t, paper.Categories, c.Categories)
		assert.NotEmpty(t, c.ID)
		assert.False(t, seen[c.ID], "chunk IDs must be unique")
		seen[c.ID] = true
	}
}

package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candela-labs/scholar-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func testChunk(arxivID string, position int, embedding []float32) domain.Chunk {
	return domain.Chunk{
		ID:         arxivID + "-" + string(rune('0'+position)),
		ArxivID:    arxivID,
		Title:      "Paper " + arxivID,
		Authors:    []string{"A. Author", "B. Author"},
		Published:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Categories: []string{"q-bio.TO"},
		Text:       "chunk text for " + arxivID,
		Position:   position,
		Embedding:  embedding,
	}
}

func TestStore_InsertAndSearch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testChunk("2401.00001", 0, []float32{1, 0, 0})))
	require.NoError(t, store.Insert(ctx, testChunk("2401.00002", 0, []float32{0, 1, 0})))
	require.NoError(t, store.Insert(ctx, testChunk("2401.00003", 0, []float32{0.9, 0.1, 0})))

	matches, err := store.Search(ctx, []float32{1, 0, 0}, 30, 3)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, "2401.00001", matches[0].ArxivID)
	assert.Equal(t, "2401.00003", matches[1].ArxivID)
	assert.Equal(t, "2401.00002", matches[2].ArxivID)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-6)

	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}
}

func TestStore_Search_RespectsLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i, vec := range [][]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}} {
		chunk := testChunk("2401.0000"+string(rune('1'+i)), 0, vec)
		require.NoError(t, store.Insert(ctx, chunk))
	}

	matches, err := store.Search(ctx, []float32{1, 0, 0}, 30, 2)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestStore_Search_Empty(t *testing.T) {
	store := newTestStore(t)

	matches, err := store.Search(context.Background(), []float32{1, 0, 0}, 30, 5)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestStore_Insert_Idempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	chunk := testChunk("2401.00001", 0, []float32{1, 0, 0})
	require.NoError(t, store.Insert(ctx, chunk))

	chunk.Text = "revised text"
	require.NoError(t, store.Insert(ctx, chunk))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	matches, err := store.Search(ctx, []float32{1, 0, 0}, 10, 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "revised text", matches[0].Text)
}

func TestStore_EmbeddingRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	embedding := []float32{0.25, -0.5, 0.125, 1.0}
	require.NoError(t, store.Insert(ctx, testChunk("2401.00001", 0, embedding)))

	// Identical query vector must score exactly as a perfect match.
	matches, err := store.Search(ctx, embedding, 10, 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-6)
}

func TestStore_MigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening runs migrate again against the same file.
	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Count(context.Background())
	assert.NoError(t, err)
}

func TestFloat32Conversion(t *testing.T) {
	original := []float32{0.1, -2.5, 3.14159, 0, 1e-8}

	assert.Equal(t, original, bytesToFloat32Slice(float32SliceToBytes(original)))
	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}

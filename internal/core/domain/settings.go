package domain

// Default pipeline parameters. These mirror the values the corpus was
// tuned with and can be overridden through the config file.
const (
	// DefaultChunkSize is the maximum chunk length in characters.
	DefaultChunkSize = 500

	// DefaultChunkOverlap is the number of characters consecutive
	// chunks share.
	DefaultChunkOverlap = 50

	// DefaultTopK is the number of matches requested per query.
	DefaultTopK = 5

	// DefaultMinScore is the similarity threshold below which matches
	// are discarded.
	DefaultMinScore = 0.7

	// DefaultMinQueryLength is the minimum accepted query length.
	DefaultMinQueryLength = 20

	// DefaultOversample is the candidate multiplier passed to the vector
	// store. Searching top_k*10 candidates before ranking reduces false
	// negatives from approximate indexing.
	DefaultOversample = 10

	// DefaultEmbeddingDimensions matches mxbai-embed-large.
	DefaultEmbeddingDimensions = 1024
)

// Settings is the immutable pipeline configuration. A snapshot is passed
// into each component at construction; there is no ambient global state.
type Settings struct {
	// ChunkSize is the maximum chunk length in characters.
	ChunkSize int

	// ChunkOverlap is the character overlap between consecutive chunks.
	// Must be strictly smaller than ChunkSize.
	ChunkOverlap int

	// TopK is the number of matches requested per query.
	TopK int

	// MinScore is the similarity threshold in [0,1].
	MinScore float64

	// MinQueryLength is the minimum accepted query length in characters.
	MinQueryLength int

	// Oversample is the candidate multiplier for the vector search.
	Oversample int

	// EmbeddingDimensions is the vector size produced by the embedding
	// model. It must match the store's indexed dimensionality.
	EmbeddingDimensions int
}

// DefaultSettings returns the default pipeline configuration.
func DefaultSettings() Settings {
	return Settings{
		ChunkSize:           DefaultChunkSize,
		ChunkOverlap:        DefaultChunkOverlap,
		TopK:                DefaultTopK,
		MinScore:            DefaultMinScore,
		MinQueryLength:      DefaultMinQueryLength,
		Oversample:          DefaultOversample,
		EmbeddingDimensions: DefaultEmbeddingDimensions,
	}
}

// Validate checks the settings for internally inconsistent values.
func (s Settings) Validate() error {
	if s.ChunkSize <= 0 {
		return ErrInvalidInput
	}
	if s.ChunkOverlap < 0 || s.ChunkOverlap >= s.ChunkSize {
		return ErrInvalidChunking
	}
	if s.TopK <= 0 || s.Oversample <= 0 {
		return ErrInvalidInput
	}
	if s.MinScore < 0 || s.MinScore > 1 {
		return ErrInvalidInput
	}
	if s.MinQueryLength < 0 {
		return ErrInvalidInput
	}
	if s.EmbeddingDimensions <= 0 {
		return ErrInvalidInput
	}
	return nil
}

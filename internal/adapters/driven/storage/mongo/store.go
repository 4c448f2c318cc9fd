// Package mongo provides a MongoDB Atlas chunk store backed by a
// vector search index.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/candela-labs/scholar-cli/internal/core/domain"
	"github.com/candela-labs/scholar-cli/internal/core/ports/driven"
)

var _ driven.ChunkStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultDatabase   = "scholar"
	DefaultCollection = "chunks"
	DefaultIndexName  = "vector_index"
	DefaultTimeout    = 10 * time.Second
)

// Config holds configuration for the MongoDB chunk store.
type Config struct {
	// URI is the MongoDB connection string (required).
	URI string

	// Database is the database name (default: scholar).
	Database string

	// Collection is the collection name (default: chunks).
	Collection string

	// IndexName is the Atlas vector search index name (default: vector_index).
	IndexName string

	// Dimensions is the embedding vector size, used when creating the
	// search index.
	Dimensions int

	// Timeout bounds the initial connection attempt (default: 10s).
	Timeout time.Duration
}

// Store is a MongoDB Atlas-backed chunk store.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
	indexName  string
	dimensions int
}

// chunkDocument is the persisted chunk shape. Field names match the
// vector index definition, so changing them requires reindexing.
type chunkDocument struct {
	ID         string    `bson:"_id"`
	ArxivID    string    `bson:"arxiv_id"`
	Title      string    `bson:"title"`
	Authors    []string  `bson:"authors"`
	Published  time.Time `bson:"published"`
	Categories []string  `bson:"categories"`
	ChunkText  string    `bson:"chunk_text"`
	ChunkIndex int       `bson:"chunk_index"`
	Embedding  []float32 `bson:"embedding"`
}

// matchDocument is the projected search result shape.
type matchDocument struct {
	ArxivID    string  `bson:"arxiv_id"`
	Title      string  `bson:"title"`
	ChunkText  string  `bson:"chunk_text"`
	ChunkIndex int     `bson:"chunk_index"`
	Score      float64 `bson:"score"`
}

// NewStore connects to MongoDB and returns a chunk store.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo: %w: connection URI is required", domain.ErrInvalidInput)
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.IndexName == "" {
		cfg.IndexName = DefaultIndexName
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = domain.DefaultEmbeddingDimensions
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, &domain.BackendError{Backend: "mongo", Op: "connect", Err: err}
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, &domain.BackendError{Backend: "mongo", Op: "ping", Err: err}
	}

	return &Store{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		indexName:  cfg.IndexName,
		dimensions: cfg.Dimensions,
	}, nil
}

// Insert persists one embedded chunk. Re-inserting the same ID
// replaces the previous document.
func (s *Store) Insert(ctx context.Context, chunk domain.Chunk) error {
	doc := chunkDocument{
		ID:         chunk.ID,
		ArxivID:    chunk.ArxivID,
		Title:      chunk.Title,
		Authors:    chunk.Authors,
		Published:  chunk.Published,
		Categories: chunk.Categories,
		ChunkText:  chunk.Text,
		ChunkIndex: chunk.Position,
		Embedding:  chunk.Embedding,
	}

	_, err := s.collection.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: chunk.ID}},
		doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return &domain.BackendError{Backend: "mongo", Op: "insert", Err: err}
	}
	return nil
}

// Search runs an Atlas $vectorSearch aggregation and returns matches
// ordered by descending vectorSearchScore.
func (s *Store) Search(ctx context.Context, vector []float32, numCandidates, limit int) ([]domain.Match, error) {
	cursor, err := s.collection.Aggregate(ctx, searchPipeline(s.indexName, vector, numCandidates, limit))
	if err != nil {
		return nil, &domain.BackendError{Backend: "mongo", Op: "search", Err: err}
	}
	defer cursor.Close(ctx)

	var matches []domain.Match //nolint:prealloc // size unknown from cursor
	for cursor.Next(ctx) {
		var doc matchDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, &domain.BackendError{Backend: "mongo", Op: "search", Err: fmt.Errorf("decoding match: %w", err)}
		}
		matches = append(matches, domain.Match{
			ArxivID:  doc.ArxivID,
			Title:    doc.Title,
			Text:     doc.ChunkText,
			Position: doc.ChunkIndex,
			Score:    doc.Score,
		})
	}

	if err := cursor.Err(); err != nil {
		return nil, &domain.BackendError{Backend: "mongo", Op: "search", Err: err}
	}
	return matches, nil
}

// EnsureVectorIndex creates the vector search index if it does not
// exist. Atlas builds indexes asynchronously, so a freshly created
// index may take a short while before searches return results.
func (s *Store) EnsureVectorIndex(ctx context.Context) error {
	view := s.collection.SearchIndexes()

	cursor, err := view.List(ctx, options.SearchIndexes().SetName(s.indexName))
	if err == nil {
		defer cursor.Close(ctx)
		if cursor.Next(ctx) {
			return nil // already exists
		}
	}

	model := mongo.SearchIndexModel{
		Definition: vectorIndexDefinition(s.dimensions),
		Options:    options.SearchIndexes().SetName(s.indexName).SetType("vectorSearch"),
	}

	if _, err := view.CreateOne(ctx, model); err != nil {
		return &domain.BackendError{Backend: "mongo", Op: "create index", Err: err}
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

// vectorIndexDefinition builds the Atlas vector search index definition:
// cosine over the embedding path, with category and paper ID filter fields.
func vectorIndexDefinition(dimensions int) bson.D {
	return bson.D{
		{Key: "fields", Value: bson.A{
			bson.D{
				{Key: "type", Value: "vector"},
				{Key: "path", Value: "embedding"},
				{Key: "numDimensions", Value: dimensions},
				{Key: "similarity", Value: "cosine"},
			},
			bson.D{{Key: "type", Value: "filter"}, {Key: "path", Value: "categories"}},
			bson.D{{Key: "type", Value: "filter"}, {Key: "path", Value: "arxiv_id"}},
		}},
	}
}

// searchPipeline builds the $vectorSearch aggregation pipeline.
func searchPipeline(indexName string, vector []float32, numCandidates, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$vectorSearch", Value: bson.D{
			{Key: "index", Value: indexName},
			{Key: "path", Value: "embedding"},
			{Key: "queryVector", Value: vector},
			{Key: "numCandidates", Value: numCandidates},
			{Key: "limit", Value: limit},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "arxiv_id", Value: 1},
			{Key: "title", Value: 1},
			{Key: "chunk_text", Value: 1},
			{Key: "chunk_index", Value: 1},
			{Key: "score", Value: bson.D{{Key: "$meta", Value: "vectorSearchScore"}}},
		}}},
	}
}

// Package file provides a TOML-backed configuration store.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/candela-labs/scholar-cli/internal/core/domain"
)

// Config is the on-disk configuration shape. Zero values fall back to
// the built-in defaults, so a partial config file is valid.
type Config struct {
	Ollama    OllamaConfig    `toml:"ollama"`
	Chunking  ChunkingConfig  `toml:"chunking"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Arxiv     ArxivConfig     `toml:"arxiv"`
	Storage   StorageConfig   `toml:"storage"`
}

// OllamaConfig configures the embedding and generation backends.
type OllamaConfig struct {
	BaseURL        string `toml:"base_url"`
	EmbeddingModel string `toml:"embedding_model"`
	LLMModel       string `toml:"llm_model"`
	Dimensions     int    `toml:"dimensions"`
}

// ChunkingConfig configures the abstract chunker.
type ChunkingConfig struct {
	ChunkSize int `toml:"chunk_size"`
	Overlap   int `toml:"overlap"`
}

// RetrievalConfig configures retrieval gating.
type RetrievalConfig struct {
	TopK           int     `toml:"top_k"`
	MinScore       float64 `toml:"min_score"`
	MinQueryLength int     `toml:"min_query_length"`
	Oversample     int     `toml:"oversample"`
}

// ArxivConfig configures the paper source.
type ArxivConfig struct {
	BaseURL string `toml:"base_url"`
	Query   string `toml:"query"`
}

// StorageConfig selects and configures the chunk store backend.
type StorageConfig struct {
	// Backend is "sqlite", "mongo" or "memory" (default: sqlite).
	Backend string `toml:"backend"`

	// DataDir is the SQLite data directory (default: ~/.scholar/data).
	DataDir string `toml:"data_dir"`

	// MongoURI is the Atlas connection string, required for the mongo
	// backend.
	MongoURI string `toml:"mongo_uri"`

	// MongoDatabase is the database name (default: scholar).
	MongoDatabase string `toml:"mongo_database"`
}

// ConfigStore loads and persists configuration as TOML.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	config   Config
}

// NewConfigStore creates a TOML-based config store.
// If configDir is empty, defaults to ~/.scholar/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".scholar")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}

	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Load reads configuration from the TOML file. A missing file leaves
// the config at its zero value.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.config = Config{}
			return nil
		}
		return err
	}

	var loaded Config
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parsing %s: %w", s.filePath, err)
	}

	s.config = loaded
	return nil
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := toml.Marshal(s.config)
	if err != nil {
		return err
	}

	// Restricted permissions: the file may hold a connection string.
	return os.WriteFile(s.filePath, data, 0600)
}

// Config returns a copy of the current configuration.
func (s *ConfigStore) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SetConfig replaces the configuration and persists it.
func (s *ConfigStore) SetConfig(cfg Config) error {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
	return s.Save()
}

// Settings maps the file configuration onto pipeline settings,
// substituting defaults for unset values.
func (s *ConfigStore) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings := domain.DefaultSettings()

	if s.config.Chunking.ChunkSize > 0 {
		settings.ChunkSize = s.config.Chunking.ChunkSize
	}
	if s.config.Chunking.Overlap > 0 {
		settings.ChunkOverlap = s.config.Chunking.Overlap
	}
	if s.config.Retrieval.TopK > 0 {
		settings.TopK = s.config.Retrieval.TopK
	}
	if s.config.Retrieval.MinScore > 0 {
		settings.MinScore = s.config.Retrieval.MinScore
	}
	if s.config.Retrieval.MinQueryLength > 0 {
		settings.MinQueryLength = s.config.Retrieval.MinQueryLength
	}
	if s.config.Retrieval.Oversample > 0 {
		settings.Oversample = s.config.Retrieval.Oversample
	}
	if s.config.Ollama.Dimensions > 0 {
		settings.EmbeddingDimensions = s.config.Ollama.Dimensions
	}

	return settings
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

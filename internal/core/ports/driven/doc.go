// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - PaperSource: Fetches papers from the bibliographic API
//   - Normaliser: Cleans abstract text before chunking
//   - Chunker: Splits normalised text into overlapping chunks
//   - EmbeddingService: Generates vector embeddings
//   - LLMService: Generates grounded answer text
//   - ChunkStore: Persists embedded chunks and serves similarity search
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven

// Package domain defines the core business entities for Scholar.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Paper: A scientific paper fetched from the bibliographic source
//   - Chunk: An embedded text segment derived from one paper
//   - Match: A chunk returned by a similarity search with its score
//   - Reference: A deduplicated paper-level citation
//   - Answer: Generated answer text with its grounding references
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

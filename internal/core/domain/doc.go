// Package domain defines the core business entities for the guideline
// explanation engine.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An ingested guideline document with its pages
//   - Chunk: The unit of retrieval, bound to one (document, page)
//   - VectorRecord: A stored (id, embedding, text, metadata) row
//   - RetrievedChunk: A ranked retrieval hit with relevance and excerpt
//   - GuidelineAnswer: The three-section explanation with citations
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

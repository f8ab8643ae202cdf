// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - VectorStore: persisted cosine-similarity index over guideline chunks
//   - PageExtractor: page-by-page text extraction from corpus files
//
// # Optional Interfaces
//
// These can be nil - the pipeline degrades gracefully:
//
//   - EmbeddingService: generates embeddings. Without a credential, retrieval
//     returns empty evidence instead of failing.
//   - ChatService: generates the three-section explanation. Without it, the
//     answer degrades to a fixed message per section.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven

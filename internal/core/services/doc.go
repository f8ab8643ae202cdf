// Package services implements the core pipeline: retrieval, explanation
// generation, response parsing and corpus ingestion. Services depend only on
// domain types and driven ports; adapters are injected at construction.
package services

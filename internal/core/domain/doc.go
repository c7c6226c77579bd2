// Package domain defines the core business entities for the document
// assistant.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: The extracted text of one PDF page
//   - Chunk: A bounded-size span of document text, the retrieval unit
//   - SearchResult: A chunk with its similarity score
//   - Answer: A generated answer with its grounding context
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

package domain

// Document represents the text of a single PDF page after extraction.
// It is the canonical ingestion unit and is immutable once produced.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Source is the path of the PDF file the page was extracted from.
	Source string

	// Page is the 1-based page number within the source file.
	Page int

	// Content is the extracted plain text of the page.
	Content string

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any
}

// Chunk represents a bounded-size span of document text.
// Chunks are the unit of embedding and retrieval.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Source is the path of the PDF file, inherited from the Document.
	Source string

	// Page is the page number, inherited from the Document.
	Page int

	// Embedding is the vector representation for similarity search.
	Embedding []float32

	// Metadata contains chunk-specific key-value pairs.
	Metadata map[string]any
}

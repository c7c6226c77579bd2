package domain

// SearchResult represents a single similarity search hit.
type SearchResult struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Score is the cosine similarity score (0-1).
	Score float64
}

// Answer is the result of one question through the full pipeline.
type Answer struct {
	// Question is the user's original question.
	Question string

	// Text is the generated plain-text answer.
	Text string

	// Context holds the retrieved chunks the answer was grounded on,
	// in the order they were presented to the language model.
	Context []Chunk
}

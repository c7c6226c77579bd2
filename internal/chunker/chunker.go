// Package chunker splits documents into overlapping fixed-size chunks
// suitable for embedding.
package chunker

import (
	"github.com/google/uuid"

	"github.com/doc-assist/docassist-cli/internal/core/domain"
)

// DefaultChunkSize is the default maximum number of characters per chunk.
const DefaultChunkSize = 1200

// DefaultOverlap is the default number of overlapping characters between
// consecutive chunks.
const DefaultOverlap = 300

// Splitter splits document content into bounded, overlapping chunks.
// Cut points prefer paragraph, then sentence, then word boundaries,
// falling back to hard character cuts. Every chunk is an exact substring
// of the source document content.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the maximum chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a new splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Ensure overlap doesn't exceed chunk size
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// ChunkSize returns the configured maximum chunk size.
func (s *Splitter) ChunkSize() int {
	return s.chunkSize
}

// Overlap returns the configured overlap.
func (s *Splitter) Overlap() int {
	return s.overlap
}

// Split splits every document into chunks. Per-chunk source metadata
// (document ID, source path, page) is inherited from the document.
// Empty input produces empty output.
func (s *Splitter) Split(docs []domain.Document) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	for i := range docs {
		chunks = append(chunks, s.splitDocument(&docs[i])...)
	}
	return chunks, nil
}

// splitDocument chunks a single document's content.
func (s *Splitter) splitDocument(doc *domain.Document) []domain.Chunk {
	if doc.Content == "" {
		return nil
	}

	content := []rune(doc.Content)
	total := len(content)

	var chunks []domain.Chunk
	position := 0
	start := 0

	for start < total {
		end := start + s.chunkSize
		if end >= total {
			end = total
		} else {
			end = cutPoint(content, start, end)
		}

		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Content:    string(content[start:end]),
			Position:   position,
			Source:     doc.Source,
			Page:       doc.Page,
			Metadata:   copyMetadata(doc.Metadata),
		})
		position++

		if end == total {
			break
		}

		// Step back by the overlap, but always make forward progress.
		next := end - s.overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}

// cutPoint finds the best position to end a chunk that starts at start and
// may extend at most to limit. Boundaries are tried from coarsest to
// finest; a boundary is only accepted in the second half of the window so
// chunks don't degenerate. Returns limit (hard cut) when no boundary fits.
func cutPoint(content []rune, start, limit int) int {
	floor := start + (limit-start)/2

	// Paragraph break: cut after a blank line.
	for i := limit; i > floor; i-- {
		if content[i-1] == '\n' && i >= 2 && content[i-2] == '\n' {
			return i
		}
	}

	// Sentence end: cut after terminal punctuation followed by space.
	for i := limit; i > floor; i-- {
		if isSpace(content[i-1]) && i >= 2 && isSentenceEnd(content[i-2]) {
			return i
		}
	}

	// Word boundary: cut after any whitespace.
	for i := limit; i > floor; i-- {
		if isSpace(content[i-1]) {
			return i
		}
	}

	return limit
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func copyMetadata(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

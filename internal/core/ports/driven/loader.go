package driven

import (
	"context"

	"github.com/doc-assist/docassist-cli/internal/core/domain"
)

// DocumentLoader extracts text from a source file into Documents.
// One Document is produced per logical unit (a PDF page).
//
// Implementations must return domain.ErrIngestion (wrapped) when the file
// is missing, unreadable, or yields zero documents.
type DocumentLoader interface {
	// Load reads the file at path and returns one Document per page.
	Load(ctx context.Context, path string) ([]domain.Document, error)

	// SupportedExtensions returns the file extensions this loader handles,
	// lowercase with leading dot (e.g. ".pdf").
	SupportedExtensions() []string
}

// Package pdf provides a document loader for PDF files.
package pdf

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/doc-assist/docassist-cli/internal/core/domain"
	"github.com/doc-assist/docassist-cli/internal/core/ports/driven"
	"github.com/doc-assist/docassist-cli/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// Loader extracts page text from PDF files.
type Loader struct{}

// New creates a new PDF loader.
func New() *Loader {
	return &Loader{}
}

// SupportedExtensions returns the file extensions this loader handles.
func (l *Loader) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Load reads the PDF at path and returns one Document per page.
// Pages that yield no extractable text are skipped. Returns
// domain.ErrIngestion when the file is missing, unreadable, or no page
// produced any text.
func (l *Loader) Load(ctx context.Context, path string) ([]domain.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrIngestion, path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %v", domain.ErrIngestion, path, err)
	}

	reader, err := pdf.NewReader(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrIngestion, path, err)
	}

	pageCount := reader.NumPage()
	logger.Debug("PDF %s: %d pages", path, pageCount)

	docs := make([]domain.Document, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Warn("PDF %s: page %d text extraction failed: %v", path, i, err)
			continue
		}

		text = cleanText(text)
		if text == "" {
			continue
		}

		docs = append(docs, domain.Document{
			ID:      uuid.New().String(),
			Source:  path,
			Page:    i,
			Content: text,
			Metadata: map[string]any{
				"pages": pageCount,
			},
		})
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: %s contains no extractable text", domain.ErrIngestion, path)
	}

	logger.Debug("PDF %s: extracted %d non-empty pages", path, len(docs))
	return docs, nil
}

// cleanText normalises extracted page text: collapses runs of blank lines
// and trims surrounding whitespace.
func cleanText(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

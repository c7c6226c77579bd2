package mcp

import (
	"context"

	"github.com/doc-assist/docassist-cli/internal/core/domain"
	"github.com/doc-assist/docassist-cli/internal/core/ports/driven"
)

// mockAssistant is a mock implementation of driving.Assistant.
type mockAssistant struct {
	answer     domain.Answer
	chunks     []domain.Chunk
	collection string
	err        error
}

func (m *mockAssistant) Ask(_ context.Context, _ string) (domain.Answer, error) {
	return m.answer, m.err
}

func (m *mockAssistant) Retrieve(_ context.Context, _ string) ([]domain.Chunk, error) {
	return m.chunks, m.err
}

func (m *mockAssistant) Collection() string {
	return m.collection
}

// mockLibrary is a mock implementation of driving.Library.
type mockLibrary struct {
	names []string
	err   error
}

func (m *mockLibrary) GetOrCreate(_ context.Context, _ string) (driven.VectorStore, string, error) {
	return nil, "", m.err
}

func (m *mockLibrary) List() ([]string, error) {
	return m.names, m.err
}

func (m *mockLibrary) CollectionName(_ string) (string, error) {
	return "", m.err
}

func (m *mockLibrary) Close() error {
	return nil
}

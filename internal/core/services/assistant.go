package services

import (
	"context"
	"fmt"

	"github.com/doc-assist/docassist-cli/internal/core/domain"
	"github.com/doc-assist/docassist-cli/internal/core/ports/driving"
)

// AssistantService binds a retriever and an answer chain to one
// collection and runs the full question-answering pipeline.
type AssistantService struct {
	retriever  *MultiQueryRetriever
	chain      *AnswerChain
	collection string
}

var _ driving.Assistant = (*AssistantService)(nil)

// NewAssistantService creates an assistant bound to a collection.
// Both capabilities are required.
func NewAssistantService(retriever *MultiQueryRetriever, chain *AnswerChain, collection string) (*AssistantService, error) {
	if retriever == nil {
		return nil, fmt.Errorf("%w: retriever is required", domain.ErrInvalidInput)
	}
	if chain == nil {
		return nil, fmt.Errorf("%w: answer chain is required", domain.ErrInvalidInput)
	}

	return &AssistantService{
		retriever:  retriever,
		chain:      chain,
		collection: collection,
	}, nil
}

// Ask runs multi-query retrieval followed by grounded generation.
func (s *AssistantService) Ask(ctx context.Context, question string) (domain.Answer, error) {
	if question == "" {
		return domain.Answer{}, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}

	chunks, err := s.retriever.Retrieve(ctx, question)
	if err != nil {
		return domain.Answer{}, err
	}

	text, err := s.chain.Answer(ctx, question, chunks)
	if err != nil {
		return domain.Answer{}, err
	}

	return domain.Answer{
		Question: question,
		Text:     text,
		Context:  chunks,
	}, nil
}

// Retrieve returns the deduplicated context chunks for a question
// without generating an answer.
func (s *AssistantService) Retrieve(ctx context.Context, question string) ([]domain.Chunk, error) {
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}
	return s.retriever.Retrieve(ctx, question)
}

// Collection returns the collection name this assistant serves.
func (s *AssistantService) Collection() string {
	return s.collection
}

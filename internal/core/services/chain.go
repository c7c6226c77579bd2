package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/doc-assist/docassist-cli/internal/core/domain"
	"github.com/doc-assist/docassist-cli/internal/core/ports/driven"
)

// defaultAnswerPrompt is the compiled-in grounded-answer template, used
// when no PromptStore is configured. Placeholders are context then
// question.
const defaultAnswerPrompt = `Answer the question based ONLY on the following context:
%s
Question: %s`

// AnswerChain turns a question and its retrieved context into a grounded
// answer. Construction fails when either capability is missing; there is
// no silent degraded mode.
type AnswerChain struct {
	llm     driven.LLMService
	prompts driven.PromptStore
}

// NewAnswerChain creates an answer chain.
func NewAnswerChain(llm driven.LLMService, prompts driven.PromptStore) (*AnswerChain, error) {
	if llm == nil {
		return nil, fmt.Errorf("%w: LLM service is required", domain.ErrInvalidInput)
	}
	return &AnswerChain{llm: llm, prompts: prompts}, nil
}

// Answer fills the grounded-answer template with the context chunks (in
// the order delivered by the retriever) and the question, and returns
// the model's plain-text reply. An empty context is valid: the template
// is filled with an empty block and the model answers from nothing.
func (c *AnswerChain) Answer(ctx context.Context, question string, chunks []domain.Chunk) (string, error) {
	tmpl := defaultAnswerPrompt
	if c.prompts != nil {
		loaded, err := c.prompts.Load(driven.PromptAnswer)
		if err == nil && loaded != "" {
			tmpl = loaded
		}
	}

	blocks := make([]string, len(chunks))
	for i, chunk := range chunks {
		blocks[i] = chunk.Content
	}
	prompt := fmt.Sprintf(tmpl, strings.Join(blocks, "\n\n"), question)

	answer, err := c.llm.Generate(ctx, prompt, driven.GenerateOptions{})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	return strings.TrimSpace(answer), nil
}

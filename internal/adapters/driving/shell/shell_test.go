package shell

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doc-assist/docassist-cli/internal/core/domain"
	"github.com/doc-assist/docassist-cli/internal/core/ports/driving"
)

type stubAssistant struct {
	answer domain.Answer
	err    error
	asked  []string
}

func (a *stubAssistant) Ask(_ context.Context, question string) (domain.Answer, error) {
	a.asked = append(a.asked, question)
	if a.err != nil {
		return domain.Answer{}, a.err
	}
	return a.answer, nil
}

func (a *stubAssistant) Retrieve(_ context.Context, _ string) ([]domain.Chunk, error) {
	return nil, nil
}

func (a *stubAssistant) Collection() string { return "policy-abc123def456" }

func newTestModel(assistant *stubAssistant) *Model {
	m := New(Config{Assistant: assistant, SourcePath: "policy.pdf"})
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return model.(*Model)
}

func typeString(m *Model, s string) *Model {
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return model.(*Model)
}

func pressEnter(m *Model) (*Model, tea.Cmd) {
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return model.(*Model), cmd
}

func TestSubmitQuestionStartsPipeline(t *testing.T) {
	assistant := &stubAssistant{answer: domain.Answer{Text: "The deductible is $500."}}
	m := newTestModel(assistant)

	m = typeString(m, "What is the deductible?")
	m, cmd := pressEnter(m)

	assert.True(t, m.asking)
	require.Len(t, m.history, 1)
	assert.Equal(t, "What is the deductible?", m.history[0].question)
	assert.True(t, m.history[0].pending)
	require.NotNil(t, cmd)
}

func TestAnswerFillsHistory(t *testing.T) {
	assistant := &stubAssistant{answer: domain.Answer{Text: "The deductible is $500."}}
	m := newTestModel(assistant)

	m = typeString(m, "What is the deductible?")
	m, _ = pressEnter(m)

	model, _ := m.Update(answerMsg{answer: domain.Answer{Text: "The deductible is $500."}})
	m = model.(*Model)

	assert.False(t, m.asking)
	require.Len(t, m.history, 1)
	assert.False(t, m.history[0].pending)
	assert.Equal(t, "The deductible is $500.", m.history[0].answer)
	assert.Contains(t, m.View(), "$500")
}

func TestErrorKeepsSessionAlive(t *testing.T) {
	m := newTestModel(&stubAssistant{})

	m = typeString(m, "question one")
	m, _ = pressEnter(m)

	model, _ := m.Update(errMsg{err: errors.New("model unreachable")})
	m = model.(*Model)

	assert.False(t, m.asking, "a failed question must not block the next one")
	require.Len(t, m.history, 1)
	assert.EqualError(t, m.history[0].err, "model unreachable")
	assert.Contains(t, m.View(), "model unreachable")

	// The next question can be typed and submitted.
	m = typeString(m, "question two")
	m, cmd := pressEnter(m)
	assert.True(t, m.asking)
	assert.NotNil(t, cmd)
}

func TestExitWordsQuit(t *testing.T) {
	for _, word := range []string{"stop", "close", "exit", "quit", "STOP"} {
		m := newTestModel(&stubAssistant{})
		m = typeString(m, word)
		_, cmd := pressEnter(m)
		require.NotNil(t, cmd, "typing %q must quit", word)
		assert.IsType(t, tea.QuitMsg{}, cmd(), "typing %q must quit", word)
	}
}

func TestEscQuits(t *testing.T) {
	m := newTestModel(&stubAssistant{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestEmptyQuestionIgnored(t *testing.T) {
	m := newTestModel(&stubAssistant{})
	m, cmd := pressEnter(m)
	assert.Nil(t, cmd)
	assert.Empty(t, m.history)
	assert.False(t, m.asking)
}

func TestStaleNoticeShown(t *testing.T) {
	m := newTestModel(&stubAssistant{})
	model, _ := m.Update(staleMsg{})
	m = model.(*Model)

	assert.True(t, m.stale)
	assert.Contains(t, m.View(), "changed on disk")
}

func TestStaleChangeTriggersRebuild(t *testing.T) {
	rebuilt := &stubAssistant{answer: domain.Answer{Text: "from the new version"}}
	calls := 0
	m := New(Config{
		Assistant:  &stubAssistant{},
		SourcePath: "policy.pdf",
		Rebuild: func(_ context.Context) (driving.Assistant, error) {
			calls++
			return rebuilt, nil
		},
	})
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = model.(*Model)

	model, cmd := m.Update(staleMsg{})
	m = model.(*Model)
	assert.True(t, m.rebuilding)
	assert.Contains(t, m.View(), "re-indexing")
	require.NotNil(t, cmd)

	model, _ = m.Update(rebuiltMsg{assistant: rebuilt})
	m = model.(*Model)
	assert.Equal(t, 0, calls, "rebuild runs in the command, not in Update")
	assert.False(t, m.rebuilding)
	assert.False(t, m.stale, "a successful rebuild clears the staleness notice")
	assert.Same(t, rebuilt, m.assistant)
}

func TestRebuildFailureKeepsOldAssistant(t *testing.T) {
	original := &stubAssistant{}
	m := New(Config{
		Assistant:  original,
		SourcePath: "policy.pdf",
		Rebuild: func(_ context.Context) (driving.Assistant, error) {
			return nil, errors.New("source unreadable")
		},
	})
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = model.(*Model)

	model, _ = m.Update(staleMsg{})
	m = model.(*Model)

	model, _ = m.Update(rebuiltMsg{err: errors.New("source unreadable")})
	m = model.(*Model)

	assert.False(t, m.rebuilding)
	assert.True(t, m.stale)
	assert.Same(t, original, m.assistant)
	assert.Contains(t, m.View(), "Re-index failed")
}

func TestWatchChangesSignal(t *testing.T) {
	changes := make(chan struct{}, 1)
	changes <- struct{}{}

	msg := watchChanges(changes)()
	assert.Equal(t, staleMsg{}, msg)
}

func TestWatchChangesClosedChannel(t *testing.T) {
	changes := make(chan struct{})
	close(changes)

	assert.Nil(t, watchChanges(changes)())
}

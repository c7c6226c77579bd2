// Package shell provides the interactive question-answering terminal UI.
// One shell session is bound to one document; every submitted question
// runs the full retrieval and generation pipeline and the answer is
// appended to a scrollback history.
package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/doc-assist/docassist-cli/internal/core/domain"
	"github.com/doc-assist/docassist-cli/internal/core/ports/driving"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	questionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	staleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// exitWords terminate the session when typed as the whole question.
var exitWords = map[string]bool{
	"stop":  true,
	"close": true,
	"exit":  true,
	"quit":  true,
}

// Config holds the dependencies for a shell session.
type Config struct {
	Assistant  driving.Assistant
	SourcePath string

	// Changes signals that the source file was modified on disk.
	// Optional; when nil no staleness handling happens.
	Changes <-chan struct{}

	// Rebuild re-indexes the source file and returns an assistant bound
	// to the fresh collection. Optional; when nil a change only shows a
	// staleness notice.
	Rebuild func(ctx context.Context) (driving.Assistant, error)

	// Ctx cancels in-flight pipeline calls when the program exits.
	Ctx context.Context
}

// entry is one question/answer pair in the scrollback.
type entry struct {
	question string
	answer   string
	err      error
	pending  bool
}

type answerMsg struct{ answer domain.Answer }
type errMsg struct{ err error }
type staleMsg struct{}

type rebuiltMsg struct {
	assistant driving.Assistant
	err       error
}

// Model is the bubbletea model for the shell.
type Model struct {
	cfg       Config
	assistant driving.Assistant
	input     textinput.Model
	spin      spinner.Model
	viewport  viewport.Model

	history    []entry
	asking     bool
	stale      bool
	rebuilding bool
	rebuildErr error
	ready      bool
	width      int
	height     int
}

// New creates a shell model.
func New(cfg Config) *Model {
	if cfg.Ctx == nil {
		cfg.Ctx = context.Background()
	}

	ti := textinput.New()
	ti.Placeholder = "Ask a question about the document..."
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		cfg:       cfg,
		assistant: cfg.Assistant,
		input:     ti,
		spin:      sp,
	}
}

// Init starts the input cursor blink and the staleness watch.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.cfg.Changes != nil {
		cmds = append(cmds, watchChanges(m.cfg.Changes))
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.asking && !m.rebuilding {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case answerMsg:
		m.finishPending(msg.answer.Text, nil)
		return m, nil

	case errMsg:
		m.finishPending("", msg.err)
		return m, nil

	case staleMsg:
		m.stale = true
		var cmds []tea.Cmd
		if m.cfg.Changes != nil {
			cmds = append(cmds, watchChanges(m.cfg.Changes))
		}
		if m.cfg.Rebuild != nil && !m.rebuilding {
			m.rebuilding = true
			m.rebuildErr = nil
			cmds = append(cmds, m.spin.Tick, m.rebuild())
		}
		return m, tea.Batch(cmds...)

	case rebuiltMsg:
		m.rebuilding = false
		if msg.err != nil {
			m.rebuildErr = msg.err
			return m, nil
		}
		m.assistant = msg.assistant
		m.stale = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyEnter:
		question := strings.TrimSpace(m.input.Value())
		if question == "" || m.asking {
			return m, nil
		}
		if exitWords[strings.ToLower(question)] {
			return m, tea.Quit
		}

		m.input.Reset()
		m.asking = true
		m.history = append(m.history, entry{question: question, pending: true})
		m.refreshViewport()

		return m, tea.Batch(m.spin.Tick, m.ask(question))

	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ask runs the pipeline off the UI goroutine.
func (m *Model) ask(question string) tea.Cmd {
	assistant := m.assistant
	ctx := m.cfg.Ctx
	return func() tea.Msg {
		answer, err := assistant.Ask(ctx, question)
		if err != nil {
			return errMsg{err: err}
		}
		return answerMsg{answer: answer}
	}
}

// rebuild re-indexes the changed source off the UI goroutine.
func (m *Model) rebuild() tea.Cmd {
	rebuild := m.cfg.Rebuild
	ctx := m.cfg.Ctx
	return func() tea.Msg {
		assistant, err := rebuild(ctx)
		return rebuiltMsg{assistant: assistant, err: err}
	}
}

// watchChanges waits for one source-file change signal.
func watchChanges(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return staleMsg{}
	}
}

// finishPending fills in the newest pending history entry. A failed
// question stays in the scrollback with its error; the next question
// proceeds normally.
func (m *Model) finishPending(answer string, err error) {
	m.asking = false
	for i := len(m.history) - 1; i >= 0; i-- {
		if m.history[i].pending {
			m.history[i].pending = false
			m.history[i].answer = answer
			m.history[i].err = err
			break
		}
	}
	m.refreshViewport()
}

func (m *Model) resize() {
	// Title, status, and input each take one line plus a blank spacer.
	contentHeight := m.height - 5
	if contentHeight < 3 {
		contentHeight = 3
	}
	m.viewport = viewport.New(m.width, contentHeight)
	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	if m.viewport.Width == 0 {
		return
	}

	var b strings.Builder
	for i, e := range m.history {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(questionStyle.Render("You: " + e.question))
		b.WriteString("\n")
		switch {
		case e.pending:
			b.WriteString(answerStyle.Render("..."))
		case e.err != nil:
			b.WriteString(errorStyle.Render("Error: " + e.err.Error()))
		default:
			b.WriteString(answerStyle.Render(e.answer))
		}
	}
	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(b.String()))
	m.viewport.GotoBottom()
}

// View renders the shell.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	title := titleStyle.Render(fmt.Sprintf("docassist - %s", m.assistant.Collection()))

	status := helpStyle.Render("enter: ask - up/down: scroll - esc: quit")
	switch {
	case m.asking:
		status = m.spin.View() + " thinking..."
	case m.rebuilding:
		status = m.spin.View() + " source changed, re-indexing..."
	}
	if m.stale && !m.rebuilding {
		notice := fmt.Sprintf("%s changed on disk.", m.cfg.SourcePath)
		if m.rebuildErr != nil {
			notice = fmt.Sprintf("%s Re-index failed: %v", notice, m.rebuildErr)
		} else if m.cfg.Rebuild == nil {
			notice += " Restart the shell to index the new version."
		}
		status = staleStyle.Render(notice) + "\n" + status
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s\n%s", title, m.viewport.View(), status, m.input.View())
}

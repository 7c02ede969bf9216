package repl

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/mina/foundation/mina"
)

// Config holds the shell settings
type Config struct {
	Prompt      string
	HistorySize int
}

// DefaultConfig returns default shell settings
func DefaultConfig() Config {
	return Config{Prompt: "mina> ", HistorySize: 200}
}

const (
	defaultWidth  = 80
	defaultHeight = 24
	chromeHeight  = 6 // title, status bar and bordered input
)

// Model is the bubbletea model of the interactive shell
type Model struct {
	eval   *Evaluator
	config Config

	input    textinput.Model
	viewport viewport.Model
	width    int
	height   int

	transcript []string
	history    []string
	histPos    int // len(history) when not browsing
	quitting   bool
}

// NewModel creates a shell model for fe
func NewModel(fe *mina.Frontend, cfg Config) Model {
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultConfig().Prompt
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = DefaultConfig().HistorySize
	}

	ti := textinput.New()
	ti.Prompt = cfg.Prompt
	ti.Placeholder = "1 + 2;  or :help"
	ti.Focus()

	m := Model{
		eval:     NewEvaluator(fe),
		config:   cfg,
		input:    ti,
		viewport: viewport.New(defaultWidth, defaultHeight-chromeHeight),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.appendTranscript(InfoStyle.Render("Mina front-end shell. Type :help for commands."))
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			line := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(line) == "" {
				return m, nil
			}
			if m.submit(line) {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil

		case tea.KeyUp:
			m.browse(-1)
			return m, nil

		case tea.KeyDown:
			m.browse(1)
			return m, nil

		case tea.KeyCtrlL:
			m.transcript = nil
			m.viewport.SetContent("")
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 1)
		m.input.Width = max(msg.Width-lipgloss.Width(m.config.Prompt)-6, 10)
		m.viewport.SetContent(strings.Join(m.transcript, "\n"))
		m.viewport.GotoBottom()
	}

	// Update components
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit evaluates line and records it. It reports whether the shell
// should quit.
func (m *Model) submit(line string) bool {
	m.remember(line)

	result := m.eval.Eval(line)
	if result.Kind == ResultQuit {
		return true
	}

	m.appendTranscript(InputEchoStyle.Render(m.config.Prompt + line))
	if result.Text != "" {
		m.appendTranscript(RenderResult(result))
	}
	return false
}

func (m *Model) remember(line string) {
	if n := len(m.history); n == 0 || m.history[n-1] != line {
		m.history = append(m.history, line)
	}
	if over := len(m.history) - m.config.HistorySize; over > 0 {
		m.history = m.history[over:]
	}
	m.histPos = len(m.history)
}

// browse moves through the history; moving past the newest entry clears
// the input
func (m *Model) browse(delta int) {
	if len(m.history) == 0 {
		return
	}
	m.histPos = min(max(m.histPos+delta, 0), len(m.history))
	if m.histPos == len(m.history) {
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.history[m.histPos])
	m.input.CursorEnd()
}

func (m *Model) appendTranscript(entry string) {
	m.transcript = append(m.transcript, entry)
	m.viewport.SetContent(strings.Join(m.transcript, "\n"))
	m.viewport.GotoBottom()
}

// Transcript returns the rendered entries shown so far
func (m Model) Transcript() []string {
	return append([]string(nil), m.transcript...)
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(TitleStyle.Render("mina"))
	s.WriteString(" ")
	s.WriteString(SubtitleStyle.Render("language front-end"))
	s.WriteString("\n")
	s.WriteString(m.viewport.View())
	s.WriteString("\n")
	s.WriteString(FocusedInputStyle.Render(m.input.View()))
	s.WriteString("\n")
	s.WriteString(m.renderStatus())

	return s.String()
}

func (m Model) renderStatus() string {
	mode := ModeStyle.Render(m.eval.Mode().String())
	help := HelpStyle.Render("enter: run  up/down: history  ctrl+l: clear  ctrl+c: quit")
	return StatusBarStyle.Render("mode " + mode + "  " + help)
}

// Run starts the interactive shell and blocks until it exits
func Run(fe *mina.Frontend, cfg Config, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(NewModel(fe, cfg), opts...).Run()
	return err
}

// Package tui provides a Bubble Tea review screen for batch renames.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	progressbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/musicbase/internal/progress"
	"github.com/handiism/musicbase/internal/rename"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	newNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4"))
)

// State represents the current UI state.
type State int

const (
	StateScanning State = iota
	StateReview
	StateApplying
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   progress.Level
}

// logSink collects progress events from background work until the next tick.
type logSink struct {
	mu      sync.Mutex
	pending []progress.Event
	handled int
}

func (s *logSink) emit(e progress.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, e)
	if e.Level != progress.LevelSuccess && e.Level != progress.LevelInfo {
		s.handled++
	}
}

func (s *logSink) drain() ([]progress.Event, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.pending
	s.pending = nil
	return events, s.handled
}

func (s *logSink) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	s.handled = 0
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	spinner  spinner.Model
	progress progressbar.Model
	baseDir  string
	renamer  *rename.Renamer
	sink     *logSink
	logs     []LogEntry
	err      error

	plan     *rename.Plan
	selected map[string]bool
	cursor   int
	result   *rename.Result
	applying int

	ctx    context.Context
	cancel context.CancelFunc

	verbose bool

	width  int
	height int
}

// NewModel creates a review screen for the album directories under baseDir.
// newRenamer receives the progress callback the screen listens on.
func NewModel(baseDir string, newRenamer func(progress.Func) *rename.Renamer) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progressbar.New(progressbar.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())
	sink := &logSink{}

	return Model{
		state:    StateScanning,
		spinner:  sp,
		progress: prog,
		baseDir:  baseDir,
		renamer:  newRenamer(sink.emit),
		sink:     sink,
		logs:     make([]LogEntry, 0),
		selected: make(map[string]bool),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Init starts scanning the base directory.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.scan(), m.tickProgress())
}

// Message types
type (
	// ScanDoneMsg is sent when the rename plan is ready.
	ScanDoneMsg struct {
		Plan *rename.Plan
		Err  error
	}

	// ApplyDoneMsg is sent when the selected renames are done.
	ApplyDoneMsg struct {
		Result *rename.Result
		Err    error
	}

	// TickMsg is for periodic log and progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ScanDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
			break
		}
		m.plan = msg.Plan
		for _, e := range m.plan.Candidates {
			m.selected[e.Old] = !m.plan.IsConsider(e.Old)
		}
		m.state = StateReview
		if len(m.plan.Candidates) == 0 {
			m.state = StateComplete
		}

	case ApplyDoneMsg:
		m.result = msg.Result
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		events, handled := m.sink.drain()
		for _, e := range events {
			m.appendLog(e)
		}
		if m.state == StateApplying && m.applying > 0 {
			cmds = append(cmds, m.progress.SetPercent(float64(handled)/float64(m.applying)))
		}
		cmds = append(cmds, m.tickProgress())

	case progressbar.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progressbar.Model)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.cancel()
		return m, tea.Quit

	case "esc":
		if m.state == StateScanning || m.state == StateApplying {
			m.cancel()
			return m, nil
		}
		return m, tea.Quit

	case "q":
		if m.state != StateApplying {
			return m, tea.Quit
		}

	case "v":
		m.verbose = !m.verbose
	}

	if m.state != StateReview {
		return m, nil
	}

	candidates := m.plan.Candidates
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(candidates)-1 {
			m.cursor++
		}
	case " ", "x":
		old := candidates[m.cursor].Old
		m.selected[old] = !m.selected[old]
	case "a":
		all := len(m.selectedNames()) < len(candidates)
		for _, e := range candidates {
			m.selected[e.Old] = all
		}
	case "enter":
		names := m.selectedNames()
		if len(names) == 0 {
			return m, nil
		}
		m.sink.reset()
		m.applying = len(names)
		m.state = StateApplying
		return m, tea.Batch(m.apply(names), m.spinner.Tick)
	}
	return m, nil
}

func (m *Model) appendLog(e progress.Event) {
	if e.Level == progress.LevelVerbose && !m.verbose {
		return
	}
	m.logs = append(m.logs, LogEntry{Message: e.Message, Level: e.Level})
	// Keep only last 10 logs
	if len(m.logs) > 10 {
		m.logs = m.logs[len(m.logs)-10:]
	}
}

func (m Model) selectedNames() []string {
	var names []string
	for _, e := range m.plan.Candidates {
		if m.selected[e.Old] {
			names = append(names, e.Old)
		}
	}
	return names
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("♫ musicbase rename"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.baseDir))
	b.WriteString("\n\n")

	switch m.state {
	case StateScanning:
		b.WriteString(m.viewScanning())
	case StateReview:
		b.WriteString(m.viewReview())
	case StateApplying:
		b.WriteString(m.viewApplying())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewScanning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Scanning album directories..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

// listHeight is how many candidates fit on screen.
func (m Model) listHeight() int {
	if m.height <= 0 {
		return 15
	}
	return max(m.height-18, 5)
}

func (m Model) viewReview() string {
	var b strings.Builder

	candidates := m.plan.Candidates
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%d directories to rename, %d selected",
		len(candidates), len(m.selectedNames()))))
	b.WriteString("\n")
	if n := len(m.plan.Consider); n > 0 {
		b.WriteString(warningStyle.Render(fmt.Sprintf("%d need a closer look (!)", n)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	height := m.listHeight()
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := min(start+height, len(candidates))

	for i := start; i < end; i++ {
		e := candidates[i]
		check := "[ ]"
		if m.selected[e.Old] {
			check = "[×]"
		}
		marker := " "
		if m.plan.IsConsider(e.Old) {
			marker = warningStyle.Render("!")
		}
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
		}

		oldName := e.Old
		if i == m.cursor {
			oldName = cursorStyle.Render(oldName)
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s\n", pointer, check, marker, oldName))
		b.WriteString(fmt.Sprintf("        %s\n", newNameStyle.Render("→ "+e.New)))
	}
	if end < len(candidates) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more", len(candidates)-end)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderLogs())
	return b.String()
}

func (m Model) viewApplying() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Renaming %d directories...", m.applying)))
	b.WriteString("\n\n")
	b.WriteString(m.progress.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	if m.result == nil {
		b.WriteString(boxStyle.Render("✨ Every directory already has its canonical name"))
		b.WriteString("\n")
		return b.String()
	}

	box := boxStyle.Render(fmt.Sprintf(
		"✨ Rename Complete!\n\n"+
			"Renamed: %d\n"+
			"Failed: %d",
		len(m.result.Renamed),
		len(m.result.Failed),
	))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case progress.LevelError:
			style = errorStyle
			prefix = "✗"
		case progress.LevelWarning:
			style = warningStyle
			prefix = "!"
		case progress.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case progress.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateReview:
		return "↑/↓: move • space: toggle • a: toggle all • enter: rename selected • v: verbose • q: quit"
	case StateScanning, StateApplying:
		return "esc: cancel"
	case StateComplete, StateError:
		return "q: quit"
	}
	return ""
}

// scan builds the rename plan in the background.
func (m Model) scan() tea.Cmd {
	return func() tea.Msg {
		plan, err := m.renamer.Plan(m.ctx, m.baseDir)
		return ScanDoneMsg{Plan: plan, Err: err}
	}
}

// apply renames the selected directories in the background.
func (m Model) apply(names []string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.renamer.Apply(m.ctx, m.plan, names)
		return ApplyDoneMsg{Result: res, Err: err}
	}
}

// Run starts the TUI application.
func Run(baseDir string, newRenamer func(progress.Func) *rename.Renamer) error {
	p := tea.NewProgram(NewModel(baseDir, newRenamer), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

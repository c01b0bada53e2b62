// Package tui provides a Bubble Tea terminal user interface for slide-renamer.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/slide-renamer/internal/config"
	"github.com/handiism/slide-renamer/internal/label"
	"github.com/handiism/slide-renamer/internal/review"
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

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))

	explicitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateSetup State = iota
	StateLoading
	StateReview
	StateCommitting
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   review.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state       State
	folderInput textinput.Model
	editInput   textinput.Model
	spinner     spinner.Model
	progress    progress.Model
	settings    *config.Settings
	logs        []LogEntry
	err         error

	// Work context
	ctx    context.Context
	cancel context.CancelFunc

	// Review manager and its event stream
	manager *review.Manager
	events  chan review.ProgressEvent

	// Review state
	rows    []review.Row
	cursor  int
	editing bool
	renamed int
	failed  int

	// Options
	extract bool
	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings) Model {
	fi := textinput.New()
	fi.Placeholder = "/path/to/slide/folder"
	fi.SetValue(settings.SlideFolder)
	fi.Focus()
	fi.CharLimit = 500
	fi.Width = 60

	ei := textinput.New()
	ei.Placeholder = "e.g. 031_032"
	ei.CharLimit = 100
	ei.Width = 30

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:       StateSetup,
		folderInput: fi,
		editInput:   ei,
		spinner:     sp,
		progress:    prog,
		settings:    settings,
		logs:        make([]LogEntry, 0),
		events:      make(chan review.ProgressEvent, 64),
		extract:     true,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.waitForEvent())
}

// Message types
type (
	// ProgressMsg carries a manager progress event.
	ProgressMsg struct {
		Event review.ProgressEvent
	}

	// LoadDoneMsg is sent when scanning and extraction complete.
	LoadDoneMsg struct {
		Err error
	}

	// CommitDoneMsg is sent when the renames finish.
	CommitDoneMsg struct {
		Renamed int
		Failed  int
		Err     error
	}

	// SessionSavedMsg is sent after a session save attempt.
	SessionSavedMsg struct {
		Err error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if msg.Event.Level != review.LevelVerbose || m.verbose {
			m.logs = append(m.logs, LogEntry{
				Message: msg.Event.Message,
				Level:   msg.Event.Level,
			})
			// Keep only last 10 logs
			if len(m.logs) > 10 {
				m.logs = m.logs[len(m.logs)-10:]
			}
		}
		cmds = append(cmds, m.waitForEvent())

	case LoadDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.rows = m.manager.Rows()
			m.cursor = 0
			m.state = StateReview
		}

	case CommitDoneMsg:
		m.renamed = msg.Renamed
		m.failed = msg.Failed
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}

	case SessionSavedMsg:
		if msg.Err != nil {
			m.logs = append(m.logs, LogEntry{
				Message: fmt.Sprintf("Session save failed: %v", msg.Err),
				Level:   review.LevelError,
			})
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update the focused text input
	if m.state == StateSetup {
		var cmd tea.Cmd
		m.folderInput, cmd = m.folderInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.state == StateReview && m.editing {
		var cmd tea.Cmd
		m.editInput, cmd = m.editInput.Update(msg)
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
		switch m.state {
		case StateSetup:
			return m, tea.Quit
		case StateReview:
			if m.editing {
				m.editing = false
				m.editInput.Blur()
				return m, nil
			}
			return m, tea.Quit
		case StateLoading, StateCommitting:
			m.cancel()
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		}

	case "enter":
		switch {
		case m.state == StateSetup && m.folderInput.Value() != "":
			m.settings.SlideFolder = m.folderInput.Value()
			m.settings.Prefix = m.settings.AutoPrefix()
			m.state = StateLoading
			return m, tea.Batch(m.loadBatch(), m.spinner.Tick)
		case m.state == StateReview && m.editing:
			if err := m.manager.Edit(m.cursor, m.editInput.Value()); err != nil {
				m.logs = append(m.logs, LogEntry{
					Message: fmt.Sprintf("Invalid identifier: %v", err),
					Level:   review.LevelError,
				})
			} else {
				m.rows = m.manager.Rows()
			}
			m.editing = false
			m.editInput.Blur()
		case m.state == StateReview:
			m.editing = true
			m.editInput.SetValue(m.rows[m.cursor].Identifier)
			m.editInput.Focus()
			return m, textinput.Blink
		}

	case "up", "k":
		if m.state == StateReview && !m.editing && m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.state == StateReview && !m.editing && m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case "x":
		if m.state == StateSetup {
			m.extract = !m.extract
		}

	case "v":
		if m.state == StateSetup {
			m.verbose = !m.verbose
		}

	case "c":
		if m.state == StateReview && !m.editing {
			m.state = StateCommitting
			return m, tea.Batch(m.commit(), m.spinner.Tick)
		}

	case "s":
		if m.state == StateReview && !m.editing {
			return m, m.saveSession()
		}

	case "q":
		if m.state == StateComplete || m.state == StateError {
			return m, tea.Quit
		}

	case "r":
		if m.state == StateComplete || m.state == StateError {
			// Reset for a new batch
			m.state = StateSetup
			m.logs = nil
			m.rows = nil
			m.cursor = 0
			m.editing = false
			m.err = nil
			m.renamed = 0
			m.failed = 0
			m.manager = nil
			m.ctx, m.cancel = context.WithCancel(context.Background())
			m.folderInput.SetValue("")
			m.folderInput.Focus()
		}
	}

	return m, nil
}

// waitForEvent forwards the next manager progress event into the UI.
func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return ProgressMsg{Event: <-m.events}
	}
}

// loadBatch scans the folder and extracts labels in the background.
func (m *Model) loadBatch() tea.Cmd {
	events := m.events
	m.manager = review.NewManager(m.settings, label.SidecarSource{}, func(event review.ProgressEvent) {
		select {
		case events <- event:
		default:
		}
	})

	manager := m.manager
	ctx := m.ctx
	extract := m.extract
	return func() tea.Msg {
		return LoadDoneMsg{Err: manager.LoadBatch(ctx, extract)}
	}
}

// commit runs the renames in the background.
func (m *Model) commit() tea.Cmd {
	manager := m.manager
	ctx := m.ctx
	return func() tea.Msg {
		results, err := manager.Commit(ctx)
		renamed, failed := 0, 0
		for _, result := range results {
			if result.Err != nil {
				failed++
			} else {
				renamed++
			}
		}
		return CommitDoneMsg{Renamed: renamed, Failed: failed, Err: err}
	}
}

// saveSession writes the review to the default session file.
func (m *Model) saveSession() tea.Cmd {
	manager := m.manager
	path := m.settings.SlideFolder + "/.slide-renamer-session.json"
	return func() tea.Msg {
		return SessionSavedMsg{Err: manager.SaveSession(path)}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🔬 Slide Renamer"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Batch rename whole-slide images"))
	b.WriteString("\n\n")

	switch m.state {
	case StateSetup:
		b.WriteString(m.viewSetup())
	case StateLoading:
		b.WriteString(m.viewLoading())
	case StateReview:
		b.WriteString(m.viewReview())
	case StateCommitting:
		b.WriteString(m.viewCommitting())
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

func (m Model) viewSetup() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Slide folder:"))
	b.WriteString("\n\n")
	b.WriteString(m.folderInput.View())
	b.WriteString("\n\n")

	// Options
	extractCheck := "[ ]"
	if m.extract {
		extractCheck = "[×]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Extract label images (x)\n", extractCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (v)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf(
		"Numbers per slide: %d | Skip: %d | Start: %d",
		m.settings.AmountPerSlide, m.settings.SkipFactor, m.settings.Start,
	)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewLoading() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Scanning slides and extracting labels..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewReview() string {
	var b strings.Builder

	b.WriteString(successStyle.Render(fmt.Sprintf("%d slides ready for review:", len(m.rows))))
	b.WriteString("\n\n")

	// Windowed list around the cursor
	first, last := m.visibleRange()
	if first > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more above", first)))
		b.WriteString("\n")
	}
	for i := first; i < last; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}
	if last < len(m.rows) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more below", len(m.rows)-last)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.editing {
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("New identifier for %s:", m.rows[m.cursor].SlideName)))
		b.WriteString("\n")
		b.WriteString(m.editInput.View())
		b.WriteString("\n\n")
	}

	// Position through the batch
	var percent float64
	if len(m.rows) > 1 {
		percent = float64(m.cursor) / float64(len(m.rows)-1)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

// visibleRange picks the slice of rows that fits on screen.
func (m Model) visibleRange() (int, int) {
	window := m.height - 16
	if window < 5 {
		window = 5
	}
	if len(m.rows) <= window {
		return 0, len(m.rows)
	}

	first := m.cursor - window/2
	if first < 0 {
		first = 0
	}
	last := first + window
	if last > len(m.rows) {
		last = len(m.rows)
		first = last - window
	}
	return first, last
}

func (m Model) renderRow(i int) string {
	row := m.rows[i]

	marker := " "
	if row.Explicit {
		marker = "*"
	}
	line := fmt.Sprintf("%s %3d  %-12s %s  →  %s",
		marker, row.Index+1, row.Identifier, dimStyle.Render(row.SlideName), row.NewFilename)

	if i == m.cursor {
		return cursorStyle.Render("❯ " + line)
	}
	if row.Explicit {
		return explicitStyle.Render("  " + line)
	}
	return "  " + line
}

func (m Model) viewCommitting() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Renaming files..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	status := fmt.Sprintf(
		"✨ Rename Complete!\n\n"+
			"Renamed: %d\n"+
			"Failed: %d",
		m.renamed,
		m.failed,
	)
	b.WriteString(boxStyle.Render(status))

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case review.LevelError:
			style = errorStyle
			prefix = "✗"
		case review.LevelWarning:
			style = warningStyle
			prefix = "!"
		case review.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case review.LevelInfo:
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
	case StateSetup:
		return "enter: scan • x: extract labels • v: verbose • esc: quit"
	case StateLoading, StateCommitting:
		return "esc: cancel"
	case StateReview:
		if m.editing {
			return "enter: apply • esc: cancel edit"
		}
		return "↑/↓: move • enter: edit identifier • c: commit • s: save session • esc: quit"
	case StateComplete, StateError:
		return "r: new batch • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

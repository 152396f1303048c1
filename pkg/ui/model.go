// Package ui implements the interactive terminal explorer for field to
// indicator mappings, built on bubbletea.
package ui

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fieldlens/fieldlens/internal/datasource"
	"github.com/fieldlens/fieldlens/pkg/debug"
	"github.com/fieldlens/fieldlens/pkg/engine"
	"github.com/fieldlens/fieldlens/pkg/metrics"
	"github.com/fieldlens/fieldlens/pkg/model"
	"github.com/fieldlens/fieldlens/pkg/watcher"
)

// AutoCloseEnvVar makes the TUI exit after the given number of
// milliseconds. Used by e2e tests to drive the full program headlessly.
const AutoCloseEnvVar = "FL_TUI_AUTOCLOSE_MS"

type focusPane int

const (
	focusPicker focusPane = iota
	focusResults
)

// FileChangedMsg signals that the mapping source changed on disk.
type FileChangedMsg struct{}

// AutoCloseMsg quits the program, sent when AutoCloseEnvVar is set.
type AutoCloseMsg struct{}

// WatchFileCmd returns a command that waits for the next file change.
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

// AutoCloseCmd schedules an AutoCloseMsg when AutoCloseEnvVar is set.
func AutoCloseCmd() tea.Cmd {
	ms, err := strconv.Atoi(os.Getenv(AutoCloseEnvVar))
	if err != nil || ms <= 0 {
		return nil
	}
	return tea.Tick(time.Duration(ms)*time.Millisecond, func(time.Time) tea.Msg {
		return AutoCloseMsg{}
	})
}

// Model is the bubbletea model for the explorer.
type Model struct {
	session *engine.Session
	view    engine.View

	dataPath   string
	sourceName string
	rows       []model.Row
	watcher    *watcher.Watcher

	theme  Theme
	width  int
	height int
	ready  bool

	focus   focusPane
	cursor  int
	results viewport.Model
	filter  textinput.Model

	filtering     bool
	showHelp      bool
	quitting      bool
	statusMsg     string
	statusIsError bool
}

// NewModel creates the explorer model over an existing session.
func NewModel(session *engine.Session, dataPath, sourceName string) Model {
	filter := textinput.New()
	filter.Placeholder = "filter"
	filter.Prompt = "/"
	filter.CharLimit = 64

	return Model{
		session:    session,
		view:       session.View(),
		dataPath:   dataPath,
		sourceName: sourceName,
		theme:      DefaultTheme(lipgloss.DefaultRenderer()),
		filter:     filter,
	}
}

// WithTheme overrides the default theme.
func (m Model) WithTheme(t Theme) Model {
	m.theme = t
	return m
}

// WithWatcher attaches a running file watcher for live reload.
func (m Model) WithWatcher(w *watcher.Watcher) Model {
	m.watcher = w
	return m
}

// WithRows seeds the currently loaded rows so the first reload can report
// an accurate diff.
func (m Model) WithRows(rows []model.Row) Model {
	m.rows = rows
	return m
}

// Session exposes the underlying engine session, mainly for tests.
func (m Model) Session() *engine.Session { return m.session }

// CurrentView exposes the last computed view model, mainly for tests.
func (m Model) CurrentView() engine.View { return m.view }

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.watcher != nil {
		cmds = append(cmds, WatchFileCmd(m.watcher))
	}
	if cmd := AutoCloseCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.results = viewport.New(m.resultsWidth(), m.bodyHeight())
		m.syncResults()
		return m, nil

	case AutoCloseMsg:
		m.quitting = true
		return m, tea.Quit

	case FileChangedMsg:
		return m.handleFileChanged()

	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilterKeys(msg)
		}
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m Model) handleFileChanged() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.watcher != nil {
		cmds = append(cmds, WatchFileCmd(m.watcher))
	}
	if m.dataPath == "" {
		return m, tea.Batch(cmds...)
	}

	start := time.Now()
	stop := metrics.Timer(metrics.Reload)
	rows, err := datasource.LoadRowsFromFile(m.dataPath)
	if err != nil {
		m.statusMsg = fmt.Sprintf("reload error: %v", err)
		m.statusIsError = true
		return m, tea.Batch(cmds...)
	}
	stop()
	debug.LogTiming("reload", time.Since(start))

	diff := datasource.DiffRows(m.rows, rows)
	m.rows = rows
	m.view = m.session.ReplaceIndex(engine.BuildIndex(engine.Normalize(rows)))
	m.clampCursor()
	m.syncResults()

	if diff.Empty() {
		m.statusMsg = "reloaded (no structural changes)"
	} else {
		m.statusMsg = "reloaded: " + diff.String()
	}
	m.statusIsError = false
	return m, tea.Batch(cmds...)
}

func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filter.SetValue("")
		m.filter.Blur()
		m.clampCursor()
		return m, nil
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.clampCursor()
	return m, cmd
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "tab":
		if m.focus == focusPicker {
			m.focus = focusResults
		} else {
			m.focus = focusPicker
		}
		return m, nil

	case "/":
		m.filtering = true
		m.focus = focusPicker
		return m, m.filter.Focus()

	case "esc":
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.clampCursor()
		}
		return m, nil

	case "up", "k":
		if m.focus == focusResults {
			m.results.LineUp(1)
		} else if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.focus == focusResults {
			m.results.LineDown(1)
		} else if m.cursor < m.pickerLen()-1 {
			m.cursor++
		}
		return m, nil

	case "g":
		if m.focus == focusResults {
			m.results.GotoTop()
		} else {
			m.cursor = 0
		}
		return m, nil

	case "G":
		if m.focus == focusResults {
			m.results.GotoBottom()
		} else if n := m.pickerLen(); n > 0 {
			m.cursor = n - 1
		}
		return m, nil

	case " ", "enter":
		return m.toggleAtCursor(), nil

	case "m":
		next := engine.ModeForward
		if m.session.Mode() == engine.ModeForward {
			next = engine.ModeReverse
		}
		m.view = m.session.SetMode(next)
		m.cursor = 0
		m.filter.SetValue("")
		m.statusMsg = next.String() + " mode"
		m.statusIsError = false
		m.syncResults()
		return m, nil

	case "c":
		m.view = m.session.SetSortKey(engine.ByCount)
		m.clampCursor()
		m.syncResults()
		return m, nil

	case "n":
		m.view = m.session.SetSortKey(engine.ByName)
		m.clampCursor()
		m.syncResults()
		return m, nil

	case "r":
		m.view = m.session.Reset()
		m.clampCursor()
		m.syncResults()
		m.statusMsg = "selection cleared"
		m.statusIsError = false
		return m, nil

	case "y":
		text := m.copyText()
		if err := clipboard.WriteAll(text); err != nil {
			m.statusMsg = fmt.Sprintf("clipboard: %v", err)
			m.statusIsError = true
		} else {
			m.statusMsg = "copied to clipboard"
			m.statusIsError = false
		}
		return m, nil
	}
	return m, nil
}

// copyText picks what "y" copies: the id under the picker cursor, or the
// results summary when the results pane is focused.
func (m Model) copyText() string {
	if m.focus == focusPicker {
		switch m.view.Mode {
		case engine.ModeForward:
			if fields := m.visibleFields(); m.cursor < len(fields) {
				return string(fields[m.cursor].ID)
			}
		case engine.ModeReverse:
			if inds := m.visibleIndicators(); m.cursor < len(inds) {
				return string(inds[m.cursor].ID)
			}
		}
	}
	return clipboardText(m.view)
}

func (m Model) toggleAtCursor() Model {
	switch m.view.Mode {
	case engine.ModeForward:
		fields := m.visibleFields()
		if m.cursor < len(fields) {
			m.view = m.session.ToggleField(fields[m.cursor].ID)
		}
	case engine.ModeReverse:
		indicators := m.visibleIndicators()
		if m.cursor < len(indicators) {
			m.view = m.session.ToggleIndicator(indicators[m.cursor].ID)
		}
	}
	m.syncResults()
	return m
}

// visibleFields applies the picker filter to the forward field list.
func (m Model) visibleFields() []engine.FieldRow {
	if m.view.Forward == nil {
		return nil
	}
	return filterRows(m.view.Forward.Fields, m.filter.Value(), func(r engine.FieldRow) string {
		return string(r.ID)
	})
}

// visibleIndicators applies the picker filter to the reverse picker list.
func (m Model) visibleIndicators() []engine.IndicatorRow {
	if m.view.Reverse == nil {
		return nil
	}
	return filterRows(m.view.Reverse.Indicators, m.filter.Value(), func(r engine.IndicatorRow) string {
		return string(r.ID)
	})
}

func (m Model) pickerLen() int {
	switch m.view.Mode {
	case engine.ModeForward:
		return len(m.visibleFields())
	default:
		return len(m.visibleIndicators())
	}
}

func (m *Model) clampCursor() {
	if n := m.pickerLen(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) syncResults() {
	if !m.ready {
		return
	}
	defer metrics.Timer(metrics.ViewCompute)()
	m.results.Width = m.resultsWidth()
	m.results.Height = m.bodyHeight()
	m.results.SetContent(m.renderResults())
}

func (m Model) bodyHeight() int {
	// header + footer + pane borders
	h := m.height - 6
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) pickerWidth() int {
	w := m.width * 2 / 5
	if w < 24 {
		w = 24
	}
	return w
}

func (m Model) resultsWidth() int {
	w := m.width - m.pickerWidth() - 6
	if w < 24 {
		w = 24
	}
	return w
}

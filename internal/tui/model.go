// Package tui is the bubbletea front end: it translates key messages into
// Navigator commands and renders the flattened listing with a scrolling
// window kept centered on the cursor.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"treeclip/internal/clipboard"
	"treeclip/internal/config"
	"treeclip/internal/log"
	"treeclip/internal/nav"
	"treeclip/internal/snippet"
	"treeclip/internal/tree"
	"treeclip/internal/watch"
)

// treeChangedMsg is emitted when the watcher reports an on-disk change.
type treeChangedMsg struct {
	path string
}

type Model struct {
	nav    *nav.Navigator
	tree   *tree.Tree
	keys   KeyMap
	help   help.Model
	styles Styles

	width  int
	height int

	statusMsg string
	stale     bool
	quitting  bool

	// copyOnToggle refreshes the clipboard after every selection change,
	// the way the quit path does once at the end
	copyOnToggle bool

	watcher *watch.Watcher
}

// New creates the TUI model over an already-scanned tree.
func New(t *tree.Tree, cfg *config.Config) *Model {
	return &Model{
		nav:          nav.New(t),
		tree:         t,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		styles:       NewStyles(cfg),
		width:        80,
		height:       24,
		copyOnToggle: cfg.Settings.CopyOnToggle,
	}
}

// SetWatcher attaches a started watcher whose events mark the listing stale.
func (m *Model) SetWatcher(w *watch.Watcher) {
	m.watcher = w
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-m.watcher.Changes()
		if !ok {
			return nil
		}
		return treeChangedMsg{path: change.Path}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	case treeChangedMsg:
		if !m.stale {
			log.Debug("tree changed on disk: %s", msg.path)
		}
		m.stale = true
		return m, m.waitForChange()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if key == "?" {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.nav.HandleKey(nav.Key(key))
	switch action {
	case nav.Quit:
		m.quitting = true
		return m, tea.Quit
	case nav.Render:
		if key == "enter" {
			m.statusMsg = fmt.Sprintf("%d file(s) selected", m.nav.SelectionSize())
			if m.copyOnToggle {
				m.refreshClipboard()
			}
		}
	}
	return m, nil
}

// refreshClipboard mirrors the current selection to the clipboard. Failures
// here are reported in the status line but never end the session.
func (m *Model) refreshClipboard() {
	res := snippet.Build(m.tree.Root, m.nav.SelectedPaths())
	if err := clipboard.Write(res.Text); err != nil {
		log.Error("clipboard refresh: %v", err)
		m.statusMsg = "clipboard unavailable"
	}
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.renderTitle())
	sb.WriteString("\n")
	sb.WriteString(m.renderRows())
	sb.WriteString("\n")
	sb.WriteString(m.renderStatus())
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m *Model) renderTitle() string {
	title := fmt.Sprintf("treeclip — %s  (%d selected)", m.tree.Root, m.nav.SelectionSize())
	return m.styles.Title.Render(truncate(title, m.width))
}

// listHeight is the number of listing rows that fit between the title and
// the status/help lines.
func (m *Model) listHeight() int {
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) renderRows() string {
	rows := m.nav.VisibleEntries()
	if len(rows) == 0 {
		return m.styles.Help.Render("  (empty directory)")
	}

	maxLines := m.listHeight()
	cursor := m.nav.Cursor()

	// keep the cursor centered once the listing outgrows the window
	start := cursor - maxLines/2
	if start+maxLines > len(rows) {
		start = len(rows) - maxLines
	}
	if start < 0 {
		start = 0
	}
	end := start + maxLines
	if end > len(rows) {
		end = len(rows)
	}

	var lines []string
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(rows[i], i, i == cursor))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderRow(e *tree.Entry, line int, atCursor bool) string {
	selMark := "[ ]"
	if m.nav.IsSelected(e) {
		selMark = "[x]"
	}
	dirMark := "   "
	name := e.Name
	if e.IsDir() {
		dirMark = "[D]"
		name += "/"
		if m.nav.IsCollapsed(e) {
			name += "…"
		}
	}

	indent := strings.Repeat("  ", e.Depth)
	row := fmt.Sprintf("%4d %s%s %s %s", line+1, indent, selMark, dirMark, name)
	row = truncate(row, m.width)

	if atCursor {
		return m.styles.Cursor.Render(row)
	}
	if e.IsDir() {
		return m.styles.Directory.Render(row)
	}
	if selMark == "[x]" {
		return m.styles.Selected.Render(row)
	}
	return m.styles.File.Render(row)
}

func (m *Model) renderStatus() string {
	var parts []string
	if pending := m.nav.PendingCount(); pending != "" {
		parts = append(parts, "count: "+pending)
	}
	if m.statusMsg != "" {
		parts = append(parts, m.statusMsg)
	}
	status := m.styles.Help.Render(strings.Join(parts, "  "))
	if m.stale {
		status += "  " + m.styles.Warning.Render("directory changed on disk; listing may be stale")
	}
	return status
}

// SelectedPaths returns the final selection in flattened tree order, for the
// caller to assemble after the program exits.
func (m *Model) SelectedPaths() []string {
	return m.nav.SelectedPaths()
}

// Cursor exposes the cursor position for tests.
func (m *Model) Cursor() int {
	return m.nav.Cursor()
}

func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}

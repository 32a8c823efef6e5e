// Package nav implements the keyboard-driven navigation state machine: cursor
// movement with vim-style counts, the gg/G multi-key sequences, selection
// toggling with directory propagation, and collapse/expand of subtrees. It
// knows nothing about terminals; the TUI layer feeds it normalized key names
// and redraws when told to.
package nav

import (
	"strconv"

	"treeclip/internal/tree"
)

// Action tells the caller what to do after a keystroke.
type Action int

const (
	// Continue means the key was absorbed (or ignored); no redraw needed.
	Continue Action = iota
	// Render means state changed and the caller should redraw.
	Render
	// Quit means the session is over; read out the selection.
	Quit
)

// Key is a normalized keystroke name, matching what bubbletea's
// KeyMsg.String produces ("j", "G", "enter", "down", ...).
type Key string

// Navigator tracks the cursor, the selection set, and transient multi-key
// input state over a flattened tree.
type Navigator struct {
	tree      *tree.Tree
	selected  map[string]struct{}
	collapsed map[string]struct{}

	// visible holds indices into tree.Entries for rows not hidden by a
	// collapsed ancestor; cursor indexes into visible.
	visible []int
	cursor  int

	// pending command buffer
	count   string
	gPrefix bool
}

// New creates a Navigator over the given tree with nothing selected.
func New(t *tree.Tree) *Navigator {
	n := &Navigator{
		tree:      t,
		selected:  make(map[string]struct{}),
		collapsed: make(map[string]struct{}),
	}
	n.rebuildVisible()
	return n
}

// HandleKey processes a single keystroke and returns the resulting action.
// Unrecognized keys clear the pending buffer and are otherwise no-ops.
func (n *Navigator) HandleKey(k Key) Action {
	if n.gPrefix {
		n.gPrefix = false
		if k == "g" {
			n.count = ""
			if len(n.visible) > 0 {
				n.cursor = 0
			}
			return Render
		}
		// lone g is discarded; fall through and treat k as a fresh command
	}

	switch k {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n.count += string(k)
		return Continue
	case "j", "down":
		return n.moveBy(n.takeCount())
	case "k", "up":
		return n.moveBy(-n.takeCount())
	case "g":
		n.gPrefix = true
		return Continue
	case "G":
		return n.gotoLine()
	case "enter":
		n.count = ""
		return n.toggle()
	case ">":
		n.count = ""
		return n.collapse()
	case "<":
		n.count = ""
		return n.expand()
	case "q":
		return Quit
	default:
		n.count = ""
		return Continue
	}
}

// takeCount consumes the pending count buffer. A missing or zero count means
// a multiplier of 1, matching vim.
func (n *Navigator) takeCount() int {
	c, _ := strconv.Atoi(n.count)
	n.count = ""
	if c < 1 {
		return 1
	}
	return c
}

func (n *Navigator) moveBy(delta int) Action {
	if len(n.visible) == 0 {
		return Continue
	}
	n.cursor += delta
	n.clampCursor()
	return Render
}

func (n *Navigator) gotoLine() Action {
	line, _ := strconv.Atoi(n.count)
	n.count = ""
	if len(n.visible) == 0 {
		return Continue
	}
	if line < 1 {
		// G without a count goes to the last row
		n.cursor = len(n.visible) - 1
	} else {
		n.cursor = line - 1
	}
	n.clampCursor()
	return Render
}

func (n *Navigator) clampCursor() {
	if n.cursor > len(n.visible)-1 {
		n.cursor = len(n.visible) - 1
	}
	if n.cursor < 0 {
		n.cursor = 0
	}
}

// toggle flips the selection state of the entry under the cursor. For a
// directory, the whole set of descendant files is inserted or removed
// atomically; the directory path itself is never stored.
func (n *Navigator) toggle() Action {
	e := n.Current()
	if e == nil {
		return Continue
	}
	if e.Kind == tree.File {
		if _, ok := n.selected[e.Path]; ok {
			delete(n.selected, e.Path)
		} else {
			n.selected[e.Path] = struct{}{}
		}
		return Render
	}

	files := n.tree.DescendantFiles(e)
	if len(files) == 0 {
		return Continue
	}
	if n.allSelected(files) {
		for _, p := range files {
			delete(n.selected, p)
		}
	} else {
		for _, p := range files {
			n.selected[p] = struct{}{}
		}
	}
	return Render
}

func (n *Navigator) allSelected(paths []string) bool {
	for _, p := range paths {
		if _, ok := n.selected[p]; !ok {
			return false
		}
	}
	return true
}

func (n *Navigator) collapse() Action {
	e := n.Current()
	if e == nil || e.Kind != tree.Dir {
		return Continue
	}
	if _, ok := n.collapsed[e.Path]; ok {
		return Continue
	}
	n.collapsed[e.Path] = struct{}{}
	n.rebuildVisible()
	n.clampCursor()
	return Render
}

func (n *Navigator) expand() Action {
	e := n.Current()
	if e == nil || e.Kind != tree.Dir {
		return Continue
	}
	if _, ok := n.collapsed[e.Path]; !ok {
		return Continue
	}
	delete(n.collapsed, e.Path)
	n.rebuildVisible()
	n.clampCursor()
	return Render
}

// rebuildVisible recomputes the visible row projection. A row is hidden when
// any strict ancestor is collapsed; the collapsed directory itself stays
// visible.
func (n *Navigator) rebuildVisible() {
	n.visible = n.visible[:0]
	for i, e := range n.tree.Entries {
		if n.hiddenByCollapse(e) {
			continue
		}
		n.visible = append(n.visible, i)
	}
}

func (n *Navigator) hiddenByCollapse(e *tree.Entry) bool {
	if len(n.collapsed) == 0 {
		return false
	}
	for p := e.Parent; p != nil; p = p.Parent {
		if _, ok := n.collapsed[p.Path]; ok {
			return true
		}
	}
	return false
}

// Cursor returns the cursor position as an index into the visible rows.
func (n *Navigator) Cursor() int { return n.cursor }

// Current returns the entry under the cursor, or nil for an empty tree.
func (n *Navigator) Current() *tree.Entry {
	if len(n.visible) == 0 {
		return nil
	}
	return n.tree.Entries[n.visible[n.cursor]]
}

// VisibleEntries returns the rows to draw, in order.
func (n *Navigator) VisibleEntries() []*tree.Entry {
	rows := make([]*tree.Entry, len(n.visible))
	for i, idx := range n.visible {
		rows[i] = n.tree.Entries[idx]
	}
	return rows
}

// IsSelected reports the display selection state of an entry. A file is
// selected when its path is in the set; a directory is selected when it has
// at least one descendant file and all of them are selected.
func (n *Navigator) IsSelected(e *tree.Entry) bool {
	if e.Kind == tree.File {
		_, ok := n.selected[e.Path]
		return ok
	}
	files := n.tree.DescendantFiles(e)
	return len(files) > 0 && n.allSelected(files)
}

// IsCollapsed reports whether the directory entry is collapsed.
func (n *Navigator) IsCollapsed(e *tree.Entry) bool {
	_, ok := n.collapsed[e.Path]
	return ok
}

// PendingCount returns the digits typed so far, for status display.
func (n *Navigator) PendingCount() string { return n.count }

// SelectionSize returns the number of selected files.
func (n *Navigator) SelectionSize() int { return len(n.selected) }

// SelectedPaths returns the selected file paths in flattened tree order.
func (n *Navigator) SelectedPaths() []string {
	paths := make([]string, 0, len(n.selected))
	for _, e := range n.tree.Entries {
		if e.Kind != tree.File {
			continue
		}
		if _, ok := n.selected[e.Path]; ok {
			paths = append(paths, e.Path)
		}
	}
	return paths
}

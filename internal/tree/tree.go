// Package tree builds the flattened directory listing the rest of the
// application navigates over. The listing is scanned once at startup and
// treated as immutable for the lifetime of the session.
package tree

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	apperrors "treeclip/internal/errors"
)

// Kind distinguishes files from directories in the listing.
type Kind int

const (
	File Kind = iota
	Dir
)

// Entry is one row of the flattened tree: a path relative to the scan root,
// its kind, its depth below the root (for indentation), and a parent pointer
// for ancestor queries. Entries are immutable once Scan returns.
type Entry struct {
	Path   string
	Name   string
	Kind   Kind
	Depth  int
	Parent *Entry
}

// IsDir reports whether the entry is a directory.
func (e *Entry) IsDir() bool { return e.Kind == Dir }

// Tree is the depth-first, name-sorted linearization of a directory
// hierarchy.
type Tree struct {
	Root    string
	Entries []*Entry

	// descendant file paths per directory entry, computed once after the
	// scan so selection toggles don't rescan the slice
	descendants map[string][]string
}

// Options controls what Scan skips.
type Options struct {
	// IgnoreDirs are directory names skipped entirely (the directory and
	// everything below it), e.g. ".git" or "node_modules".
	IgnoreDirs []string
	// IgnoreGlobs are glob patterns matched against entry names; matches
	// are skipped.
	IgnoreGlobs []string
	// ShowHidden includes dotfiles when set.
	ShowHidden bool
}

// Scan walks root and returns its flattened tree. It fails if root does not
// exist or is not a directory, and on an unparsable ignore pattern.
func Scan(root string, opts Options) (*Tree, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, apperrors.NewPathError("cannot open start directory", root, err)
	}
	if !info.IsDir() {
		return nil, apperrors.NewPathError("start path is not a directory", root, nil)
	}

	matchers := make([]glob.Glob, 0, len(opts.IgnoreGlobs))
	for _, pattern := range opts.IgnoreGlobs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, apperrors.NewConfigError("invalid ignore pattern "+pattern, err)
		}
		matchers = append(matchers, g)
	}

	ignored := make(map[string]bool, len(opts.IgnoreDirs))
	for _, name := range opts.IgnoreDirs {
		ignored[name] = true
	}

	t := &Tree{Root: root, descendants: make(map[string][]string)}
	if err := t.walk(root, 0, nil, ignored, matchers, opts.ShowHidden); err != nil {
		return nil, err
	}
	t.indexDescendants()
	return t, nil
}

func (t *Tree) walk(dir string, depth int, parent *Entry, ignored map[string]bool, matchers []glob.Glob, showHidden bool) error {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		// The root must be readable; nested directories we cannot open
		// are listed but left empty.
		if depth == 0 {
			return apperrors.NewPathError("cannot read start directory", dir, err)
		}
		return nil
	}

	sort.Slice(dirEntries, func(i, j int) bool {
		return dirEntries[i].Name() < dirEntries[j].Name()
	})

	for _, de := range dirEntries {
		name := de.Name()
		if !showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if de.IsDir() && ignored[name] {
			continue
		}
		if matchesAny(matchers, name) {
			continue
		}

		rel := name
		if parent != nil {
			rel = filepath.Join(parent.Path, name)
		}
		entry := &Entry{
			Path:   rel,
			Name:   name,
			Kind:   File,
			Depth:  depth,
			Parent: parent,
		}
		if de.IsDir() {
			entry.Kind = Dir
		}
		t.Entries = append(t.Entries, entry)

		if de.IsDir() {
			if err := t.walk(filepath.Join(dir, name), depth+1, entry, ignored, matchers, showHidden); err != nil {
				return err
			}
		}
	}
	return nil
}

func matchesAny(matchers []glob.Glob, name string) bool {
	for _, g := range matchers {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// indexDescendants records, for every directory entry, the relative paths of
// all files below it. The flattened order makes this a single pass: the
// subtree of an entry is the contiguous run of deeper entries that follows it.
func (t *Tree) indexDescendants() {
	for i, e := range t.Entries {
		if e.Kind != Dir {
			continue
		}
		var files []string
		for j := i + 1; j < len(t.Entries) && t.Entries[j].Depth > e.Depth; j++ {
			if t.Entries[j].Kind == File {
				files = append(files, t.Entries[j].Path)
			}
		}
		t.descendants[e.Path] = files
	}
}

// DescendantFiles returns the relative paths of all files in the subtree
// rooted at the given directory entry, in flattened order. Returns nil for
// file entries.
func (t *Tree) DescendantFiles(e *Entry) []string {
	return t.descendants[e.Path]
}

// Len returns the number of entries in the flattened listing.
func (t *Tree) Len() int { return len(t.Entries) }

// HasAncestor reports whether path anc is a strict ancestor of entry e.
func (e *Entry) HasAncestor(anc string) bool {
	for p := e.Parent; p != nil; p = p.Parent {
		if p.Path == anc {
			return true
		}
	}
	return false
}

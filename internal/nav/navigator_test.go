package nav_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treeclip/internal/nav"
	"treeclip/internal/tree"
	"treeclip/pkg/testutils"
)

func newNavigator(t *testing.T, files map[string]string) *nav.Navigator {
	t.Helper()
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, files)
	tr, err := tree.Scan(dir, tree.Options{})
	require.NoError(t, err)
	return nav.New(tr)
}

// press feeds a string of single-character keys, or whole key names like
// "enter", to the navigator and returns the last action.
func press(n *nav.Navigator, keys ...string) nav.Action {
	var last nav.Action
	for _, k := range keys {
		if len(k) > 1 && k != "enter" && k != "down" && k != "up" {
			for _, r := range k {
				last = n.HandleKey(nav.Key(string(r)))
			}
			continue
		}
		last = n.HandleKey(nav.Key(k))
	}
	return last
}

func tenFiles() map[string]string {
	files := make(map[string]string, 10)
	for i := 0; i < 10; i++ {
		files[fmt.Sprintf("f%d.txt", i)] = "x"
	}
	return files
}

func selectedSlash(n *nav.Navigator) []string {
	paths := n.SelectedPaths()
	for i := range paths {
		paths[i] = filepath.ToSlash(paths[i])
	}
	return paths
}

func TestMovementClamping(t *testing.T) {
	n := newNavigator(t, tenFiles())

	t.Run("j_and_k_move_one_row", func(t *testing.T) {
		assert.Equal(t, nav.Render, press(n, "j"))
		assert.Equal(t, 1, n.Cursor())
		press(n, "k")
		assert.Equal(t, 0, n.Cursor())
	})

	t.Run("count_multiplies_movement", func(t *testing.T) {
		press(n, "5j")
		assert.Equal(t, 5, n.Cursor())
	})

	t.Run("movement_clamps_to_last_row", func(t *testing.T) {
		press(n, "100j")
		assert.Equal(t, 9, n.Cursor())
	})

	t.Run("movement_clamps_to_first_row", func(t *testing.T) {
		press(n, "100k")
		assert.Equal(t, 0, n.Cursor())
	})

	t.Run("arrow_keys_match_jk", func(t *testing.T) {
		press(n, "down")
		assert.Equal(t, 1, n.Cursor())
		press(n, "up")
		assert.Equal(t, 0, n.Cursor())
	})

	t.Run("zero_count_means_one", func(t *testing.T) {
		press(n, "0j")
		assert.Equal(t, 1, n.Cursor())
	})
}

func TestCursorStaysInRange(t *testing.T) {
	n := newNavigator(t, tenFiles())
	sequence := []string{"j", "j", "9", "9", "j", "k", "G", "g", "g", "5", "k", "3", "j", "100k", "42G"}
	for _, k := range sequence {
		press(n, k)
		assert.GreaterOrEqual(t, n.Cursor(), 0)
		assert.Less(t, n.Cursor(), 10)
	}
}

func TestGotoTop(t *testing.T) {
	t.Run("gg_moves_to_first_row", func(t *testing.T) {
		n := newNavigator(t, tenFiles())
		press(n, "G")
		require.Equal(t, 9, n.Cursor())
		press(n, "gg")
		assert.Equal(t, 0, n.Cursor())
	})

	t.Run("lone_g_leaves_cursor_unchanged", func(t *testing.T) {
		n := newNavigator(t, tenFiles())
		press(n, "3j")
		press(n, "g")
		assert.Equal(t, 3, n.Cursor())
		// the follow-up key is processed as a fresh command
		press(n, "j")
		assert.Equal(t, 4, n.Cursor())
	})

	t.Run("g_then_movement_discards_prefix", func(t *testing.T) {
		n := newNavigator(t, tenFiles())
		press(n, "g", "k")
		assert.Equal(t, 0, n.Cursor())
		press(n, "g", "G")
		assert.Equal(t, 9, n.Cursor())
	})
}

func TestGotoLine(t *testing.T) {
	n := newNavigator(t, tenFiles())

	t.Run("G_without_count_moves_to_last_row", func(t *testing.T) {
		press(n, "G")
		assert.Equal(t, 9, n.Cursor())
	})

	t.Run("count_G_is_one_indexed", func(t *testing.T) {
		press(n, "3G")
		assert.Equal(t, 2, n.Cursor())
	})

	t.Run("count_G_clamps_to_last_row", func(t *testing.T) {
		press(n, "42G")
		assert.Equal(t, 9, n.Cursor())
	})

	t.Run("1G_moves_to_first_row", func(t *testing.T) {
		press(n, "5j")
		press(n, "1G")
		assert.Equal(t, 0, n.Cursor())
	})
}

func TestFileSelection(t *testing.T) {
	n := newNavigator(t, map[string]string{"a.txt": "hi", "b.txt": "yo"})

	assert.Equal(t, nav.Render, press(n, "enter"))
	assert.Equal(t, []string{"a.txt"}, selectedSlash(n))

	press(n, "enter")
	assert.Empty(t, selectedSlash(n))
}

func TestDirectorySelection(t *testing.T) {
	files := map[string]string{
		"a.txt":   "a",
		"b/c.txt": "c",
		"b/d.txt": "d",
	}

	t.Run("toggling_directory_selects_descendant_files", func(t *testing.T) {
		n := newNavigator(t, files)
		// flattened order: a.txt, b, b/c.txt, b/d.txt
		press(n, "j", "enter")
		assert.Equal(t, []string{"b/c.txt", "b/d.txt"}, selectedSlash(n))
		assert.True(t, n.IsSelected(n.Current()))
	})

	t.Run("toggling_twice_restores_original_set", func(t *testing.T) {
		n := newNavigator(t, files)
		press(n, "j", "enter", "enter")
		assert.Empty(t, selectedSlash(n))
		assert.False(t, n.IsSelected(n.Current()))
	})

	t.Run("selection_stays_inside_the_subtree", func(t *testing.T) {
		n := newNavigator(t, files)
		press(n, "j", "enter")
		for _, p := range selectedSlash(n) {
			assert.Contains(t, p, "b/")
		}
	})

	t.Run("partially_selected_directory_selects_the_rest", func(t *testing.T) {
		n := newNavigator(t, files)
		press(n, "2j", "enter") // select b/c.txt alone
		require.Equal(t, []string{"b/c.txt"}, selectedSlash(n))

		press(n, "k", "enter") // toggle b with a partial selection
		assert.Equal(t, []string{"b/c.txt", "b/d.txt"}, selectedSlash(n))
	})

	t.Run("selection_order_follows_the_flattened_tree", func(t *testing.T) {
		n := newNavigator(t, files)
		press(n, "G", "enter")  // b/d.txt
		press(n, "gg", "enter") // a.txt
		assert.Equal(t, []string{"a.txt", "b/d.txt"}, selectedSlash(n))
	})
}

func TestEmptyDirectoryToggleIsNoOp(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateDirs(t, dir, "empty")
	tr, err := tree.Scan(dir, tree.Options{})
	require.NoError(t, err)

	n := nav.New(tr)
	assert.Equal(t, nav.Continue, n.HandleKey("enter"))
	assert.Empty(t, n.SelectedPaths())
	assert.False(t, n.IsSelected(n.Current()))
}

func TestEmptyTreeNeverFaults(t *testing.T) {
	tr, err := tree.Scan(t.TempDir(), tree.Options{})
	require.NoError(t, err)

	n := nav.New(tr)
	for _, k := range []string{"j", "k", "G", "enter", ">", "<", "5", "j", "g", "g"} {
		assert.NotPanics(t, func() { n.HandleKey(nav.Key(k)) })
	}
	assert.Equal(t, 0, n.Cursor())
	assert.Nil(t, n.Current())
	assert.Equal(t, nav.Quit, n.HandleKey("q"))
}

func TestUnrecognizedKeyClearsPendingCount(t *testing.T) {
	n := newNavigator(t, tenFiles())
	press(n, "5")
	require.Equal(t, "5", n.PendingCount())

	assert.Equal(t, nav.Continue, press(n, "x"))
	assert.Equal(t, "", n.PendingCount())

	press(n, "j")
	assert.Equal(t, 1, n.Cursor(), "count should not survive an unrecognized key")
}

func TestQuitAction(t *testing.T) {
	n := newNavigator(t, tenFiles())
	assert.Equal(t, nav.Quit, press(n, "q"))
}

func TestCollapseAndExpand(t *testing.T) {
	files := map[string]string{
		"a.txt":       "a",
		"b/c.txt":     "c",
		"b/sub/e.txt": "e",
		"z.txt":       "z",
	}

	t.Run("collapse_hides_the_subtree", func(t *testing.T) {
		n := newNavigator(t, files)
		press(n, "j") // onto b/
		require.Equal(t, nav.Render, press(n, ">"))

		rows := n.VisibleEntries()
		names := make([]string, len(rows))
		for i, e := range rows {
			names[i] = e.Name
		}
		assert.Equal(t, []string{"a.txt", "b", "z.txt"}, names)
		assert.True(t, n.IsCollapsed(n.Current()))
	})

	t.Run("expand_restores_the_subtree", func(t *testing.T) {
		n := newNavigator(t, files)
		press(n, "j", ">")
		require.Len(t, n.VisibleEntries(), 3)
		press(n, "<")
		assert.Len(t, n.VisibleEntries(), 6)
	})

	t.Run("collapse_on_a_file_is_a_no_op", func(t *testing.T) {
		n := newNavigator(t, files)
		assert.Equal(t, nav.Continue, press(n, ">"))
		assert.Len(t, n.VisibleEntries(), 6)
	})

	t.Run("cursor_clamps_after_collapse", func(t *testing.T) {
		n := newNavigator(t, files)
		press(n, "j", ">")
		press(n, "G")
		assert.Equal(t, 2, n.Cursor())
	})

	t.Run("selection_survives_collapse", func(t *testing.T) {
		n := newNavigator(t, files)
		press(n, "j", "enter") // select everything under b/
		press(n, ">")
		assert.Equal(t, []string{"b/c.txt", "b/sub/e.txt"}, selectedSlash(n))
	})
}

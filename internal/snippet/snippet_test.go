package snippet_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treeclip/internal/snippet"
	"treeclip/pkg/testutils"
)

func TestLanguage(t *testing.T) {
	t.Run("common_extensions", func(t *testing.T) {
		assert.Equal(t, "python", snippet.Language("main.py"))
		assert.Equal(t, "javascript", snippet.Language("app.js"))
		assert.Equal(t, "typescript", snippet.Language("App.tsx"))
		assert.Equal(t, "go", snippet.Language("tree.go"))
		assert.Equal(t, "css", snippet.Language("style.css"))
		assert.Equal(t, "json", snippet.Language("config.json"))
		assert.Equal(t, "markdown", snippet.Language("README.md"))
		assert.Equal(t, "rust", snippet.Language("lib.rs"))
	})

	t.Run("unknown_extension", func(t *testing.T) {
		assert.Equal(t, "", snippet.Language("file.xyz"))
		assert.Equal(t, "", snippet.Language("no_extension"))
	})

	t.Run("case_insensitive", func(t *testing.T) {
		assert.Equal(t, "python", snippet.Language("FILE.PY"))
		assert.Equal(t, "javascript", snippet.Language("App.JSX"))
	})
}

func TestBuildSingleFile(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{"a.txt": "hi"})

	res := snippet.Build(dir, []string{"a.txt"})
	assert.Empty(t, res.Skipped)
	assert.Equal(t, "a.txt\n```\nhi\n```", res.Text)
}

func TestBuildJoinsBlocksInOrder(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{
		"a.py":   "print(1)\n",
		"b/c.go": "package c\n",
	})

	res := snippet.Build(dir, []string{"a.py", filepath.FromSlash("b/c.go")})
	require.Empty(t, res.Skipped)

	want := "a.py\n```python\nprint(1)\n```\n\nb/c.go\n```go\npackage c\n```"
	assert.Equal(t, want, res.Text)
}

func TestBuildSkipsBinaryFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blob.bin"), []byte{0x00, 0x01, 0xFF}, 0644))
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{"a.txt": "hi"})

	res := snippet.Build(dir, []string{"a.txt", "blob.bin"})
	assert.Equal(t, []string{"blob.bin"}, res.Skipped)
	assert.Equal(t, "a.txt\n```\nhi\n```", res.Text)
}

func TestBuildSkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{"a.txt": "hi"})

	res := snippet.Build(dir, []string{"a.txt", "missing.txt"})
	assert.Equal(t, []string{"missing.txt"}, res.Skipped)
	assert.Contains(t, res.Text, "a.txt")
}

func TestBuildEmptySelection(t *testing.T) {
	res := snippet.Build(t.TempDir(), nil)
	assert.Equal(t, "", res.Text)
	assert.Empty(t, res.Skipped)
}

func TestBuildTrimsTrailingNewlines(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{"a.sh": "echo hi\n\n\n"})

	res := snippet.Build(dir, []string{"a.sh"})
	assert.Equal(t, "a.sh\n```shell\necho hi\n```", res.Text)
}

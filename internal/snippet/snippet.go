// Package snippet assembles the clipboard payload: one Markdown fenced code
// block per selected file, labeled with its relative path and tagged with the
// language guessed from the extension.
package snippet

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// languages maps lowercased file extensions to Markdown fence info strings.
var languages = map[string]string{
	".c":    "c",
	".cpp":  "cpp",
	".cc":   "cpp",
	".cs":   "csharp",
	".css":  "css",
	".go":   "go",
	".html": "html",
	".java": "java",
	".js":   "javascript",
	".jsx":  "javascript",
	".json": "json",
	".kt":   "kotlin",
	".m":    "objective-c",
	".md":   "markdown",
	".php":  "php",
	".pl":   "perl",
	".py":   "python",
	".rb":   "ruby",
	".rs":   "rust",
	".sh":   "shell",
	".sol":  "solidity",
	".sql":  "sql",
	".toml": "toml",
	".ts":   "typescript",
	".tsx":  "typescript",
	".yaml": "yaml",
	".yml":  "yaml",
	".xml":  "xml",
}

// sniffLen bounds how much of a file is examined for the binary check.
const sniffLen = 8192

// Language guesses the fence language for a file path. Unknown extensions
// yield an empty string, which renders as a plain fence.
func Language(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	return languages[ext]
}

// Result is the assembled payload plus the files that could not be included.
type Result struct {
	Text    string
	Skipped []string
}

// Build reads each file (paths relative to root, already in display order)
// and concatenates their fenced blocks separated by blank lines. Unreadable
// and binary files are skipped, never fatal.
func Build(root string, paths []string) Result {
	var res Result
	blocks := make([]string, 0, len(paths))

	for _, rel := range paths {
		data, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			res.Skipped = append(res.Skipped, rel)
			continue
		}
		if isBinary(data) {
			res.Skipped = append(res.Skipped, rel)
			continue
		}
		blocks = append(blocks, formatBlock(rel, data))
	}

	res.Text = strings.Join(blocks, "\n\n")
	return res
}

func formatBlock(rel string, data []byte) string {
	content := strings.Trim(string(data), "\n")
	return fmt.Sprintf("%s\n```%s\n%s\n```", filepath.ToSlash(rel), Language(rel), content)
}

// isBinary treats any NUL byte in the sniff window as binary content.
func isBinary(data []byte) bool {
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}

// Package clipboard wraps the platform clipboard. A host without any
// clipboard mechanism is the one external failure that makes the tool
// unusable, so it surfaces as an explicit error rather than a silent no-op.
package clipboard

import (
	"github.com/atotto/clipboard"

	apperrors "treeclip/internal/errors"
)

// Available reports whether a clipboard mechanism exists on this host.
func Available() bool {
	return !clipboard.Unsupported
}

// Write copies text to the system clipboard.
func Write(text string) error {
	if clipboard.Unsupported {
		return apperrors.NewClipboardError("no clipboard mechanism available on this system (install xclip or xsel on Linux)", nil, true)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return apperrors.NewClipboardError("clipboard write failed", err, false)
	}
	return nil
}

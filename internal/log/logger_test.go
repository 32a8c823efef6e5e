package log_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treeclip/internal/log"
)

func TestDebugGating(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	log.SetDebug(false)
	log.Debug("hidden %d", 1)
	assert.Empty(t, buf.String())

	log.SetDebug(true)
	log.Debug("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
	log.SetDebug(false)
}

func TestSetupCreatesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "treeclip.log")
	require.NoError(t, log.Setup(path, false))
	defer log.SetOutput(os.Stderr)

	log.Info("session started in %s", "/tmp/x")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "session started in /tmp/x")
}

func TestSetupWithEmptyPathKeepsLoggingDisabled(t *testing.T) {
	assert.NoError(t, log.Setup("", false))
}

func TestWithField(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	log.WithField("entries", 42).Info("scan complete")
	assert.Contains(t, buf.String(), "entries=42")
}

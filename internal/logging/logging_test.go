package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/f3rmion/rotext/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, false)
	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "INFO")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	logging.New(&buf, true).Debug("visible")
	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "visible")
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rotext.log")

	logger, closeFn, err := logging.NewFile(path, true)
	require.NoError(t, err)
	logger.Debug("transition")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "transition")
}

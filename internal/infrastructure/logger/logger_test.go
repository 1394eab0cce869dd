package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Level(t *testing.T) {
	log, err := New("kitchen-dashboard", "debug")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = New("kitchen-dashboard", "loud")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}

func TestNewFile_WritesServiceField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tui.log")

	log, err := NewFile("kitchen-tui", "info", path)
	require.NoError(t, err)
	log.Info("board opened")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"service":"kitchen-tui"`)
	assert.Contains(t, string(data), `"timestamp"`)
	assert.Contains(t, string(data), "board opened")
}

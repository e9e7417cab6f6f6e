package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	l, err := New(Config{File: path, Level: "debug"})
	require.NoError(t, err)

	l.Debug("hello from test")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
}

func TestNew_RespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	l, err := New(Config{File: path, Level: "warn"})
	require.NoError(t, err)

	l.Info("quiet")
	l.Warn("loud")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
	assert.Contains(t, string(data), "loud")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Config{File: filepath.Join(t.TempDir(), "app.log"), Level: "chatty"})
	assert.Error(t, err)
}

func TestNew_RequiresFile(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
}

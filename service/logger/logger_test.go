package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileModeSet(t *testing.T) {
	var m FileMode
	require.NoError(t, m.Set(""))
	assert.Equal(t, FileModeAppend, m)
	require.NoError(t, m.Set("rotate"))
	assert.Equal(t, FileModeRotate, m)
	assert.Error(t, m.Set("sideways"))
}

func TestOpenFileTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	w, err := OpenFile(path, FileModeTruncate)
	require.NoError(t, err)
	_, err = w.Write([]byte("first\n"))
	require.NoError(t, err)

	w, err = OpenFile(path, FileModeTruncate)
	require.NoError(t, err)
	_, err = w.Write([]byte("second\n"))
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(b))
}

func TestOpenFileAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	w, err := OpenFile(path, FileModeAppend)
	require.NoError(t, err)
	_, err = w.Write([]byte("first\n"))
	require.NoError(t, err)

	w, err = OpenFile(path, FileModeAppend)
	require.NoError(t, err)
	_, err = w.Write([]byte("second\n"))
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(b))
}

func TestNewWaterfallRoutesByName(t *testing.T) {
	dir := t.TempDir()
	access := filepath.Join(dir, "access.log")
	general := filepath.Join(dir, "general.log")
	logger, err := New(Config{
		Type: TypeWaterfall,
		Children: []Config{
			{Name: "http.access", Path: access},
			{Path: general},
		},
	})
	require.NoError(t, err)

	logger.Named("http.access").Info("request completed")
	logger.Info("core started")
	require.NoError(t, logger.Sync())

	b, err := os.ReadFile(access)
	require.NoError(t, err)
	assert.Contains(t, string(b), "request completed")
	assert.NotContains(t, string(b), "core started")

	b, err = os.ReadFile(general)
	require.NoError(t, err)
	assert.Contains(t, string(b), "core started")
	assert.NotContains(t, string(b), "request completed")
}

func TestNewDevMode(t *testing.T) {
	logger, err := New(Config{
		Path:    filepath.Join(t.TempDir(), "out.log"),
		DevMode: true,
	})
	require.NoError(t, err)
	assert.Panics(t, func() { logger.DPanic("boom") })
}

func TestNewUnknownType(t *testing.T) {
	_, err := New(Config{Type: "pipeline"})
	assert.EqualError(t, err, "unknown logger type: pipeline")
}

package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplaceFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "file1")
	require.NoError(t, os.WriteFile(fname, []byte("data1"), 0666))

	err := ReplaceFile(fname, 0666, func(w io.Writer) error {
		_, err := w.Write([]byte("data2"))
		return err
	})
	require.NoError(t, err)

	b, err := os.ReadFile(fname)
	require.NoError(t, err)
	require.Equal(t, "data2", string(b))
}

func TestReplaceFileAbort(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "file1")
	require.NoError(t, os.WriteFile(fname, []byte("data1"), 0666))

	fakeErr := errors.New("fake error")
	err := ReplaceFile(fname, 0666, func(w io.Writer) error {
		if _, err := w.Write([]byte("data2")); err != nil {
			t.Fatal("replace write unexpectedly failed")
		}
		return fakeErr
	})
	require.ErrorIs(t, err, fakeErr)

	b, err := os.ReadFile(fname)
	require.NoError(t, err)
	require.Equal(t, "data1", string(b))

	dir, err := os.ReadDir(filepath.Dir(fname))
	require.NoError(t, err)
	require.Len(t, dir, 1)
}

func TestReplaceFileCreates(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "newfile")
	err := ReplaceFile(fname, 0666, func(w io.Writer) error {
		_, err := w.Write([]byte("fresh"))
		return err
	})
	require.NoError(t, err)
	b, err := os.ReadFile(fname)
	require.NoError(t, err)
	require.Equal(t, "fresh", string(b))
}

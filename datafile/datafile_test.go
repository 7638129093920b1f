package datafile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kjk/memo/atomicfile"
	"github.com/kjk/memo/require"
	"github.com/kjk/memo/u"
)

func writeTestFile(t *testing.T, s string) string {
	path := filepath.Join(t.TempDir(), "memo.txt")
	err := os.WriteFile(path, []byte(s), 0644)
	require.NoError(t, err)
	return path
}

func readTestFile(t *testing.T, path string) string {
	d, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(d)
}

func TestRead(t *testing.T) {
	path := writeTestFile(t, "test\n")
	s, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, "test\n", s)
}

func TestReadNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	_, err := Read(path)
	require.ErrorIs(t, err, ErrFileNotFound)
	require.Contains(t, err.Error(), path)
}

func TestReadDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := Read(dir)
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr), "got %v", err)
	require.Equal(t, dir, ioErr.Path)
}

func TestWrite(t *testing.T) {
	path := writeTestFile(t, "old\n")
	err := Write(path, "new\n")
	require.NoError(t, err)
	require.Equal(t, "new\n", readTestFile(t, path))
	require.False(t, u.PathExists(atomicfile.TempPath(path)))
}

func TestWriteNeverCreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memo.txt")
	err := Write(path, "new\n")
	require.ErrorIs(t, err, ErrFileNotFound)
	require.False(t, u.PathExists(path))
	require.False(t, u.PathExists(atomicfile.TempPath(path)))
}

func TestWriteFailureKeepsOriginal(t *testing.T) {
	path := writeTestFile(t, "1: 2001-01-01 01:01:01 one\n")
	// temp path occupied by a directory: the write fails before rename
	require.NoError(t, os.Mkdir(atomicfile.TempPath(path), 0755))
	err := Write(path, "")
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr), "got %v", err)
	require.Equal(t, "1: 2001-01-01 01:01:01 one\n", readTestFile(t, path))
}

func TestCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memo", "memo.txt")
	require.NoError(t, Create(path))
	require.True(t, u.PathExists(path))
	require.Equal(t, "", readTestFile(t, path))

	err := Create(path)
	require.ErrorIs(t, err, ErrFileExists)
	require.Contains(t, err.Error(), path)
}

func TestCreateDoesNotOverwrite(t *testing.T) {
	path := writeTestFile(t, "keep\n")
	err := Create(path)
	require.ErrorIs(t, err, ErrFileExists)
	require.Equal(t, "keep\n", readTestFile(t, path))
}

// Package datafile reads and writes the whole memo data file.
//
// Write never creates the file: a missing file means the data file was
// never initialized and is reported as ErrFileNotFound. Create is the only
// way to make a new file.
package datafile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kjk/memo/atomicfile"
	"github.com/kjk/memo/u"
)

var (
	// ErrFileNotFound is returned when the data file doesn't exist
	ErrFileNotFound = errors.New("file not found")
	// ErrFileExists is returned by Create if the data file already exists
	ErrFileExists = errors.New("file already exists")
)

// IOError wraps a failed read, write or rename of the data file
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s '%s': %s", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func notFound(path string) error {
	return fmt.Errorf("'%s': %w", path, ErrFileNotFound)
}

// Read returns the whole content of the file at path
func Read(path string) (string, error) {
	if !u.PathExists(path) {
		return "", notFound(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", &IOError{Op: "open", Path: path, Err: err}
	}
	defer u.CloseNoError(f)
	d, err := io.ReadAll(f)
	if err != nil {
		return "", &IOError{Op: "read", Path: path, Err: err}
	}
	return string(d), nil
}

// Write replaces the content of an existing file at path with s.
// The new content is written to a sibling temp file and renamed over path
// so readers see either the old or the new content, never a partial write.
func Write(path string, s string) error {
	if !u.PathExists(path) {
		return notFound(path)
	}
	f, err := atomicfile.New(path)
	if err != nil {
		return &IOError{Op: "create temp for", Path: path, Err: err}
	}
	defer f.RemoveIfNotClosed()

	if _, err = f.WriteString(s); err != nil {
		return &IOError{Op: "write", Path: atomicfile.TempPath(path), Err: err}
	}
	if err = f.Close(); err != nil {
		return &IOError{Op: "commit", Path: path, Err: err}
	}
	return nil
}

// Create creates an empty file at path, including missing parent directories.
// Fails with ErrFileExists if path already exists.
func Create(path string) error {
	if u.PathExists(path) {
		return fmt.Errorf("'%s': %w", path, ErrFileExists)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &IOError{Op: "create directory", Path: dir, Err: err}
	}
	// O_EXCL so a file created concurrently is not truncated
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("'%s': %w", path, ErrFileExists)
		}
		return &IOError{Op: "create", Path: path, Err: err}
	}
	if err = f.Close(); err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	return nil
}

package memo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrDuplicateID is returned when adding an entry with an id already in use
	ErrDuplicateID = errors.New("id already exists")
	// ErrNotFound is returned when removing an id that doesn't exist
	ErrNotFound = errors.New("id not found")
	// ErrMalformedLine is matched by every *LineError
	ErrMalformedLine = errors.New("malformed line")
	// ErrInvalidDateTime is returned when date/time doesn't match DateTimeFormat
	ErrInvalidDateTime = errors.New("invalid date time")
	// ErrInvalidText is returned for text that can't be stored on a single line
	ErrInvalidText = errors.New("invalid memo text")
	// ErrIDOverflow is returned when there's no id left after the largest one
	ErrIDOverflow = errors.New("no more ids available")
)

// LineError describes a line of data file that failed to parse
type LineError struct {
	// 1-based line number
	LineNo int
	Line   string
	// which rule the line broke
	Reason string
	// optional underlying error e.g. ErrInvalidDateTime
	Err error
}

func (e *LineError) Error() string {
	s := fmt.Sprintf("line %d: %s in '%s'", e.LineNo, e.Reason, e.Line)
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *LineError) Unwrap() error {
	return e.Err
}

func (e *LineError) Is(target error) bool {
	return target == ErrMalformedLine
}

// RemoveError collects ids that RemoveMany failed to remove
type RemoveError struct {
	IDs  []uint32
	Errs []error
}

func (e *RemoveError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = strconv.FormatUint(uint64(id), 10)
	}
	if len(e.Errs) == 1 {
		return e.Errs[0].Error()
	}
	return fmt.Sprintf("failed to remove ids %s: %s", strings.Join(ids, ", "), errors.Join(e.Errs...))
}

func (e *RemoveError) Unwrap() []error {
	return e.Errs
}

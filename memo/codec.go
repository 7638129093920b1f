package memo

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kjk/memo/u"
)

// format of a line in data file:
// <id>: <YYYY-MM-DD> <HH:MM:SS> <text>

// Serialize returns content of data file for all memos in s,
// one line per memo in ascending id order
func Serialize(s Store) string {
	var b strings.Builder
	for _, id := range s.SortedIDs() {
		e, ok := s.Get(id)
		if !ok {
			continue
		}
		b.WriteString(e.Line())
	}
	return b.String()
}

func lineErr(lineNo int, line string, reason string, err error) *LineError {
	return &LineError{
		LineNo: lineNo,
		Line:   line,
		Reason: reason,
		Err:    err,
	}
}

// ParseLine parses a single line of data file.
// lineNo is only used in error messages.
func ParseLine(line string, lineNo int) (Entry, error) {
	var e Entry
	idStr, rest, ok := strings.Cut(line, ":")
	if !ok {
		return e, lineErr(lineNo, line, "missing ':' after id", nil)
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return e, lineErr(lineNo, line, "invalid id", err)
	}

	rest = strings.TrimLeft(rest, " \t")
	date, rest, ok := strings.Cut(rest, " ")
	if !ok {
		return e, lineErr(lineNo, line, "missing time and text", nil)
	}
	tm, text, ok := strings.Cut(rest, " ")
	if !ok || strings.TrimSpace(text) == "" {
		return e, lineErr(lineNo, line, "missing text", nil)
	}
	dateTime := date + " " + tm
	createdAt, err := time.ParseInLocation(DateTimeFormat, dateTime, time.Local)
	if err != nil {
		err = fmt.Errorf("%w '%s', expected format YYYY-MM-DD HH:MM:SS", ErrInvalidDateTime, dateTime)
		return e, lineErr(lineNo, line, "invalid date time", err)
	}

	e.ID = uint32(id)
	e.Text = text
	e.CreatedAt = createdAt
	return e, nil
}

// Parse parses content of data file. Empty lines are skipped.
// Parsing stops at the first invalid line and no memos are returned.
// A line repeating an id of an earlier line is an error.
func Parse(s string) (*Memos, error) {
	m := NewMemos()
	s = u.NormalizeNewlinesString(s)
	scanner := bufio.NewScanner(strings.NewReader(s))
	// allow long memos
	scanner.Buffer(nil, 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		e, err := ParseLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		if err = m.Put(e); err != nil {
			return nil, lineErr(lineNo, line, "duplicate id", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading data: %w", err)
	}
	return m, nil
}

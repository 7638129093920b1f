package memo

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// DateTimeFormat is the layout of a memo's creation time in the data file
const DateTimeFormat = "2006-01-02 15:04:05"

// Entry is a single memo
type Entry struct {
	ID   uint32
	Text string
	// local time, second precision
	CreatedAt time.Time
}

// String returns "<date time> <text>"
func (e *Entry) String() string {
	return e.CreatedAt.Format(DateTimeFormat) + " " + e.Text
}

// Line returns e serialized as a line of data file, including trailing newline
func (e *Entry) Line() string {
	return fmt.Sprintf("%d: %s\n", e.ID, e.String())
}

// Store is what memo operations need from a collection of entries.
// Memos is the implementation used by the app.
type Store interface {
	Add(id uint32, text string) error
	Remove(id uint32) error
	Get(id uint32) (*Entry, bool)
	SortedIDs() []uint32
	Len() int
}

// Memos is an in-memory, map-backed Store
type Memos struct {
	entries map[uint32]*Entry

	// returns current time, time.Now if nil
	Now func() time.Time
}

var _ Store = &Memos{}

// NewMemos returns an empty store
func NewMemos() *Memos {
	return &Memos{
		entries: map[uint32]*Entry{},
	}
}

func (m *Memos) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// ValidateText returns ErrInvalidText if s can't be stored
// as memo text: it must be a single line with non-blank content
func ValidateText(s string) error {
	if strings.ContainsAny(s, "\r\n") {
		return fmt.Errorf("%w: text contains newline", ErrInvalidText)
	}
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: text is empty", ErrInvalidText)
	}
	return nil
}

// Add adds a memo with a given id, created now
func (m *Memos) Add(id uint32, text string) error {
	if err := ValidateText(text); err != nil {
		return err
	}
	e := Entry{
		ID:        id,
		Text:      text,
		CreatedAt: m.now().Local().Truncate(time.Second),
	}
	return m.Put(e)
}

// Put adds an entry with already known creation time
func (m *Memos) Put(e Entry) error {
	if err := ValidateText(e.Text); err != nil {
		return err
	}
	if m.entries == nil {
		m.entries = map[uint32]*Entry{}
	}
	if _, ok := m.entries[e.ID]; ok {
		return fmt.Errorf("id '%d': %w", e.ID, ErrDuplicateID)
	}
	m.entries[e.ID] = &e
	return nil
}

// Remove removes memo with a given id
func (m *Memos) Remove(id uint32) error {
	if _, ok := m.entries[id]; !ok {
		return fmt.Errorf("id '%d': %w", id, ErrNotFound)
	}
	delete(m.entries, id)
	return nil
}

// Get returns memo with a given id
func (m *Memos) Get(id uint32) (*Entry, bool) {
	e, ok := m.entries[id]
	return e, ok
}

// SortedIDs returns ids of all memos in ascending order
func (m *Memos) SortedIDs() []uint32 {
	ids := make([]uint32, 0, len(m.entries))
	for id := range m.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (m *Memos) Len() int {
	return len(m.entries)
}

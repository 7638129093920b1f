package memo

import (
	"testing"
	"time"

	"github.com/kjk/memo/require"
)

func fixedNow() time.Time {
	return time.Date(2001, 1, 1, 1, 1, 1, 500_000_000, time.Local)
}

func TestMemosAdd(t *testing.T) {
	m := NewMemos()
	m.Now = fixedNow
	require.NoError(t, m.Add(1, "one"))
	require.Equal(t, 1, m.Len())

	e, ok := m.Get(1)
	require.True(t, ok)
	require.Equal(t, "one", e.Text)
	require.Equal(t, uint32(1), e.ID)
	// sub-second part is dropped
	require.Equal(t, "2001-01-01 01:01:01 one", e.String())
	require.Equal(t, "1: 2001-01-01 01:01:01 one\n", e.Line())
}

func TestMemosAddDuplicate(t *testing.T) {
	m := NewMemos()
	m.Now = fixedNow
	require.NoError(t, m.Add(1, "one"))
	err := m.Add(1, "other")
	require.ErrorIs(t, err, ErrDuplicateID)
	require.Equal(t, 1, m.Len())
	e, _ := m.Get(1)
	require.Equal(t, "one", e.Text)
}

func TestMemosAddInvalidText(t *testing.T) {
	m := NewMemos()
	for _, s := range []string{"", "   ", "a\nb", "a\r\nb", "a\r"} {
		err := m.Add(1, s)
		require.ErrorIs(t, err, ErrInvalidText, "%q", s)
	}
	require.Equal(t, 0, m.Len())
}

func TestMemosRemove(t *testing.T) {
	m := NewMemos()
	require.NoError(t, m.Add(1, "one"))
	require.NoError(t, m.Remove(1))
	require.Equal(t, 0, m.Len())
	_, ok := m.Get(1)
	require.False(t, ok)
}

func TestMemosRemoveNotFound(t *testing.T) {
	m := NewMemos()
	require.NoError(t, m.Add(1, "one"))
	err := m.Remove(2)
	require.ErrorIs(t, err, ErrNotFound)
	require.Contains(t, err.Error(), "2")
	require.Equal(t, 1, m.Len())
}

func TestMemosGetMissing(t *testing.T) {
	m := NewMemos()
	e, ok := m.Get(2)
	require.False(t, ok)
	require.Nil(t, e)
}

func TestMemosSortedIDs(t *testing.T) {
	m := NewMemos()
	for _, id := range []uint32{3, 1, 2} {
		require.NoError(t, m.Add(id, "memo"))
	}
	require.Equal(t, []uint32{1, 2, 3}, m.SortedIDs())
	require.Equal(t, []uint32{}, NewMemos().SortedIDs())
}

func TestZeroValueMemos(t *testing.T) {
	var m Memos
	require.NoError(t, m.Put(Entry{ID: 4, Text: "four", CreatedAt: fixedNow()}))
	require.Equal(t, []uint32{4}, m.SortedIDs())
}

func TestMemosPutInvalidText(t *testing.T) {
	m := NewMemos()
	require.NoError(t, m.Put(Entry{ID: 1, Text: "one", CreatedAt: fixedNow()}))
	for _, s := range []string{"a\nb", "a\rb", " "} {
		err := m.Put(Entry{ID: 2, Text: s, CreatedAt: fixedNow()})
		require.ErrorIs(t, err, ErrInvalidText, "%q", s)
	}
	require.Equal(t, []uint32{1}, m.SortedIDs())
	// what's in the store always loads back
	_, err := Parse(Serialize(m))
	require.NoError(t, err)
}

package memo

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/kjk/memo/datafile"
	"github.com/kjk/memo/require"
)

// fakeStore records calls and fails Remove for ids in failRemove
type fakeStore struct {
	ids        []uint32
	added      map[uint32]string
	removed    []uint32
	failRemove map[uint32]bool
}

func (s *fakeStore) Add(id uint32, text string) error {
	if s.added == nil {
		s.added = map[uint32]string{}
	}
	s.added[id] = text
	s.ids = append(s.ids, id)
	return nil
}

func (s *fakeStore) Remove(id uint32) error {
	if s.failRemove[id] {
		return ErrNotFound
	}
	s.removed = append(s.removed, id)
	return nil
}

func (s *fakeStore) Get(id uint32) (*Entry, bool) {
	return nil, false
}

func (s *fakeStore) SortedIDs() []uint32 {
	res := slices.Clone(s.ids)
	slices.Sort(res)
	return res
}

func (s *fakeStore) Len() int {
	return len(s.ids)
}

func memosWithIDs(t *testing.T, ids ...uint32) *Memos {
	m := NewMemos()
	for _, id := range ids {
		require.NoError(t, m.Add(id, "memo"))
	}
	return m
}

func TestNextID(t *testing.T) {
	id, err := NextID(memosWithIDs(t, 2, 5, 7))
	require.NoError(t, err)
	require.Equal(t, uint32(8), id)

	id, err = NextID(NewMemos())
	require.NoError(t, err)
	require.Equal(t, uint32(1), id)

	_, err = NextID(memosWithIDs(t, math.MaxUint32))
	require.ErrorIs(t, err, ErrIDOverflow)
}

func TestNextIDDoesNotReuseGaps(t *testing.T) {
	m := memosWithIDs(t, 1, 2, 3)
	require.NoError(t, m.Remove(2))
	id, err := NextID(m)
	require.NoError(t, err)
	require.Equal(t, uint32(4), id)
}

func TestAddText(t *testing.T) {
	s := &fakeStore{ids: []uint32{7, 3}}
	id, err := AddText(s, "hello")
	require.NoError(t, err)
	require.Equal(t, uint32(8), id)
	require.Equal(t, "hello", s.added[8])
}

func TestRemoveMany(t *testing.T) {
	s := &fakeStore{failRemove: map[uint32]bool{2: true, 4: true}}
	err := RemoveMany(s, []uint32{1, 2, 3, 4})
	// every id is attempted
	require.Equal(t, []uint32{1, 3}, s.removed)

	var removeErr *RemoveError
	require.True(t, errors.As(err, &removeErr))
	require.Equal(t, []uint32{2, 4}, removeErr.IDs)
	require.ErrorIs(t, err, ErrNotFound)
	require.Contains(t, err.Error(), "2, 4")
}

func TestRemoveManyEmpty(t *testing.T) {
	s := &fakeStore{}
	require.NoError(t, RemoveMany(s, nil))
	require.Len(t, s.removed, 0)
}

func TestRemoveManyKeepsSuccessfulRemovals(t *testing.T) {
	m := memosWithIDs(t, 1, 3)
	err := RemoveMany(m, []uint32{1, 2, 3})
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, 0, m.Len())
	require.Equal(t, []uint32{2}, err.(*RemoveError).IDs)
	require.Contains(t, err.Error(), "'2'")
}

func TestRenderSorted(t *testing.T) {
	m := memosWithIDs(t, 3, 1, 2)
	entries := RenderSorted(m)
	require.Len(t, entries, 3)
	for i, e := range entries {
		require.Equal(t, uint32(i+1), e.ID)
	}
	require.Len(t, RenderSorted(NewMemos()), 0)
}

func writeDataFile(t *testing.T, s string) string {
	path := filepath.Join(t.TempDir(), "memo.txt")
	require.NoError(t, os.WriteFile(path, []byte(s), 0644))
	return path
}

func readDataFile(t *testing.T, path string) string {
	d, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(d)
}

func TestLoadRemovePersist(t *testing.T) {
	path := writeDataFile(t, "1: 2001-01-01 01:01:01 one\n2: 2002-02-02 02:02:02 two\n")
	m, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, m.Remove(1))
	require.NoError(t, Persist(m, path))
	require.Equal(t, "2: 2002-02-02 02:02:02 two\n", readDataFile(t, path))
}

func TestRemoveManyAndPersistPartialFailure(t *testing.T) {
	orig := "1: 2001-01-01 01:01:01 one\n"
	path := writeDataFile(t, orig)
	m, err := Load(path)
	require.NoError(t, err)

	err = RemoveManyAndPersist(m, []uint32{1, 2}, path)
	var removeErr *RemoveError
	require.True(t, errors.As(err, &removeErr))
	require.Equal(t, []uint32{2}, removeErr.IDs)
	require.Equal(t, orig, readDataFile(t, path))
}

func TestRemoveManyAndPersist(t *testing.T) {
	path := writeDataFile(t, "1: 2001-01-01 01:01:01 one\n2: 2002-02-02 02:02:02 two\n3: 2003-03-03 03:03:03 three\n")
	m, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, RemoveManyAndPersist(m, []uint32{3, 1}, path))
	require.Equal(t, "2: 2002-02-02 02:02:02 two\n", readDataFile(t, path))
}

func TestAddAndPersist(t *testing.T) {
	path := writeDataFile(t, "2: 2002-02-02 02:02:02 two\n")
	m, err := Load(path)
	require.NoError(t, err)
	m.Now = fixedNow
	id, err := AddAndPersist(m, "three", path)
	require.NoError(t, err)
	require.Equal(t, uint32(3), id)
	require.Equal(t, "2: 2002-02-02 02:02:02 two\n3: 2001-01-01 01:01:01 three\n", readDataFile(t, path))
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "memo.txt"))
	require.ErrorIs(t, err, datafile.ErrFileNotFound)
}

func TestLoadMalformed(t *testing.T) {
	path := writeDataFile(t, "1: 2001-01-01 01:01:01 one\n1: 2001-01-01-01 01:01:01 one\n")
	m, err := Load(path)
	require.Nil(t, m)
	require.ErrorIs(t, err, ErrMalformedLine)
}

func TestPersistRequiresInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memo", "memo.txt")
	m := memosWithIDs(t, 1)
	err := Persist(m, path)
	require.ErrorIs(t, err, datafile.ErrFileNotFound)

	require.NoError(t, Init(path))
	require.ErrorIs(t, Init(path), datafile.ErrFileExists)
	require.NoError(t, Persist(m, path))
	m2, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []uint32{1}, m2.SortedIDs())
}

func TestAddAndPersistFailureRollsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memo.txt")
	m := memosWithIDs(t, 1)
	// data file was never created
	_, err := AddAndPersist(m, "two", path)
	require.ErrorIs(t, err, datafile.ErrFileNotFound)
	require.Equal(t, []uint32{1}, m.SortedIDs())
}

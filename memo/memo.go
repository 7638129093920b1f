package memo

import (
	"math"

	"github.com/kjk/memo/datafile"
)

// NextID returns id for a new memo: one more than the largest id in s,
// 1 if s is empty. Ids freed by removal are not re-used.
func NextID(s Store) (uint32, error) {
	ids := s.SortedIDs()
	if len(ids) == 0 {
		return 1, nil
	}
	last := ids[len(ids)-1]
	if last == math.MaxUint32 {
		return 0, ErrIDOverflow
	}
	return last + 1, nil
}

// AddText adds a memo with the next free id and returns that id
func AddText(s Store, text string) (uint32, error) {
	id, err := NextID(s)
	if err != nil {
		return 0, err
	}
	if err = s.Add(id, text); err != nil {
		return 0, err
	}
	return id, nil
}

// RemoveMany removes all ids from s. It tries every id. Removals that
// succeeded stay removed even if others failed. Failures are returned
// as *RemoveError.
func RemoveMany(s Store, ids []uint32) error {
	var res *RemoveError
	for _, id := range ids {
		err := s.Remove(id)
		if err == nil {
			continue
		}
		if res == nil {
			res = &RemoveError{}
		}
		res.IDs = append(res.IDs, id)
		res.Errs = append(res.Errs, err)
	}
	if res == nil {
		return nil
	}
	return res
}

// RenderSorted returns memos in ascending id order
func RenderSorted(s Store) []*Entry {
	ids := s.SortedIDs()
	res := make([]*Entry, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.Get(id); ok {
			res = append(res, e)
		}
	}
	return res
}

// Load reads and parses data file at path
func Load(path string) (*Memos, error) {
	s, err := datafile.Read(path)
	if err != nil {
		return nil, err
	}
	return Parse(s)
}

// Persist replaces content of existing data file at path with memos from s
func Persist(s Store, path string) error {
	return datafile.Write(path, Serialize(s))
}

// Init creates an empty data file at path. It's an error if the file exists.
func Init(path string) error {
	return datafile.Create(path)
}

// AddAndPersist adds a memo and writes data file. If writing fails
// the memo is removed from s so that s matches the file.
func AddAndPersist(s Store, text string, path string) (uint32, error) {
	id, err := AddText(s, text)
	if err != nil {
		return 0, err
	}
	if err = Persist(s, path); err != nil {
		_ = s.Remove(id)
		return 0, err
	}
	return id, nil
}

// RemoveManyAndPersist removes ids and writes data file only if all of them
// were removed. On partial failure the file is left untouched so that it
// doesn't silently drop removals the user asked for.
func RemoveManyAndPersist(s Store, ids []uint32, path string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := RemoveMany(s, ids); err != nil {
		return err
	}
	return Persist(s, path)
}

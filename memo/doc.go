// Package memo is the data layer of memo app.
//
// Memos live in a text file, one per line:
//
//	1: 2001-01-01 01:01:01 one
//	2: 2002-02-02 02:02:02 two
//
// Every invocation loads the whole file into a Store, changes it in memory
// and writes the whole file back:
//
//	m, err := memo.Load(path)
//	if err != nil {
//	    return err
//	}
//	id, err := memo.AddText(m, "buy milk")
//	if err != nil {
//	    return err
//	}
//	err = memo.Persist(m, path)
//
// Writes are atomic (temp file + rename) but there is no locking between
// processes: two concurrent invocations can lose an update.
package memo

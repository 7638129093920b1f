/*
To write to files in a robust way we should:

- handle error returned by `Close()`

- handle error returned by `Write()`

- remove partially written file if `Write()` or `Close()` returned an error

Package atomicfile writes to a sibling temporary file (destination path
with ".tmp" appended) and renames it over the destination only after all
writes, fsync and close succeeded. A reader never sees a half-written file.

	func save(filePath string, data []byte) error {
		w, err := atomicfile.New(filePath)
		if err != nil {
			return err
		}
		defer w.RemoveIfNotClosed()

		_, err = w.Write(data)
		if err != nil {
			return err
		}
		return w.Close()
	}

or simply atomicfile.WriteFile(filePath, data).
*/
package atomicfile

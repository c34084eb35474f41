package output

import (
	"fmt"

	"clockdump/storage"
	"clockdump/timedata"
)

type SQLiteWriter struct{}

func (w *SQLiteWriter) Write(path string, entries []timedata.NormalizedEntry) error {
	store, err := storage.OpenSQLite(path)
	if err != nil {
		return fmt.Errorf("open sqlite output %s: %w", path, err)
	}
	defer store.Close()

	if _, err := store.ReplaceEntries(entries); err != nil {
		return fmt.Errorf("write sqlite output %s: %w", path, err)
	}
	return nil
}

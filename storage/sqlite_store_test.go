package storage

import (
	"database/sql"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"clockdump/timedata"
)

func sampleEntries() []timedata.NormalizedEntry {
	return []timedata.NormalizedEntry{
		{
			TaskID:          "t1",
			TaskName:        "Papers",
			ProjectID:       "p1",
			ProjectName:     "Reading",
			Description:     "read primes is in p",
			StartDateUTC:    "2020-11-14",
			StartTimeUTC:    "2020-11-14T19:13:35Z",
			EndDateUTC:      "2020-11-14",
			EndTimeUTC:      "2020-11-14T19:20:31Z",
			DurationSeconds: 416,
		},
		{
			ProjectID:       "p2",
			ProjectName:     "Writing",
			Description:     "draft",
			StartDateUTC:    "2020-11-13",
			StartTimeUTC:    "2020-11-13T08:00:00Z",
			EndDateUTC:      "2020-11-13",
			EndTimeUTC:      "2020-11-13T09:00:00Z",
			DurationSeconds: 3600,
		},
	}
}

func TestSQLiteStore_ReplaceAndListPreservesOrder(t *testing.T) {
	t.Parallel()

	store, err := OpenSQLite(filepath.Join(t.TempDir(), "export.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	entries := sampleEntries()
	inserted, err := store.ReplaceEntries(entries)
	if err != nil {
		t.Fatalf("replace entries: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("expected 2 inserted rows, got %d", inserted)
	}

	listed, err := store.ListEntries()
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if !reflect.DeepEqual(listed, entries) {
		t.Fatalf("expected stored rows to match input order:\nwant %+v\ngot  %+v", entries, listed)
	}
}

func TestSQLiteStore_ReplaceOverwritesPreviousExport(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "export.db")
	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if _, err := store.ReplaceEntries(sampleEntries()); err != nil {
		t.Fatalf("first export: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer reopened.Close()

	if _, err := reopened.ReplaceEntries(sampleEntries()[1:]); err != nil {
		t.Fatalf("second export: %v", err)
	}
	listed, err := reopened.ListEntries()
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(listed) != 1 || listed[0].ProjectName != "Writing" {
		t.Fatalf("expected only the second export, got %+v", listed)
	}
}

func TestSQLiteStore_ColumnsMatchNormalizedFields(t *testing.T) {
	t.Parallel()

	store, err := OpenSQLite(filepath.Join(t.TempDir(), "export.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	columns, err := store.Columns()
	if err != nil {
		t.Fatalf("columns: %v", err)
	}
	if !reflect.DeepEqual(columns, timedata.NormalizedColumns) {
		t.Fatalf("unexpected columns:\nwant %v\ngot  %v", timedata.NormalizedColumns, columns)
	}
}

func TestOpenSQLite_RejectsForeignTableLayout(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "foreign.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open raw sqlite: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE normalized_entries (position INTEGER PRIMARY KEY, task_id TEXT);`); err != nil {
		t.Fatalf("create foreign table: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close raw sqlite: %v", err)
	}

	if _, err := OpenSQLite(dbPath); err == nil || !strings.Contains(err.Error(), "unexpected columns") {
		t.Fatalf("expected unexpected columns error, got %v", err)
	}
}

func TestSQLiteStore_RejectsNegativeDuration(t *testing.T) {
	t.Parallel()

	store, err := OpenSQLite(filepath.Join(t.TempDir(), "export.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	entries := sampleEntries()
	entries[1].DurationSeconds = -1
	if _, err := store.ReplaceEntries(entries); err == nil {
		t.Fatalf("expected check constraint failure")
	}
	listed, err := store.ListEntries()
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected rollback to leave no rows, got %d", len(listed))
	}
}

package storage

import (
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"clockdump/timedata"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS normalized_entries (
	task_id TEXT NOT NULL,
	task_name TEXT NOT NULL,
	project_id TEXT NOT NULL,
	project_name TEXT NOT NULL,
	description TEXT NOT NULL,
	start_date_utc TEXT NOT NULL,
	start_time_utc TEXT NOT NULL,
	end_date_utc TEXT NOT NULL,
	end_time_utc TEXT NOT NULL,
	duration_seconds INTEGER NOT NULL CHECK(duration_seconds >= 0)
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	columns, err := s.Columns()
	if err != nil {
		return err
	}
	if !slices.Equal(columns, timedata.NormalizedColumns) {
		return fmt.Errorf("existing normalized_entries table has unexpected columns: %s", strings.Join(columns, ", "))
	}
	return nil
}

// ReplaceEntries removes all stored rows and writes entries in order, in one
// transaction. Insertion order is kept through the implicit rowid.
func (s *SQLiteStore) ReplaceEntries(entries []timedata.NormalizedEntry) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM normalized_entries;`); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("clear normalized entries: %w", err)
	}

	const insertStmt = `
INSERT INTO normalized_entries (
	task_id,
	task_name,
	project_id,
	project_name,
	description,
	start_date_utc,
	start_time_utc,
	end_date_utc,
	end_time_utc,
	duration_seconds
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	stmt, err := tx.Prepare(insertStmt)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for i, entry := range entries {
		if _, err := stmt.Exec(
			entry.TaskID,
			entry.TaskName,
			entry.ProjectID,
			entry.ProjectName,
			entry.Description,
			entry.StartDateUTC,
			entry.StartTimeUTC,
			entry.EndDateUTC,
			entry.EndTimeUTC,
			entry.DurationSeconds,
		); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert normalized entry %d: %w", i+1, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return inserted, nil
}

func (s *SQLiteStore) ListEntries() ([]timedata.NormalizedEntry, error) {
	const query = `
SELECT
	task_id,
	task_name,
	project_id,
	project_name,
	description,
	start_date_utc,
	start_time_utc,
	end_date_utc,
	end_time_utc,
	duration_seconds
FROM normalized_entries
ORDER BY rowid;
`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query normalized entries: %w", err)
	}
	defer rows.Close()

	entries := make([]timedata.NormalizedEntry, 0, 256)
	for rows.Next() {
		var entry timedata.NormalizedEntry
		if err := rows.Scan(
			&entry.TaskID,
			&entry.TaskName,
			&entry.ProjectID,
			&entry.ProjectName,
			&entry.Description,
			&entry.StartDateUTC,
			&entry.StartTimeUTC,
			&entry.EndDateUTC,
			&entry.EndTimeUTC,
			&entry.DurationSeconds,
		); err != nil {
			return nil, fmt.Errorf("scan normalized entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate normalized entries: %w", err)
	}

	return entries, nil
}

// Columns returns the column names of the export table in declaration order.
func (s *SQLiteStore) Columns() ([]string, error) {
	rows, err := s.db.Query(`PRAGMA table_info(normalized_entries);`)
	if err != nil {
		return nil, fmt.Errorf("query table info: %w", err)
	}
	defer rows.Close()

	columns := make([]string, 0, len(timedata.NormalizedColumns))
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("scan table info: %w", err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate table info: %w", err)
	}
	return columns, nil
}

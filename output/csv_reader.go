package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"clockdump/timedata"
)

// ReadCSV reads a file written by CSVWriter back into normalized entries.
func ReadCSV(path string) ([]timedata.NormalizedEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file %s: %w", path, err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv file %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv file %s has no header", path)
	}
	if got, want := strings.Join(rows[0], ","), strings.Join(timedata.NormalizedColumns, ","); got != want {
		return nil, fmt.Errorf("unexpected csv header in %s: %s", path, got)
	}

	entries := make([]timedata.NormalizedEntry, 0, len(rows)-1)
	for i, row := range rows[1:] {
		duration, err := strconv.ParseInt(row[9], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse duration_seconds in row %d: %w", i+2, err)
		}
		entries = append(entries, timedata.NormalizedEntry{
			TaskID:          row[0],
			TaskName:        row[1],
			ProjectID:       row[2],
			ProjectName:     row[3],
			Description:     row[4],
			StartDateUTC:    row[5],
			StartTimeUTC:    row[6],
			EndDateUTC:      row[7],
			EndTimeUTC:      row[8],
			DurationSeconds: duration,
		})
	}
	return entries, nil
}

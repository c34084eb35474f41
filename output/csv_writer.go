package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"clockdump/timedata"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, entries []timedata.NormalizedEntry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(timedata.NormalizedColumns); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, entry := range entries {
		if err := writer.Write(entry.Row()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}

package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"clockdump/timedata"
)

// TabularWriter writes normalized entries as one header row plus one row per entry.
type TabularWriter interface {
	Write(path string, entries []timedata.NormalizedEntry) error
}

func TabularWriterForFormat(format string) (TabularWriter, error) {
	switch normalizeFormat(format) {
	case "", "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	case "sqlite", "db":
		return &SQLiteWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported tabular format: %s (supported: csv, excel, sqlite)", format)
	}
}

// DetectTabularFormat infers the tabular format from the path extension, defaulting to csv.
func DetectTabularFormat(path string) string {
	switch strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".") {
	case "xlsx", "xlsm":
		return "excel"
	case "db", "sqlite", "sqlite3":
		return "sqlite"
	default:
		return "csv"
	}
}

// DefaultTabularPath swaps the data file extension for the one matching format.
func DefaultTabularPath(dataPath, format string) string {
	base := strings.TrimSuffix(dataPath, filepath.Ext(dataPath))
	switch normalizeFormat(format) {
	case "excel", "xlsx":
		return base + ".xlsx"
	case "sqlite", "db":
		return base + ".db"
	default:
		return base + ".csv"
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

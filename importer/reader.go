package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"

	"clockdump/timedata"
)

func ReadProjects(path string) ([]timedata.Project, error) {
	return readCollection[timedata.Project](path)
}

func ReadTasks(path string) ([]timedata.Task, error) {
	return readCollection[timedata.Task](path)
}

func ReadTimeEntries(path string) ([]timedata.TimeEntry, error) {
	return readCollection[timedata.TimeEntry](path)
}

// FormatForPath maps a file extension to "json" or "yaml". Unknown extensions are json.
func FormatForPath(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "yaml", "yml":
		return "yaml"
	default:
		return "json"
	}
}

func readCollection[T any](path string) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file %s: %w", path, err)
	}
	defer file.Close()

	// Files saved by some editors start with a UTF-8 BOM; strip it.
	reader := transform.NewReader(file, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	var out []T
	switch FormatForPath(path) {
	case "yaml":
		err = yaml.NewDecoder(reader).Decode(&out)
	default:
		err = json.NewDecoder(reader).Decode(&out)
	}
	if err == io.EOF {
		return nil, fmt.Errorf("decode input file %s: file is empty", path)
	}
	if err != nil {
		return nil, fmt.Errorf("decode input file %s: %w", path, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

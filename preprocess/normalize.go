package preprocess

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"clockdump/internal/timeutil"
	"clockdump/timedata"
)

// ErrIncompleteInterval is returned for entries without an end or duration,
// which Clockify reports while a timer is still running.
var ErrIncompleteInterval = errors.New("time interval is incomplete")

// Normalize resolves names and flattens one raw entry. An empty task or
// project id yields empty id and name fields; a non-empty id that is not in
// the lookup is a *LookupError.
func Normalize(entry timedata.TimeEntry, lookup Lookup) (timedata.NormalizedEntry, error) {
	return normalize(entry, lookup, cases.Lower(language.Und))
}

// NormalizeAll normalizes every entry in input order and stops at the first failure.
func NormalizeAll(entries []timedata.TimeEntry, lookup Lookup) ([]timedata.NormalizedEntry, error) {
	caser := cases.Lower(language.Und)
	out := make([]timedata.NormalizedEntry, 0, len(entries))
	for i, entry := range entries {
		normalized, err := normalize(entry, lookup, caser)
		if err != nil {
			return nil, fmt.Errorf("normalize entry %d: %w", i+1, err)
		}
		out = append(out, normalized)
	}
	return out, nil
}

func normalize(entry timedata.TimeEntry, lookup Lookup, caser cases.Caser) (timedata.NormalizedEntry, error) {
	out := timedata.NormalizedEntry{
		TaskID:      strings.TrimSpace(timedata.Value(entry.TaskID)),
		ProjectID:   strings.TrimSpace(timedata.Value(entry.ProjectID)),
		Description: caser.String(entry.Description),
	}

	if out.TaskID != "" {
		name, err := lookup.TaskName(out.TaskID)
		if err != nil {
			return timedata.NormalizedEntry{}, withEntry(err, entry.ID)
		}
		out.TaskName = name
	}
	if out.ProjectID != "" {
		name, err := lookup.ProjectName(out.ProjectID)
		if err != nil {
			return timedata.NormalizedEntry{}, withEntry(err, entry.ID)
		}
		out.ProjectName = name
	}

	interval := entry.TimeInterval
	if interval.End == nil || interval.Duration == nil {
		return timedata.NormalizedEntry{}, fmt.Errorf("time entry %s: %w", entry.ID, ErrIncompleteInterval)
	}

	var err error
	if out.StartDateUTC, out.StartTimeUTC, err = timeutil.SplitUTC(interval.Start); err != nil {
		return timedata.NormalizedEntry{}, fmt.Errorf("time entry %s start: %w", entry.ID, err)
	}
	if out.EndDateUTC, out.EndTimeUTC, err = timeutil.SplitUTC(*interval.End); err != nil {
		return timedata.NormalizedEntry{}, fmt.Errorf("time entry %s end: %w", entry.ID, err)
	}
	if out.DurationSeconds, err = timeutil.ParseDurationSeconds(*interval.Duration); err != nil {
		return timedata.NormalizedEntry{}, fmt.Errorf("time entry %s duration: %w", entry.ID, err)
	}

	return out, nil
}

func withEntry(err error, entryID string) error {
	var lookupErr *LookupError
	if errors.As(err, &lookupErr) {
		copied := *lookupErr
		copied.EntryID = entryID
		return &copied
	}
	return err
}

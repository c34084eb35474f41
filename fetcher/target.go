package fetcher

import (
	"errors"
	"fmt"
)

var (
	ErrTargetConflict    = errors.New("page count and entry count are mutually exclusive")
	ErrTargetMissing     = errors.New("either a page count or an entry count is required")
	ErrNonPositiveTarget = errors.New("target must be a positive integer")
)

type targetKind int

const (
	byPageCount targetKind = iota + 1
	byEntryCount
)

// Target is how many time entries to fetch: an exact number of pages or a
// minimum number of entries.
type Target struct {
	kind  targetKind
	count int
}

func ByPageCount(pages int) Target {
	return Target{kind: byPageCount, count: pages}
}

func ByEntryCount(entries int) Target {
	return Target{kind: byEntryCount, count: entries}
}

// ResolveTarget builds a Target from optional selector values; nil means the
// selector was not supplied.
func ResolveTarget(pages, entries *int) (Target, error) {
	switch {
	case pages != nil && entries != nil:
		return Target{}, ErrTargetConflict
	case pages != nil:
		return ByPageCount(*pages), nil
	case entries != nil:
		return ByEntryCount(*entries), nil
	default:
		return Target{}, ErrTargetMissing
	}
}

// Pages returns the number of pages to request for the given page size.
func (t Target) Pages(pageSize int) (int, error) {
	if pageSize <= 0 {
		return 0, fmt.Errorf("%w: page size %d", ErrNonPositiveTarget, pageSize)
	}
	switch t.kind {
	case byPageCount:
		if t.count <= 0 {
			return 0, fmt.Errorf("%w: page count %d", ErrNonPositiveTarget, t.count)
		}
		return t.count, nil
	case byEntryCount:
		if t.count <= 0 {
			return 0, fmt.Errorf("%w: entry count %d", ErrNonPositiveTarget, t.count)
		}
		return (t.count + pageSize - 1) / pageSize, nil
	default:
		return 0, ErrTargetMissing
	}
}

func (t Target) String() string {
	switch t.kind {
	case byPageCount:
		return fmt.Sprintf("%d pages", t.count)
	case byEntryCount:
		return fmt.Sprintf("at least %d entries", t.count)
	default:
		return "unset"
	}
}

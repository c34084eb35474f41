package fetcher

import (
	"errors"
	"testing"
)

func TestTargetPages_EntryCountRoundsUp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		entries  int
		pageSize int
		want     int
	}{
		{entries: 1, pageSize: 50, want: 1},
		{entries: 49, pageSize: 50, want: 1},
		{entries: 50, pageSize: 50, want: 1},
		{entries: 51, pageSize: 50, want: 2},
		{entries: 100, pageSize: 50, want: 2},
		{entries: 2853, pageSize: 50, want: 58},
		{entries: 7, pageSize: 1, want: 7},
	}

	for _, tt := range tests {
		got, err := ByEntryCount(tt.entries).Pages(tt.pageSize)
		if err != nil {
			t.Fatalf("entries=%d pageSize=%d: unexpected error: %v", tt.entries, tt.pageSize, err)
		}
		if got != tt.want {
			t.Fatalf("entries=%d pageSize=%d: expected %d pages, got %d", tt.entries, tt.pageSize, tt.want, got)
		}
	}
}

func TestTargetPages_CeilingProperty(t *testing.T) {
	t.Parallel()

	for pageSize := 1; pageSize <= 60; pageSize++ {
		for entries := 1; entries <= 500; entries++ {
			got, err := ByEntryCount(entries).Pages(pageSize)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got*pageSize < entries || (got-1)*pageSize >= entries {
				t.Fatalf("entries=%d pageSize=%d: %d pages is not the ceiling", entries, pageSize, got)
			}
		}
	}
}

func TestTargetPages_PageCountIsExact(t *testing.T) {
	t.Parallel()

	got, err := ByPageCount(58).Pages(50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 58 {
		t.Fatalf("expected 58 pages, got %d", got)
	}
}

func TestTargetPages_RejectsNonPositive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   Target
		pageSize int
	}{
		{name: "zero pages", target: ByPageCount(0), pageSize: 50},
		{name: "negative pages", target: ByPageCount(-3), pageSize: 50},
		{name: "zero entries", target: ByEntryCount(0), pageSize: 50},
		{name: "negative entries", target: ByEntryCount(-1), pageSize: 50},
		{name: "zero page size", target: ByEntryCount(10), pageSize: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.target.Pages(tt.pageSize); !errors.Is(err, ErrNonPositiveTarget) {
				t.Fatalf("expected ErrNonPositiveTarget, got %v", err)
			}
		})
	}
}

func TestResolveTarget(t *testing.T) {
	t.Parallel()

	pages := 3
	entries := 120

	if _, err := ResolveTarget(&pages, &entries); !errors.Is(err, ErrTargetConflict) {
		t.Fatalf("expected ErrTargetConflict, got %v", err)
	}
	if _, err := ResolveTarget(nil, nil); !errors.Is(err, ErrTargetMissing) {
		t.Fatalf("expected ErrTargetMissing, got %v", err)
	}

	target, err := ResolveTarget(&pages, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target != ByPageCount(3) {
		t.Fatalf("unexpected target: %s", target)
	}

	target, err = ResolveTarget(nil, &entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := target.Pages(50); got != 3 {
		t.Fatalf("expected 3 pages for 120 entries, got %d", got)
	}
}

func TestTargetPages_ZeroValueIsMissing(t *testing.T) {
	t.Parallel()

	if _, err := (Target{}).Pages(50); !errors.Is(err, ErrTargetMissing) {
		t.Fatalf("expected ErrTargetMissing, got %v", err)
	}
}

func TestTargetString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target Target
		want   string
	}{
		{target: ByPageCount(58), want: "58 pages"},
		{target: ByEntryCount(2853), want: "at least 2853 entries"},
		{target: Target{}, want: "unset"},
	}

	for _, tt := range tests {
		if got := tt.target.String(); got != tt.want {
			t.Fatalf("expected %q, got %q", tt.want, got)
		}
	}
}

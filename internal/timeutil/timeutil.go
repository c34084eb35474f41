package timeutil

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"

	secondsInMinute = 60
	secondsInHour   = 60 * secondsInMinute
	secondsInDay    = 24 * secondsInHour
)

var ErrInvalidDuration = errors.New("invalid ISO-8601 duration")

// ParseDurationSeconds parses an ISO-8601 duration of the form P[nD]T[nH][nM][nS]
// into whole seconds. Fractional seconds are truncated.
func ParseDurationSeconds(value string) (int64, error) {
	raw := strings.ToUpper(strings.TrimSpace(value))
	if !strings.HasPrefix(raw, "P") || len(raw) < 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, value)
	}

	datePart, timePart, hasTime := strings.Cut(raw[1:], "T")
	if hasTime && timePart == "" {
		return 0, fmt.Errorf("%w: %q has empty time part", ErrInvalidDuration, value)
	}

	var total int64
	found := false

	days, err := consumeComponents(datePart, map[byte]int64{'D': secondsInDay})
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidDuration, value, err)
	}
	if datePart != "" {
		found = true
	}
	total = days

	if hasTime {
		seconds, err := consumeComponents(timePart, map[byte]int64{
			'H': secondsInHour,
			'M': secondsInMinute,
			'S': 1,
		})
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidDuration, value, err)
		}
		found = true
		if total, err = addSeconds(total, seconds); err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidDuration, value, err)
		}
	}

	if !found {
		return 0, fmt.Errorf("%w: %q has no components", ErrInvalidDuration, value)
	}
	return total, nil
}

// consumeComponents sums number+designator pairs such as "1H30M". Designators
// must appear at most once and in D, H, M, S order.
func consumeComponents(part string, units map[byte]int64) (int64, error) {
	order := "DHMS"
	lastIndex := -1
	var total int64
	for part != "" {
		idx := strings.IndexFunc(part, func(r rune) bool {
			return (r < '0' || r > '9') && r != '.' && r != ','
		})
		if idx <= 0 {
			return 0, fmt.Errorf("expected number before designator in %q", part)
		}
		number := strings.ReplaceAll(part[:idx], ",", ".")
		designator := part[idx]
		multiplier, ok := units[designator]
		if !ok {
			return 0, fmt.Errorf("unexpected designator %q", designator)
		}
		position := strings.IndexByte(order, designator)
		if position <= lastIndex {
			return 0, fmt.Errorf("designator %q out of order", designator)
		}
		lastIndex = position

		if designator == 'S' && strings.Contains(number, ".") {
			seconds, err := strconv.ParseFloat(number, 64)
			if err != nil {
				return 0, fmt.Errorf("parse %q: %w", number, err)
			}
			if seconds >= math.MaxInt64 {
				return 0, fmt.Errorf("%q seconds out of range", number)
			}
			if total, err = addSeconds(total, int64(seconds)); err != nil {
				return 0, err
			}
		} else {
			amount, err := strconv.ParseInt(number, 10, 64)
			if err != nil {
				return 0, fmt.Errorf("parse %q: %w", number, err)
			}
			if amount > math.MaxInt64/multiplier {
				return 0, fmt.Errorf("%s%c out of range", number, designator)
			}
			if total, err = addSeconds(total, amount*multiplier); err != nil {
				return 0, err
			}
		}
		part = part[idx+1:]
	}
	return total, nil
}

// addSeconds adds two non-negative second counts, failing instead of wrapping.
func addSeconds(total, delta int64) (int64, error) {
	if delta > math.MaxInt64-total {
		return 0, errors.New("duration out of range")
	}
	return total + delta, nil
}

// SplitUTC parses an RFC 3339 timestamp and returns its UTC date and the
// full UTC timestamp. Fractional seconds are kept.
func SplitUTC(value string) (date string, timestamp string, err error) {
	parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return "", "", fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	utc := parsed.UTC()
	return utc.Format(DateLayout), utc.Format(time.RFC3339Nano), nil
}

package hours

import (
	"strconv"
	"strings"
	"time"
)

// Clock yields the current time; handlers take one so tests can pin it.
type Clock func() time.Time

// InZone reads clock in loc, so hours strings compare against the restaurant's
// wall clock and not the server's.
func InZone(clock Clock, loc *time.Location) Clock {
	return func() time.Time { return clock().In(loc) }
}

type Range struct {
	Start int
	End   int
}

// Contains reports whether minute-of-day m falls inside the range. A range whose
// start is after its end crosses midnight.
func (r Range) Contains(m int) bool {
	if r.Start <= r.End {
		return m >= r.Start && m <= r.End
	}
	return m >= r.Start || m <= r.End
}

func parseMinutes(hhmm string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(hhmm), ":")
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return h*60 + m, true
}

// ParseRanges reads an hours string such as "11:00-15:00 - 20:00-00:30".
// Slots are separated by " - " and each slot holds exactly one "-"; slots that
// do not parse are skipped.
func ParseRanges(hours string) []Range {
	var ranges []Range
	for _, slot := range strings.Split(hours, " - ") {
		slot = strings.TrimSpace(slot)
		if slot == "" {
			continue
		}
		bounds := strings.Split(slot, "-")
		if len(bounds) != 2 {
			continue
		}
		start, ok := parseMinutes(bounds[0])
		if !ok {
			continue
		}
		end, ok := parseMinutes(bounds[1])
		if !ok {
			continue
		}
		ranges = append(ranges, Range{Start: start, End: end})
	}
	return ranges
}

// IsOpenNow reports whether any range of hours contains now's wall-clock time.
func IsOpenNow(hours string, now time.Time) bool {
	minutes := now.Hour()*60 + now.Minute()
	for _, r := range ParseRanges(hours) {
		if r.Contains(minutes) {
			return true
		}
	}
	return false
}

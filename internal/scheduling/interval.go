package scheduling

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ErrInvalidInterval is returned when an interval's end does not come after its start.
var ErrInvalidInterval = errors.New("scheduling: interval end must be after start")

// Interval is a half-open [Start, End) time-of-day range expressed in
// minutes since midnight. Two intervals that merely touch do not overlap.
type Interval struct {
	Start int
	End   int
}

// NewInterval builds an interval, rejecting ranges whose end does not come
// strictly after their start or that fall outside a single day.
func NewInterval(start, end int) (Interval, error) {
	if start < 0 || end > minutesPerDay {
		return Interval{}, fmt.Errorf("%w: [%d, %d) outside a single day", ErrInvalidInterval, start, end)
	}
	if end <= start {
		return Interval{}, fmt.Errorf("%w: [%d, %d)", ErrInvalidInterval, start, end)
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether the two half-open intervals share any minute.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Contains reports whether other lies entirely within the receiver.
func (iv Interval) Contains(other Interval) bool {
	return iv.Start <= other.Start && other.End <= iv.End
}

// DurationMinutes returns the interval length in minutes.
func (iv Interval) DurationMinutes() int {
	return iv.End - iv.Start
}

// Inflate widens the interval by the given number of minutes on each side,
// clamped to the day. Used to model mandatory transition buffers.
func (iv Interval) Inflate(minutes int) Interval {
	if minutes <= 0 {
		return iv
	}
	start := iv.Start - minutes
	if start < 0 {
		start = 0
	}
	end := iv.End + minutes
	if end > minutesPerDay {
		end = minutesPerDay
	}
	return Interval{Start: start, End: end}
}

// String renders the interval as "HH:MM-HH:MM".
func (iv Interval) String() string {
	return FormatClock(iv.Start) + "-" + FormatClock(iv.End)
}

// ParseClock converts an "HH:MM" time-of-day string to minutes since midnight.
func ParseClock(value string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("scheduling: invalid clock value %q", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("scheduling: invalid clock value %q", value)
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("scheduling: invalid clock value %q", value)
	}
	if hours < 0 || hours > 24 || mins < 0 || mins > 59 || (hours == 24 && mins != 0) {
		return 0, fmt.Errorf("scheduling: clock value %q out of range", value)
	}
	return hours*60 + mins, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

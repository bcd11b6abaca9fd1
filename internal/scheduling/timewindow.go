package scheduling

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMalformedTime = errors.New("malformed time of day")
	ErrInvalidWindow = errors.New("conclusion time precedes initial time")
)

// TimeWindow is the absolute start and end of an appointment.
type TimeWindow struct {
	Initial time.Time
	Final   time.Time
}

// ComposeWindow merges a calendar date with two "HH:MM:SS" clock strings.
// Booking forms submit the date and the times of day as separate fields, so
// the merge is isolated here and kept free of storage concerns.
func ComposeWindow(date time.Time, initialTime, conclusionTime string) (TimeWindow, error) {
	initial, err := atTimeOfDay(date, initialTime)
	if err != nil {
		return TimeWindow{}, err
	}
	final, err := atTimeOfDay(date, conclusionTime)
	if err != nil {
		return TimeWindow{}, err
	}

	if final.Before(initial) {
		return TimeWindow{}, ErrInvalidWindow
	}

	return TimeWindow{Initial: initial, Final: final}, nil
}

// atTimeOfDay overrides the clock fields of date with the given "HH:MM:SS"
// string, normalized to UTC.
func atTimeOfDay(date time.Time, clock string) (time.Time, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTime, clock)
	}

	fields := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTime, clock)
		}
		fields[i] = n
	}

	hour, minute, second := fields[0], fields[1], fields[2]
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTime, clock)
	}

	d := date.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, second, 0, time.UTC), nil
}

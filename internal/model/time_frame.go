package model

import (
	"fmt"
	"strings"
)

// TimeFrame is the period a food item's frequency applies to. Its value is
// the weight used when computing frequency quotients.
type TimeFrame int

const (
	// TimeFrameWeek means "frequency times per week".
	TimeFrameWeek TimeFrame = 1
	// TimeFrameTwoWeeks means "frequency times per two weeks".
	TimeFrameTwoWeeks TimeFrame = 2
	// TimeFrameMonth means "frequency times per month".
	TimeFrameMonth TimeFrame = 4
	// TimeFrameNull marks an unset time frame while an item is being built.
	TimeFrameNull TimeFrame = -2
)

// Weight returns the time frame's quotient weight.
func (t TimeFrame) Weight() int {
	return int(t)
}

// IsSet reports whether t is one of the selectable time frames.
func (t TimeFrame) IsSet() bool {
	switch t {
	case TimeFrameWeek, TimeFrameTwoWeeks, TimeFrameMonth:
		return true
	default:
		return false
	}
}

func (t TimeFrame) String() string {
	switch t {
	case TimeFrameWeek:
		return "week"
	case TimeFrameTwoWeeks:
		return "two-weeks"
	case TimeFrameMonth:
		return "month"
	default:
		return "unset"
	}
}

// ParseTimeFrame converts a user supplied name into a TimeFrame.
func ParseTimeFrame(s string) (TimeFrame, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week", "weekly", "1":
		return TimeFrameWeek, nil
	case "two-weeks", "two_weeks", "2weeks", "fortnight", "2":
		return TimeFrameTwoWeeks, nil
	case "month", "monthly", "4":
		return TimeFrameMonth, nil
	default:
		return TimeFrameNull, fmt.Errorf("unknown time frame %q", s)
	}
}

// TimeFrameFromWeight converts a stored weight back into a TimeFrame.
func TimeFrameFromWeight(weight int) (TimeFrame, error) {
	t := TimeFrame(weight)
	if !t.IsSet() {
		return TimeFrameNull, fmt.Errorf("integer %d couldn't be converted to a time frame", weight)
	}
	return t, nil
}

package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tues": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekday parses a weekday name or its common abbreviation.
func ParseWeekday(s string) (time.Weekday, error) {
	day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return time.Sunday, fmt.Errorf("unknown weekday %q", s)
	}
	return day, nil
}

// ParseWeekdays parses a list of weekday names, dropping duplicates.
func ParseWeekdays(names []string) ([]time.Weekday, error) {
	seen := make(map[time.Weekday]bool, len(names))
	days := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		for _, part := range strings.Split(name, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			day, err := ParseWeekday(part)
			if err != nil {
				return nil, err
			}
			if !seen[day] {
				seen[day] = true
				days = append(days, day)
			}
		}
	}
	return SortWeekdays(days), nil
}

// SortWeekdays returns a copy of days ordered Monday first, Sunday last.
func SortWeekdays(days []time.Weekday) []time.Weekday {
	sorted := make([]time.Weekday, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool {
		return mondayFirst(sorted[i]) < mondayFirst(sorted[j])
	})
	return sorted
}

func mondayFirst(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

// FormatWeekdays renders days as a comma separated list, Monday first.
func FormatWeekdays(days []time.Weekday) string {
	if len(days) == 0 {
		return "none"
	}
	names := make([]string, 0, len(days))
	for _, d := range SortWeekdays(days) {
		names = append(names, d.String())
	}
	return strings.Join(names, ", ")
}

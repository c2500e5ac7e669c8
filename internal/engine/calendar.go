package engine

import "time"

// NoGroceryDaysSet is returned by DaysUntilNextGroceryDay when no grocery day
// is configured. It is larger than any real distance.
const NoGroceryDaysSet = 8

// Weekday ordinals run Sunday=1 .. Saturday=7.
func weekdayOrdinal(d time.Weekday) int {
	return int(d) + 1
}

// IsGroceryDay reports whether today is one of the configured grocery days.
func IsGroceryDay(today time.Weekday, groceryDays []time.Weekday) bool {
	for _, day := range groceryDays {
		if weekdayOrdinal(day) == weekdayOrdinal(today) {
			return true
		}
	}
	return false
}

// DaysUntilNextGroceryDay returns the number of days from today to the
// closest configured grocery day, 0 when today is one, or NoGroceryDaysSet.
func DaysUntilNextGroceryDay(today time.Weekday, groceryDays []time.Weekday) int {
	closest := NoGroceryDaysSet
	todayOrdinal := weekdayOrdinal(today)

	for _, day := range groceryDays {
		ordinal := weekdayOrdinal(day)
		if ordinal < todayOrdinal {
			ordinal += 7
		}
		if distance := ordinal - todayOrdinal; distance < closest {
			closest = distance
		}
	}
	return closest
}

package lifecycle

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

var weekdays = map[string]int{
	"sunday":    0,
	"monday":    1,
	"tuesday":   2,
	"wednesday": 3,
	"thursday":  4,
	"friday":    5,
	"saturday":  6,
}

// WeekdayOrdinal maps a day name onto a Sunday-first ordinal. Unknown names sort last.
func WeekdayOrdinal(day string) int {
	if n, ok := weekdays[strings.ToLower(strings.TrimSpace(day))]; ok {
		return n
	}
	return len(weekdays)
}

// SortByWeekday orders items Sunday-first using dayOf, keeping store order for ties.
func SortByWeekday[T any](items []T, dayOf func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return WeekdayOrdinal(dayOf(items[i])) < WeekdayOrdinal(dayOf(items[j]))
	})
}

// Countdown renders the time until start as "Xd Xh Xm Xs"; empty once start has passed.
func Countdown(now, start time.Time) string {
	d := start.Sub(now)
	if d < 0 {
		return ""
	}
	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)
	d -= time.Duration(minutes) * time.Minute
	seconds := int(d / time.Second)
	return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
}

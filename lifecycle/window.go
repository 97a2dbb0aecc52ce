package lifecycle

import "time"

// IsVisible reports whether now falls inside [start, end], both ends inclusive.
// A nil bound is open on that side. An inverted window (end before start) is
// empty rather than an error.
func IsVisible(start, end *time.Time, now time.Time) bool {
	if start != nil && end != nil && end.Before(*start) {
		return false
	}
	if start != nil && now.Before(*start) {
		return false
	}
	if end != nil && now.After(*end) {
		return false
	}
	return true
}

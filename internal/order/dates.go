package order

import "time"

// ResolveYear picks the delivery year for a month/day the customer stated
// without one, relative to the reference date: a month later in the calendar
// than the reference month stays in the reference year, an earlier month
// rolls to the next year, and within the reference month the day decides
// (today or later stays, already past rolls over).
//
// The extraction collaborator applies this same rule from the prompt text;
// ResolveYear exists to compute the worked example embedded there and to
// keep the rule testable.
func ResolveYear(ref time.Time, month time.Month, day int) int {
	switch {
	case month > ref.Month():
		return ref.Year()
	case month < ref.Month():
		return ref.Year() + 1
	case day >= ref.Day():
		return ref.Year()
	default:
		return ref.Year() + 1
	}
}

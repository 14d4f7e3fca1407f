package trends

import "time"

// TargetDate returns midnight of the calendar day before now in loc. A run
// always aggregates yesterday so that a full day's posts have had time to
// accumulate engagement before being snapshotted.
func TargetDate(now time.Time, loc *time.Location) time.Time {
	y, m, d := now.In(loc).AddDate(0, 0, -1).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// InWindow reports whether ts falls on target's calendar date in loc.
// Instants exactly at a day boundary belong to the day their local calendar
// date names; there is no rounding.
func InWindow(ts time.Time, target time.Time, loc *time.Location) bool {
	ty, tm, td := target.In(loc).Date()
	y, m, d := ts.In(loc).Date()
	return y == ty && m == tm && d == td
}

package digest

import (
	"fmt"
	"time"
)

// WeekBounds returns the Monday and Sunday of the week containing d.
func WeekBounds(d time.Time) (monday, sunday time.Time) {
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	monday = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location()).AddDate(0, 0, -offset)
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// WeekLabel renders the ISO week label, e.g. "2026-W36".
func WeekLabel(monday time.Time) string {
	year, week := monday.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// ResolveAnchor turns a week anchor ("latest" or YYYY-MM-DD) into a date.
func ResolveAnchor(anchor string, now time.Time) (time.Time, error) {
	if anchor == "" || anchor == "latest" {
		return now, nil
	}
	return time.Parse("2006-01-02", anchor)
}

// PeriodString formats the week span the way the briefing header does:
// "D. M. – D. M. YYYY", with thin spaces around the dash.
func PeriodString(monday, sunday time.Time) string {
	return fmt.Sprintf("%d. %d. – %d. %d. %d",
		monday.Day(), int(monday.Month()),
		sunday.Day(), int(sunday.Month()), sunday.Year())
}

package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// CalendarDate returns the calendar date of t, read in t's own location, as midnight UTC.
// Start and due dates are stored this way so a date means the same day in every timezone.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayBounds returns today's calendar date in loc and the following date, both as midnight UTC.
// They compare directly against stored calendar dates.
func DayBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	today := CalendarDate(now.In(loc))
	return today, today.AddDate(0, 0, 1)
}

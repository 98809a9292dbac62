package domain

import "time"

// windowDay is the day of month on which every reporting window starts and ends.
const windowDay = 25

// ReportingWindow runs from the 25th of the previous month to the 25th of
// the current month, both at midnight UTC.
type ReportingWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewReportingWindow returns the window ending in now's calendar month.
func NewReportingWindow(now time.Time) ReportingWindow {
	year, month, _ := now.Date()
	// time.Date normalizes month 0 to December of the previous year.
	return ReportingWindow{
		Start: time.Date(year, month-1, windowDay, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, month, windowDay, 0, 0, 0, 0, time.UTC),
	}
}

// Contains reports whether t falls inside [Start, End].
func (w ReportingWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

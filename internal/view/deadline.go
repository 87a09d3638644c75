package view

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Deadline is a project's due date relative to a moment.
type Deadline struct {
	Raw      string
	Due      time.Time
	Set      bool
	Valid    bool
	Overdue  bool
	DaysLeft int
}

var deadlineLayouts = []string{
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDeadline accepts RFC 3339 timestamps and the zone-less ISO 8601
// forms the server stores. Zone-less values are read in local time.
func ParseDeadline(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid deadline %q (expected YYYY-MM-DD or an ISO 8601 timestamp)", value)
}

// DeadlineAt evaluates raw at now. A completed project is never overdue.
// DaysLeft counts whole days and rounds down, so a deadline earlier today
// is -1.
func DeadlineAt(raw string, completed bool, now time.Time) Deadline {
	d := Deadline{Raw: raw, Set: strings.TrimSpace(raw) != ""}
	if !d.Set {
		return d
	}
	due, err := ParseDeadline(raw)
	if err != nil {
		return d
	}
	d.Due = due
	d.Valid = true
	d.DaysLeft = int(math.Floor(due.Sub(now).Hours() / 24))
	d.Overdue = now.After(due) && !completed
	return d
}

// FormatDeadline renders the deadline for a header line. It returns ""
// when no deadline is set.
func FormatDeadline(d Deadline) string {
	switch {
	case !d.Set:
		return ""
	case !d.Valid:
		return "Deadline: " + d.Raw
	case d.Overdue:
		return fmt.Sprintf("Deadline: %s (overdue by %s)", d.Raw, plural(-d.DaysLeft, "day"))
	case d.DaysLeft < 0:
		return "Deadline: " + d.Raw + " (passed)"
	default:
		return fmt.Sprintf("Deadline: %s (%s left)", d.Raw, plural(d.DaysLeft, "day"))
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

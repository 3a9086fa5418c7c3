package deadlines

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/rokovi/internal/constants"
	"github.com/julianstephens/rokovi/internal/models"
	"github.com/julianstephens/rokovi/internal/utils"
)

// Status is the urgency tier of a deadline, derived from its due date.
type Status int

const (
	Overdue Status = iota
	DueSoon
	DueThisMonth
	OnTrack
)

const (
	// DueSoonDays is the last day (inclusive) of the most urgent tier.
	DueSoonDays = 3
	// DueThisMonthDays is the last day (inclusive) of the second tier.
	DueThisMonthDays = 14
)

var statusNames = map[Status]string{
	Overdue:      "Overdue",
	DueSoon:      "Due soon",
	DueThisMonth: "Due this month",
	OnTrack:      "On track",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Key is the flag/slug form of the status, e.g. "due-soon".
func (s Status) Key() string {
	return strings.ReplaceAll(strings.ToLower(s.String()), " ", "-")
}

// ParseStatus accepts either the slug or the display name.
func ParseStatus(s string) (Status, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	for st := Overdue; st <= OnTrack; st++ {
		if in == st.Key() || in == strings.ToLower(st.String()) {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q (expected overdue, due-soon, due-this-month, or on-track)", s)
}

// Classifier maps a day distance to a tier.
type Classifier func(daysUntil int) Status

// DaysUntil returns the number of calendar days from today to dueDate, with
// both normalized to midnight in today's location. Same-day is 0.
func DaysUntil(dueDate, today time.Time) int {
	return utils.CalendarDays(today, dueDate.In(today.Location()))
}

// Classify is the four-tier classifier used by full listings.
func Classify(daysUntil int) Status {
	switch {
	case daysUntil < 0:
		return Overdue
	case daysUntil <= DueSoonDays:
		return DueSoon
	case daysUntil <= DueThisMonthDays:
		return DueThisMonth
	default:
		return OnTrack
	}
}

// ClassifyCompact is the three-tier classifier used by summary widgets.
// It never returns DueThisMonth.
func ClassifyCompact(daysUntil int) Status {
	switch {
	case daysUntil < 0:
		return Overdue
	case daysUntil <= DueSoonDays:
		return DueSoon
	default:
		return OnTrack
	}
}

// StatusOf classifies d relative to today.
func StatusOf(d models.Deadline, today time.Time, classify Classifier) Status {
	return classify(DaysUntil(d.DueDate, today))
}

// Label is the display status of d: "Completed" for completed deadlines,
// otherwise the tier name.
func Label(d models.Deadline, today time.Time, classify Classifier) string {
	if d.IsCompleted {
		return constants.CompletedLabel
	}
	return StatusOf(d, today, classify).String()
}

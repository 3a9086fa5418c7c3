package deadlines

import (
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/rokovi/internal/models"
)

// Relevant returns the deadlines that are not completed.
func Relevant(ds []models.Deadline) []models.Deadline {
	out := make([]models.Deadline, 0, len(ds))
	for _, d := range ds {
		if !d.IsCompleted {
			out = append(out, d)
		}
	}
	return out
}

// FilterByStatus keeps deadlines whose tier under classify is one of statuses.
func FilterByStatus(ds []models.Deadline, today time.Time, classify Classifier, statuses ...Status) []models.Deadline {
	out := make([]models.Deadline, 0, len(ds))
	for _, d := range ds {
		if slices.Contains(statuses, StatusOf(d, today, classify)) {
			out = append(out, d)
		}
	}
	return out
}

// SortByUrgency returns a copy of ds with overdue deadlines first, then
// ascending by days until due. Equal keys keep their input order.
func SortByUrgency(ds []models.Deadline, today time.Time) []models.Deadline {
	out := slices.Clone(ds)
	slices.SortStableFunc(out, func(a, b models.Deadline) int {
		da, db := DaysUntil(a.DueDate, today), DaysUntil(b.DueDate, today)
		oa, ob := da < 0, db < 0
		if oa != ob {
			if oa {
				return -1
			}
			return 1
		}
		return da - db
	})
	return out
}

// CountByStatus tallies ds per tier. Every tier the classifier can produce
// is present in the result, possibly with a zero count.
func CountByStatus(ds []models.Deadline, today time.Time, classify Classifier) map[Status]int {
	counts := map[Status]int{Overdue: 0, DueSoon: 0, OnTrack: 0}
	if classify(DueThisMonthDays) == DueThisMonth {
		counts[DueThisMonth] = 0
	}
	for _, d := range ds {
		counts[StatusOf(d, today, classify)]++
	}
	return counts
}

// Query selects deadlines for a listing. Zero values match everything
// except that completed deadlines are excluded unless IncludeCompleted is set.
type Query struct {
	CompanyID        string
	Area             string
	Search           string
	IncludeCompleted bool
	Statuses         []Status
	// Compact classifies with the three-tier classifier.
	Compact bool
}

func (q Query) classifier() Classifier {
	if q.Compact {
		return ClassifyCompact
	}
	return Classify
}

// Filter applies q to ds, preserving order.
func Filter(ds []models.Deadline, today time.Time, q Query) []models.Deadline {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	classify := q.classifier()

	out := make([]models.Deadline, 0, len(ds))
	for _, d := range ds {
		if d.IsCompleted && !q.IncludeCompleted {
			continue
		}
		if q.CompanyID != "" && d.CompanyID != q.CompanyID {
			continue
		}
		if q.Area != "" && !strings.EqualFold(d.Area, q.Area) {
			continue
		}
		if len(q.Statuses) > 0 && (d.IsCompleted || !slices.Contains(q.Statuses, StatusOf(d, today, classify))) {
			continue
		}
		if search != "" && !matches(d, search) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func matches(d models.Deadline, needle string) bool {
	for _, field := range []string{d.Area, d.ObligationType, d.Note, d.CompanyName} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Page is one page of a listing. Page numbers start at 1.
type Page struct {
	Items      []models.Deadline
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// Paginate slices ds into pages of size. Out-of-range pages clamp to the
// nearest valid page; a non-positive size returns everything on one page.
func Paginate(ds []models.Deadline, page, size int) Page {
	total := len(ds)
	if size <= 0 {
		size = max(total, 1)
	}
	pages := max((total+size-1)/size, 1)
	page = min(max(page, 1), pages)

	start := (page - 1) * size
	end := min(start+size, total)
	return Page{
		Items:      ds[start:end],
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: pages,
	}
}

// Summary holds the counts shown by dashboard widgets.
type Summary struct {
	Overdue   int
	DueSoon   int
	OnTrack   int
	Completed int
	Total     int
}

// Summarize counts incomplete deadlines with the three-tier classifier and
// completed ones separately.
func Summarize(ds []models.Deadline, today time.Time) Summary {
	s := Summary{Total: len(ds)}
	for _, d := range ds {
		if d.IsCompleted {
			s.Completed++
			continue
		}
		switch StatusOf(d, today, ClassifyCompact) {
		case Overdue:
			s.Overdue++
		case DueSoon:
			s.DueSoon++
		default:
			s.OnTrack++
		}
	}
	return s
}

// Summary summarizes every deadline as of today.
func (e *Engine) Summary() (Summary, error) {
	ds, err := e.AllDeadlines()
	if err != nil {
		return Summary{}, err
	}
	return Summarize(ds, e.Today()), nil
}

// Upcoming returns incomplete deadlines due within horizonDays (including
// overdue ones), most urgent first.
func (e *Engine) Upcoming(horizonDays int) ([]models.Deadline, error) {
	ds, err := e.AllDeadlines()
	if err != nil {
		return nil, err
	}
	today := e.Today()
	var out []models.Deadline
	for _, d := range Relevant(ds) {
		if DaysUntil(d.DueDate, today) <= horizonDays {
			out = append(out, d)
		}
	}
	return SortByUrgency(out, today), nil
}

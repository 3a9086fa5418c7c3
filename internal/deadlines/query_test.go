package deadlines

import (
	"testing"
	"time"

	"github.com/julianstephens/rokovi/internal/models"
)

var queryToday = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func daysOf(ds []models.Deadline) []int {
	out := make([]int, len(ds))
	for i, d := range ds {
		out[i] = DaysUntil(d.DueDate, queryToday)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSortByUrgency(t *testing.T) {
	var ds []models.Deadline
	for _, days := range []int{-5, 0, 3, -1, 20} {
		ds = append(ds, deadlineDueIn(days, queryToday))
	}

	sorted := SortByUrgency(ds, queryToday)
	if got, want := daysOf(sorted), []int{-5, -1, 0, 3, 20}; !equalInts(got, want) {
		t.Errorf("SortByUrgency() = %v, want %v", got, want)
	}
	if got := daysOf(ds); !equalInts(got, []int{-5, 0, 3, -1, 20}) {
		t.Errorf("SortByUrgency modified its input: %v", got)
	}
}

func TestSortByUrgencyIsStable(t *testing.T) {
	a := models.Deadline{ID: 1, DueDate: queryToday.AddDate(0, 0, 2)}
	b := models.Deadline{ID: 2, DueDate: queryToday.AddDate(0, 0, 2).Add(5 * time.Hour)}
	c := models.Deadline{ID: 3, DueDate: queryToday.AddDate(0, 0, -1)}

	sorted := SortByUrgency([]models.Deadline{a, b, c}, queryToday)
	if sorted[0].ID != 3 || sorted[1].ID != 1 || sorted[2].ID != 2 {
		t.Errorf("order = %d,%d,%d; want 3,1,2", sorted[0].ID, sorted[1].ID, sorted[2].ID)
	}
}

func TestRelevant(t *testing.T) {
	ds := []models.Deadline{{ID: 1}, {ID: 2, IsCompleted: true}, {ID: 3}}
	got := Relevant(ds)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("Relevant() = %+v", got)
	}
}

func TestFilterByStatusAndCount(t *testing.T) {
	var ds []models.Deadline
	for _, days := range []int{-3, 0, 2, 7, 14, 30} {
		ds = append(ds, deadlineDueIn(days, queryToday))
	}

	urgent := FilterByStatus(ds, queryToday, Classify, Overdue, DueSoon)
	if got := daysOf(urgent); !equalInts(got, []int{-3, 0, 2}) {
		t.Errorf("FilterByStatus() = %v", got)
	}

	counts := CountByStatus(ds, queryToday, Classify)
	want := map[Status]int{Overdue: 1, DueSoon: 2, DueThisMonth: 2, OnTrack: 1}
	for st, n := range want {
		if counts[st] != n {
			t.Errorf("CountByStatus()[%v] = %d, want %d", st, counts[st], n)
		}
	}

	compact := CountByStatus(ds, queryToday, ClassifyCompact)
	if _, ok := compact[DueThisMonth]; ok {
		t.Error("compact counts should not include DueThisMonth")
	}
	if compact[OnTrack] != 3 {
		t.Errorf("compact OnTrack = %d, want 3", compact[OnTrack])
	}

	empty := CountByStatus(nil, queryToday, Classify)
	if len(empty) != 4 {
		t.Errorf("CountByStatus(nil) has %d tiers, want 4", len(empty))
	}
}

func TestFilter(t *testing.T) {
	ds := []models.Deadline{
		{ID: 1, CompanyID: "1", CompanyName: "Metalac", Area: "Fire Protection", ObligationType: "Extinguishers", DueDate: queryToday.AddDate(0, 0, -1)},
		{ID: 2, CompanyID: "1", CompanyName: "Metalac", Area: "Training", ObligationType: "First aid", DueDate: queryToday.AddDate(0, 0, 10)},
		{ID: 3, CompanyID: "2", CompanyName: "Gradnja", Area: "Training", ObligationType: "Safety training", Note: "new hires", DueDate: queryToday.AddDate(0, 0, 2)},
		{ID: 4, CompanyID: "2", CompanyName: "Gradnja", Area: "Occupational Safety", ObligationType: "Injury", DueDate: queryToday.AddDate(0, 0, -4), IsCompleted: true},
	}

	ids := func(ds []models.Deadline) []int {
		out := make([]int, len(ds))
		for i, d := range ds {
			out[i] = d.ID
		}
		return out
	}

	tests := []struct {
		name  string
		query Query
		want  []int
	}{
		{"zero query hides completed", Query{}, []int{1, 2, 3}},
		{"include completed", Query{IncludeCompleted: true}, []int{1, 2, 3, 4}},
		{"company", Query{CompanyID: "2"}, []int{3}},
		{"area case-insensitive", Query{Area: "training"}, []int{2, 3}},
		{"search note", Query{Search: "HIRES"}, []int{3}},
		{"search company name", Query{Search: "metal"}, []int{1, 2}},
		{"status four-tier", Query{Statuses: []Status{DueThisMonth}}, []int{2}},
		{"status compact", Query{Statuses: []Status{OnTrack}, Compact: true}, []int{2}},
		{"status skips completed", Query{Statuses: []Status{Overdue}, IncludeCompleted: true}, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(Filter(ds, queryToday, tt.query)); !equalInts(got, tt.want) {
				t.Errorf("Filter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	var ds []models.Deadline
	for i := 1; i <= 7; i++ {
		ds = append(ds, models.Deadline{ID: i})
	}

	tests := []struct {
		name      string
		page      int
		size      int
		wantPage  int
		wantFirst int
		wantLen   int
		wantPages int
	}{
		{"first page", 1, 3, 1, 1, 3, 3},
		{"last partial page", 3, 3, 3, 7, 1, 3},
		{"past the end clamps", 9, 3, 3, 7, 1, 3},
		{"zero page clamps", 0, 3, 1, 1, 3, 3},
		{"no size", 1, 0, 1, 1, 7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(ds, tt.page, tt.size)
			if p.Page != tt.wantPage || p.TotalPages != tt.wantPages || len(p.Items) != tt.wantLen || p.Items[0].ID != tt.wantFirst {
				t.Errorf("Paginate(%d, %d) = page %d/%d, %d items starting at %d", tt.page, tt.size, p.Page, p.TotalPages, len(p.Items), p.Items[0].ID)
			}
			if p.Total != 7 {
				t.Errorf("Total = %d, want 7", p.Total)
			}
		})
	}

	empty := Paginate(nil, 1, 10)
	if empty.TotalPages != 1 || len(empty.Items) != 0 {
		t.Errorf("Paginate(nil) = %+v", empty)
	}
}

func TestSummarize(t *testing.T) {
	ds := []models.Deadline{
		deadlineDueIn(-1, queryToday),
		deadlineDueIn(3, queryToday),
		deadlineDueIn(4, queryToday),
		{DueDate: queryToday.AddDate(0, 0, -10), IsCompleted: true},
	}
	got := Summarize(ds, queryToday)
	want := Summary{Overdue: 1, DueSoon: 1, OnTrack: 1, Completed: 1, Total: 4}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}

package deadlines

import (
	"fmt"
	"testing"
	"time"

	"github.com/julianstephens/rokovi/internal/constants"
	"github.com/julianstephens/rokovi/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		days        int
		want        Status
		wantCompact Status
	}{
		{-1000, Overdue, Overdue},
		{-1, Overdue, Overdue},
		{0, DueSoon, DueSoon},
		{1, DueSoon, DueSoon},
		{3, DueSoon, DueSoon},
		{4, DueThisMonth, OnTrack},
		{14, DueThisMonth, OnTrack},
		{15, OnTrack, OnTrack},
		{1000, OnTrack, OnTrack},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d days", tt.days), func(t *testing.T) {
			if got := Classify(tt.days); got != tt.want {
				t.Errorf("Classify(%d) = %v, want %v", tt.days, got, tt.want)
			}
			if got := ClassifyCompact(tt.days); got != tt.wantCompact {
				t.Errorf("ClassifyCompact(%d) = %v, want %v", tt.days, got, tt.wantCompact)
			}
		})
	}
}

func TestClassifyIsTotal(t *testing.T) {
	for d := -400; d <= 400; d++ {
		switch Classify(d) {
		case Overdue, DueSoon, DueThisMonth, OnTrack:
		default:
			t.Fatalf("Classify(%d) returned unknown status", d)
		}
		if ClassifyCompact(d) == DueThisMonth {
			t.Fatalf("ClassifyCompact(%d) returned DueThisMonth", d)
		}
		// Both classifiers agree outside the second tier.
		if d < 4 || d > 14 {
			if Classify(d) != ClassifyCompact(d) {
				t.Fatalf("classifiers disagree at %d", d)
			}
		}
	}
}

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		name  string
		today time.Time
		due   time.Time
		want  int
	}{
		{
			name:  "one minute across midnight",
			today: time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC),
			due:   time.Date(2024, 6, 2, 0, 1, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "same day later hour",
			today: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
			due:   time.Date(2024, 6, 1, 23, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			name:  "same day earlier hour",
			today: time.Date(2024, 6, 1, 23, 0, 0, 0, time.UTC),
			due:   time.Date(2024, 6, 1, 1, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			name:  "yesterday",
			today: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			due:   time.Date(2024, 5, 31, 23, 59, 0, 0, time.UTC),
			want:  -1,
		},
		{
			name:  "across month",
			today: time.Date(2024, 1, 30, 12, 0, 0, 0, time.UTC),
			due:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			want:  31,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntil(tt.due, tt.today); got != tt.want {
				t.Errorf("DaysUntil() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysUntilUsesTodaysLocation(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Belgrade")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}

	// 23:30 UTC on the 1st is already the 2nd in Belgrade.
	due := time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC)
	today := time.Date(2024, 6, 2, 9, 0, 0, 0, loc)
	if got := DaysUntil(due, today); got != 0 {
		t.Errorf("DaysUntil() = %d, want 0", got)
	}

	// Spring-forward day is 23 hours long but still one calendar day.
	today = time.Date(2024, 3, 30, 12, 0, 0, 0, loc)
	due = time.Date(2024, 4, 1, 0, 0, 0, 0, loc)
	if got := DaysUntil(due, today); got != 2 {
		t.Errorf("DaysUntil() across DST = %d, want 2", got)
	}
}

func TestParseStatus(t *testing.T) {
	for _, st := range []Status{Overdue, DueSoon, DueThisMonth, OnTrack} {
		got, err := ParseStatus(st.Key())
		if err != nil || got != st {
			t.Errorf("ParseStatus(%q) = %v, %v", st.Key(), got, err)
		}
		got, err = ParseStatus(st.String())
		if err != nil || got != st {
			t.Errorf("ParseStatus(%q) = %v, %v", st.String(), got, err)
		}
	}
	if _, err := ParseStatus("later"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestLabel(t *testing.T) {
	today := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	d := models.Deadline{DueDate: today.AddDate(0, 0, 10)}

	if got := Label(d, today, Classify); got != "Due this month" {
		t.Errorf("Label() = %q", got)
	}
	if got := Label(d, today, ClassifyCompact); got != "On track" {
		t.Errorf("compact Label() = %q", got)
	}
	d.IsCompleted = true
	if got := Label(d, today, Classify); got != constants.CompletedLabel {
		t.Errorf("completed Label() = %q, want %q", got, constants.CompletedLabel)
	}
}

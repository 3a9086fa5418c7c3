package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{"empty is local", "", false},
		{"Local", "Local", false},
		{"UTC", "UTC", false},
		{"Belgrade", "Europe/Belgrade", false},
		{"invalid", "Not/AZone", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadLocation(%q) error = %v, wantErr %v", tt.timezone, err, tt.wantErr)
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation(%q) returned nil location", tt.timezone)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("Local") || !ValidateTimezone("Europe/Belgrade") {
		t.Error("expected valid timezones")
	}
	if ValidateTimezone("Mars/Olympus") {
		t.Error("expected invalid timezone")
	}
}

func TestMidnight(t *testing.T) {
	in := time.Date(2024, 6, 1, 23, 59, 30, 5, time.UTC)
	got := Midnight(in)
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Midnight(%v) = %v, want %v", in, got, want)
	}
}

func TestCalendarDays(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Belgrade")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day", time.Date(2024, 6, 1, 1, 0, 0, 0, loc), time.Date(2024, 6, 1, 23, 0, 0, 0, loc), 0},
		{"next day across minutes", time.Date(2024, 6, 1, 23, 59, 0, 0, loc), time.Date(2024, 6, 2, 0, 1, 0, 0, loc), 1},
		{"past", time.Date(2024, 6, 10, 0, 0, 0, 0, loc), time.Date(2024, 6, 5, 0, 0, 0, 0, loc), -5},
		{"across DST fall back", time.Date(2024, 10, 26, 12, 0, 0, 0, loc), time.Date(2024, 10, 27, 12, 0, 0, 0, loc), 1},
		{"across DST spring forward", time.Date(2024, 3, 30, 0, 0, 0, 0, loc), time.Date(2024, 4, 1, 0, 0, 0, 0, loc), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalendarDays(tt.a, tt.b); got != tt.want {
				t.Errorf("CalendarDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseDateTimeInLocation(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{"date time", "2024-03-05 08:00", time.Date(2024, 3, 5, 8, 0, 0, 0, loc), false},
		{"date only", "2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, loc), false},
		{"rfc3339", "2024-03-05T08:00:00Z", time.Date(2024, 3, 5, 8, 0, 0, 0, loc), false},
		{"garbage", "yesterday", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateTimeInLocation(tt.in, loc)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

package deadlines

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/rokovi/internal/cli"
	dl "github.com/julianstephens/rokovi/internal/deadlines"
	"github.com/julianstephens/rokovi/internal/models"
	"github.com/julianstephens/rokovi/internal/storage/sqlite"
)

var testNow = time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T, companies ...models.Company) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	settings.Timezone = "UTC"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	ctx := &cli.Context{Store: store, Clock: func() time.Time { return testNow }}
	for _, c := range companies {
		if err := ctx.Registry().Companies.Add(c); err != nil {
			t.Fatal(err)
		}
	}
	return ctx
}

type fakeSender struct {
	titles []string
	texts  []string
	err    error
}

func (f *fakeSender) Notify(_ context.Context, title, text string) error {
	f.titles = append(f.titles, title)
	f.texts = append(f.texts, text)
	return f.err
}

var metalac = models.Company{ID: "1", Name: "Metalac"}

func TestDeadlineListCmd(t *testing.T) {
	ctx := setupTestDB(t, metalac)

	tests := []struct {
		name    string
		cmd     DeadlineListCmd
		wantErr bool
	}{
		{"all", DeadlineListCmd{Page: 1}, false},
		{"filtered", DeadlineListCmd{Company: "1", Status: []string{"overdue", "due-soon"}, ShowIDs: true}, false},
		{"compact paged", DeadlineListCmd{Compact: true, Page: 2, PageSize: 2}, false},
		{"no matches", DeadlineListCmd{Search: "nothing like this"}, false},
		{"bad status", DeadlineListCmd{Status: []string{"late"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDeadlineListQuery(t *testing.T) {
	cmd := DeadlineListCmd{Company: "1", Area: "Training", Search: "aid", All: true, Status: []string{"Due this month", "on-track"}}
	q, err := cmd.query()
	if err != nil {
		t.Fatal(err)
	}
	if q.CompanyID != "1" || q.Area != "Training" || q.Search != "aid" || !q.IncludeCompleted {
		t.Errorf("query = %+v", q)
	}
	if len(q.Statuses) != 2 || q.Statuses[0] != dl.DueThisMonth || q.Statuses[1] != dl.OnTrack {
		t.Errorf("statuses = %v", q.Statuses)
	}
}

func TestFormatDeadline(t *testing.T) {
	today := testNow
	tests := []struct {
		name string
		d    models.Deadline
		want []string
	}{
		{"overdue", models.Deadline{ID: 101, DueDate: today.AddDate(0, 0, -2), Area: "A", ObligationType: "O", CompanyName: "Metalac"}, []string{"[Overdue]", "2 days late", "#101"}},
		{"today", models.Deadline{DueDate: today}, []string{"[Due soon]", "today"}},
		{"ahead", models.Deadline{DueDate: today.AddDate(0, 0, 20)}, []string{"[On track]", "in 20 days"}},
		{"completed", models.Deadline{DueDate: today, IsCompleted: true}, []string{"[Completed]", "done"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatDeadline(tt.d, today, dl.Classify, true)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("formatDeadline() = %q, missing %q", got, w)
				}
			}
		})
	}
}

func TestDeadlineDeleteCmd(t *testing.T) {
	ctx := setupTestDB(t, metalac)
	engine, err := ctx.Engine()
	if err != nil {
		t.Fatal(err)
	}
	d, err := engine.CreateInjuryDeadline(1, testNow, "Ana", metalac)
	if err != nil {
		t.Fatal(err)
	}

	if err := (&DeadlineDeleteCmd{ID: 101}).Run(ctx); err == nil || !strings.Contains(err.Error(), "seed") {
		t.Errorf("deleting a seeded deadline: error = %v", err)
	}
	if err := (&DeadlineDeleteCmd{ID: d.ID}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := (&DeadlineDeleteCmd{ID: d.ID}).Run(ctx); !errors.Is(err, dl.ErrDeadlineNotFound) {
		t.Errorf("second delete error = %v, want ErrDeadlineNotFound", err)
	}
}

func TestDeadlineSummaryCmd(t *testing.T) {
	ctx := setupTestDB(t, metalac)
	if err := (&DeadlineSummaryCmd{}).Run(ctx); err != nil {
		t.Errorf("summary failed: %v", err)
	}
}

func TestPersistenceMode(t *testing.T) {
	tests := []struct {
		strict bool
		want   string
	}{
		{false, "advisory"},
		{true, "strict"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			engine := dl.New(nil, nil, dl.WithStrict(tt.strict))
			if got := persistenceMode(engine); !strings.HasPrefix(got, tt.want) {
				t.Errorf("persistenceMode() = %q, want prefix %q", got, tt.want)
			}
		})
	}
}

func TestBuildReminder(t *testing.T) {
	today := testNow
	if _, _, ok := BuildReminder(nil, today); ok {
		t.Error("empty list should not produce a reminder")
	}

	var upcoming []models.Deadline
	for i := -1; i < 7; i++ {
		upcoming = append(upcoming, models.Deadline{DueDate: today.AddDate(0, 0, i), ObligationType: "Check", CompanyName: "Metalac"})
	}
	title, text, ok := BuildReminder(upcoming, today)
	if !ok {
		t.Fatal("expected a reminder")
	}
	if title != "rokovi: 1 overdue, 4 due soon" {
		t.Errorf("title = %q", title)
	}
	lines := strings.Split(text, "\n")
	if len(lines) != maxReminderLines+1 {
		t.Fatalf("got %d lines, want %d", len(lines), maxReminderLines+1)
	}
	if lines[len(lines)-1] != "...and 3 more" {
		t.Errorf("last line = %q", lines[len(lines)-1])
	}
	if !strings.HasPrefix(lines[0], "2024-03-04 Check - Metalac (Overdue)") {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestRemindCmd(t *testing.T) {
	ctx := setupTestDB(t, metalac)

	sender := &fakeSender{}
	if err := (&RemindCmd{sender: sender}).Run(ctx); err != nil {
		t.Fatalf("remind failed: %v", err)
	}
	if len(sender.titles) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(sender.titles))
	}
	// Metalac seeds due in -2, 1 and 12 days fall inside the default horizon
	if sender.titles[0] != "rokovi: 1 overdue, 1 due soon" {
		t.Errorf("title = %q", sender.titles[0])
	}
	if n := len(strings.Split(sender.texts[0], "\n")); n != 3 {
		t.Errorf("got %d lines, want 3", n)
	}

	dry := &fakeSender{}
	if err := (&RemindCmd{DryRun: true, sender: dry}).Run(ctx); err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if len(dry.titles) != 0 {
		t.Error("dry run must not send")
	}

	failing := &fakeSender{err: errors.New("tray not running")}
	if err := (&RemindCmd{sender: failing}).Run(ctx); err == nil {
		t.Error("expected send failure to surface")
	}
}

func TestRemindCmdRespectsSettings(t *testing.T) {
	ctx := setupTestDB(t, metalac)
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	settings.NotificationsEnabled = false
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	sender := &fakeSender{}
	if err := (&RemindCmd{sender: sender}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(sender.titles) != 0 {
		t.Error("disabled notifications must not send")
	}
}

func TestRemindCmdNothingUpcoming(t *testing.T) {
	ctx := setupTestDB(t)
	sender := &fakeSender{}
	if err := (&RemindCmd{sender: sender}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(sender.titles) != 0 {
		t.Error("nothing upcoming must not send")
	}
}

package deadlines

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/rokovi/internal/cli"
	"github.com/julianstephens/rokovi/internal/constants"
	dl "github.com/julianstephens/rokovi/internal/deadlines"
	"github.com/julianstephens/rokovi/internal/logger"
	"github.com/julianstephens/rokovi/internal/models"
	"github.com/julianstephens/rokovi/internal/notifier"
)

// maxReminderLines caps how many deadlines a single notification lists.
const maxReminderLines = 5

type sender interface {
	Notify(ctx context.Context, title, text string) error
}

type RemindCmd struct {
	DryRun bool `help:"Print the reminder to stdout instead of sending it."`
	Watch  bool `help:"Keep running and send reminders on the configured schedule."`

	sender sender
}

// BuildReminder summarizes the upcoming deadlines. ok is false when there
// is nothing worth reminding about.
func BuildReminder(upcoming []models.Deadline, today time.Time) (title, text string, ok bool) {
	if len(upcoming) == 0 {
		return "", "", false
	}

	counts := dl.CountByStatus(upcoming, today, dl.ClassifyCompact)
	title = fmt.Sprintf("%s: %d overdue, %d due soon", constants.AppName, counts[dl.Overdue], counts[dl.DueSoon])

	var lines []string
	for i, d := range upcoming {
		if i == maxReminderLines {
			lines = append(lines, fmt.Sprintf("...and %d more", len(upcoming)-maxReminderLines))
			break
		}
		lines = append(lines, fmt.Sprintf("%s %s - %s (%s)",
			d.DueDate.In(today.Location()).Format(constants.DateFormat), d.ObligationType, d.CompanyName,
			dl.Label(d, today, dl.ClassifyCompact)))
	}
	return title, strings.Join(lines, "\n"), true
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if !settings.NotificationsEnabled && !c.DryRun {
		fmt.Println("Notifications are disabled in settings.")
		return nil
	}
	if c.sender == nil {
		c.sender = notifier.New()
	}

	if !c.Watch {
		return c.remind(context.Background(), ctx, settings.ReminderHorizonDays)
	}

	engine, err := ctx.Engine()
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := cron.New(cron.WithLocation(engine.Location()))
	if _, err := scheduler.AddFunc(settings.ReminderSchedule, func() {
		if err := c.remind(runCtx, ctx, settings.ReminderHorizonDays); err != nil {
			logger.Error("Reminder failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", settings.ReminderSchedule, err)
	}

	fmt.Printf("Sending reminders on schedule %q (Ctrl+C to stop)\n", settings.ReminderSchedule)
	scheduler.Start()
	<-runCtx.Done()
	<-scheduler.Stop().Done()
	return nil
}

func (c *RemindCmd) remind(runCtx context.Context, ctx *cli.Context, horizonDays int) error {
	engine, err := ctx.Engine()
	if err != nil {
		return err
	}
	upcoming, err := engine.Upcoming(horizonDays)
	if err != nil {
		return fmt.Errorf("failed to get upcoming deadlines: %w", err)
	}

	title, text, ok := BuildReminder(upcoming, engine.Today())
	if !ok {
		if c.DryRun {
			fmt.Printf("No deadlines within %d days.\n", horizonDays)
		}
		return nil
	}

	if c.DryRun {
		fmt.Println("[DryRun] " + title)
		fmt.Println(text)
		return nil
	}
	if err := c.sender.Notify(runCtx, title, text); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	logger.Info("Sent reminder", "deadlines", len(upcoming))
	return nil
}

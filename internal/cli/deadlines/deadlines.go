package deadlines

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/rokovi/internal/cli"
	"github.com/julianstephens/rokovi/internal/constants"
	dl "github.com/julianstephens/rokovi/internal/deadlines"
	"github.com/julianstephens/rokovi/internal/models"
)

type DeadlineListCmd struct {
	Company  string   `short:"c" help:"Only show deadlines of this company."`
	Area     string   `short:"a" help:"Only show deadlines in this area."`
	Search   string   `short:"q" help:"Free-text search over area, obligation, note and company."`
	Status   []string `short:"s" help:"Only show these statuses (overdue, due-soon, due-this-month, on-track)."`
	All      bool     `help:"Include completed deadlines."`
	Compact  bool     `help:"Use the three-tier classification (no due-this-month)."`
	Page     int      `help:"Page number." default:"1"`
	PageSize int      `help:"Deadlines per page (0 shows all)." default:"0"`
	ShowIDs  bool     `help:"Show deadline IDs." name:"show-ids"`
}

func (c *DeadlineListCmd) query() (dl.Query, error) {
	q := dl.Query{
		CompanyID:        c.Company,
		Area:             c.Area,
		Search:           c.Search,
		IncludeCompleted: c.All,
		Compact:          c.Compact,
	}
	for _, s := range c.Status {
		status, err := dl.ParseStatus(s)
		if err != nil {
			return dl.Query{}, err
		}
		q.Statuses = append(q.Statuses, status)
	}
	return q, nil
}

func (c *DeadlineListCmd) Run(ctx *cli.Context) error {
	q, err := c.query()
	if err != nil {
		return err
	}
	engine, err := ctx.Engine()
	if err != nil {
		return err
	}

	all, err := engine.AllDeadlines()
	if err != nil {
		return fmt.Errorf("failed to get deadlines: %w", err)
	}

	today := engine.Today()
	page := dl.Paginate(dl.SortByUrgency(dl.Filter(all, today, q), today), c.Page, c.PageSize)
	if page.Total == 0 {
		fmt.Println("No deadlines found")
		return nil
	}

	classify := dl.Classify
	if c.Compact {
		classify = dl.ClassifyCompact
	}

	fmt.Printf("Deadlines (%d):\n", page.Total)
	for _, d := range page.Items {
		fmt.Println("  " + formatDeadline(d, today, classify, c.ShowIDs))
		if d.Note != "" {
			fmt.Printf("      %s\n", d.Note)
		}
	}
	if page.TotalPages > 1 {
		fmt.Printf("\nPage %d of %d\n", page.Page, page.TotalPages)
	}
	return nil
}

func formatDeadline(d models.Deadline, today time.Time, classify dl.Classifier, showID bool) string {
	idStr := ""
	if showID {
		idStr = fmt.Sprintf("#%d ", d.ID)
	}
	days := dl.DaysUntil(d.DueDate, today)
	when := fmt.Sprintf("in %d days", days)
	switch {
	case d.IsCompleted:
		when = "done"
	case days == 0:
		when = "today"
	case days < 0:
		when = fmt.Sprintf("%d days late", -days)
	}
	return fmt.Sprintf("[%s] %s%s  %s / %s - %s (%s)",
		dl.Label(d, today, classify), idStr, d.DueDate.In(today.Location()).Format(constants.DateFormat),
		d.Area, d.ObligationType, d.CompanyName, when)
}

type DeadlineSummaryCmd struct{}

func (c *DeadlineSummaryCmd) Run(ctx *cli.Context) error {
	engine, err := ctx.Engine()
	if err != nil {
		return err
	}
	summary, err := engine.Summary()
	if err != nil {
		return fmt.Errorf("failed to summarize deadlines: %w", err)
	}

	fmt.Printf("Deadlines as of %s:\n", engine.Today().Format(constants.DateFormat))
	fmt.Printf("  %-10s %d\n", dl.Overdue.String()+":", summary.Overdue)
	fmt.Printf("  %-10s %d\n", dl.DueSoon.String()+":", summary.DueSoon)
	fmt.Printf("  %-10s %d\n", dl.OnTrack.String()+":", summary.OnTrack)
	fmt.Printf("  %-10s %d\n", constants.CompletedLabel+":", summary.Completed)
	fmt.Printf("  %-10s %d\n", "Total:", summary.Total)
	fmt.Printf("Persistence: %s\n", persistenceMode(engine))
	return nil
}

func persistenceMode(engine *dl.Engine) string {
	if engine.Strict() {
		return "strict (storage failures are reported)"
	}
	return "advisory (storage failures are logged)"
}

type DeadlineDeleteCmd struct {
	ID int `arg:"" help:"Deadline id (only deadlines created at runtime can be deleted)."`
}

func (c *DeadlineDeleteCmd) Run(ctx *cli.Context) error {
	engine, err := ctx.Engine()
	if err != nil {
		return err
	}
	if err := engine.DeleteDeadline(c.ID); err != nil {
		if errors.Is(err, dl.ErrSeededDeadline) {
			return fmt.Errorf("deadline %d comes from the seed catalog and cannot be deleted", c.ID)
		}
		return fmt.Errorf("failed to delete deadline %d: %w", c.ID, err)
	}
	fmt.Printf("Deleted deadline %d\n", c.ID)
	return nil
}

package injuries

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/rokovi/internal/cli"
	"github.com/julianstephens/rokovi/internal/constants"
	"github.com/julianstephens/rokovi/internal/deadlines"
	"github.com/julianstephens/rokovi/internal/models"
	"github.com/julianstephens/rokovi/internal/utils"
)

type InjuryAddCmd struct {
	Company     string `short:"c" help:"Company id." required:""`
	Employee    string `short:"e" help:"Injured employee's name."`
	EmployeeID  string `help:"Registered employee id (name is taken from the registry)." name:"employee-id"`
	Date        string `short:"d" help:"Injury date and time (YYYY-MM-DD HH:MM); defaults to now."`
	Severity    string `short:"s" help:"Severity (minor|serious|fatal)." default:"minor"`
	Description string `help:"What happened."`
	Notified    string `help:"Inspection notification date and time, if already submitted."`
}

func (c *InjuryAddCmd) Validate() error {
	if c.Employee == "" && c.EmployeeID == "" {
		return fmt.Errorf("either --employee or --employee-id is required")
	}
	if _, err := models.ParseSeverity(c.Severity); err != nil {
		return err
	}
	return nil
}

func (c *InjuryAddCmd) Run(ctx *cli.Context) error {
	engine, err := ctx.Engine()
	if err != nil {
		return err
	}
	reg := ctx.Registry()
	loc := engine.Location()

	if _, err := reg.Companies.Get(c.Company); err != nil {
		return fmt.Errorf("unknown company %s: %w", c.Company, err)
	}

	injury := models.Injury{
		CompanyID:    c.Company,
		EmployeeID:   c.EmployeeID,
		EmployeeName: c.Employee,
		Description:  c.Description,
	}
	injury.Severity, _ = models.ParseSeverity(c.Severity)

	if c.EmployeeID != "" {
		emp, err := reg.Employees.Get(c.EmployeeID)
		if err != nil {
			return fmt.Errorf("unknown employee %s: %w", c.EmployeeID, err)
		}
		if emp.CompanyID != c.Company {
			return fmt.Errorf("employee %s does not belong to company %s", c.EmployeeID, c.Company)
		}
		injury.EmployeeName = emp.FullName()
	}

	injury.InjuryDate = ctx.Now().In(loc)
	if c.Date != "" {
		if injury.InjuryDate, err = utils.ParseDateTimeInLocation(c.Date, loc); err != nil {
			return fmt.Errorf("invalid injury date %q: %w", c.Date, err)
		}
	}
	if c.Notified != "" {
		notified, err := utils.ParseDateTimeInLocation(c.Notified, loc)
		if err != nil {
			return fmt.Errorf("invalid notification date %q: %w", c.Notified, err)
		}
		injury.InspectionNotificationDate = &notified
	}

	saved, err := ctx.SaveInjury(injury)
	if err != nil {
		return err
	}

	fmt.Printf("Recorded injury %d: %s (%s, %s)\n", saved.ID, saved.EmployeeName, saved.Severity, saved.InjuryDate.Format(constants.DateTimeFormat))
	if d, err := engine.InjuryDeadline(saved.ID); err == nil {
		fmt.Printf("  Inspection notification due: %s\n", d.DueDate.In(loc).Format(constants.DateTimeFormat))
	}
	return nil
}

type InjuryNotifyCmd struct {
	ID int    `arg:"" help:"Injury id."`
	At string `help:"When the inspectorate was notified (YYYY-MM-DD HH:MM); defaults to now."`
}

func (c *InjuryNotifyCmd) Run(ctx *cli.Context) error {
	engine, err := ctx.Engine()
	if err != nil {
		return err
	}

	injury, err := ctx.Registry().Injuries.Get(c.ID)
	if err != nil {
		return fmt.Errorf("failed to get injury %d: %w", c.ID, err)
	}
	if injury.InspectionNotificationDate != nil {
		return fmt.Errorf("injury %d was already reported on %s", c.ID, injury.InspectionNotificationDate.Format(constants.DateTimeFormat))
	}

	at := ctx.Now().In(engine.Location())
	if c.At != "" {
		if at, err = utils.ParseDateTimeInLocation(c.At, engine.Location()); err != nil {
			return fmt.Errorf("invalid notification date %q: %w", c.At, err)
		}
	}
	injury.InspectionNotificationDate = &at

	if _, err := ctx.SaveInjury(injury); err != nil {
		return err
	}
	fmt.Printf("Injury %d marked as reported to the inspectorate at %s\n", c.ID, at.Format(constants.DateTimeFormat))
	return nil
}

type InjuryListCmd struct {
	Company string `short:"c" help:"Only show injuries of this company."`
}

func (c *InjuryListCmd) Run(ctx *cli.Context) error {
	engine, err := ctx.Engine()
	if err != nil {
		return err
	}

	var injuries []models.Injury
	if c.Company != "" {
		injuries, err = ctx.Registry().Injuries.ListByCompany(c.Company)
	} else {
		injuries, err = ctx.Registry().Injuries.List()
	}
	if err != nil {
		return fmt.Errorf("failed to get injuries: %w", err)
	}
	if len(injuries) == 0 {
		fmt.Println("No injuries found")
		return nil
	}

	loc := engine.Location()
	today := engine.Today()
	fmt.Println("Injuries:")
	for _, inj := range injuries {
		fmt.Printf("  [%d] %s  %s (%s, company %s)\n",
			inj.ID, inj.InjuryDate.In(loc).Format(constants.DateTimeFormat), inj.EmployeeName, inj.Severity, inj.CompanyID)
		fmt.Printf("      Notification: %s\n", notificationStatus(engine, inj, today, loc))
	}
	return nil
}

func notificationStatus(engine *deadlines.Engine, inj models.Injury, today time.Time, loc *time.Location) string {
	if inj.InspectionNotificationDate != nil {
		return "submitted " + inj.InspectionNotificationDate.In(loc).Format(constants.DateTimeFormat)
	}
	d, err := engine.InjuryDeadline(inj.ID)
	if errors.Is(err, deadlines.ErrDeadlineNotFound) {
		return "pending (no deadline)"
	}
	if err != nil {
		return "pending"
	}
	return fmt.Sprintf("pending, due %s (%s)", d.DueDate.In(loc).Format(constants.DateTimeFormat), deadlines.Label(d, today, deadlines.Classify))
}

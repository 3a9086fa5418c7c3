package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/rokovi/internal/constants"
	"github.com/julianstephens/rokovi/internal/models"
	"github.com/julianstephens/rokovi/internal/utils"
)

func newInjuryForm(fm *InjuryFormModel, companies []models.Company, loc *time.Location) *huh.Form {
	options := make([]huh.Option[string], len(companies))
	for i, c := range companies {
		options[i] = huh.NewOption(fmt.Sprintf("%s (%s)", c.Name, c.ID), c.ID)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Company").
				Options(options...).
				Value(&fm.CompanyID),
			huh.NewInput().
				Title("Employee").
				Value(&fm.EmployeeName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("employee name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Date (YYYY-MM-DD HH:MM)").
				Value(&fm.Date).
				Validate(func(s string) error {
					_, err := utils.ParseDateTimeInLocation(s, loc)
					return err
				}),
			huh.NewSelect[string]().
				Title("Severity").
				Options(
					huh.NewOption("Minor", string(models.SeverityMinor)),
					huh.NewOption("Serious", string(models.SeveritySerious)),
					huh.NewOption("Fatal", string(models.SeverityFatal)),
				).
				Value(&fm.Severity),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
		),
	)
}

// startInjuryForm opens the add-injury form, or reports why it cannot.
func (m *Model) startInjuryForm() error {
	companies, err := m.ctx.Registry().Companies.List()
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}
	if len(companies) == 0 {
		return fmt.Errorf("register a company first")
	}

	loc := m.engine.Location()
	m.injuryForm = &InjuryFormModel{
		CompanyID: companies[0].ID,
		Date:      m.ctx.Now().In(loc).Format(constants.DateTimeFormat),
		Severity:  string(models.SeverityMinor),
	}
	m.form = newInjuryForm(m.injuryForm, companies, loc)
	m.state = StateAddInjury
	return nil
}

// saveInjuryForm records the injury described by the form.
func (m *Model) saveInjuryForm() (models.Injury, error) {
	fm := m.injuryForm
	if fm == nil {
		return models.Injury{}, fmt.Errorf("no injury form open")
	}

	date, err := utils.ParseDateTimeInLocation(fm.Date, m.engine.Location())
	if err != nil {
		return models.Injury{}, fmt.Errorf("invalid injury date %q: %w", fm.Date, err)
	}
	severity, err := models.ParseSeverity(fm.Severity)
	if err != nil {
		return models.Injury{}, err
	}

	return m.ctx.SaveInjury(models.Injury{
		CompanyID:    fm.CompanyID,
		EmployeeName: strings.TrimSpace(fm.EmployeeName),
		InjuryDate:   date,
		Severity:     severity,
		Description:  strings.TrimSpace(fm.Description),
	})
}

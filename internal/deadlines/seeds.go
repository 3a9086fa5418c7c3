package deadlines

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/rokovi/internal/models"
	"github.com/julianstephens/rokovi/internal/utils"
)

// maxSeedsPerCompany keeps seeded ids inside the company's block of 100.
const maxSeedsPerCompany = 100

// Seed is a deadline template with a due date relative to today.
type Seed struct {
	Area           string `yaml:"area"`
	ObligationType string `yaml:"obligation_type"`
	Note           string `yaml:"note"`
	DueInDays      int    `yaml:"due_in_days"`
}

// Catalog holds the shared seed list and per-company overrides keyed by
// company id.
type Catalog struct {
	Generic   []Seed            `yaml:"generic"`
	Companies map[string][]Seed `yaml:"companies"`
}

// SeedsFor returns the company-specific list when one exists, otherwise the
// generic list.
func (c Catalog) SeedsFor(companyID string) []Seed {
	if seeds, ok := c.Companies[companyID]; ok {
		return seeds
	}
	return c.Generic
}

func (c Catalog) Validate() error {
	if err := validateSeeds("generic", c.Generic); err != nil {
		return err
	}
	for id, seeds := range c.Companies {
		if err := validateSeeds("company "+id, seeds); err != nil {
			return err
		}
	}
	return nil
}

func validateSeeds(list string, seeds []Seed) error {
	if len(seeds) > maxSeedsPerCompany {
		return fmt.Errorf("%s: %d seeds exceeds the limit of %d", list, len(seeds), maxSeedsPerCompany)
	}
	for i, s := range seeds {
		if strings.TrimSpace(s.Area) == "" {
			return fmt.Errorf("%s: seed %d: area cannot be empty", list, i+1)
		}
		if strings.TrimSpace(s.ObligationType) == "" {
			return fmt.Errorf("%s: seed %d: obligation_type cannot be empty", list, i+1)
		}
	}
	return nil
}

// SeedDeadlines materializes the company's seed list for the calendar day of
// today. Output depends only on catalog, company and today's date, so two
// calls on the same day return identical deadlines.
func SeedDeadlines(catalog Catalog, company models.Company, today time.Time) []models.Deadline {
	seeds := catalog.SeedsFor(company.ID)
	base := company.NumericID() * 100
	midnight := utils.Midnight(today)

	out := make([]models.Deadline, 0, len(seeds))
	for i, s := range seeds {
		out = append(out, models.Deadline{
			ID:             base + i + 1,
			Area:           s.Area,
			ObligationType: s.ObligationType,
			DueDate:        midnight.AddDate(0, 0, s.DueInDays),
			Note:           s.Note,
			CompanyID:      company.ID,
			CompanyName:    company.Name,
			Seeded:         true,
		})
	}
	return out
}

// DefaultCatalog is the built-in catalog used when no seed file is configured.
func DefaultCatalog() Catalog {
	return Catalog{
		Generic: []Seed{
			{Area: "Occupational Safety", ObligationType: "Risk assessment act review", Note: "Review after any change in work processes", DueInDays: 30},
			{Area: "Medical Checkups", ObligationType: "Periodic medical examinations", Note: "Employees at high-risk workplaces", DueInDays: 2},
			{Area: "Fire Protection", ObligationType: "Fire extinguisher inspection", Note: "Semi-annual service by a licensed contractor", DueInDays: 10},
			{Area: "Training", ObligationType: "Safety and health at work training", Note: "Repeat training for all employees", DueInDays: 45},
			{Area: "Work Equipment", ObligationType: "Work equipment inspection and testing", Note: "Lifting equipment and pressure vessels", DueInDays: 7},
			{Area: "Electrical Installations", ObligationType: "Electrical installation testing", Note: "Insulation resistance and grounding measurements", DueInDays: 60},
		},
		Companies: map[string][]Seed{
			"1": {
				{Area: "Occupational Safety", ObligationType: "Working environment testing", Note: "Lighting, noise and microclimate", DueInDays: -2},
				{Area: "Medical Checkups", ObligationType: "Preliminary medical examination", Note: "New hires in the warehouse", DueInDays: 1},
				{Area: "Fire Protection", ObligationType: "Hydrant network inspection", Note: "Annual pressure test", DueInDays: 12},
				{Area: "Training", ObligationType: "First aid training", Note: "At least one trained employee per shift", DueInDays: 25},
			},
			"2": {
				{Area: "Work Equipment", ObligationType: "Forklift periodic inspection", Note: "Three forklifts in distribution centre", DueInDays: 3},
				{Area: "Occupational Safety", ObligationType: "Personal protective equipment replacement", Note: "Safety footwear and gloves", DueInDays: 20},
				{Area: "Electrical Installations", ObligationType: "Lightning protection inspection", Note: "", DueInDays: 90},
			},
		},
	}
}

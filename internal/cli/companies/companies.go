package companies

import (
	"fmt"

	"github.com/julianstephens/rokovi/internal/cli"
	"github.com/julianstephens/rokovi/internal/models"
)

type CompanyAddCmd struct {
	ID   string `arg:"" help:"Company id (numeric ids 0-99 get company-specific seed deadlines)."`
	Name string `arg:"" help:"Company name."`
}

func (c *CompanyAddCmd) Run(ctx *cli.Context) error {
	company := models.Company{ID: c.ID, Name: c.Name}
	if err := ctx.Registry().Companies.Add(company); err != nil {
		return fmt.Errorf("failed to add company: %w", err)
	}
	fmt.Printf("Added company: %s (ID: %s)\n", c.Name, c.ID)
	return nil
}

type CompanyListCmd struct{}

func (c *CompanyListCmd) Run(ctx *cli.Context) error {
	companies, err := ctx.Registry().Companies.List()
	if err != nil {
		return fmt.Errorf("failed to get companies: %w", err)
	}
	if len(companies) == 0 {
		fmt.Println("No companies found")
		return nil
	}

	fmt.Println("Companies:")
	for _, company := range companies {
		fmt.Printf("  [%s] %s\n", company.ID, company.Name)
	}
	return nil
}

type CompanyDeleteCmd struct {
	ID string `arg:"" help:"Company id."`
}

func (c *CompanyDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Registry().Companies.Delete(c.ID); err != nil {
		return fmt.Errorf("failed to delete company %s: %w", c.ID, err)
	}
	fmt.Printf("Deleted company %s\n", c.ID)
	return nil
}

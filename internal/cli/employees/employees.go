package employees

import (
	"fmt"

	"github.com/julianstephens/rokovi/internal/cli"
	"github.com/julianstephens/rokovi/internal/models"
)

type EmployeeAddCmd struct {
	Company   string `short:"c" help:"Company id." required:""`
	FirstName string `arg:"" help:"First name."`
	LastName  string `arg:"" help:"Last name."`
	Position  string `short:"p" help:"Job position."`
}

func (c *EmployeeAddCmd) Run(ctx *cli.Context) error {
	reg := ctx.Registry()
	if _, err := reg.Companies.Get(c.Company); err != nil {
		return fmt.Errorf("unknown company %s: %w", c.Company, err)
	}

	emp, err := reg.Employees.Add(models.Employee{
		CompanyID: c.Company,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Position:  c.Position,
		CreatedAt: ctx.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to add employee: %w", err)
	}

	fmt.Printf("Added employee: %s (ID: %s)\n", emp.FullName(), emp.ID)
	return nil
}

type EmployeeListCmd struct {
	Company string `short:"c" help:"Company id." required:""`
}

func (c *EmployeeListCmd) Run(ctx *cli.Context) error {
	employees, err := ctx.Registry().Employees.ListByCompany(c.Company)
	if err != nil {
		return fmt.Errorf("failed to get employees: %w", err)
	}
	if len(employees) == 0 {
		fmt.Println("No employees found")
		return nil
	}

	fmt.Printf("Employees of company %s:\n", c.Company)
	for _, emp := range employees {
		position := ""
		if emp.Position != "" {
			position = " - " + emp.Position
		}
		fmt.Printf("  %s%s (ID: %s)\n", emp.FullName(), position, emp.ID)
	}
	return nil
}

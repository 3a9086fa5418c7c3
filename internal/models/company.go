package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/rokovi/internal/constants"
)

// Company is a client company whose obligations are tracked.
type Company struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c *Company) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("company id cannot be empty")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("company name cannot be empty")
	}
	if n, err := strconv.Atoi(strings.TrimSpace(c.ID)); err == nil && (n < 0 || n > constants.MaxNumericCompanyID) {
		return fmt.Errorf("numeric company id %d out of range 0-%d", n, constants.MaxNumericCompanyID)
	}
	return nil
}

// NumericID returns the company id as an integer, or 0 when it is not numeric.
func (c Company) NumericID() int {
	n, err := strconv.Atoi(strings.TrimSpace(c.ID))
	if err != nil {
		return 0
	}
	return n
}

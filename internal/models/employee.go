package models

import (
	"fmt"
	"strings"
	"time"
)

// Employee belongs to exactly one company.
type Employee struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Position  string    `json:"position,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (e *Employee) Validate() error {
	if strings.TrimSpace(e.CompanyID) == "" {
		return fmt.Errorf("employee company cannot be empty")
	}
	if strings.TrimSpace(e.FirstName) == "" && strings.TrimSpace(e.LastName) == "" {
		return fmt.Errorf("employee name cannot be empty")
	}
	return nil
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

package models

import (
	"fmt"
	"strings"
	"time"
)

type Severity string

const (
	SeverityMinor   Severity = "minor"
	SeveritySerious Severity = "serious"
	SeverityFatal   Severity = "fatal"
)

// Injury records a workplace injury. InspectionNotificationDate stays nil until
// the labour inspectorate has been notified.
type Injury struct {
	ID                         int        `json:"id"`
	CompanyID                  string     `json:"company_id"`
	EmployeeID                 string     `json:"employee_id,omitempty"`
	EmployeeName               string     `json:"employee_name"`
	InjuryDate                 time.Time  `json:"injury_date"`
	Severity                   Severity   `json:"severity"`
	Description                string     `json:"description,omitempty"`
	InspectionNotificationDate *time.Time `json:"inspection_notification_date,omitempty"`
}

func (i *Injury) Validate() error {
	if strings.TrimSpace(i.CompanyID) == "" {
		return fmt.Errorf("injury company cannot be empty")
	}
	if strings.TrimSpace(i.EmployeeName) == "" {
		return fmt.Errorf("injury employee name cannot be empty")
	}
	switch i.Severity {
	case SeverityMinor, SeveritySerious, SeverityFatal:
	default:
		return fmt.Errorf("invalid severity %q (must be minor, serious, or fatal)", i.Severity)
	}
	if i.InspectionNotificationDate != nil && !i.InjuryDate.IsZero() && i.InspectionNotificationDate.Before(i.InjuryDate) {
		return fmt.Errorf("inspection notification cannot precede the injury")
	}
	return nil
}

// AwaitingNotification reports whether the injury has a date but the
// inspectorate has not been notified yet.
func (i Injury) AwaitingNotification() bool {
	return !i.InjuryDate.IsZero() && i.InspectionNotificationDate == nil
}

// ParseSeverity accepts the canonical names case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	switch sev {
	case SeverityMinor, SeveritySerious, SeverityFatal:
		return sev, nil
	}
	return "", fmt.Errorf("invalid severity %q (must be minor, serious, or fatal)", s)
}

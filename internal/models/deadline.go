package models

import "time"

// Deadline is a single regulatory or operational due date ("rok") for a company.
// Its urgency status is derived from DueDate and never stored.
type Deadline struct {
	ID             int        `json:"id"`
	Area           string     `json:"area"`
	ObligationType string     `json:"obligationType"`
	DueDate        time.Time  `json:"dueDate"`
	Note           string     `json:"note"`
	CompanyID      string     `json:"companyId"`
	CompanyName    string     `json:"companyName"`
	InjuryID       *int       `json:"injuryId,omitempty"`
	IsCompleted    bool       `json:"isCompleted"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`

	// Seeded marks deadlines materialized from a seed template. Never stored.
	Seeded bool `json:"-"`
}

// IsDynamic reports whether the deadline was created at runtime and persisted,
// as opposed to materialized from a seed template.
func (d Deadline) IsDynamic() bool {
	return !d.Seeded
}

// ForInjury reports whether the deadline was spawned by the given injury.
func (d Deadline) ForInjury(injuryID int) bool {
	return d.InjuryID != nil && *d.InjuryID == injuryID
}

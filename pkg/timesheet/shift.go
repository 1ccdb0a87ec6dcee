package timesheet

import (
	"math"
	"strings"
	"time"
)

// Shift is one parsed row of a timesheet export.
type Shift struct {
	Name  string
	Email string
	Date  time.Time
	// Hours is the scheduled duration of the shift, never negative.
	Hours float64
	// Timezone is the employee timezone reported by the export, if any.
	Timezone  string
	ShiftName string
	// Line is the source line (CSV) or row (XLSX) the shift was read from, 0 when built in code.
	Line int
}

// PersonKey identifies a person within a run. Name and email together form the key.
type PersonKey struct {
	Name  string
	Email string
}

func (s Shift) Person() PersonKey {
	return PersonKey{Name: s.Name, Email: s.Email}
}

// Validate checks the constraints the loader enforces, for shifts built by hand.
func (s Shift) Validate() []RejectedRecord {
	var rejected []RejectedRecord
	if strings.TrimSpace(s.Name) == "" {
		rejected = append(rejected, RejectedRecord{Line: s.Line, Column: "name", Reason: "missing name"})
	}
	if strings.TrimSpace(s.Email) == "" {
		rejected = append(rejected, RejectedRecord{Line: s.Line, Column: "email", Reason: "missing email"})
	}
	if s.Date.IsZero() {
		rejected = append(rejected, RejectedRecord{Line: s.Line, Column: "date", Reason: "missing date"})
	}
	if math.IsNaN(s.Hours) || math.IsInf(s.Hours, 0) {
		rejected = append(rejected, RejectedRecord{Line: s.Line, Column: "hours", Reason: "not a finite number"})
	} else if s.Hours < 0 {
		rejected = append(rejected, RejectedRecord{Line: s.Line, Column: "hours", Reason: "negative hours"})
	}
	return rejected
}

// ValidateAll returns a *ValidationError listing every invalid shift, or nil.
func ValidateAll(shifts []Shift) error {
	var rejected []RejectedRecord
	for _, s := range shifts {
		rejected = append(rejected, s.Validate()...)
	}
	if len(rejected) > 0 {
		return &ValidationError{Rejected: rejected}
	}
	return nil
}

package timesheet

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMissingColumns = errors.New("missing required columns")
var ErrInvalidRecord = errors.New("invalid timesheet record")
var ErrUnsupportedFormat = errors.New("unsupported timesheet format")

// maxListed caps how many rejected records are spelled out in an error message.
const maxListed = 5

type MissingColumnsError struct {
	Missing []string
	Found   []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%v: %s (found: %s)", ErrMissingColumns, strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

func (e *MissingColumnsError) Unwrap() error {
	return ErrMissingColumns
}

// RejectedRecord describes one input record that failed validation.
type RejectedRecord struct {
	Line   int    `json:"line"`
	Column string `json:"column"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

func (r RejectedRecord) String() string {
	if r.Value == "" {
		return fmt.Sprintf("line %d: %s: %s", r.Line, r.Column, r.Reason)
	}
	return fmt.Sprintf("line %d: %s %q: %s", r.Line, r.Column, r.Value, r.Reason)
}

type ValidationError struct {
	Rejected []RejectedRecord
}

func (e *ValidationError) Error() string {
	listed := make([]string, 0, maxListed)
	for i, r := range e.Rejected {
		if i == maxListed {
			listed = append(listed, fmt.Sprintf("and %d more", len(e.Rejected)-maxListed))
			break
		}
		listed = append(listed, r.String())
	}
	return fmt.Sprintf("%v: %d rejected: %s", ErrInvalidRecord, len(e.Rejected), strings.Join(listed, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRecord
}

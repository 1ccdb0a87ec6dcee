package contract

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrInvalidContractedHours = errors.New("contracted hours must be a positive number")
var ErrInvalidContractedDays = errors.New("contracted days must be between 1 and 7")
var ErrTeamNotFound = errors.New("team not found")

const DefaultContractedDays = 5

type Team struct {
	Name string
	// ContractedHours is the weekly threshold applied to everyone in the team unless overridden.
	ContractedHours float64
	// ContractedDays is the number of working days in a week; days worked beyond it are extra days.
	ContractedDays int
	// ShiftHours is the standard shift length of the team.
	ShiftHours float64
}

type Override struct {
	// Email identifies the person the override applies to.
	Email string
	// WeeklyHours replaces the run's contracted hours for this person.
	WeeklyHours float64
	// Notes provide additional information or comments about the override.
	Notes string
}

// Policy decides the contracted hours in effect for a person.
type Policy interface {
	ContractedHours(email string) float64
	ContractedDays() int
}

type StaticPolicy struct {
	defaultHours float64
	days         int
	overrides    map[string]Override
}

// NewPolicy builds a Policy that consults overrides (by email) before falling back to defaultHours.
func NewPolicy(defaultHours float64, contractedDays int, overrides []Override) (*StaticPolicy, error) {
	if !validHours(defaultHours) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContractedHours, defaultHours)
	}
	if contractedDays == 0 {
		contractedDays = DefaultContractedDays
	}
	if contractedDays < 1 || contractedDays > 7 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidContractedDays, contractedDays)
	}

	byEmail := make(map[string]Override, len(overrides))
	for _, o := range overrides {
		key := normalizeEmail(o.Email)
		if key == "" {
			return nil, fmt.Errorf("override without email")
		}
		if !validHours(o.WeeklyHours) {
			return nil, fmt.Errorf("override for %s: %w: %v", o.Email, ErrInvalidContractedHours, o.WeeklyHours)
		}
		byEmail[key] = o
	}

	return &StaticPolicy{defaultHours: defaultHours, days: contractedDays, overrides: byEmail}, nil
}

func (p *StaticPolicy) ContractedHours(email string) float64 {
	if o, ok := p.overrides[normalizeEmail(email)]; ok {
		return o.WeeklyHours
	}
	return p.defaultHours
}

func (p *StaticPolicy) ContractedDays() int {
	return p.days
}

// Override returns the override registered for email, if any.
func (p *StaticPolicy) Override(email string) (Override, bool) {
	o, ok := p.overrides[normalizeEmail(email)]
	return o, ok
}

func validHours(h float64) bool {
	return h > 0 && !math.IsInf(h, 0) && !math.IsNaN(h)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package overtime

import (
	"fmt"
	"time"

	"github.com/klokku/overtime/pkg/timesheet"
)

// WeeklyRow is one person-week bucket compared against the contracted hours in effect.
type WeeklyRow struct {
	Team            string
	Name            string
	Email           string
	WeekStart       time.Time
	Week            string
	TotalHours      float64
	ContractedHours float64
	// OvertimeHours is TotalHours above ContractedHours, never negative.
	OvertimeHours float64
	HasOvertime   bool
	// DaysWorked counts distinct calendar days with at least one shift.
	DaysWorked int
	// ExtraDays counts days worked beyond the contracted days per week.
	ExtraDays int
	// ExtraDayHours is the hours worked on those extra days. The contracted days are the
	// earliest ones of the week.
	ExtraDayHours    float64
	BankHolidayHours float64
	// ShiftDays is TotalHours in units of the team shift length, zero when no shift length is set.
	ShiftDays float64
}

// PeriodRow aggregates all weekly rows of one person across the whole input.
type PeriodRow struct {
	Team             string
	Name             string
	Email            string
	Weeks            int
	TotalHours       float64
	TotalContracted  float64
	TotalOvertime    float64
	DaysWorked       int
	ExtraDays        int
	ExtraDayHours    float64
	BankHolidayHours float64
	ShiftDays        float64
}

type DayType string

const (
	DayTypeOvertime    DayType = "Overtime"
	DayTypeBankHoliday DayType = "Bank holiday"
)

// GranularRow is one shift worked on an extra day or a bank holiday. A bank holiday wins
// when a shift is both.
type GranularRow struct {
	Team      string
	Name      string
	Email     string
	Date      time.Time
	Week      string
	DayType   DayType
	ShiftName string
	Hours     float64
	ShiftDays float64
}

// TeamSummary rolls the period rows of one team up. Only teams with overtime or
// bank-holiday hours are listed.
type TeamSummary struct {
	Team                  string
	People                int
	PeopleWithOvertime    int
	PeopleWithBankHoliday int
	OvertimeHours         float64
	ExtraDayHours         float64
	BankHolidayHours      float64
}

type Metrics struct {
	TotalShifts        int
	PersonWeeks        int
	People             int
	PeopleWithOvertime int
	TotalHours         float64
	TotalOvertimeHours float64
	ExtraDayHours      float64
	BankHolidayHours   float64
	RejectedRecords    int
}

// DateRange spans the earliest and latest shift dates of the input. Zero for an empty input.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Label returns a friendly description of the period, e.g. "from 2025-01-06 to 2025-01-19".
func (r DateRange) Label() string {
	if r.IsZero() {
		return "with no shifts"
	}
	start := r.Start.Format(time.DateOnly)
	end := r.End.Format(time.DateOnly)
	if start == end {
		return "on " + start
	}
	return fmt.Sprintf("from %s to %s", start, end)
}

type Report struct {
	RunID           string
	GeneratedAt     time.Time
	Team            string
	ContractedHours float64
	WeekFirstDay    time.Weekday
	Range           DateRange
	Weekly          []WeeklyRow
	Period          []PeriodRow
	Granular        []GranularRow
	Teams           []TeamSummary
	Metrics         Metrics
	// Rejected lists records skipped in lenient mode.
	Rejected []timesheet.RejectedRecord
}

func (r Report) HasOvertime() bool {
	return r.Metrics.TotalOvertimeHours > 0
}

// PeopleWithOvertime returns the period rows with overtime, in report order.
func (r Report) PeopleWithOvertime() []PeriodRow {
	var rows []PeriodRow
	for _, p := range r.Period {
		if p.TotalOvertime > 0 {
			rows = append(rows, p)
		}
	}
	return rows
}

// Message is the notification handed to the people/payroll team.
type Message struct {
	Subject     string
	Body        string
	HasOvertime bool
}

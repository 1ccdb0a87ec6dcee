package overtime

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/klokku/overtime/pkg/contract"
	"github.com/klokku/overtime/pkg/holiday"
	"github.com/klokku/overtime/pkg/timesheet"
	"github.com/klokku/overtime/pkg/week"
	log "github.com/sirupsen/logrus"
)

type Options struct {
	Team         string
	WeekFirstDay time.Weekday
	// Holidays is optional; nil disables bank-holiday hours.
	Holidays *holiday.Calendar
	// ShiftHours converts hours into shift days. Zero leaves ShiftDays unset.
	ShiftHours float64
}

type bucketKey struct {
	person    timesheet.PersonKey
	weekStart int64
}

type bucket struct {
	row WeeklyRow
	// shifts are in date order
	shifts []bucketShift
}

type bucketShift struct {
	shift       timesheet.Shift
	day         time.Time
	bankHoliday bool
}

// extraDays returns the distinct days beyond the first contractedDays of the bucket.
func (b *bucket) extraDays(contractedDays int) (days int, extra map[int64]bool) {
	extra = make(map[int64]bool)
	var last time.Time
	for _, s := range b.shifts {
		if s.day.Equal(last) {
			continue
		}
		last = s.day
		days++
		if days > contractedDays {
			extra[s.day.Unix()] = true
		}
	}
	return days, extra
}

// Aggregate buckets shifts by person and week, applies the contracted hours of policy and
// rolls the weeks up per person. Shifts are expected to be valid (see timesheet.ValidateAll).
func Aggregate(shifts []timesheet.Shift, policy contract.Policy, opts Options) Report {
	report := Report{
		Team:         opts.Team,
		WeekFirstDay: opts.WeekFirstDay,
		Weekly:       []WeeklyRow{},
		Period:       []PeriodRow{},
		Granular:     []GranularRow{},
		Teams:        []TeamSummary{},
	}
	report.Metrics.TotalShifts = len(shifts)
	if len(shifts) == 0 {
		return report
	}

	// summation order must not depend on input order
	ordered := slices.Clone(shifts)
	slices.SortFunc(ordered, func(a, b timesheet.Shift) int {
		return cmp.Or(
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.Email, b.Email),
			a.Date.Compare(b.Date),
			cmp.Compare(a.Hours, b.Hours),
		)
	})

	buckets := make(map[bucketKey]*bucket)
	for _, s := range ordered {
		weekStart := week.Start(s.Date, opts.WeekFirstDay)
		key := bucketKey{person: s.Person(), weekStart: weekStart.Unix()}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{
				row: WeeklyRow{
					Team:      opts.Team,
					Name:      s.Name,
					Email:     s.Email,
					WeekStart: weekStart,
					Week:      week.NumberFromDate(s.Date, opts.WeekFirstDay).String(),
				},
			}
			buckets[key] = b
		}
		b.row.TotalHours += s.Hours
		day := calendarDay(s.Date)
		bankHoliday := opts.Holidays.IsHoliday(s.Date, s.Timezone)
		if bankHoliday {
			b.row.BankHolidayHours += s.Hours
		}
		b.shifts = append(b.shifts, bucketShift{shift: s, day: day, bankHoliday: bankHoliday})
		report.Range = extend(report.Range, day)
	}

	weekly := make([]WeeklyRow, 0, len(buckets))
	granular := make([]GranularRow, 0)
	for _, b := range buckets {
		row := b.row
		days, extra := b.extraDays(policy.ContractedDays())
		for _, s := range b.shifts {
			isExtra := extra[s.day.Unix()]
			if isExtra {
				row.ExtraDayHours += s.shift.Hours
			}
			if isExtra || s.bankHoliday {
				granular = append(granular, granularRow(row, s, opts.ShiftHours))
			}
		}
		row.TotalHours = roundHours(row.TotalHours)
		row.BankHolidayHours = roundHours(row.BankHolidayHours)
		row.ExtraDayHours = roundHours(row.ExtraDayHours)
		row.ContractedHours = policy.ContractedHours(row.Email)
		row.OvertimeHours = roundHours(math.Max(0, row.TotalHours-row.ContractedHours))
		row.HasOvertime = row.OvertimeHours > 0
		row.DaysWorked = days
		row.ExtraDays = len(extra)
		row.ShiftDays = shiftDays(row.TotalHours, opts.ShiftHours)
		weekly = append(weekly, row)
	}
	slices.SortFunc(weekly, func(a, b WeeklyRow) int {
		return cmp.Or(
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.Email, b.Email),
			a.WeekStart.Compare(b.WeekStart),
		)
	})
	slices.SortFunc(granular, func(a, b GranularRow) int {
		return cmp.Or(
			cmp.Compare(a.Team, b.Team),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.Email, b.Email),
			a.Date.Compare(b.Date),
			cmp.Compare(a.ShiftName, b.ShiftName),
			cmp.Compare(a.Hours, b.Hours),
		)
	})

	report.Weekly = weekly
	report.Period = rollUp(weekly, opts.ShiftHours)
	report.Granular = granular
	report.Teams = summariseTeams(report.Period)
	report.Metrics = metrics(len(shifts), weekly, report.Period)
	log.Debugf("Aggregated %d shifts into %d person-weeks for %d people, %d extra-day or bank-holiday shifts",
		len(shifts), len(weekly), len(report.Period), len(granular))
	return report
}

func granularRow(w WeeklyRow, s bucketShift, shiftHours float64) GranularRow {
	dayType := DayTypeOvertime
	if s.bankHoliday {
		dayType = DayTypeBankHoliday
	}
	return GranularRow{
		Team:      w.Team,
		Name:      w.Name,
		Email:     w.Email,
		Date:      s.day,
		Week:      w.Week,
		DayType:   dayType,
		ShiftName: s.shift.ShiftName,
		Hours:     s.shift.Hours,
		ShiftDays: shiftDays(s.shift.Hours, shiftHours),
	}
}

// summariseTeams expects period rows grouped by team.
func summariseTeams(period []PeriodRow) []TeamSummary {
	teams := make([]TeamSummary, 0)
	for _, p := range period {
		n := len(teams)
		if n == 0 || teams[n-1].Team != p.Team {
			teams = append(teams, TeamSummary{Team: p.Team})
			n++
		}
		t := &teams[n-1]
		t.People++
		t.OvertimeHours += p.TotalOvertime
		t.ExtraDayHours += p.ExtraDayHours
		t.BankHolidayHours += p.BankHolidayHours
		if p.TotalOvertime > 0 {
			t.PeopleWithOvertime++
		}
		if p.BankHolidayHours > 0 {
			t.PeopleWithBankHoliday++
		}
	}
	return slices.DeleteFunc(teams, func(t TeamSummary) bool {
		return t.OvertimeHours == 0 && t.ExtraDayHours == 0 && t.BankHolidayHours == 0
	})
}

// rollUp expects weekly rows sorted by person.
func rollUp(weekly []WeeklyRow, shiftHours float64) []PeriodRow {
	period := make([]PeriodRow, 0)
	for _, w := range weekly {
		n := len(period)
		if n == 0 || period[n-1].Name != w.Name || period[n-1].Email != w.Email {
			period = append(period, PeriodRow{Team: w.Team, Name: w.Name, Email: w.Email})
			n++
		}
		p := &period[n-1]
		p.Weeks++
		p.TotalHours += w.TotalHours
		p.TotalContracted += w.ContractedHours
		p.TotalOvertime += w.OvertimeHours
		p.DaysWorked += w.DaysWorked
		p.ExtraDays += w.ExtraDays
		p.ExtraDayHours += w.ExtraDayHours
		p.BankHolidayHours += w.BankHolidayHours
	}
	for i := range period {
		period[i].TotalHours = roundHours(period[i].TotalHours)
		period[i].TotalContracted = roundHours(period[i].TotalContracted)
		period[i].TotalOvertime = roundHours(period[i].TotalOvertime)
		period[i].ExtraDayHours = roundHours(period[i].ExtraDayHours)
		period[i].BankHolidayHours = roundHours(period[i].BankHolidayHours)
		period[i].ShiftDays = shiftDays(period[i].TotalHours, shiftHours)
	}
	return period
}

func metrics(shifts int, weekly []WeeklyRow, period []PeriodRow) Metrics {
	m := Metrics{
		TotalShifts: shifts,
		PersonWeeks: len(weekly),
		People:      len(period),
	}
	for _, p := range period {
		m.TotalHours += p.TotalHours
		m.TotalOvertimeHours += p.TotalOvertime
		m.ExtraDayHours += p.ExtraDayHours
		m.BankHolidayHours += p.BankHolidayHours
		if p.TotalOvertime > 0 {
			m.PeopleWithOvertime++
		}
	}
	m.TotalHours = roundHours(m.TotalHours)
	m.TotalOvertimeHours = roundHours(m.TotalOvertimeHours)
	m.ExtraDayHours = roundHours(m.ExtraDayHours)
	m.BankHolidayHours = roundHours(m.BankHolidayHours)
	return m
}

func extend(r DateRange, day time.Time) DateRange {
	if r.IsZero() {
		return DateRange{Start: day, End: day}
	}
	if day.Before(r.Start) {
		r.Start = day
	}
	if day.After(r.End) {
		r.End = day
	}
	return r
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func shiftDays(hours, shiftHours float64) float64 {
	if shiftHours <= 0 {
		return 0
	}
	return roundHours(hours / shiftHours)
}

// roundHours drops binary floating point noise below a micro-hour.
func roundHours(h float64) float64 {
	return math.Round(h*1e6) / 1e6
}

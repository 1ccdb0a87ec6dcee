package report

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/klokku/overtime/pkg/overtime"
	log "github.com/sirupsen/logrus"
)

var WeeklyHeader = []string{
	"team", "full_name", "email", "week_start", "week",
	"total_hours", "contracted_hours", "overtime_hours", "has_overtime",
	"days_worked", "extra_days", "extra_day_hours", "bank_holiday_hours", "shift_days",
}

var PeriodHeader = []string{
	"team", "full_name", "email", "weeks",
	"total_hours", "total_contracted", "total_overtime",
	"days_worked", "extra_days", "extra_day_hours", "bank_holiday_hours", "shift_days",
}

var GranularHeader = []string{
	"team", "full_name", "email", "date", "week", "day_type", "shift_name", "scheduled_hours", "shift_days",
}

var TeamsHeader = []string{
	"team", "people", "people_with_overtime", "people_with_bank_holiday",
	"total_overtime_hours", "total_extra_day_hours", "total_bank_holiday_hours",
}

type CsvRendererImpl struct {
}

func NewCsvRenderer() *CsvRendererImpl {
	return &CsvRendererImpl{}
}

func (r *CsvRendererImpl) RenderWeekly(rows []overtime.WeeklyRow) (string, error) {
	data := make([][]string, 0, len(rows)+1)
	data = append(data, WeeklyHeader)
	for _, w := range rows {
		data = append(data, []string{
			w.Team,
			w.Name,
			w.Email,
			w.WeekStart.Format(time.DateOnly),
			w.Week,
			hoursToString(w.TotalHours),
			hoursToString(w.ContractedHours),
			hoursToString(w.OvertimeHours),
			strconv.FormatBool(w.HasOvertime),
			strconv.Itoa(w.DaysWorked),
			strconv.Itoa(w.ExtraDays),
			hoursToString(w.ExtraDayHours),
			hoursToString(w.BankHolidayHours),
			hoursToString(w.ShiftDays),
		})
	}
	return write(data)
}

func (r *CsvRendererImpl) RenderPeriod(rows []overtime.PeriodRow) (string, error) {
	data := make([][]string, 0, len(rows)+1)
	data = append(data, PeriodHeader)
	for _, p := range rows {
		data = append(data, []string{
			p.Team,
			p.Name,
			p.Email,
			strconv.Itoa(p.Weeks),
			hoursToString(p.TotalHours),
			hoursToString(p.TotalContracted),
			hoursToString(p.TotalOvertime),
			strconv.Itoa(p.DaysWorked),
			strconv.Itoa(p.ExtraDays),
			hoursToString(p.ExtraDayHours),
			hoursToString(p.BankHolidayHours),
			hoursToString(p.ShiftDays),
		})
	}
	return write(data)
}

// RenderGranular writes one row per extra-day or bank-holiday shift.
func (r *CsvRendererImpl) RenderGranular(rows []overtime.GranularRow) (string, error) {
	data := make([][]string, 0, len(rows)+1)
	data = append(data, GranularHeader)
	for _, g := range rows {
		data = append(data, []string{
			g.Team,
			g.Name,
			g.Email,
			g.Date.Format(time.DateOnly),
			g.Week,
			string(g.DayType),
			g.ShiftName,
			hoursToString(g.Hours),
			hoursToString(g.ShiftDays),
		})
	}
	return write(data)
}

func (r *CsvRendererImpl) RenderTeams(rows []overtime.TeamSummary) (string, error) {
	data := make([][]string, 0, len(rows)+1)
	data = append(data, TeamsHeader)
	for _, t := range rows {
		data = append(data, []string{
			t.Team,
			strconv.Itoa(t.People),
			strconv.Itoa(t.PeopleWithOvertime),
			strconv.Itoa(t.PeopleWithBankHoliday),
			hoursToString(t.OvertimeHours),
			hoursToString(t.ExtraDayHours),
			hoursToString(t.BankHolidayHours),
		})
	}
	return write(data)
}

func write(data [][]string) (string, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	return b.String(), nil
}

// hoursToString writes the shortest decimal that parses back to the same value.
func hoursToString(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}

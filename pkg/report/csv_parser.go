package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/klokku/overtime/pkg/overtime"
)

var (
	ErrInvalidHeader  = errors.New("unexpected summary header")
	ErrUnknownDayType = errors.New("unknown day type")
)

// ParseWeeklyCSV reads a table written by RenderWeekly.
func ParseWeeklyCSV(r io.Reader) ([]overtime.WeeklyRow, error) {
	records, err := readTable(r, WeeklyHeader)
	if err != nil {
		return nil, err
	}
	rows := make([]overtime.WeeklyRow, 0, len(records))
	for i, rec := range records {
		p := fieldParser{line: i + 2}
		row := overtime.WeeklyRow{
			Team:             rec[0],
			Name:             rec[1],
			Email:            rec[2],
			WeekStart:        p.date("week_start", rec[3]),
			Week:             rec[4],
			TotalHours:       p.hours("total_hours", rec[5]),
			ContractedHours:  p.hours("contracted_hours", rec[6]),
			OvertimeHours:    p.hours("overtime_hours", rec[7]),
			HasOvertime:      p.bool("has_overtime", rec[8]),
			DaysWorked:       p.int("days_worked", rec[9]),
			ExtraDays:        p.int("extra_days", rec[10]),
			ExtraDayHours:    p.hours("extra_day_hours", rec[11]),
			BankHolidayHours: p.hours("bank_holiday_hours", rec[12]),
			ShiftDays:        p.hours("shift_days", rec[13]),
		}
		if p.err != nil {
			return nil, p.err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParsePeriodCSV reads a table written by RenderPeriod.
func ParsePeriodCSV(r io.Reader) ([]overtime.PeriodRow, error) {
	records, err := readTable(r, PeriodHeader)
	if err != nil {
		return nil, err
	}
	rows := make([]overtime.PeriodRow, 0, len(records))
	for i, rec := range records {
		p := fieldParser{line: i + 2}
		row := overtime.PeriodRow{
			Team:             rec[0],
			Name:             rec[1],
			Email:            rec[2],
			Weeks:            p.int("weeks", rec[3]),
			TotalHours:       p.hours("total_hours", rec[4]),
			TotalContracted:  p.hours("total_contracted", rec[5]),
			TotalOvertime:    p.hours("total_overtime", rec[6]),
			DaysWorked:       p.int("days_worked", rec[7]),
			ExtraDays:        p.int("extra_days", rec[8]),
			ExtraDayHours:    p.hours("extra_day_hours", rec[9]),
			BankHolidayHours: p.hours("bank_holiday_hours", rec[10]),
			ShiftDays:        p.hours("shift_days", rec[11]),
		}
		if p.err != nil {
			return nil, p.err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseGranularCSV reads a table written by RenderGranular.
func ParseGranularCSV(r io.Reader) ([]overtime.GranularRow, error) {
	records, err := readTable(r, GranularHeader)
	if err != nil {
		return nil, err
	}
	rows := make([]overtime.GranularRow, 0, len(records))
	for i, rec := range records {
		p := fieldParser{line: i + 2}
		row := overtime.GranularRow{
			Team:      rec[0],
			Name:      rec[1],
			Email:     rec[2],
			Date:      p.date("date", rec[3]),
			Week:      rec[4],
			DayType:   p.dayType("day_type", rec[5]),
			ShiftName: rec[6],
			Hours:     p.hours("scheduled_hours", rec[7]),
			ShiftDays: p.hours("shift_days", rec[8]),
		}
		if p.err != nil {
			return nil, p.err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readTable(r io.Reader, header []string) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(header)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read summary csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidHeader)
	}
	for i, name := range header {
		if strings.TrimSpace(records[0][i]) != name {
			return nil, fmt.Errorf("%w: column %d is %q, expected %q", ErrInvalidHeader, i+1, records[0][i], name)
		}
	}
	return records[1:], nil
}

// fieldParser keeps the first conversion error of a record.
type fieldParser struct {
	line int
	err  error
}

func (p *fieldParser) fail(column, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("line %d: %s %q: %w", p.line, column, value, err)
	}
}

func (p *fieldParser) hours(column, value string) float64 {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		p.fail(column, value, err)
	}
	return v
}

func (p *fieldParser) int(column, value string) int {
	v, err := strconv.Atoi(value)
	if err != nil {
		p.fail(column, value, err)
	}
	return v
}

func (p *fieldParser) bool(column, value string) bool {
	v, err := strconv.ParseBool(value)
	if err != nil {
		p.fail(column, value, err)
	}
	return v
}

func (p *fieldParser) dayType(column, value string) overtime.DayType {
	switch dt := overtime.DayType(value); dt {
	case overtime.DayTypeOvertime, overtime.DayTypeBankHoliday:
		return dt
	}
	p.fail(column, value, ErrUnknownDayType)
	return ""
}

func (p *fieldParser) date(column, value string) time.Time {
	v, err := time.Parse(time.DateOnly, value)
	if err != nil {
		p.fail(column, value, err)
	}
	return v
}

package report

import (
	"fmt"
	"time"

	"github.com/klokku/overtime/pkg/overtime"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	WeeklySheet   = "Weekly"
	PeriodSheet   = "Period"
	GranularSheet = "Granular"
	TeamsSheet    = "Teams"
	OverviewSheet = "Overview"
)

type XlsxRendererImpl struct {
}

func NewXlsxRenderer() *XlsxRendererImpl {
	return &XlsxRendererImpl{}
}

// RenderWorkbook writes the weekly, period, granular and team tables plus an overview sheet into one workbook.
func (r *XlsxRendererImpl) RenderWorkbook(report overtime.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Warnf("Failed to close workbook: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", WeeklySheet); err != nil {
		return nil, err
	}
	for _, sheet := range []string{PeriodSheet, GranularSheet, TeamsSheet, OverviewSheet} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}

	weekly := make([][]any, 0, len(report.Weekly))
	for _, w := range report.Weekly {
		weekly = append(weekly, []any{
			w.Team, w.Name, w.Email, w.WeekStart.Format(time.DateOnly), w.Week,
			w.TotalHours, w.ContractedHours, w.OvertimeHours, w.HasOvertime,
			w.DaysWorked, w.ExtraDays, w.ExtraDayHours, w.BankHolidayHours, w.ShiftDays,
		})
	}
	if err := writeSheet(f, WeeklySheet, WeeklyHeader, weekly); err != nil {
		return nil, err
	}

	period := make([][]any, 0, len(report.Period))
	for _, p := range report.Period {
		period = append(period, []any{
			p.Team, p.Name, p.Email, p.Weeks,
			p.TotalHours, p.TotalContracted, p.TotalOvertime,
			p.DaysWorked, p.ExtraDays, p.ExtraDayHours, p.BankHolidayHours, p.ShiftDays,
		})
	}
	if err := writeSheet(f, PeriodSheet, PeriodHeader, period); err != nil {
		return nil, err
	}

	granular := make([][]any, 0, len(report.Granular))
	for _, g := range report.Granular {
		granular = append(granular, []any{
			g.Team, g.Name, g.Email, g.Date.Format(time.DateOnly), g.Week,
			string(g.DayType), g.ShiftName, g.Hours, g.ShiftDays,
		})
	}
	if err := writeSheet(f, GranularSheet, GranularHeader, granular); err != nil {
		return nil, err
	}

	teams := make([][]any, 0, len(report.Teams))
	for _, t := range report.Teams {
		teams = append(teams, []any{
			t.Team, t.People, t.PeopleWithOvertime, t.PeopleWithBankHoliday,
			t.OvertimeHours, t.ExtraDayHours, t.BankHolidayHours,
		})
	}
	if err := writeSheet(f, TeamsSheet, TeamsHeader, teams); err != nil {
		return nil, err
	}

	m := report.Metrics
	overview := [][]any{
		{"run_id", report.RunID},
		{"generated_at", report.GeneratedAt.Format(time.RFC3339)},
		{"team", report.Team},
		{"contracted_hours", report.ContractedHours},
		{"period", report.Range.Label()},
		{"total_shifts", m.TotalShifts},
		{"person_weeks", m.PersonWeeks},
		{"people", m.People},
		{"people_with_overtime", m.PeopleWithOvertime},
		{"total_hours", m.TotalHours},
		{"total_overtime_hours", m.TotalOvertimeHours},
		{"extra_day_hours", m.ExtraDayHours},
		{"bank_holiday_hours", m.BankHolidayHours},
		{"rejected_records", m.RejectedRecords},
	}
	if err := writeSheet(f, OverviewSheet, []string{"metric", "value"}, overview); err != nil {
		return nil, err
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		log.Errorf("Error writing workbook: %v", err)
		return nil, err
	}
	return buffer.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any) error {
	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

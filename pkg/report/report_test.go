package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klokku/overtime/pkg/overtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var weekStart = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func sampleReport() overtime.Report {
	return overtime.Report{
		RunID:           "run-1",
		GeneratedAt:     time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC),
		Team:            "Fraud Operations",
		ContractedHours: 45,
		Range:           overtime.DateRange{Start: weekStart, End: weekStart.AddDate(0, 0, 5)},
		Weekly: []overtime.WeeklyRow{
			{
				Team:            "Fraud Operations",
				Name:            "Amina Otieno",
				Email:           "amina@example.com",
				WeekStart:       weekStart,
				Week:            "2025-W02",
				TotalHours:      50.5,
				ContractedHours: 45,
				OvertimeHours:   5.5,
				HasOvertime:     true,
				DaysWorked:      6,
				ExtraDays:       1,
				ExtraDayHours:   9.5,
				ShiftDays:       5.611111,
			},
			{
				Team:            "Fraud Operations",
				Name:            "Brian, Kamau",
				Email:           "brian@example.com",
				WeekStart:       weekStart,
				Week:            "2025-W02",
				TotalHours:      40,
				ContractedHours: 45,
				DaysWorked:      5,
				ShiftDays:       4.444444,
			},
		},
		Period: []overtime.PeriodRow{
			{
				Team:            "Fraud Operations",
				Name:            "Amina Otieno",
				Email:           "amina@example.com",
				Weeks:           1,
				TotalHours:      50.5,
				TotalContracted: 45,
				TotalOvertime:   5.5,
				DaysWorked:      6,
				ExtraDays:       1,
				ExtraDayHours:   9.5,
				ShiftDays:       5.611111,
			},
			{
				Team:            "Fraud Operations",
				Name:            "Brian, Kamau",
				Email:           "brian@example.com",
				Weeks:           1,
				TotalHours:      40,
				TotalContracted: 45,
				DaysWorked:      5,
				ShiftDays:       4.444444,
			},
		},
		Granular: []overtime.GranularRow{
			{
				Team:      "Fraud Operations",
				Name:      "Amina Otieno",
				Email:     "amina@example.com",
				Date:      weekStart.AddDate(0, 0, 5),
				Week:      "2025-W02",
				DayType:   overtime.DayTypeOvertime,
				ShiftName: "Weekend",
				Hours:     9.5,
				ShiftDays: 1.055556,
			},
		},
		Teams: []overtime.TeamSummary{
			{
				Team:               "Fraud Operations",
				People:             2,
				PeopleWithOvertime: 1,
				OvertimeHours:      5.5,
				ExtraDayHours:      9.5,
			},
		},
		Metrics: overtime.Metrics{
			TotalShifts:        11,
			PersonWeeks:        2,
			People:             2,
			PeopleWithOvertime: 1,
			TotalHours:         90.5,
			TotalOvertimeHours: 5.5,
			ExtraDayHours:      9.5,
		},
	}
}

func TestCsvRendererImpl_RenderWeekly(t *testing.T) {
	// given
	renderer := NewCsvRenderer()

	// when
	out, err := renderer.RenderWeekly(sampleReport().Weekly)

	// then
	require.NoError(t, err)
	want := "team,full_name,email,week_start,week,total_hours,contracted_hours,overtime_hours,has_overtime,days_worked,extra_days,extra_day_hours,bank_holiday_hours,shift_days\n" +
		"Fraud Operations,Amina Otieno,amina@example.com,2025-01-06,2025-W02,50.5,45,5.5,true,6,1,9.5,0,5.611111\n" +
		"Fraud Operations,\"Brian, Kamau\",brian@example.com,2025-01-06,2025-W02,40,45,0,false,5,0,0,0,4.444444\n"
	assert.Equal(t, want, out)
}

func TestCsvRendererImpl_RenderPeriod(t *testing.T) {
	// given
	renderer := NewCsvRenderer()

	// when
	out, err := renderer.RenderPeriod(sampleReport().Period)

	// then
	require.NoError(t, err)
	want := "team,full_name,email,weeks,total_hours,total_contracted,total_overtime,days_worked,extra_days,extra_day_hours,bank_holiday_hours,shift_days\n" +
		"Fraud Operations,Amina Otieno,amina@example.com,1,50.5,45,5.5,6,1,9.5,0,5.611111\n" +
		"Fraud Operations,\"Brian, Kamau\",brian@example.com,1,40,45,0,5,0,0,0,4.444444\n"
	assert.Equal(t, want, out)
}

func TestCsvRendererImpl_RenderGranular(t *testing.T) {
	// given
	renderer := NewCsvRenderer()

	// when
	out, err := renderer.RenderGranular(sampleReport().Granular)

	// then
	require.NoError(t, err)
	want := "team,full_name,email,date,week,day_type,shift_name,scheduled_hours,shift_days\n" +
		"Fraud Operations,Amina Otieno,amina@example.com,2025-01-11,2025-W02,Overtime,Weekend,9.5,1.055556\n"
	assert.Equal(t, want, out)
}

func TestCsvRendererImpl_RenderTeams(t *testing.T) {
	// given
	renderer := NewCsvRenderer()

	// when
	out, err := renderer.RenderTeams(sampleReport().Teams)

	// then
	require.NoError(t, err)
	want := "team,people,people_with_overtime,people_with_bank_holiday,total_overtime_hours,total_extra_day_hours,total_bank_holiday_hours\n" +
		"Fraud Operations,2,1,0,5.5,9.5,0\n"
	assert.Equal(t, want, out)
}

func TestCsvRendererImpl_EmptyTablesHaveHeaderOnly(t *testing.T) {
	renderer := NewCsvRenderer()

	weekly, err := renderer.RenderWeekly(nil)
	require.NoError(t, err)
	period, err := renderer.RenderPeriod([]overtime.PeriodRow{})
	require.NoError(t, err)
	granular, err := renderer.RenderGranular(nil)
	require.NoError(t, err)

	assert.Equal(t, strings.Join(WeeklyHeader, ",")+"\n", weekly)
	assert.Equal(t, strings.Join(PeriodHeader, ",")+"\n", period)
	assert.Equal(t, strings.Join(GranularHeader, ",")+"\n", granular)
}

func TestRenderedTablesParseBack(t *testing.T) {
	// given
	report := sampleReport()
	report.Weekly[0].TotalHours = 50.333333
	report.Weekly[0].BankHolidayHours = 0.1
	renderer := NewCsvRenderer()
	weekly, err := renderer.RenderWeekly(report.Weekly)
	require.NoError(t, err)
	period, err := renderer.RenderPeriod(report.Period)
	require.NoError(t, err)
	granular, err := renderer.RenderGranular(report.Granular)
	require.NoError(t, err)

	// when
	weeklyRows, err := ParseWeeklyCSV(strings.NewReader(weekly))
	require.NoError(t, err)
	periodRows, err := ParsePeriodCSV(strings.NewReader(period))
	require.NoError(t, err)
	granularRows, err := ParseGranularCSV(strings.NewReader(granular))
	require.NoError(t, err)

	// then
	assert.Equal(t, report.Weekly, weeklyRows)
	assert.Equal(t, report.Period, periodRows)
	assert.Equal(t, report.Granular, granularRows)
}

func TestParseGranularCSV_UnknownDayType(t *testing.T) {
	input := strings.Join(GranularHeader, ",") + "\n" +
		"Fraud Operations,Amina,amina@example.com,2025-01-11,2025-W02,Standard,,9,1\n"

	_, err := ParseGranularCSV(strings.NewReader(input))

	require.ErrorIs(t, err, ErrUnknownDayType)
	assert.Contains(t, err.Error(), "line 2: day_type")
}

func TestParseWeeklyCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "empty input",
			input:   "",
			wantErr: ErrInvalidHeader,
		},
		{
			name:    "period header",
			input:   strings.Join(PeriodHeader, ",") + ",x,y\n",
			wantErr: ErrInvalidHeader,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWeeklyCSV(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParsePeriodCSV_InvalidNumber(t *testing.T) {
	input := strings.Join(PeriodHeader, ",") + "\n" +
		"Fraud Operations,Amina,amina@example.com,one,1,1,0,1,0,0,0,0\n"

	_, err := ParsePeriodCSV(strings.NewReader(input))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2: weeks")
}

func TestXlsxRendererImpl_RenderWorkbook(t *testing.T) {
	// given
	renderer := NewXlsxRenderer()

	// when
	data, err := renderer.RenderWorkbook(sampleReport())

	// then
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{WeeklySheet, PeriodSheet, GranularSheet, TeamsSheet, OverviewSheet}, f.GetSheetList())

	weekly, err := f.GetRows(WeeklySheet)
	require.NoError(t, err)
	require.Len(t, weekly, 3)
	assert.Equal(t, WeeklyHeader, weekly[0])
	assert.Equal(t, "Amina Otieno", weekly[1][1])
	assert.Equal(t, "5.5", weekly[1][7])
	assert.Equal(t, "TRUE", weekly[1][8])

	period, err := f.GetRows(PeriodSheet)
	require.NoError(t, err)
	require.Len(t, period, 3)
	assert.Equal(t, "Brian, Kamau", period[2][1])

	granular, err := f.GetRows(GranularSheet)
	require.NoError(t, err)
	require.Len(t, granular, 2)
	assert.Equal(t, GranularHeader, granular[0])
	assert.Equal(t, []string{"Fraud Operations", "Amina Otieno", "amina@example.com", "2025-01-11", "2025-W02", "Overtime", "Weekend", "9.5", "1.055556"}, granular[1])

	teams, err := f.GetRows(TeamsSheet)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, []string{"Fraud Operations", "2", "1", "0", "5.5", "9.5", "0"}, teams[1])

	overview, err := f.GetRows(OverviewSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"run_id", "run-1"}, overview[1])
	assert.Contains(t, overview, []string{"period", "from 2025-01-06 to 2025-01-11"})
	assert.Contains(t, overview, []string{"total_overtime_hours", "5.5"})
	assert.Contains(t, overview, []string{"extra_day_hours", "9.5"})
}

func TestWriteFiles(t *testing.T) {
	// given
	dir := filepath.Join(t.TempDir(), "out")

	// when
	written, err := WriteFiles(dir, FileNames{Workbook: "ot_summary.xlsx"}, sampleReport())

	// then
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, DefaultWeeklyFileName),
		filepath.Join(dir, DefaultPeriodFileName),
		filepath.Join(dir, DefaultGranularFileName),
		filepath.Join(dir, "ot_summary.xlsx"),
	}, written)

	weekly, err := os.ReadFile(written[0])
	require.NoError(t, err)
	rows, err := ParseWeeklyCSV(bytes.NewReader(weekly))
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	granular, err := os.ReadFile(written[2])
	require.NoError(t, err)
	granularRows, err := ParseGranularCSV(bytes.NewReader(granular))
	require.NoError(t, err)
	assert.Len(t, granularRows, 1)
}

func TestWriteFiles_CustomNamesWithoutWorkbook(t *testing.T) {
	dir := t.TempDir()

	written, err := WriteFiles(dir, FileNames{Weekly: "w.csv", Period: "p.csv", Granular: "g.csv"}, overtime.Report{})

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "w.csv"), filepath.Join(dir, "p.csv"), filepath.Join(dir, "g.csv")}, written)
	period, err := os.ReadFile(written[1])
	require.NoError(t, err)
	assert.Equal(t, strings.Join(PeriodHeader, ",")+"\n", string(period))
}

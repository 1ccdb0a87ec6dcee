package overtime

import (
	"fmt"
	"strings"
)

type tableRendererStub struct{}

func (tableRendererStub) RenderWeekly(rows []WeeklyRow) (string, error) {
	var b strings.Builder
	b.WriteString("weekly\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s,%s,%v\n", r.Email, r.Week, r.OvertimeHours)
	}
	return b.String(), nil
}

func (tableRendererStub) RenderPeriod(rows []PeriodRow) (string, error) {
	var b strings.Builder
	b.WriteString("period\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s,%v\n", r.Email, r.TotalOvertime)
	}
	return b.String(), nil
}

func (tableRendererStub) RenderGranular(rows []GranularRow) (string, error) {
	var b strings.Builder
	b.WriteString("granular\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s,%s,%v\n", r.Email, r.DayType, r.Hours)
	}
	return b.String(), nil
}

func (tableRendererStub) RenderTeams(rows []TeamSummary) (string, error) {
	var b strings.Builder
	b.WriteString("teams\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s,%v\n", r.Team, r.OvertimeHours)
	}
	return b.String(), nil
}

type workbookRendererStub struct{}

func (workbookRendererStub) RenderWorkbook(report Report) ([]byte, error) {
	return []byte("workbook:" + report.RunID), nil
}

type composerStub struct{}

func (composerStub) Compose(report Report) (Message, error) {
	return Message{
		Subject:     report.Team,
		Body:        fmt.Sprintf("%.2f", report.Metrics.TotalOvertimeHours),
		HasOvertime: report.HasOvertime(),
	}, nil
}

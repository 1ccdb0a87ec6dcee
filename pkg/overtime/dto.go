package overtime

import (
	"time"

	"github.com/klokku/overtime/pkg/contract"
	"github.com/klokku/overtime/pkg/timesheet"
)

type WeeklyRowDTO struct {
	Team             string  `json:"team"`
	Name             string  `json:"fullName"`
	Email            string  `json:"email"`
	WeekStart        string  `json:"weekStart"`
	Week             string  `json:"week"`
	TotalHours       float64 `json:"totalHours"`
	ContractedHours  float64 `json:"contractedHours"`
	OvertimeHours    float64 `json:"overtimeHours"`
	HasOvertime      bool    `json:"hasOvertime"`
	DaysWorked       int     `json:"daysWorked"`
	ExtraDays        int     `json:"extraDays"`
	ExtraDayHours    float64 `json:"extraDayHours"`
	BankHolidayHours float64 `json:"bankHolidayHours"`
	ShiftDays        float64 `json:"shiftDays"`
}

type PeriodRowDTO struct {
	Team             string  `json:"team"`
	Name             string  `json:"fullName"`
	Email            string  `json:"email"`
	Weeks            int     `json:"weeks"`
	TotalHours       float64 `json:"totalHours"`
	TotalContracted  float64 `json:"totalContracted"`
	TotalOvertime    float64 `json:"totalOvertime"`
	DaysWorked       int     `json:"daysWorked"`
	ExtraDays        int     `json:"extraDays"`
	ExtraDayHours    float64 `json:"extraDayHours"`
	BankHolidayHours float64 `json:"bankHolidayHours"`
	ShiftDays        float64 `json:"shiftDays"`
}

type GranularRowDTO struct {
	Team      string  `json:"team"`
	Name      string  `json:"fullName"`
	Email     string  `json:"email"`
	Date      string  `json:"date"`
	Week      string  `json:"week"`
	DayType   string  `json:"dayType"`
	ShiftName string  `json:"shiftName"`
	Hours     float64 `json:"scheduledHours"`
	ShiftDays float64 `json:"shiftDays"`
}

type TeamSummaryDTO struct {
	Team                  string  `json:"team"`
	People                int     `json:"people"`
	PeopleWithOvertime    int     `json:"peopleWithOvertime"`
	PeopleWithBankHoliday int     `json:"peopleWithBankHoliday"`
	OvertimeHours         float64 `json:"totalOvertimeHours"`
	ExtraDayHours         float64 `json:"totalExtraDayHours"`
	BankHolidayHours      float64 `json:"totalBankHolidayHours"`
}

type MetricsDTO struct {
	TotalShifts        int     `json:"totalShifts"`
	PersonWeeks        int     `json:"personWeeks"`
	People             int     `json:"people"`
	PeopleWithOvertime int     `json:"peopleWithOvertime"`
	TotalHours         float64 `json:"totalHours"`
	TotalOvertimeHours float64 `json:"totalOvertimeHours"`
	ExtraDayHours      float64 `json:"extraDayHours"`
	BankHolidayHours   float64 `json:"bankHolidayHours"`
	RejectedRecords    int     `json:"rejectedRecords"`
}

type RangeDTO struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
	Label string `json:"label"`
}

type MessageDTO struct {
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	HasOvertime bool   `json:"hasOvertime"`
}

type ReportDTO struct {
	RunID           string                     `json:"runId"`
	GeneratedAt     time.Time                  `json:"generatedAt"`
	Team            string                     `json:"team"`
	ContractedHours float64                    `json:"contractedHours"`
	WeekFirstDay    string                     `json:"weekFirstDay"`
	Range           RangeDTO                   `json:"range"`
	Weekly          []WeeklyRowDTO             `json:"weekly"`
	Period          []PeriodRowDTO             `json:"period"`
	Granular        []GranularRowDTO           `json:"granular"`
	Teams           []TeamSummaryDTO           `json:"teams"`
	Metrics         MetricsDTO                 `json:"metrics"`
	Rejected        []timesheet.RejectedRecord `json:"rejected"`
	Message         *MessageDTO                `json:"message,omitempty"`
}

type TeamDTO struct {
	Name            string  `json:"name"`
	ContractedHours float64 `json:"contractedHours"`
	ContractedDays  int     `json:"contractedDays"`
	ShiftHours      float64 `json:"shiftHours"`
}

func reportToDTO(report Report) ReportDTO {
	weekly := make([]WeeklyRowDTO, 0, len(report.Weekly))
	for _, w := range report.Weekly {
		weekly = append(weekly, WeeklyRowDTO{
			Team:             w.Team,
			Name:             w.Name,
			Email:            w.Email,
			WeekStart:        w.WeekStart.Format(time.DateOnly),
			Week:             w.Week,
			TotalHours:       w.TotalHours,
			ContractedHours:  w.ContractedHours,
			OvertimeHours:    w.OvertimeHours,
			HasOvertime:      w.HasOvertime,
			DaysWorked:       w.DaysWorked,
			ExtraDays:        w.ExtraDays,
			ExtraDayHours:    w.ExtraDayHours,
			BankHolidayHours: w.BankHolidayHours,
			ShiftDays:        w.ShiftDays,
		})
	}
	period := make([]PeriodRowDTO, 0, len(report.Period))
	for _, p := range report.Period {
		period = append(period, PeriodRowDTO{
			Team:             p.Team,
			Name:             p.Name,
			Email:            p.Email,
			Weeks:            p.Weeks,
			TotalHours:       p.TotalHours,
			TotalContracted:  p.TotalContracted,
			TotalOvertime:    p.TotalOvertime,
			DaysWorked:       p.DaysWorked,
			ExtraDays:        p.ExtraDays,
			ExtraDayHours:    p.ExtraDayHours,
			BankHolidayHours: p.BankHolidayHours,
			ShiftDays:        p.ShiftDays,
		})
	}
	granular := make([]GranularRowDTO, 0, len(report.Granular))
	for _, g := range report.Granular {
		granular = append(granular, GranularRowDTO{
			Team:      g.Team,
			Name:      g.Name,
			Email:     g.Email,
			Date:      g.Date.Format(time.DateOnly),
			Week:      g.Week,
			DayType:   string(g.DayType),
			ShiftName: g.ShiftName,
			Hours:     g.Hours,
			ShiftDays: g.ShiftDays,
		})
	}
	teams := make([]TeamSummaryDTO, 0, len(report.Teams))
	for _, t := range report.Teams {
		teams = append(teams, TeamSummaryDTO(t))
	}
	rangeDTO := RangeDTO{Label: report.Range.Label()}
	if !report.Range.IsZero() {
		rangeDTO.Start = report.Range.Start.Format(time.DateOnly)
		rangeDTO.End = report.Range.End.Format(time.DateOnly)
	}
	rejected := report.Rejected
	if rejected == nil {
		rejected = []timesheet.RejectedRecord{}
	}
	m := report.Metrics
	return ReportDTO{
		RunID:           report.RunID,
		GeneratedAt:     report.GeneratedAt,
		Team:            report.Team,
		ContractedHours: report.ContractedHours,
		WeekFirstDay:    report.WeekFirstDay.String(),
		Range:           rangeDTO,
		Weekly:          weekly,
		Period:          period,
		Granular:        granular,
		Teams:           teams,
		Metrics: MetricsDTO{
			TotalShifts:        m.TotalShifts,
			PersonWeeks:        m.PersonWeeks,
			People:             m.People,
			PeopleWithOvertime: m.PeopleWithOvertime,
			TotalHours:         m.TotalHours,
			TotalOvertimeHours: m.TotalOvertimeHours,
			ExtraDayHours:      m.ExtraDayHours,
			BankHolidayHours:   m.BankHolidayHours,
			RejectedRecords:    m.RejectedRecords,
		},
		Rejected: rejected,
	}
}

func teamToDTO(team contract.Team) TeamDTO {
	return TeamDTO{
		Name:            team.Name,
		ContractedHours: team.ContractedHours,
		ContractedDays:  team.ContractedDays,
		ShiftHours:      team.ShiftHours,
	}
}

package overtime

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/klokku/overtime/internal/event_bus"
	"github.com/klokku/overtime/internal/utils"
	"github.com/klokku/overtime/pkg/contract"
	"github.com/klokku/overtime/pkg/holiday"
	"github.com/klokku/overtime/pkg/timesheet"
	log "github.com/sirupsen/logrus"
)

type RunRequest struct {
	Team string
	// ContractedHours replaces the team default when positive.
	ContractedHours float64
	Input           io.Reader
	Format          timesheet.Format
	Lenient         bool
	ApplyHolidays   bool
}

type Service interface {
	Run(ctx context.Context, req RunRequest) (Report, error)
	Teams() []contract.Team
}

type Settings struct {
	Teams        *contract.Teams
	Overrides    []contract.Override
	Holidays     *holiday.Calendar
	Columns      timesheet.Columns
	WeekFirstDay time.Weekday
}

type ServiceImpl struct {
	settings Settings
	eventBus *event_bus.EventBus
	clock    utils.Clock
	ids      utils.IDGenerator
}

func NewService(settings Settings, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{
		settings: settings,
		eventBus: eventBus,
		clock:    utils.SystemClock{},
		ids:      utils.UUIDGenerator{},
	}
}

func (s *ServiceImpl) Teams() []contract.Team {
	return s.settings.Teams.All()
}

func (s *ServiceImpl) Run(ctx context.Context, req RunRequest) (Report, error) {
	team, err := s.settings.Teams.Get(req.Team)
	if err != nil {
		return Report{}, err
	}
	if req.ContractedHours < 0 || math.IsNaN(req.ContractedHours) || math.IsInf(req.ContractedHours, 0) {
		return Report{}, fmt.Errorf("%w: %v", contract.ErrInvalidContractedHours, req.ContractedHours)
	}
	contractedHours := team.ContractedHours
	if req.ContractedHours > 0 {
		contractedHours = req.ContractedHours
	}
	policy, err := contract.NewPolicy(contractedHours, team.ContractedDays, s.settings.Overrides)
	if err != nil {
		return Report{}, fmt.Errorf("failed to build contract policy: %w", err)
	}

	loaded, err := timesheet.Load(req.Input, req.Format, timesheet.LoadOptions{
		Columns: s.settings.Columns,
		Lenient: req.Lenient,
	})
	if err != nil {
		return Report{}, fmt.Errorf("failed to load timesheet: %w", err)
	}
	if err := timesheet.ValidateAll(loaded.Shifts); err != nil {
		return Report{}, err
	}

	opts := Options{Team: team.Name, WeekFirstDay: s.settings.WeekFirstDay, ShiftHours: team.ShiftHours}
	if req.ApplyHolidays {
		opts.Holidays = s.settings.Holidays
	}
	report := Aggregate(loaded.Shifts, policy, opts)
	report.RunID = s.ids.NewID()
	report.GeneratedAt = s.clock.Now()
	report.ContractedHours = contractedHours
	report.Rejected = loaded.Rejected
	report.Metrics.RejectedRecords = len(loaded.Rejected)

	log.Infof("Run %s for %s: %d shifts, %d person-weeks, %.2f overtime hours",
		report.RunID, team.Name, report.Metrics.TotalShifts, report.Metrics.PersonWeeks, report.Metrics.TotalOvertimeHours)

	if len(loaded.Rejected) > 0 {
		s.publish(ctx, event_bus.RecordsRejected, RecordsRejected{RunID: report.RunID, Team: team.Name, Rejected: loaded.Rejected})
	}
	s.publish(ctx, event_bus.ReportGenerated, ReportGenerated{Report: report})

	return report, nil
}

// publish never fails the run; subscriber errors are logged.
func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		log.Warnf("failed to publish %s: %v", eventType, err)
	}
}

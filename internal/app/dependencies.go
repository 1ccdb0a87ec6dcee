package app

import (
	"github.com/klokku/overtime/internal/config"
	"github.com/klokku/overtime/internal/event_bus"
	"github.com/klokku/overtime/pkg/notification"
	"github.com/klokku/overtime/pkg/overtime"
	"github.com/klokku/overtime/pkg/report"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	OvertimeService *overtime.ServiceImpl
	OvertimeHandler *overtime.Handler

	CsvRenderer  *report.CsvRendererImpl
	XlsxRenderer *report.XlsxRendererImpl
	Composer     *notification.Composer
}

// BuildDependencies constructs all services and handlers. Configuration errors surface here,
// before the server or a CLI run starts.
func BuildDependencies(cfg config.Application) (*Dependencies, error) {
	settings, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	composer, err := notification.NewComposer(cfg.Notification)
	if err != nil {
		return nil, err
	}

	eventBus := event_bus.NewEventBus()
	composer.Subscribe(eventBus)
	event_bus.SubscribeTyped(eventBus, event_bus.RecordsRejected, logRejectedRecords)

	overtimeService := overtime.NewService(overtime.Settings{
		Teams:        settings.Teams,
		Overrides:    settings.Overrides,
		Holidays:     settings.Holidays,
		Columns:      cfg.Columns,
		WeekFirstDay: settings.WeekFirstDay,
	}, eventBus)

	csvRenderer := report.NewCsvRenderer()
	xlsxRenderer := report.NewXlsxRenderer()
	overtimeHandler := overtime.NewHandler(overtimeService, csvRenderer, xlsxRenderer, composer, cfg.Report.MaxUploadBytes, cfg.Report.Lenient)

	log.Debugf("Configured %d teams, %d overrides, %d holidays",
		len(settings.Teams.Names()), len(settings.Overrides), settings.Holidays.Len())

	return &Dependencies{
		EventBus:        eventBus,
		OvertimeService: overtimeService,
		OvertimeHandler: overtimeHandler,
		CsvRenderer:     csvRenderer,
		XlsxRenderer:    xlsxRenderer,
		Composer:        composer,
	}, nil
}

func logRejectedRecords(e event_bus.EventT[overtime.RecordsRejected]) error {
	for _, r := range e.Data.Rejected {
		log.WithFields(log.Fields{
			"runId": e.Data.RunID,
			"team":  e.Data.Team,
		}).Warnf("Rejected record: %s", r)
	}
	return nil
}

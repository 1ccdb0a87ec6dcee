package notification

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/klokku/overtime/internal/event_bus"
	"github.com/klokku/overtime/pkg/overtime"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidTemplate = errors.New("invalid notification template")

const DefaultSubjectTemplate = `{{ .Team }} overtime {{ .PeriodLabel }}`

const DefaultBodyTemplate = `{{- if not .HasOvertime -}}
No {{ .Team }} overtime detected for the selected period {{ .PeriodLabel }}.
{{- else -}}
Total overtime for {{ .Team }} {{ .PeriodLabel }}: {{ hours .TotalOvertime }} hours

People with overtime:
{{- range .People }}
- {{ .Name }} <{{ .Email }}>: {{ hours .Hours }} hours
{{- end }}
{{- end }}
`

type Templates struct {
	Subject string `koanf:"subject"`
	Body    string `koanf:"body"`
}

// Person is one line of the overtime listing.
type Person struct {
	Name  string
	Email string
	Hours float64
}

// Data is what the templates are executed against.
type Data struct {
	Team          string
	PeriodLabel   string
	HasOvertime   bool
	TotalOvertime float64
	People        []Person
	Report        overtime.Report
}

type Composer struct {
	subject *template.Template
	body    *template.Template
}

var funcs = template.FuncMap{
	"hours": func(h float64) string { return fmt.Sprintf("%.2f", h) },
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
}

// NewComposer parses the templates up front. Empty templates fall back to the defaults.
func NewComposer(templates Templates) (*Composer, error) {
	if strings.TrimSpace(templates.Subject) == "" {
		templates.Subject = DefaultSubjectTemplate
	}
	if strings.TrimSpace(templates.Body) == "" {
		templates.Body = DefaultBodyTemplate
	}
	subject, err := template.New("subject").Funcs(funcs).Option("missingkey=error").Parse(templates.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject: %v", ErrInvalidTemplate, err)
	}
	body, err := template.New("body").Funcs(funcs).Option("missingkey=error").Parse(templates.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: body: %v", ErrInvalidTemplate, err)
	}
	return &Composer{subject: subject, body: body}, nil
}

func (c *Composer) Compose(report overtime.Report) (overtime.Message, error) {
	data := dataFromReport(report)

	var subject bytes.Buffer
	if err := c.subject.Execute(&subject, data); err != nil {
		return overtime.Message{}, fmt.Errorf("failed to render notification subject: %w", err)
	}
	var body bytes.Buffer
	if err := c.body.Execute(&body, data); err != nil {
		return overtime.Message{}, fmt.Errorf("failed to render notification body: %w", err)
	}
	return overtime.Message{
		Subject:     strings.TrimSpace(subject.String()),
		Body:        strings.TrimSpace(body.String()),
		HasOvertime: data.HasOvertime,
	}, nil
}

func dataFromReport(report overtime.Report) Data {
	data := Data{
		Team:          report.Team,
		PeriodLabel:   report.Range.Label(),
		HasOvertime:   report.HasOvertime(),
		TotalOvertime: report.Metrics.TotalOvertimeHours,
		Report:        report,
	}
	for _, p := range report.PeopleWithOvertime() {
		data.People = append(data.People, Person{Name: p.Name, Email: p.Email, Hours: p.TotalOvertime})
	}
	return data
}

// Subscribe logs the composed message of every generated report.
func (c *Composer) Subscribe(eventBus *event_bus.EventBus) (unsubscribe func()) {
	return event_bus.SubscribeTyped(eventBus, event_bus.ReportGenerated, func(e event_bus.EventT[overtime.ReportGenerated]) error {
		msg, err := c.Compose(e.Data.Report)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"runId":       e.Data.Report.RunID,
			"team":        e.Data.Report.Team,
			"hasOvertime": msg.HasOvertime,
		}).Info(msg.Subject)
		log.Debug(msg.Body)
		return nil
	})
}

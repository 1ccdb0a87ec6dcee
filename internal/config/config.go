package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/klokku/overtime/pkg/contract"
	"github.com/klokku/overtime/pkg/holiday"
	"github.com/klokku/overtime/pkg/notification"
	"github.com/klokku/overtime/pkg/timesheet"
	"github.com/klokku/overtime/pkg/week"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const DefaultPath = "./config/application.yaml"

type Application struct {
	Server       Server                 `koanf:"server"`
	Report       Report                 `koanf:"report"`
	Columns      timesheet.Columns      `koanf:"columns"`
	Teams        []Team                 `koanf:"teams"`
	Overrides    []Override             `koanf:"overrides"`
	Holidays     Holidays               `koanf:"holidays"`
	Notification notification.Templates `koanf:"notification"`
}

type Server struct {
	Addr         string        `koanf:"addr"`
	ReadTimeout  time.Duration `koanf:"readtimeout"`
	WriteTimeout time.Duration `koanf:"writetimeout"`
}

type Report struct {
	WeekFirstDay   string `koanf:"weekfirstday"`
	OutputDir      string `koanf:"outputdir"`
	WeeklyFile     string `koanf:"weeklyfile"`
	PeriodFile     string `koanf:"periodfile"`
	GranularFile   string `koanf:"granularfile"`
	WorkbookFile   string `koanf:"workbookfile"`
	MaxUploadBytes int64  `koanf:"maxuploadbytes"`
	Lenient        bool   `koanf:"lenient"`
}

type Team struct {
	Name            string  `koanf:"name"`
	ContractedHours float64 `koanf:"contractedhours"`
	ContractedDays  int     `koanf:"contracteddays"`
	ShiftHours      float64 `koanf:"shifthours"`
}

type Override struct {
	Email       string  `koanf:"email"`
	WeeklyHours float64 `koanf:"weeklyhours"`
	Notes       string  `koanf:"notes"`
}

type Holidays struct {
	Enabled bool      `koanf:"enabled"`
	Entries []Holiday `koanf:"entries"`
}

type Holiday struct {
	Date     string `koanf:"date"`
	Name     string `koanf:"name"`
	Timezone string `koanf:"timezone"`
}

// DefaultTeams are used when the configuration does not list any team.
func DefaultTeams() []Team {
	return []Team{
		{Name: "Fraud Operations", ContractedHours: 45, ContractedDays: 5, ShiftHours: 9},
		{Name: "Customer Support", ContractedHours: 45, ContractedDays: 5, ShiftHours: 9},
		{Name: "Core Ops / Payment Ops", ContractedHours: 45, ContractedDays: 5, ShiftHours: 12},
		{Name: "Compliance Ops", ContractedHours: 45, ContractedDays: 5, ShiftHours: 9},
		{Name: "Treasury Ops", ContractedHours: 45, ContractedDays: 5, ShiftHours: 9},
	}
}

func defaults() Application {
	return Application{
		Server: Server{
			Addr:         ":8181",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Report: Report{
			WeekFirstDay:   "monday",
			OutputDir:      ".",
			WeeklyFile:     "ot_weekly_summary.csv",
			PeriodFile:     "ot_period_summary.csv",
			GranularFile:   "ot_granular.csv",
			MaxUploadBytes: 32 << 20,
		},
		Columns:  timesheet.DefaultColumns(),
		Holidays: Holidays{Enabled: true},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "OVERTIME_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "OVERTIME_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}
	if len(app.Teams) == 0 {
		app.Teams = DefaultTeams()
	}

	if _, err := app.Validate(); err != nil {
		return Application{}, err
	}
	return app, nil
}

// Settings is the configuration converted into domain types.
type Settings struct {
	Teams        *contract.Teams
	Overrides    []contract.Override
	Holidays     *holiday.Calendar
	WeekFirstDay time.Weekday
}

// Validate converts the configuration into domain types, reporting the first invalid entry.
func (a Application) Validate() (Settings, error) {
	teams := make([]contract.Team, 0, len(a.Teams))
	for _, t := range a.Teams {
		teams = append(teams, contract.Team{
			Name:            t.Name,
			ContractedHours: t.ContractedHours,
			ContractedDays:  t.ContractedDays,
			ShiftHours:      t.ShiftHours,
		})
	}
	registry, err := contract.NewTeams(teams)
	if err != nil {
		return Settings{}, fmt.Errorf("invalid teams configuration: %w", err)
	}

	overrides := make([]contract.Override, 0, len(a.Overrides))
	for _, o := range a.Overrides {
		overrides = append(overrides, contract.Override{Email: o.Email, WeeklyHours: o.WeeklyHours, Notes: o.Notes})
	}
	// validated against a placeholder default so bad overrides fail at startup
	if _, err := contract.NewPolicy(1, contract.DefaultContractedDays, overrides); err != nil {
		return Settings{}, fmt.Errorf("invalid overrides configuration: %w", err)
	}

	var holidays []holiday.Holiday
	for _, h := range a.Holidays.Entries {
		date, err := holiday.ParseDate(h.Date)
		if err != nil {
			return Settings{}, fmt.Errorf("invalid holiday %q: %w", h.Name, err)
		}
		holidays = append(holidays, holiday.Holiday{Date: date, Name: h.Name, Timezone: h.Timezone})
	}
	var calendar *holiday.Calendar
	if a.Holidays.Enabled {
		calendar = holiday.NewCalendar(holidays)
	}

	firstDay, err := week.ParseWeekday(a.Report.WeekFirstDay)
	if err != nil {
		return Settings{}, fmt.Errorf("invalid report.weekFirstDay: %w", err)
	}

	return Settings{
		Teams:        registry,
		Overrides:    overrides,
		Holidays:     calendar,
		WeekFirstDay: firstDay,
	}, nil
}

package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/klokku/overtime/pkg/overtime"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultWeeklyFileName   = "ot_weekly_summary.csv"
	DefaultPeriodFileName   = "ot_period_summary.csv"
	DefaultGranularFileName = "ot_granular.csv"
)

type FileNames struct {
	Weekly   string
	Period   string
	Granular string
	// Workbook is written only when set.
	Workbook string
}

func (n FileNames) withDefaults() FileNames {
	if n.Weekly == "" {
		n.Weekly = DefaultWeeklyFileName
	}
	if n.Period == "" {
		n.Period = DefaultPeriodFileName
	}
	if n.Granular == "" {
		n.Granular = DefaultGranularFileName
	}
	return n
}

// WriteFiles renders the report into dir and returns the paths written.
func WriteFiles(dir string, names FileNames, report overtime.Report) ([]string, error) {
	names = names.withDefaults()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	csvRenderer := NewCsvRenderer()
	weekly, err := csvRenderer.RenderWeekly(report.Weekly)
	if err != nil {
		return nil, err
	}
	period, err := csvRenderer.RenderPeriod(report.Period)
	if err != nil {
		return nil, err
	}
	granular, err := csvRenderer.RenderGranular(report.Granular)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, table := range []struct {
		name    string
		content string
	}{
		{names.Weekly, weekly},
		{names.Period, period},
		{names.Granular, granular},
	} {
		path := filepath.Join(dir, table.name)
		if err := os.WriteFile(path, []byte(table.content), 0o644); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if names.Workbook != "" {
		workbook, err := NewXlsxRenderer().RenderWorkbook(report)
		if err != nil {
			return written, err
		}
		workbookPath := filepath.Join(dir, names.Workbook)
		if err := os.WriteFile(workbookPath, workbook, 0o644); err != nil {
			return written, err
		}
		written = append(written, workbookPath)
	}

	log.Infof("Report %s written to %s", report.RunID, dir)
	return written, nil
}

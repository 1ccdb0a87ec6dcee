package cli

import (
	"fmt"
	"math"
	"os"

	"github.com/klokku/overtime/internal/app"
	"github.com/klokku/overtime/pkg/overtime"
	"github.com/klokku/overtime/pkg/report"
	"github.com/klokku/overtime/pkg/timesheet"
	"github.com/spf13/cobra"
)

type reportOptions struct {
	input           string
	team            string
	contractedHours float64
	out             string
	xlsx            string
	lenient         bool
	noHolidays      bool
	weekStart       string
}

func newReportCommand(root *rootOptions) *cobra.Command {
	opts := &reportOptions{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute weekly and period overtime summaries from a timesheet export",
		Example: `  overtime report --input dialpad_export.csv --team "Fraud Operations"
  overtime report --input export.xlsx --team "Core Ops / Payment Ops" --contracted-hours 48 --xlsx ot_summary.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, root, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "timesheet export (.csv or .xlsx)")
	cmd.Flags().StringVarP(&opts.team, "team", "t", "", "team whose contracted hours apply")
	cmd.Flags().Float64Var(&opts.contractedHours, "contracted-hours", 0, "weekly contracted hours, overrides the team default")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output directory (default from config)")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "also write a workbook with this file name")
	cmd.Flags().BoolVar(&opts.lenient, "lenient", false, "skip invalid records instead of failing")
	cmd.Flags().BoolVar(&opts.noHolidays, "no-holidays", false, "do not flag bank-holiday hours")
	cmd.Flags().StringVar(&opts.weekStart, "week-start", "", "first day of the week (default from config)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("team")
	return cmd
}

func runReport(cmd *cobra.Command, root *rootOptions, opts *reportOptions) error {
	cfg, err := root.load()
	if err != nil {
		return err
	}
	if opts.weekStart != "" {
		cfg.Report.WeekFirstDay = opts.weekStart
	}
	if cmd.Flags().Changed("lenient") {
		cfg.Report.Lenient = opts.lenient
	}
	outDir := cfg.Report.OutputDir
	if opts.out != "" {
		outDir = opts.out
	}
	workbook := cfg.Report.WorkbookFile
	if opts.xlsx != "" {
		workbook = opts.xlsx
	}
	if opts.contractedHours < 0 || math.IsNaN(opts.contractedHours) || math.IsInf(opts.contractedHours, 0) {
		return fmt.Errorf("--contracted-hours must be a positive number")
	}

	deps, err := app.BuildDependencies(cfg)
	if err != nil {
		return err
	}

	format, err := timesheet.FormatFromFilename(opts.input)
	if err != nil {
		return err
	}
	file, err := os.Open(opts.input)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer file.Close()

	result, err := deps.OvertimeService.Run(cmd.Context(), overtime.RunRequest{
		Team:            opts.team,
		ContractedHours: opts.contractedHours,
		Input:           file,
		Format:          format,
		Lenient:         cfg.Report.Lenient,
		ApplyHolidays:   !opts.noHolidays,
	})
	if err != nil {
		return err
	}

	written, err := report.WriteFiles(outDir, report.FileNames{
		Weekly:   cfg.Report.WeeklyFile,
		Period:   cfg.Report.PeriodFile,
		Granular: cfg.Report.GranularFile,
		Workbook: workbook,
	}, result)
	if err != nil {
		return err
	}

	msg, err := deps.Composer.Compose(result)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	m := result.Metrics
	fmt.Fprintf(out, "Processed %d shifts for %d people (%d person-weeks)\n", m.TotalShifts, m.People, m.PersonWeeks)
	if m.RejectedRecords > 0 {
		fmt.Fprintf(out, "Skipped %d invalid records:\n", m.RejectedRecords)
		for _, r := range result.Rejected {
			fmt.Fprintf(out, "  %s\n", r)
		}
	}
	for _, path := range written {
		fmt.Fprintf(out, "Saved %s\n", path)
	}
	fmt.Fprintf(out, "\n%s\n", msg.Body)
	return nil
}

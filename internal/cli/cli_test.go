package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klokku/overtime/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const export = "first_name,last_name,email,shift_date,total_scheduled,surfer_timezone\n" +
	"Amina,Otieno,amina@example.com,2025-01-06,25,Africa/Nairobi\n" +
	"Amina,Otieno,amina@example.com,2025-01-08,25,Africa/Nairobi\n" +
	"Brian,Kamau,brian@example.com,2025-01-07,40,Africa/Nairobi\n"

const testConfig = `
teams:
  - name: Fraud Operations
    contractedhours: 45
    shifthours: 9
  - name: Core Ops / Payment Ops
    contractedhours: 48
    contracteddays: 4
    shifthours: 12
`

func setupWorkspace(t *testing.T, input string) (dir, configPath, inputPath string) {
	t.Helper()
	dir = t.TempDir()
	configPath = filepath.Join(dir, "application.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(testConfig), 0o644))
	inputPath = filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(inputPath, []byte(input), 0o644))
	return dir, configPath, inputPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReportCommand(t *testing.T) {
	// given
	dir, configPath, inputPath := setupWorkspace(t, export)
	outDir := filepath.Join(dir, "out")

	// when
	out, err := execute(t, "report", "--config", configPath, "--input", inputPath,
		"--team", "Fraud Operations", "--out", outDir, "--xlsx", "ot_summary.xlsx")

	// then
	require.NoError(t, err)
	assert.Contains(t, out, "Processed 3 shifts for 2 people (2 person-weeks)")
	assert.Contains(t, out, "Total overtime for Fraud Operations from 2025-01-06 to 2025-01-08: 5.00 hours")
	assert.FileExists(t, filepath.Join(outDir, "ot_weekly_summary.csv"))
	assert.FileExists(t, filepath.Join(outDir, "ot_granular.csv"))
	assert.FileExists(t, filepath.Join(outDir, "ot_summary.xlsx"))

	period, err := os.Open(filepath.Join(outDir, "ot_period_summary.csv"))
	require.NoError(t, err)
	defer period.Close()
	rows, err := report.ParsePeriodCSV(period)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 5.0, rows[0].TotalOvertime)
	assert.Equal(t, 0.0, rows[1].TotalOvertime)
}

func TestReportCommand_ContractedHoursFlag(t *testing.T) {
	dir, configPath, inputPath := setupWorkspace(t, export)

	out, err := execute(t, "report", "--config", configPath, "--input", inputPath,
		"--team", "Fraud Operations", "--out", dir, "--contracted-hours", "50")

	require.NoError(t, err)
	assert.Contains(t, out, "No Fraud Operations overtime detected for the selected period from 2025-01-06 to 2025-01-08.")
}

func TestReportCommand_Lenient(t *testing.T) {
	dir, configPath, inputPath := setupWorkspace(t, export+"Chebet,Rono,chebet@example.com,2025-01-07,abc,\n")

	_, err := execute(t, "report", "--config", configPath, "--input", inputPath, "--team", "Fraud Operations", "--out", dir)
	require.Error(t, err)

	out, err := execute(t, "report", "--config", configPath, "--input", inputPath,
		"--team", "Fraud Operations", "--out", dir, "--lenient")
	require.NoError(t, err)
	assert.Contains(t, out, "Skipped 1 invalid records")
	assert.Contains(t, out, "line 5")
}

func TestReportCommand_Errors(t *testing.T) {
	dir, configPath, inputPath := setupWorkspace(t, export)
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing input flag", args: []string{"report", "--config", configPath, "--team", "Fraud Operations"}},
		{name: "unknown team", args: []string{"report", "--config", configPath, "--input", inputPath, "--team", "Marketing", "--out", dir}},
		{name: "unsupported extension", args: []string{"report", "--config", configPath, "--input", filepath.Join(dir, "export.txt"), "--team", "Fraud Operations"}},
		{name: "bad week start", args: []string{"report", "--config", configPath, "--input", inputPath, "--team", "Fraud Operations", "--week-start", "someday"}},
		{name: "NaN contracted hours", args: []string{"report", "--config", configPath, "--input", inputPath, "--team", "Fraud Operations", "--contracted-hours", "NaN"}},
		{name: "negative contracted hours", args: []string{"report", "--config", configPath, "--input", inputPath, "--team", "Fraud Operations", "--contracted-hours", "-5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestTeamsCommand(t *testing.T) {
	_, configPath, _ := setupWorkspace(t, export)

	out, err := execute(t, "teams", "--config", configPath)

	require.NoError(t, err)
	assert.Contains(t, out, "TEAM")
	assert.Contains(t, out, "Fraud Operations")
	assert.Contains(t, out, "Core Ops / Payment Ops")
	assert.Regexp(t, `Core Ops / Payment Ops\s+48\s+4\s+12`, out)
}

func TestServeCommand_InvalidAddress(t *testing.T) {
	_, configPath, _ := setupWorkspace(t, export)

	_, err := execute(t, "serve", "--config", configPath, "--addr", "not-an-address")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-an-address")
}

func TestServeCommand_StopsWhenContextIsCancelled(t *testing.T) {
	// given
	_, configPath, _ := setupWorkspace(t, export)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"serve", "--config", configPath, "--addr", "127.0.0.1:0"})

	// when
	err := cmd.ExecuteContext(ctx)

	// then
	assert.NoError(t, err)
}

func TestServeCommand_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "application.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("report:\n  weekfirstday: someday\n"), 0o644))

	_, err := execute(t, "serve", "--config", configPath)

	assert.Error(t, err)
}

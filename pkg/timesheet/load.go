package timesheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFromFilename picks the format by file extension.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

type LoadOptions struct {
	Columns Columns
	// Lenient returns the valid shifts alongside the rejected records instead of failing the load.
	Lenient bool
}

type Result struct {
	Shifts   []Shift
	Rejected []RejectedRecord
	// Rows is the number of non-blank data rows read.
	Rows int
}

type row struct {
	line  int
	cells []string
}

// Load reads a timesheet export. Missing columns fail the load before any row is read.
// In strict mode any rejected record fails the load with a *ValidationError; the returned
// Result still lists what was read so callers can report it.
func Load(r io.Reader, format Format, opts LoadOptions) (Result, error) {
	var rows []row
	var err error
	switch format {
	case FormatCSV:
		rows, err = readCsv(r)
	case FormatXLSX:
		rows, err = readXlsx(r)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return Result{}, err
	}
	return parseRows(rows, opts, format == FormatXLSX)
}

func readCsv(r io.Reader) ([]row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, row{line: line, cells: record})
	}
	return rows, nil
}

func readXlsx(r io.Reader) ([]row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}
	// raw values keep dates as serial numbers instead of locale formatted text
	cells, err := file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %s: %w", sheetName, err)
	}
	rows := make([]row, 0, len(cells))
	for i, c := range cells {
		rows = append(rows, row{line: i + 1, cells: c})
	}
	return rows, nil
}

func parseRows(rows []row, opts LoadOptions, serialDates bool) (Result, error) {
	if len(rows) == 0 {
		return Result{}, &MissingColumnsError{Missing: []string{"header row"}}
	}
	l, err := resolveLayout(rows[0].cells, opts.Columns)
	if err != nil {
		return Result{}, err
	}
	l.serialDates = serialDates

	result := Result{Shifts: make([]Shift, 0, len(rows)-1)}
	for _, r := range rows[1:] {
		if isBlank(r.cells) {
			continue
		}
		result.Rows++
		shift, rejected := l.parse(r)
		if len(rejected) > 0 {
			result.Rejected = append(result.Rejected, rejected...)
			continue
		}
		result.Shifts = append(result.Shifts, shift)
	}
	log.Debugf("Parsed %d timesheet rows: %d shifts, %d rejected records", result.Rows, len(result.Shifts), len(result.Rejected))

	if len(result.Rejected) > 0 && !opts.Lenient {
		return result, &ValidationError{Rejected: result.Rejected}
	}
	return result, nil
}

func (l layout) parse(r row) (Shift, []RejectedRecord) {
	var rejected []RejectedRecord
	reject := func(column, value, reason string) {
		rejected = append(rejected, RejectedRecord{Line: r.line, Column: column, Value: value, Reason: reason})
	}

	name := cellValue(r.cells, l.fullName)
	if name == "" {
		name = strings.TrimSpace(cellValue(r.cells, l.firstName) + " " + cellValue(r.cells, l.lastName))
	}
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		reject(l.nameColumn(), "", "missing name")
	}

	email := strings.ToLower(cellValue(r.cells, l.email))
	if email == "" {
		reject(l.names.Email, "", "missing email")
	}

	rawDate := cellValue(r.cells, l.date)
	date, err := parseDate(rawDate, l.serialDates)
	if err != nil {
		reject(l.names.Date, rawDate, err.Error())
	}

	rawHours := cellValue(r.cells, l.hours)
	hours, reason := parseHours(rawHours)
	if reason != "" {
		reject(l.names.Hours, rawHours, reason)
	}

	if len(rejected) > 0 {
		return Shift{}, rejected
	}
	return Shift{
		Name:      name,
		Email:     email,
		Date:      date,
		Hours:     hours,
		Timezone:  cellValue(r.cells, l.timezone),
		ShiftName: cellValue(r.cells, l.shiftName),
		Line:      r.line,
	}, nil
}

func (l layout) nameColumn() string {
	if l.fullName >= 0 {
		return l.names.FullName
	}
	return l.names.FirstName + "/" + l.names.LastName
}

func parseHours(value string) (float64, string) {
	if value == "" {
		return 0, "missing hours"
	}
	hours, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, "not a number"
	}
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0, "not a finite number"
	}
	if hours < 0 {
		return 0, "negative hours"
	}
	return hours, ""
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

package timesheet

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateTime,
	"2006-01-02 15:04",
	"2006-01-02 15:04:05-07:00",
	"2006/01/02",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 3:04 PM",
	"02-Jan-2006",
	"Jan 2, 2006",
}

// Excel serial day numbers for 1900-01-01 .. 9999-12-31.
const (
	minExcelSerial = 1
	maxExcelSerial = 2958465
)

// parseDate accepts serial day numbers only when serial is set, i.e. for workbook input.
func parseDate(value string, serial bool) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	if !serial {
		return time.Time{}, fmt.Errorf("unrecognised date")
	}
	if days, err := strconv.ParseFloat(value, 64); err == nil && days >= minExcelSerial && days <= maxExcelSerial {
		parsed, err := excelize.ExcelDateToTime(days, false)
		if err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date")
}

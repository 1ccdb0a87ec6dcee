package timesheet

import "strings"

// Columns maps the fields of a Shift to header names of the export.
// Either FullName or the FirstName/LastName pair must be present in the file.
type Columns struct {
	FullName  string `koanf:"fullname"`
	FirstName string `koanf:"firstname"`
	LastName  string `koanf:"lastname"`
	Email     string `koanf:"email"`
	Date      string `koanf:"date"`
	Hours     string `koanf:"hours"`
	Timezone  string `koanf:"timezone"`
	ShiftName string `koanf:"shiftname"`
}

// DefaultColumns follows the Dialpad WFM timesheet export.
func DefaultColumns() Columns {
	return Columns{
		FullName:  "full_name",
		FirstName: "first_name",
		LastName:  "last_name",
		Email:     "email",
		Date:      "shift_date",
		Hours:     "total_scheduled",
		Timezone:  "surfer_timezone",
		ShiftName: "subtype",
	}
}

// withDefaults fills empty names from DefaultColumns.
func (c Columns) withDefaults() Columns {
	d := DefaultColumns()
	pick := func(v, def string) string {
		if strings.TrimSpace(v) == "" {
			return def
		}
		return v
	}
	return Columns{
		FullName:  pick(c.FullName, d.FullName),
		FirstName: pick(c.FirstName, d.FirstName),
		LastName:  pick(c.LastName, d.LastName),
		Email:     pick(c.Email, d.Email),
		Date:      pick(c.Date, d.Date),
		Hours:     pick(c.Hours, d.Hours),
		Timezone:  pick(c.Timezone, d.Timezone),
		ShiftName: pick(c.ShiftName, d.ShiftName),
	}
}

// layout holds resolved column indexes, -1 when absent.
type layout struct {
	fullName, firstName, lastName int
	email, date, hours            int
	timezone, shiftName           int
	names                         Columns
	// serialDates allows Excel serial day numbers in the date column.
	serialDates bool
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\ufeff")))
}

func resolveLayout(header []string, columns Columns) (layout, error) {
	columns = columns.withDefaults()
	index := make(map[string]int, len(header))
	found := make([]string, 0, len(header))
	for i, h := range header {
		name := normalizeHeader(h)
		if name == "" {
			continue
		}
		if _, dup := index[name]; !dup {
			index[name] = i
		}
		found = append(found, name)
	}
	lookup := func(name string) int {
		if i, ok := index[normalizeHeader(name)]; ok {
			return i
		}
		return -1
	}

	l := layout{
		fullName:  lookup(columns.FullName),
		firstName: lookup(columns.FirstName),
		lastName:  lookup(columns.LastName),
		email:     lookup(columns.Email),
		date:      lookup(columns.Date),
		hours:     lookup(columns.Hours),
		timezone:  lookup(columns.Timezone),
		shiftName: lookup(columns.ShiftName),
		names:     columns,
	}

	var missing []string
	if l.fullName < 0 && l.firstName < 0 && l.lastName < 0 {
		missing = append(missing, columns.FullName+" or "+columns.FirstName+"/"+columns.LastName)
	}
	if l.email < 0 {
		missing = append(missing, columns.Email)
	}
	if l.date < 0 {
		missing = append(missing, columns.Date)
	}
	if l.hours < 0 {
		missing = append(missing, columns.Hours)
	}
	if len(missing) > 0 {
		return layout{}, &MissingColumnsError{Missing: missing, Found: found}
	}
	return l, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

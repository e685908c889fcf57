package records

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/forecasthealth/botech/pkg/errors"
	"github.com/forecasthealth/botech/pkg/metadata"
)

// Column names of the tabular record format. UID is optional.
const (
	ColumnAuthor       = "AUTHOR"
	ColumnCountry      = "COUNTRY"
	ColumnIntervention = "INTERVENTION"
	ColumnScenario     = "SCENARIO"
	ColumnTimestamp    = "TIMESTAMP"
	ColumnEffects      = "EFFECTS"
	ColumnCosts        = "COSTS"
	ColumnUID          = "UID"
)

var requiredColumns = []string{
	ColumnAuthor, ColumnCountry, ColumnIntervention, ColumnScenario,
	ColumnTimestamp, ColumnEffects, ColumnCosts,
}

// TimestampLayouts are tried in order when parsing the TIMESTAMP column.
var TimestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FromTable builds records from a header row and data rows.
// Header names are matched case-insensitively. Row numbers in errors are
// 1-indexed and count the header as row 1.
func FromTable(header []string, rows [][]string, adapter metadata.Adapter) ([]Record, error) {
	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(rows))
	for i, row := range rows {
		r, err := parseRow(index, row, i+2)
		if err != nil {
			return nil, err
		}
		out = append(out, New(r, adapter))
	}
	return out, nil
}

// ReadCSV reads records from CSV with a header row.
func ReadCSV(r io.Reader, adapter metadata.Adapter) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	table, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WrapParse("csv", "", err)
	}
	if len(table) == 0 {
		return nil, &errors.ParseError{Format: "csv", Message: "missing header row"}
	}
	return FromTable(table[0], table[1:], adapter)
}

// LoadCSV reads records from a CSV file.
func LoadCSV(path string, adapter metadata.Adapter) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	records, err := ReadCSV(f, adapter)
	if err != nil {
		var parseErr *errors.ParseError
		if errors.As(err, &parseErr) && parseErr.File == "" {
			parseErr.File = path
		}
		return nil, err
	}
	return records, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &errors.ParseError{
			Format:  "csv",
			Message: "missing required columns: " + strings.Join(missing, ", "),
		}
	}
	return index, nil
}

func parseRow(index map[string]int, row []string, line int) (Fields, error) {
	field := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	fail := func(col, msg string, err error) error {
		return &errors.ParseError{Format: "csv", Line: line, Column: col, Message: msg, Err: err}
	}

	ts, err := ParseTimestamp(field(ColumnTimestamp))
	if err != nil {
		return Fields{}, fail(ColumnTimestamp, err.Error(), err)
	}
	effects, err := strconv.ParseFloat(field(ColumnEffects), 64)
	if err != nil {
		return Fields{}, fail(ColumnEffects, "invalid number "+strconv.Quote(field(ColumnEffects)), err)
	}
	costs, err := strconv.ParseFloat(field(ColumnCosts), 64)
	if err != nil {
		return Fields{}, fail(ColumnCosts, "invalid number "+strconv.Quote(field(ColumnCosts)), err)
	}

	return Fields{
		Author:       field(ColumnAuthor),
		Country:      field(ColumnCountry),
		Intervention: field(ColumnIntervention),
		Scenario:     field(ColumnScenario),
		Timestamp:    ts,
		Effects:      effects,
		Costs:        costs,
		UID:          field(ColumnUID),
	}, nil
}

// ParseTimestamp parses a timestamp in any of TimestampLayouts.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range TimestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.NewValidationError("timestamp", value, "unrecognized timestamp "+strconv.Quote(value))
}

package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/forecasthealth/botech/pkg/compare"
	"github.com/forecasthealth/botech/pkg/groups"
	"github.com/forecasthealth/botech/pkg/records"
)

// Annotations attached to exported tables.
const (
	AnnotationRecords     = "filtered records"
	AnnotationComparisons = "comparisons"
)

// RecordColumns are the columns of a record table.
var RecordColumns = []string{
	"AUTHOR", "COUNTRY", "INTERVENTION", "SCENARIO", "TIMESTAMP",
	"EFFECTS", "COSTS", "REGION", "INCOME", "APPENDIX_3", "UID",
}

// ComparisonColumns are the columns of a comparison table.
var ComparisonColumns = []string{
	"AUTHOR", "COUNTRY", "INTERVENTION", "REGION", "INCOME", "APPENDIX_3",
	"SCENARIO_ONE", "SCENARIO_TWO",
	"EFFECTS_ONE", "COSTS_ONE", "EFFECTS_TWO", "COSTS_TWO",
	"NET_EFFECTS", "NET_COSTS", "COST_EFFECTIVENESS",
}

// Number is a numeric cell. Non-finite values stay numeric in every format
// that supports them.
type Number float64

// String formats the number in its shortest exact form, "+Inf" for infinity.
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// IsFinite reports whether n is neither infinite nor NaN.
func (n Number) IsFinite() bool {
	f := float64(n)
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// Row is one table row. Cells are strings or Numbers.
type Row []any

// Table is one flattened block of output.
type Table struct {
	// Axis is the group axis label, empty for ungrouped output.
	Axis string
	// Group is the combination label within Axis.
	Group string
	// Annotation describes what the rows are.
	Annotation string
	Columns    []string
	Rows       []Row
}

// Title returns a heading for the table, e.g. "comparisons (REGION: South Asia)".
func (t Table) Title() string {
	if t.Axis == "" {
		return t.Annotation
	}
	return t.Annotation + " (" + t.Axis + ": " + t.Group + ")"
}

// Strings returns the rows with every cell rendered as text.
func (t Table) Strings() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = cellString(cell)
		}
		out[i] = cells
	}
	return out
}

// RecordsTable builds an ungrouped table of records.
func RecordsTable(rs []records.Record) Table {
	return Table{Annotation: AnnotationRecords, Columns: RecordColumns, Rows: recordRows(rs)}
}

// ComparisonsTable builds an ungrouped table of comparisons.
func ComparisonsTable(cs []compare.Comparison) Table {
	return Table{Annotation: AnnotationComparisons, Columns: ComparisonColumns, Rows: comparisonRows(cs)}
}

// GroupedRecords flattens grouped records into one table per bucket.
func GroupedRecords(g *groups.Groups[records.Record]) []Table {
	var out []Table
	for _, axis := range g.Axes {
		for _, b := range axis.Buckets {
			t := RecordsTable(b.Elements)
			t.Axis, t.Group = axis.Label, b.Label
			out = append(out, t)
		}
	}
	return out
}

// GroupedComparisons flattens grouped comparisons into one table per bucket.
func GroupedComparisons(g *groups.Groups[compare.Comparison]) []Table {
	var out []Table
	for _, axis := range g.Axes {
		for _, b := range axis.Buckets {
			t := ComparisonsTable(b.Elements)
			t.Axis, t.Group = axis.Label, b.Label
			out = append(out, t)
		}
	}
	return out
}

func recordRows(rs []records.Record) []Row {
	rows := make([]Row, 0, len(rs))
	for _, r := range rs {
		rows = append(rows, Row{
			r.Author(), r.Country(), r.Intervention(), r.Scenario(), timestamp(r.Timestamp()),
			Number(r.Effects()), Number(r.Costs()), r.Region(), r.Income(), r.Appendix3(), r.UID(),
		})
	}
	return rows
}

func comparisonRows(cs []compare.Comparison) []Row {
	rows := make([]Row, 0, len(cs))
	for _, c := range cs {
		one, two := c.ScenarioOne(), c.ScenarioTwo()
		rows = append(rows, Row{
			one.Author(), one.Country(), one.Intervention(), one.Region(), one.Income(), one.Appendix3(),
			one.Scenario(), two.Scenario(),
			Number(one.Effects()), Number(one.Costs()), Number(two.Effects()), Number(two.Costs()),
			Number(c.NetEffects()), Number(c.NetCosts()), Number(c.CostEffectiveness()),
		})
	}
	return rows
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func cellString(cell any) string {
	switch v := cell.(type) {
	case string:
		return v
	case Number:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// headerTitle turns a column name such as COST_EFFECTIVENESS into
// "Cost Effectiveness".
func headerTitle(column string) string {
	caser := cases.Title(language.English)
	return caser.String(strings.ToLower(strings.ReplaceAll(column, "_", " ")))
}

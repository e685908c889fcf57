package export_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forecasthealth/botech/pkg/compare"
	"github.com/forecasthealth/botech/pkg/dimensions"
	"github.com/forecasthealth/botech/pkg/errors"
	"github.com/forecasthealth/botech/pkg/export"
	"github.com/forecasthealth/botech/pkg/groups"
	"github.com/forecasthealth/botech/pkg/metadata"
	"github.com/forecasthealth/botech/pkg/records"
)

var t1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func fixtures(t *testing.T) ([]records.Record, []compare.Comparison) {
	t.Helper()
	reg := metadata.TestRegistry(t)
	mk := func(country, scenario string, effects, costs float64) records.Record {
		return records.New(records.Fields{
			Author: "A", Country: country, Intervention: "vaccine", Scenario: scenario,
			Timestamp: t1, Effects: effects, Costs: costs,
		}, reg)
	}
	rs := []records.Record{
		mk("KE", "baseline", 10, 100),
		mk("KE", "scaled", 50, 300),
		mk("IN", "baseline", 5, 20),
		mk("IN", "scaled", 7, 20),
	}
	return rs, compare.Compare(rs, dimensions.Scenarios{One: "baseline", Two: "scaled"})
}

func TestParseFormat(t *testing.T) {
	for _, f := range export.Formats() {
		got, err := export.ParseFormat(strings.ToUpper(string(f)))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	got, err := export.ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, export.FormatYAML, got)

	got, err = export.ParseFormat("md")
	require.NoError(t, err)
	assert.Equal(t, export.FormatMarkdown, got)

	_, err = export.ParseFormat("xlsx")
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))

	_, err = export.NewWriter("pdf")
	assert.True(t, errors.IsConfigError(err))
}

func TestNumberString(t *testing.T) {
	assert.Equal(t, "0.2", export.Number(0.2).String())
	assert.Equal(t, "+Inf", export.Number(math.Inf(1)).String())
	assert.False(t, export.Number(math.Inf(1)).IsFinite())
	assert.True(t, export.Number(3).IsFinite())
}

func TestTables(t *testing.T) {
	rs, cs := fixtures(t)

	rt := export.RecordsTable(rs)
	assert.Equal(t, export.AnnotationRecords, rt.Title())
	require.Len(t, rt.Rows, 4)
	assert.Equal(t, []string{"A", "KE", "vaccine", "baseline", "2024-01-01T00:00:00Z", "10", "100",
		"Sub-Saharan Africa", "Lower middle income", "true", ""}, rt.Strings()[0])

	ct := export.ComparisonsTable(cs)
	require.Len(t, ct.Rows, 2)
	assert.Len(t, ct.Rows[0], len(export.ComparisonColumns))
	assert.Equal(t, "0.2", ct.Strings()[0][len(export.ComparisonColumns)-1])
	assert.Equal(t, "+Inf", ct.Strings()[1][len(export.ComparisonColumns)-1])
}

func TestGroupedTables(t *testing.T) {
	_, cs := fixtures(t)

	g, err := groups.Group([]dimensions.GroupSpec{{dimensions.Region}}, cs)
	require.NoError(t, err)

	tables := export.GroupedComparisons(g)
	require.Len(t, tables, 2)
	assert.Equal(t, "REGION", tables[0].Axis)
	assert.Equal(t, "South Asia", tables[0].Group)
	assert.Equal(t, "comparisons (REGION: South Asia)", tables[0].Title())
	assert.Equal(t, "Sub-Saharan Africa", tables[1].Group)
}

func TestWriteCSV(t *testing.T) {
	rs, _ := fixtures(t)

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatCSV, []export.Table{export.RecordsTable(rs)}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, export.RecordColumns, rows[0])
	assert.Equal(t, "KE", rows[1][1])
}

func TestWriteCSVGrouped(t *testing.T) {
	rs, _ := fixtures(t)
	g, err := groups.Group([]dimensions.GroupSpec{{dimensions.Country}}, rs)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatCSV, export.GroupedRecords(g)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"GROUPING", "GROUP", "AUTHOR"}, rows[0][:3])
	assert.Equal(t, []string{"COUNTRY", "IN"}, rows[1][:2])
	assert.Equal(t, []string{"COUNTRY", "KE"}, rows[4][:2])
}

func TestWriteJSON(t *testing.T) {
	_, cs := fixtures(t)

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatJSON, []export.Table{export.ComparisonsTable(cs)}))

	var decoded []struct {
		Annotation string           `json:"annotation"`
		Rows       []map[string]any `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "comparisons", decoded[0].Annotation)
	require.Len(t, decoded[0].Rows, 2)
	assert.InDelta(t, 0.2, decoded[0].Rows[0]["COST_EFFECTIVENESS"], 1e-12)
	assert.Equal(t, "+Inf", decoded[0].Rows[1]["COST_EFFECTIVENESS"])
	assert.Equal(t, 40.0, decoded[0].Rows[0]["NET_EFFECTS"])

	assert.Less(t, strings.Index(buf.String(), `"AUTHOR"`), strings.Index(buf.String(), `"COUNTRY"`))
}

func TestWriteYAML(t *testing.T) {
	_, cs := fixtures(t)

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatYAML, []export.Table{export.ComparisonsTable(cs)}))

	var decoded []struct {
		Annotation string           `yaml:"annotation"`
		Rows       []map[string]any `yaml:"rows"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	require.Len(t, decoded[0].Rows, 2)
	assert.Equal(t, "KE", decoded[0].Rows[0]["COUNTRY"])
	ce, ok := decoded[0].Rows[1]["COST_EFFECTIVENESS"].(float64)
	require.True(t, ok)
	assert.True(t, math.IsInf(ce, 1))
}

func TestWriteHTMLEscapes(t *testing.T) {
	table := export.Table{
		Annotation: "filtered records",
		Columns:    []string{"AUTHOR"},
		Rows:       []export.Row{{"<script>"}},
	}

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatHTML, []export.Table{table}))

	out := buf.String()
	assert.Contains(t, out, "<h2>filtered records</h2>")
	assert.Contains(t, out, "<th>AUTHOR</th>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<script>")
}

func TestWriteTable(t *testing.T) {
	_, cs := fixtures(t)

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatTable, []export.Table{export.ComparisonsTable(cs)}))

	out := buf.String()
	assert.Contains(t, out, "comparisons (2 rows)")
	assert.Contains(t, out, "+Inf")
}

func TestWriteMarkdown(t *testing.T) {
	rs, _ := fixtures(t)
	g, err := groups.Group([]dimensions.GroupSpec{{dimensions.Income}}, rs)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatMarkdown, export.GroupedRecords(g)))

	out := buf.String()
	assert.Contains(t, out, "## filtered records (INCOME: Lower middle income)")
	assert.Contains(t, out, "Author")
	assert.Contains(t, out, "4 rows")
}

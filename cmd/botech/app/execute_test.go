package app

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forecasthealth/botech/pkg/errors"
)

func TestExecuteTablesGroupedComparisons(t *testing.T) {
	app, stdout, _ := newTestApp(t)

	err := app.Execute(context.Background(), []string{
		"tables", "--spec", testdata + "spec.yaml", "--data", testdata + "records.csv",
	})
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(stdout.String())).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, "GROUPING", rows[0][0])
	assert.Equal(t, "GROUP", rows[0][1])

	out := stdout.String()
	assert.Contains(t, out, "ihme")
	assert.Contains(t, out, "who")
	assert.Contains(t, out, "+Inf", "UG bednets has zero net cost")
	assert.NotContains(t, out, ",US,", "US is outside the region filter")
	assert.NotContains(t, out, ",IN,", "IN lacks the second scenario")
}

func TestExecuteCompareJSON(t *testing.T) {
	app, stdout, _ := newTestApp(t)

	err := app.Execute(context.Background(), []string{
		"compare", "-s", testdata + "spec.json", "-d", testdata + "records.csv", "--format", "json",
	})
	require.NoError(t, err)

	var tables []struct {
		Annotation string           `json:"annotation"`
		Rows       []map[string]any `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &tables))
	require.Len(t, tables, 1)
	assert.Equal(t, "comparisons", tables[0].Annotation)
	require.Len(t, tables[0].Rows, 2)

	ke := tables[0].Rows[0]
	assert.Equal(t, "KE", ke["COUNTRY"])
	assert.InDelta(t, 40, ke["NET_EFFECTS"], 1e-9)
	assert.InDelta(t, 200, ke["NET_COSTS"], 1e-9)
	assert.InDelta(t, 0.2, ke["COST_EFFECTIVENESS"], 1e-9)

	ug := tables[0].Rows[1]
	assert.Equal(t, "UG", ug["COUNTRY"])
	assert.Equal(t, "+Inf", ug["COST_EFFECTIVENESS"])
}

func TestExecuteTablesTypeOverride(t *testing.T) {
	app, stdout, _ := newTestApp(t)

	err := app.Execute(context.Background(), []string{
		"tables", "-s", testdata + "spec.json", "-d", testdata + "records.csv",
	})
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(stdout.String())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "AUTHOR", rows[0][0])
	assert.Len(t, rows, 5, "header plus the latest record per scenario for KE and UG")
	assert.NotContains(t, stdout.String(), "r3", "stale record is dropped")
}

func TestExecuteNoData(t *testing.T) {
	app, _, _ := newTestApp(t)

	err := app.Execute(context.Background(), []string{
		"tables", "-s", testdata + "empty.yaml", "-d", testdata + "records.csv",
	})
	require.Error(t, err)
	assert.True(t, errors.IsNoData(err))
	assert.Contains(t, err.Error(), "no data matched filters")
}

func TestExecuteInvalidFormat(t *testing.T) {
	app, _, _ := newTestApp(t)

	err := app.Execute(context.Background(), []string{
		"tables", "-s", testdata + "spec.json", "-d", testdata + "records.csv", "--format", "xlsx",
	})
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
}

func TestExecuteMissingSpec(t *testing.T) {
	app, _, _ := newTestApp(t)

	err := app.Execute(context.Background(), []string{"tables", "-d", testdata + "records.csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spec")
}

func TestExecuteRecords(t *testing.T) {
	app, stdout, _ := newTestApp(t)

	err := app.Execute(context.Background(), []string{
		"records", "-s", testdata + "spec.json", "-d", testdata + "records.csv",
	})
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(stdout.String())).ReadAll()
	require.NoError(t, err)
	// ihme records in KE, UG and IN for either scenario, stale and incomplete included.
	assert.Len(t, rows, 7)
}

func TestExecuteWishList(t *testing.T) {
	app, stdout, stderr := newTestApp(t)

	err := app.Execute(context.Background(), []string{
		"wishlist", "-s", testdata + "spec.json", "-d", testdata + "records.csv", "-o", "json",
	})
	require.NoError(t, err)

	// 1 author x 3 countries x 2 interventions x 2 scenarios
	assert.Contains(t, stderr.String(), "wish list size: 12")

	var entries []map[string]string
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &entries))
	assert.Len(t, entries, 12)
}

func TestExecuteMatchedStats(t *testing.T) {
	app, stdout, _ := newTestApp(t)

	err := app.Execute(context.Background(), []string{
		"matched", "-s", testdata + "spec.json", "-d", testdata + "records.csv", "--stats", "-o", "json",
	})
	require.NoError(t, err)

	var steps []map[string]string
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &steps))
	counts := make(map[string]string)
	for _, s := range steps {
		counts[s["step"]] = s["records"]
	}
	assert.Equal(t, "11", counts["source"])
	assert.Equal(t, "6", counts["matched"])
	assert.Equal(t, "5", counts["complete"])
	assert.Equal(t, "4", counts["kept"])
	assert.Equal(t, "1", counts["dropped stale"])
}

func TestExecuteMatchedRecords(t *testing.T) {
	app, stdout, stderr := newTestApp(t)

	err := app.Execute(context.Background(), []string{
		"matched", "-s", testdata + "spec.yaml", "-d", testdata + "records.csv",
	})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "filtered records")
	assert.Contains(t, stderr.String(), "6 kept")
}

func TestExecuteCountries(t *testing.T) {
	app, stdout, _ := newTestApp(t)

	require.NoError(t, app.Execute(context.Background(), []string{"countries", "-o", "json"}))

	var countries []map[string]string
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &countries))
	assert.NotEmpty(t, countries)
	assert.Contains(t, countries, map[string]string{
		"code":       "KE",
		"name":       "Kenya",
		"region":     "Sub-Saharan Africa",
		"income":     "Lower middle income",
		"appendix_3": "true",
	})
}

func TestExecuteCountriesCategory(t *testing.T) {
	app, stdout, _ := newTestApp(t)

	require.NoError(t, app.Execute(context.Background(), []string{
		"countries", "--category", "income", "-o", "yaml", "--metadata", testdata + "countries.yaml",
	}))
	out := stdout.String()
	assert.Contains(t, out, "Low income")
	assert.Contains(t, out, "High income")

	err := app.Execute(context.Background(), []string{"countries", "--category", "continent"})
	assert.True(t, errors.IsValidationError(err))
}

func TestExecuteCountriesByCode(t *testing.T) {
	app, stdout, _ := newTestApp(t)

	require.NoError(t, app.Execute(context.Background(), []string{"countries", "ug", "KE", "-o", "json"}))
	var countries []map[string]string
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &countries))
	require.Len(t, countries, 2)
	assert.Equal(t, "UG", countries[0]["code"])
	assert.Equal(t, "KE", countries[1]["code"])

	err := app.Execute(context.Background(), []string{"countries", "KE", "ZZ"})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Contains(t, err.Error(), "ZZ")
}

func TestExecuteVersion(t *testing.T) {
	app, stdout, _ := newTestApp(t)

	require.NoError(t, app.Execute(context.Background(), []string{"version"}))
	assert.Equal(t, "botech 1.0.0\n", stdout.String())

	stdout.Reset()
	require.NoError(t, app.Execute(context.Background(), []string{"version", "-v"}))
	assert.Contains(t, stdout.String(), "commit:   abc123")
}

func TestExecuteTablesOut(t *testing.T) {
	app, stdout, _ := newTestApp(t)
	path := filepath.Join(t.TempDir(), "out", "comparisons.html")

	err := app.Execute(context.Background(), []string{
		"compare", "-s", testdata + "spec.json", "-d", testdata + "records.csv",
		"--format", "html", "--out", path,
	})
	require.NoError(t, err)
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<table")
	assert.Contains(t, string(data), "comparisons")
}

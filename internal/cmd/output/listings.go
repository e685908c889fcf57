package output

import (
	"strconv"
	"strings"

	"github.com/forecasthealth/botech/pkg/metadata"
	"github.com/forecasthealth/botech/pkg/reconcile"
	"github.com/forecasthealth/botech/pkg/wishlist"
)

// CountriesData lists countries with their classifications.
func CountriesData(countries []metadata.Country) Data {
	d := Data{Headers: []string{"Code", "Name", "Region", "Income", "Appendix 3"}}
	for _, c := range countries {
		d.Rows = append(d.Rows, []string{c.Code, c.Name, c.Region, c.Income, strconv.FormatBool(c.Appendix3)})
	}
	return d
}

// CategoryData lists the values of one category and the countries in each.
func CategoryData(category string, values map[string][]string, order []string) Data {
	d := Data{
		Headers:         []string{category, "Countries", "Codes"},
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignLeft},
	}
	for _, value := range order {
		codes := values[value]
		d.Rows = append(d.Rows, []string{value, strconv.Itoa(len(codes)), strings.Join(codes, " ")})
	}
	return d
}

// EntriesData lists wish list entries.
func EntriesData(entries []wishlist.Entry) Data {
	d := Data{Headers: []string{"Author", "Country", "Intervention", "Scenario"}}
	for _, e := range entries {
		d.Rows = append(d.Rows, []string{e.Author, e.Country, e.Intervention, e.Scenario})
	}
	return d
}

// StatisticsData lists reconciliation step counts.
func StatisticsData(stats reconcile.Statistics) Data {
	d := Data{
		Headers:         []string{"Step", "Records"},
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
	for _, row := range []struct {
		step  string
		count int
	}{
		{"source", stats.Source},
		{"wish list", stats.WishList},
		{"matched", stats.Matched},
		{"complete", stats.Complete},
		{"kept", stats.Kept},
		{"dropped unmatched", stats.DroppedUnmatched},
		{"dropped incomplete", stats.DroppedIncomplete},
		{"dropped stale", stats.DroppedStale},
	} {
		d.Rows = append(d.Rows, []string{row.step, strconv.Itoa(row.count)})
	}
	return d
}

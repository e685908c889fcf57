package records

import "github.com/forecasthealth/botech/pkg/dimensions"

// Filter keeps the records reported under one of the two scenarios whose
// value for every restricted dimension is allowed. Unlike reconciliation it
// performs no completeness or recency checks.
func Filter(records []Record, scenarios dimensions.Scenarios, filters dimensions.Filters) []Record {
	var out []Record
	for _, r := range records {
		if !scenarios.Contains(r.Scenario()) {
			continue
		}
		if matches(r, filters) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r Record, filters dimensions.Filters) bool {
	for d := range filters {
		if !filters.Allows(d, r.Value(d)) {
			return false
		}
	}
	return true
}

// Package wishlist builds the set of record keys that should exist in the
// data for a given set of filters.
//
// The wish list is the cartesian product of candidate authors, countries and
// interventions crossed with the two scenario labels. It carries keys only;
// no measurement values.
package wishlist

import (
	"sort"

	"github.com/forecasthealth/botech/pkg/dimensions"
	"github.com/forecasthealth/botech/pkg/metadata"
)

// Entry is one required (author, country, intervention, scenario) combination.
type Entry struct {
	Author       string
	Country      string
	Intervention string
	Scenario     string
}

// Value implements dimensions.Valuer for the key dimensions.
func (e Entry) Value(d dimensions.Dimension) string {
	switch d {
	case dimensions.Author:
		return e.Author
	case dimensions.Country:
		return e.Country
	case dimensions.Intervention:
		return e.Intervention
	default:
		return ""
	}
}

// Candidates are the resolved values each key dimension may take.
type Candidates struct {
	Authors       []string
	Countries     []string
	Interventions []string

	// DroppedCountries lists codes from a country filter that the
	// metadata does not know.
	DroppedCountries []string
}

// Size returns the number of entries the candidates expand to.
func (c Candidates) Size() int {
	return len(c.Authors) * len(c.Countries) * len(c.Interventions) * 2
}

// Resolve determines the candidate values for each key dimension.
//
// Countries come from the geographic filters: a country filter keeps the
// listed codes the adapter knows, and region, income and appendix_3 filters
// each resolve to the union of the countries in their listed values. All
// resolved sets are intersected. Without any geographic filter every known
// country is a candidate. Authors and interventions use the filter's list
// when present and the observed values otherwise.
func Resolve(filters dimensions.Filters, observedAuthors, observedInterventions []string, adapter metadata.Adapter) Candidates {
	countries, dropped := resolveCountries(filters, adapter)
	return Candidates{
		Authors:          literalOrObserved(filters, dimensions.Author, observedAuthors),
		Countries:        countries,
		Interventions:    literalOrObserved(filters, dimensions.Intervention, observedInterventions),
		DroppedCountries: dropped,
	}
}

// Expand builds the cartesian product of the candidates and both scenarios.
// An empty candidate set for any dimension yields an empty wish list.
func Expand(c Candidates, scenarios dimensions.Scenarios) []Entry {
	if c.Size() == 0 {
		return nil
	}
	entries := make([]Entry, 0, c.Size())
	for _, author := range c.Authors {
		for _, country := range c.Countries {
			for _, intervention := range c.Interventions {
				for _, scenario := range scenarios.Labels() {
					entries = append(entries, Entry{
						Author:       author,
						Country:      country,
						Intervention: intervention,
						Scenario:     scenario,
					})
				}
			}
		}
	}
	return entries
}

// Generate resolves candidates and expands them into the wish list.
func Generate(scenarios dimensions.Scenarios, filters dimensions.Filters, observedAuthors, observedInterventions []string, adapter metadata.Adapter) []Entry {
	return Expand(Resolve(filters, observedAuthors, observedInterventions, adapter), scenarios)
}

func literalOrObserved(filters dimensions.Filters, d dimensions.Dimension, observed []string) []string {
	if values, ok := filters[d]; ok {
		return dedupe(values)
	}
	return dedupe(observed)
}

func resolveCountries(filters dimensions.Filters, adapter metadata.Adapter) (countries, dropped []string) {
	if adapter == nil {
		return nil, nil
	}

	var sets []map[string]struct{}

	for _, d := range dimensions.Derived() {
		values, ok := filters[d]
		if !ok {
			continue
		}
		mapping := adapter.CountriesByCategory(d.Category())
		set := make(map[string]struct{})
		for _, v := range values {
			for _, code := range mapping[v] {
				set[code] = struct{}{}
			}
		}
		sets = append(sets, set)
	}

	if values, ok := filters[dimensions.Country]; ok {
		set := make(map[string]struct{})
		for _, v := range values {
			c, found := adapter.Lookup(v)
			if !found {
				dropped = append(dropped, v)
				continue
			}
			set[c.Code] = struct{}{}
		}
		sets = append(sets, set)
	}

	if len(sets) == 0 {
		return adapter.AllCountryCodes(), dropped
	}

	for code := range sets[0] {
		inAll := true
		for _, other := range sets[1:] {
			if _, ok := other[code]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			countries = append(countries, code)
		}
	}
	sort.Strings(countries)
	return countries, dropped
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

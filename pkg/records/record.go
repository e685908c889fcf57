// Package records holds reported scenario measurements and the in-memory
// store they are loaded into.
package records

import (
	"strconv"
	"strings"
	"time"

	"github.com/forecasthealth/botech/pkg/dimensions"
	"github.com/forecasthealth/botech/pkg/metadata"
)

// Fields are the reported values of a record, before derivation.
type Fields struct {
	Author       string
	Country      string
	Intervention string
	Scenario     string
	Timestamp    time.Time
	Effects      float64
	Costs        float64
	UID          string
}

// Record is a single reported measurement.
// Records are immutable once constructed; derived classification fields
// are resolved once, in New.
type Record struct {
	author       string
	country      string
	intervention string
	scenario     string
	timestamp    time.Time
	effects      float64
	costs        float64
	uid          string

	region    string
	income    string
	appendix3 string
}

// New constructs a Record and derives its classification fields from the
// adapter. An unknown country, or a nil adapter, leaves them empty.
// Country codes are stored upper-cased to match the wish list.
func New(f Fields, adapter metadata.Adapter) Record {
	r := Record{
		author:       f.Author,
		country:      strings.ToUpper(strings.TrimSpace(f.Country)),
		intervention: f.Intervention,
		scenario:     f.Scenario,
		timestamp:    f.Timestamp,
		effects:      f.Effects,
		costs:        f.Costs,
		uid:          f.UID,
	}
	if adapter == nil {
		return r
	}
	if c, ok := adapter.Lookup(r.country); ok {
		r.region = c.Region
		r.income = c.Income
		r.appendix3 = strconv.FormatBool(c.Appendix3)
	}
	return r
}

// Author returns the reporting author.
func (r Record) Author() string { return r.author }

// Country returns the ISO alpha-2 country code.
func (r Record) Country() string { return r.country }

// Intervention returns the intervention name.
func (r Record) Intervention() string { return r.intervention }

// Scenario returns the scenario label.
func (r Record) Scenario() string { return r.scenario }

// Timestamp returns when the measurement was reported.
func (r Record) Timestamp() time.Time { return r.timestamp }

// Effects returns the reported health effects.
func (r Record) Effects() float64 { return r.effects }

// Costs returns the reported costs.
func (r Record) Costs() float64 { return r.costs }

// UID returns the optional unique identifier, empty when absent.
func (r Record) UID() string { return r.uid }

// Region returns the derived region, empty when the country is unknown.
func (r Record) Region() string { return r.region }

// Income returns the derived income group, empty when the country is unknown.
func (r Record) Income() string { return r.income }

// Appendix3 returns "true" or "false", empty when the country is unknown.
func (r Record) Appendix3() string { return r.appendix3 }

// Fields returns the reported values.
func (r Record) Fields() Fields {
	return Fields{
		Author:       r.author,
		Country:      r.country,
		Intervention: r.intervention,
		Scenario:     r.scenario,
		Timestamp:    r.timestamp,
		Effects:      r.effects,
		Costs:        r.costs,
		UID:          r.uid,
	}
}

// Value implements dimensions.Valuer.
func (r Record) Value(d dimensions.Dimension) string {
	switch d {
	case dimensions.Author:
		return r.author
	case dimensions.Country:
		return r.country
	case dimensions.Intervention:
		return r.intervention
	case dimensions.Region:
		return r.region
	case dimensions.Income:
		return r.income
	case dimensions.Appendix3:
		return r.appendix3
	default:
		return ""
	}
}

// Key returns the (author, country, intervention) triple.
func (r Record) Key() Key {
	return Key{Author: r.author, Country: r.country, Intervention: r.intervention}
}

// ScenarioKey returns the full (author, country, intervention, scenario) key.
func (r Record) ScenarioKey() ScenarioKey {
	return ScenarioKey{Key: r.Key(), Scenario: r.scenario}
}

// Key identifies one reported comparison: who modelled which intervention where.
type Key struct {
	Author       string
	Country      string
	Intervention string
}

// ScenarioKey is a Key under one scenario.
type ScenarioKey struct {
	Key
	Scenario string
}

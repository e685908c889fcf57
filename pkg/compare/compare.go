// Package compare pairs reconciled scenario records and derives
// cost-effectiveness metrics.
package compare

import (
	"math"

	"github.com/forecasthealth/botech/pkg/dimensions"
	"github.com/forecasthealth/botech/pkg/errors"
	"github.com/forecasthealth/botech/pkg/records"
)

// Comparison pairs a scenario-one record with the scenario-two record for
// the same author, country and intervention.
type Comparison struct {
	one records.Record
	two records.Record

	netEffects        float64
	netCosts          float64
	costEffectiveness float64
}

// New builds a Comparison. Both records must share author, country and
// intervention. Net values are two minus one; cost-effectiveness is net
// effects over net costs, or +Inf when net costs are exactly zero.
func New(one, two records.Record) (Comparison, error) {
	if one.Key() != two.Key() {
		return Comparison{}, errors.NewValidationError("records", two.Key(),
			"scenario records must share author, country and intervention")
	}

	c := Comparison{
		one:        one,
		two:        two,
		netEffects: two.Effects() - one.Effects(),
		netCosts:   two.Costs() - one.Costs(),
	}
	if c.netCosts != 0 {
		c.costEffectiveness = c.netEffects / c.netCosts
	} else {
		c.costEffectiveness = math.Inf(1)
	}
	return c, nil
}

// ScenarioOne returns the reference scenario record.
func (c Comparison) ScenarioOne() records.Record { return c.one }

// ScenarioTwo returns the compared scenario record.
func (c Comparison) ScenarioTwo() records.Record { return c.two }

// NetEffects returns ScenarioTwo effects minus ScenarioOne effects.
func (c Comparison) NetEffects() float64 { return c.netEffects }

// NetCosts returns ScenarioTwo costs minus ScenarioOne costs.
func (c Comparison) NetCosts() float64 { return c.netCosts }

// CostEffectiveness returns NetEffects / NetCosts, or +Inf for zero net cost.
func (c Comparison) CostEffectiveness() float64 { return c.costEffectiveness }

// Key returns the shared (author, country, intervention) triple.
func (c Comparison) Key() records.Key { return c.one.Key() }

// Value implements dimensions.Valuer. Values are read from ScenarioOne.
func (c Comparison) Value(d dimensions.Dimension) string {
	return c.one.Value(d)
}

// Compare pairs every scenario-one record with the scenario-two record for
// the same key. Scenario-one records without a partner are skipped.
// Comparisons follow the input order of their scenario-one records.
func Compare(reconciled []records.Record, scenarios dimensions.Scenarios) []Comparison {
	partners := make(map[records.Key]records.Record)
	for _, r := range reconciled {
		if r.Scenario() != scenarios.Two {
			continue
		}
		if _, seen := partners[r.Key()]; !seen {
			partners[r.Key()] = r
		}
	}

	var out []Comparison
	for _, r := range reconciled {
		if r.Scenario() != scenarios.One {
			continue
		}
		two, ok := partners[r.Key()]
		if !ok {
			continue
		}
		// keys are equal by construction
		c, _ := New(r, two)
		out = append(out, c)
	}
	return out
}

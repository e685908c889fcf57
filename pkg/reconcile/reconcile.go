// Package reconcile matches source records against a wish list and reduces
// them to one complete, current record pair per comparison key.
//
// Reconciliation runs three steps in order:
//
//  1. Match keeps records whose author, country, intervention and scenario
//     each appear among the wish list's values for that field. Fields are
//     tested independently, not as a tuple.
//  2. Complete drops every (author, country, intervention) group that lacks
//     a record for either scenario.
//  3. Latest keeps the most recent record per (author, country,
//     intervention, scenario). On equal timestamps the record that appears
//     first in the input wins.
//
// Every step preserves the input order of the records it keeps.
package reconcile

import (
	"time"

	"github.com/forecasthealth/botech/pkg/dimensions"
	"github.com/forecasthealth/botech/pkg/records"
	"github.com/forecasthealth/botech/pkg/wishlist"
)

// Reconcile runs Match, Complete and Latest over source.
// An empty result is not an error; callers decide how to report it.
func Reconcile(source []records.Record, wish []wishlist.Entry, scenarios dimensions.Scenarios) *Result {
	start := time.Now()

	matched := Match(source, wish)
	complete := Complete(matched, scenarios)
	latest := Latest(complete)

	end := time.Now()
	return &Result{
		Records: latest,
		Stats: Statistics{
			Source:            len(source),
			WishList:          len(wish),
			Matched:           len(matched),
			Complete:          len(complete),
			Kept:              len(latest),
			DroppedUnmatched:  len(source) - len(matched),
			DroppedIncomplete: len(matched) - len(complete),
			DroppedStale:      len(complete) - len(latest),
		},
		Metadata: Metadata{
			Scenarios: scenarios,
			StartTime: start,
			EndTime:   end,
			Duration:  end.Sub(start),
		},
	}
}

// Match keeps the records whose four key fields are each present among the
// wish list's values for that field.
func Match(source []records.Record, wish []wishlist.Entry) []records.Record {
	if len(wish) == 0 {
		return nil
	}

	authors := make(set)
	countries := make(set)
	interventions := make(set)
	scenarios := make(set)
	for _, e := range wish {
		authors.add(e.Author)
		countries.add(e.Country)
		interventions.add(e.Intervention)
		scenarios.add(e.Scenario)
	}

	var out []records.Record
	for _, r := range source {
		if authors.has(r.Author()) &&
			countries.has(r.Country()) &&
			interventions.has(r.Intervention()) &&
			scenarios.has(r.Scenario()) {
			out = append(out, r)
		}
	}
	return out
}

// Complete keeps the records of every (author, country, intervention) group
// that has at least one record for each scenario.
func Complete(matched []records.Record, scenarios dimensions.Scenarios) []records.Record {
	type presence struct{ one, two bool }
	groups := make(map[records.Key]*presence)

	for _, r := range matched {
		p, ok := groups[r.Key()]
		if !ok {
			p = &presence{}
			groups[r.Key()] = p
		}
		switch r.Scenario() {
		case scenarios.One:
			p.one = true
		case scenarios.Two:
			p.two = true
		}
	}

	var out []records.Record
	for _, r := range matched {
		if p := groups[r.Key()]; p.one && p.two {
			out = append(out, r)
		}
	}
	return out
}

// Latest keeps the record with the greatest timestamp per (author, country,
// intervention, scenario). Ties keep the earliest record in input order.
func Latest(rs []records.Record) []records.Record {
	best := make(map[records.ScenarioKey]int, len(rs))
	for i, r := range rs {
		k := r.ScenarioKey()
		j, ok := best[k]
		if !ok || r.Timestamp().After(rs[j].Timestamp()) {
			best[k] = i
		}
	}

	var out []records.Record
	for i, r := range rs {
		if best[r.ScenarioKey()] == i {
			out = append(out, r)
		}
	}
	return out
}

type set map[string]struct{}

func (s set) add(v string) { s[v] = struct{}{} }

func (s set) has(v string) bool {
	_, ok := s[v]
	return ok
}

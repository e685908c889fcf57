// Package groups partitions records or comparisons along one or more
// grouping axes.
//
// Each axis is a dimensions.GroupSpec. For every axis the distinct values of
// each of its dimensions are collected, and every combination of those
// values becomes a bucket, including combinations no element has.
package groups

import (
	"fmt"
	"sort"
	"strings"

	"github.com/forecasthealth/botech/pkg/compare"
	"github.com/forecasthealth/botech/pkg/dimensions"
	"github.com/forecasthealth/botech/pkg/errors"
	"github.com/forecasthealth/botech/pkg/records"
)

// Element is anything that can be grouped.
type Element interface {
	dimensions.Valuer
}

// UnknownValue labels an empty dimension value in combination labels.
const UnknownValue = "unknown"

// Bucket holds the elements of one value combination.
type Bucket[E Element] struct {
	Label    string
	Values   []string
	Elements []E
}

// Axis holds every bucket of one grouping axis in enumeration order.
type Axis[E Element] struct {
	Label   string
	Spec    dimensions.GroupSpec
	Buckets []Bucket[E]
}

// Total returns the number of elements across all buckets.
func (a Axis[E]) Total() int {
	n := 0
	for _, b := range a.Buckets {
		n += len(b.Elements)
	}
	return n
}

// Groups is the result of grouping, with axes in specification order.
type Groups[E Element] struct {
	Axes []Axis[E]
}

// Map returns the two-level mapping axis label -> combination label -> elements.
func (g *Groups[E]) Map() map[string]map[string][]E {
	out := make(map[string]map[string][]E, len(g.Axes))
	for _, axis := range g.Axes {
		buckets := make(map[string][]E, len(axis.Buckets))
		for _, b := range axis.Buckets {
			buckets[b.Label] = b.Elements
		}
		out[axis.Label] = buckets
	}
	return out
}

// Axis returns the axis with the given label.
func (g *Groups[E]) Axis(label string) (Axis[E], bool) {
	for _, axis := range g.Axes {
		if axis.Label == label {
			return axis, true
		}
	}
	return Axis[E]{}, false
}

// Group partitions elements along every spec.
//
// Distinct values are sorted, so buckets are enumerated in a stable order.
// Empty combinations are kept.
func Group[E Element](specs []dimensions.GroupSpec, elements []E) (*Groups[E], error) {
	g := &Groups[E]{Axes: make([]Axis[E], 0, len(specs))}
	for _, spec := range specs {
		if len(spec) == 0 {
			return nil, errors.NewValidationError("groups", nil, "group definition must name at least one dimension")
		}
		for _, d := range spec {
			if !d.Valid() {
				return nil, errors.NewValidationError("groups", d, "unknown dimension")
			}
		}
		g.Axes = append(g.Axes, group(spec, elements))
	}
	return g, nil
}

func group[E Element](spec dimensions.GroupSpec, elements []E) Axis[E] {
	values := make([][]string, len(spec))
	for i, d := range spec {
		values[i] = distinct(elements, d)
	}

	axis := Axis[E]{Label: spec.Label(), Spec: spec}
	for _, combo := range product(values) {
		bucket := Bucket[E]{Label: comboLabel(combo), Values: combo, Elements: []E{}}
		for _, e := range elements {
			if matches(e, spec, combo) {
				bucket.Elements = append(bucket.Elements, e)
			}
		}
		axis.Buckets = append(axis.Buckets, bucket)
	}
	return axis
}

func matches[E Element](e E, spec dimensions.GroupSpec, combo []string) bool {
	for i, d := range spec {
		if e.Value(d) != combo[i] {
			return false
		}
	}
	return true
}

func distinct[E Element](elements []E, d dimensions.Dimension) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range elements {
		v := e.Value(d)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// product enumerates the cartesian product of value lists, varying the last
// list fastest. Any empty list yields no combinations.
func product(values [][]string) [][]string {
	total := 1
	for _, vs := range values {
		total *= len(vs)
	}
	out := make([][]string, 0, total)
	for n := 0; n < total; n++ {
		combo := make([]string, len(values))
		rem := n
		for i := len(values) - 1; i >= 0; i-- {
			combo[i] = values[i][rem%len(values[i])]
			rem /= len(values[i])
		}
		out = append(out, combo)
	}
	return out
}

func comboLabel(combo []string) string {
	parts := make([]string, len(combo))
	for i, v := range combo {
		if v == "" {
			v = UnknownValue
		}
		parts[i] = v
	}
	return strings.Join(parts, dimensions.Separator)
}

// Any is the result of GroupAny: exactly one of Records and Comparisons is set.
type Any struct {
	Records     *Groups[records.Record]
	Comparisons *Groups[compare.Comparison]
}

// GroupAny groups dynamically typed elements, which must all be records or
// all be comparisons. Mixed or unsupported input is a usage error.
func GroupAny(specs []dimensions.GroupSpec, elements []any) (Any, error) {
	var (
		rs []records.Record
		cs []compare.Comparison
	)
	for i, e := range elements {
		switch v := e.(type) {
		case records.Record:
			rs = append(rs, v)
		case compare.Comparison:
			cs = append(cs, v)
		default:
			return Any{}, errors.NewValidationError("elements", fmt.Sprintf("%T", e),
				fmt.Sprintf("element %d is neither a record nor a comparison", i))
		}
	}
	if len(rs) > 0 && len(cs) > 0 {
		return Any{}, errors.NewValidationError("elements", nil, "elements must be all records or all comparisons")
	}

	if len(cs) > 0 {
		g, err := Group(specs, cs)
		return Any{Comparisons: g}, err
	}
	g, err := Group(specs, rs)
	return Any{Records: g}, err
}

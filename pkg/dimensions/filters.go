package dimensions

import (
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/forecasthealth/botech/pkg/errors"
)

// Filters maps a dimension to its allowed values.
// An absent dimension places no restriction on that axis.
type Filters map[Dimension][]string

// ParseFilters converts a name-keyed filter mapping, as found in
// configuration files, into Filters.
func ParseFilters(raw map[string][]string) (Filters, error) {
	filters := make(Filters, len(raw))
	for name, values := range raw {
		d, err := Parse(name)
		if err != nil {
			return nil, errors.NewConfigError("filters", "unknown dimension "+quote(name), err)
		}
		if d == Appendix3 {
			if values, err = normaliseBools(values); err != nil {
				return nil, errors.NewConfigError("filters", "invalid "+quote(name)+" value", err)
			}
		}
		filters[d] = append(filters[d], values...)
	}
	return filters, nil
}

// normaliseBools rewrites boolean spellings such as "1" or "TRUE" to the
// canonical "true"/"false" carried by derived record values.
func normaliseBools(values []string) ([]string, error) {
	out := make([]string, len(values))
	for i, v := range values {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, err
		}
		out[i] = strconv.FormatBool(b)
	}
	return out, nil
}

// Has reports whether a restriction is set for d.
func (f Filters) Has(d Dimension) bool {
	_, ok := f[d]
	return ok
}

// Allows reports whether value passes the restriction on d.
// A missing restriction allows everything.
func (f Filters) Allows(d Dimension, value string) bool {
	allowed, ok := f[d]
	if !ok {
		return true
	}
	return slices.Contains(allowed, value)
}

// HasGeographic reports whether any country-derived restriction is set.
func (f Filters) HasGeographic() bool {
	for d := range f {
		if d.Geographic() {
			return true
		}
	}
	return false
}

// Dimensions returns the restricted dimensions in declaration order.
func (f Filters) Dimensions() []Dimension {
	dims := make([]Dimension, 0, len(f))
	for d := range f {
		dims = append(dims, d)
	}
	sort.Slice(dims, func(i, j int) bool { return dims[i] < dims[j] })
	return dims
}

func quote(s string) string {
	return `"` + s + `"`
}

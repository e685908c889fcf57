package dimensions

import (
	"strings"

	"github.com/forecasthealth/botech/pkg/errors"
)

// GroupSpec is an ordered list of dimensions defining one grouping axis.
type GroupSpec []Dimension

// ParseGroupSpec converts dimension names into a GroupSpec.
func ParseGroupSpec(names []string) (GroupSpec, error) {
	if len(names) == 0 {
		return nil, errors.NewConfigError("groups", "group definition must name at least one dimension", nil)
	}
	spec := make(GroupSpec, 0, len(names))
	for _, name := range names {
		d, err := Parse(name)
		if err != nil {
			return nil, errors.NewConfigError("groups", "unknown dimension "+quote(name), err)
		}
		spec = append(spec, d)
	}
	return spec, nil
}

// Label joins the dimension names with Separator, e.g. "REGION, INCOME".
func (g GroupSpec) Label() string {
	parts := make([]string, len(g))
	for i, d := range g {
		parts[i] = d.String()
	}
	return strings.Join(parts, Separator)
}

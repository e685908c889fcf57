package dimensions

import (
	"strings"

	"github.com/forecasthealth/botech/pkg/errors"
)

// Scenarios holds the two scenario labels being compared.
// Comparisons are always One to Two: net values are Two minus One.
type Scenarios struct {
	One string
	Two string
}

// NewScenarios validates a scenario pair. Exactly two distinct, non-empty
// labels are required.
func NewScenarios(labels []string) (Scenarios, error) {
	if len(labels) != 2 {
		return Scenarios{}, errors.NewConfigError("scenarios",
			"exactly two scenario labels are required", nil)
	}
	one, two := strings.TrimSpace(labels[0]), strings.TrimSpace(labels[1])
	if one == "" || two == "" {
		return Scenarios{}, errors.NewConfigError("scenarios", "scenario labels must not be empty", nil)
	}
	if one == two {
		return Scenarios{}, errors.NewConfigError("scenarios",
			"scenario labels must be distinct, got "+quote(one)+" twice", nil)
	}
	return Scenarios{One: one, Two: two}, nil
}

// Labels returns both labels in order.
func (s Scenarios) Labels() []string {
	return []string{s.One, s.Two}
}

// Contains reports whether label is one of the pair.
func (s Scenarios) Contains(label string) bool {
	return label == s.One || label == s.Two
}

// String implements fmt.Stringer.
func (s Scenarios) String() string {
	return s.One + " -> " + s.Two
}

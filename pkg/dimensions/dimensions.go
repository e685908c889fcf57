// Package dimensions defines the categorical axes records can be filtered
// and grouped by.
//
// A Dimension is a closed set of values. Each record type answers
// Value(Dimension) with an explicit switch, so no field is ever looked up by
// name at runtime.
package dimensions

import (
	"fmt"
	"strings"

	"github.com/forecasthealth/botech/pkg/errors"
)

// Dimension identifies one categorical axis of a record.
type Dimension int

// Known dimensions. The zero value is invalid.
const (
	Author Dimension = iota + 1
	Country
	Intervention
	Region
	Income
	Appendix3
)

// Separator joins dimension names in axis labels and values in combination labels.
const Separator = ", "

var names = map[Dimension]string{
	Author:       "AUTHOR",
	Country:      "COUNTRY",
	Intervention: "INTERVENTION",
	Region:       "REGION",
	Income:       "INCOME",
	Appendix3:    "APPENDIX_3",
}

// String returns the canonical upper-case name.
func (d Dimension) String() string {
	if name, ok := names[d]; ok {
		return name
	}
	return fmt.Sprintf("Dimension(%d)", int(d))
}

// Valid reports whether d is one of the known dimensions.
func (d Dimension) Valid() bool {
	_, ok := names[d]
	return ok
}

// Geographic reports whether d is resolved through country metadata.
func (d Dimension) Geographic() bool {
	switch d {
	case Country, Region, Income, Appendix3:
		return true
	default:
		return false
	}
}

// Category returns the metadata category name used to resolve d, or an
// empty string for dimensions that are not derived from country metadata.
func (d Dimension) Category() string {
	switch d {
	case Region:
		return "region"
	case Income:
		return "income"
	case Appendix3:
		return "appendix_3"
	default:
		return ""
	}
}

// All returns every dimension in declaration order.
func All() []Dimension {
	return []Dimension{Author, Country, Intervention, Region, Income, Appendix3}
}

// Derived returns the dimensions computed from country metadata.
func Derived() []Dimension {
	return []Dimension{Region, Income, Appendix3}
}

// Parse resolves a dimension name case-insensitively.
// Both "APPENDIX_3" and "APPENDIX3" are accepted.
func Parse(name string) (Dimension, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	if normalized == "APPENDIX3" {
		return Appendix3, nil
	}
	for d, n := range names {
		if n == normalized {
			return d, nil
		}
	}
	return 0, errors.NewValidationError("dimension", name, "unknown dimension name")
}

// MarshalText implements encoding.TextMarshaler.
func (d Dimension) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, errors.NewValidationError("dimension", int(d), "unknown dimension")
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Dimension) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Valuer is implemented by anything that exposes dimension values.
type Valuer interface {
	Value(d Dimension) string
}

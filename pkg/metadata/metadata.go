// Package metadata provides country classification lookups.
//
// Records carry only an ISO country code. Region, income group and the
// appendix 3 flag are derived through an Adapter, which also supports the
// reverse direction (category value to the countries in it) used when
// resolving geographic filters.
package metadata

import (
	_ "embed"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/forecasthealth/botech/pkg/errors"
)

// Category names understood by CountriesByCategory.
const (
	CategoryRegion    = "region"
	CategoryIncome    = "income"
	CategoryAppendix3 = "appendix_3"
)

// Adapter is the lookup capability the pipeline needs from country metadata.
type Adapter interface {
	// Lookup returns the country for an ISO alpha-2 code.
	Lookup(code string) (Country, bool)
	// CountriesByCategory maps each value of a category to the codes in it.
	CountriesByCategory(category string) map[string][]string
	// AllCountryCodes returns every known code, sorted.
	AllCountryCodes() []string
}

// Country is one classified country.
type Country struct {
	Code      string `yaml:"code" json:"code"`
	Name      string `yaml:"name" json:"name"`
	Region    string `yaml:"region" json:"region"`
	Income    string `yaml:"income" json:"income"`
	Appendix3 bool   `yaml:"appendix_3" json:"appendix_3"`
}

// Category returns the country's value for a category name.
func (c Country) Category(category string) (string, bool) {
	switch category {
	case CategoryRegion:
		return c.Region, true
	case CategoryIncome:
		return c.Income, true
	case CategoryAppendix3:
		return strconv.FormatBool(c.Appendix3), true
	default:
		return "", false
	}
}

// Compile-time interface check.
var _ Adapter = (*Registry)(nil)

// Registry is an immutable in-memory Adapter.
// It is safe for concurrent use.
type Registry struct {
	byCode     map[string]Country
	codes      []string
	categories map[string]map[string][]string
}

// NewRegistry builds a registry from a list of countries.
// Codes are normalized to upper case; duplicate codes are rejected.
func NewRegistry(countries []Country) (*Registry, error) {
	r := &Registry{
		byCode:     make(map[string]Country, len(countries)),
		codes:      make([]string, 0, len(countries)),
		categories: make(map[string]map[string][]string),
	}

	for _, c := range countries {
		c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
		if c.Code == "" {
			return nil, errors.NewValidationError("code", c.Name, "country code is required")
		}
		if _, exists := r.byCode[c.Code]; exists {
			return nil, errors.NewValidationError("code", c.Code, "duplicate country code")
		}
		r.byCode[c.Code] = c
		r.codes = append(r.codes, c.Code)
	}
	sort.Strings(r.codes)

	for _, category := range []string{CategoryRegion, CategoryIncome, CategoryAppendix3} {
		mapping := make(map[string][]string)
		for _, code := range r.codes {
			value, _ := r.byCode[code].Category(category)
			if value == "" {
				continue
			}
			mapping[value] = append(mapping[value], code)
		}
		r.categories[category] = mapping
	}

	return r, nil
}

// Lookup implements Adapter. Codes are matched case-insensitively.
func (r *Registry) Lookup(code string) (Country, bool) {
	c, ok := r.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// CountriesByCategory implements Adapter. An unknown category yields an
// empty mapping. The returned mapping is a copy.
func (r *Registry) CountriesByCategory(category string) map[string][]string {
	src := r.categories[strings.ToLower(category)]
	out := make(map[string][]string, len(src))
	for value, codes := range src {
		out[value] = append([]string(nil), codes...)
	}
	return out
}

// AllCountryCodes implements Adapter.
func (r *Registry) AllCountryCodes() []string {
	return append([]string(nil), r.codes...)
}

// Countries returns every country sorted by code.
func (r *Registry) Countries() []Country {
	out := make([]Country, 0, len(r.codes))
	for _, code := range r.codes {
		out = append(out, r.byCode[code])
	}
	return out
}

// Len returns the number of countries.
func (r *Registry) Len() int { return len(r.codes) }

type document struct {
	Countries []Country `yaml:"countries"`
}

// Parse decodes a YAML (or JSON) metadata document.
func Parse(data []byte) (*Registry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	if len(doc.Countries) == 0 {
		return nil, errors.NewValidationError("countries", nil, "metadata document lists no countries")
	}
	return NewRegistry(doc.Countries)
}

// LoadFile reads a metadata document from disk.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		var parseErr *errors.ParseError
		if errors.As(err, &parseErr) {
			parseErr.File = path
		}
		return nil, err
	}
	return r, nil
}

//go:embed countries.yaml
var embeddedCountries []byte

var embedded = sync.OnceValues(func() (*Registry, error) {
	return Parse(embeddedCountries)
})

// Embedded returns the registry compiled into the binary.
func Embedded() (*Registry, error) {
	return embedded()
}

package records

import "github.com/forecasthealth/botech/pkg/dimensions"

// Store is an ordered in-memory collection of source records.
type Store struct {
	records []Record
}

// NewStore creates a store holding the given records in order.
func NewStore(records ...Record) *Store {
	return &Store{records: append([]Record(nil), records...)}
}

// Add appends records to the store.
func (s *Store) Add(records ...Record) {
	s.records = append(s.records, records...)
}

// Records returns a copy of the stored records in insertion order.
func (s *Store) Records() []Record {
	return append([]Record(nil), s.records...)
}

// Len returns the number of stored records.
func (s *Store) Len() int { return len(s.records) }

// Authors returns the distinct authors in first-seen order.
func (s *Store) Authors() []string {
	return Unique(s.records, dimensions.Author)
}

// Interventions returns the distinct interventions in first-seen order.
func (s *Store) Interventions() []string {
	return Unique(s.records, dimensions.Intervention)
}

// Unique returns the distinct values of d across records in first-seen order.
func Unique(records []Record, d dimensions.Dimension) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		v := r.Value(d)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

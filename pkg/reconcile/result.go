package reconcile

import (
	"fmt"
	"time"

	"github.com/forecasthealth/botech/pkg/dimensions"
	"github.com/forecasthealth/botech/pkg/records"
)

// Result is the outcome of a reconciliation.
type Result struct {
	// Records are the reconciled records in input order.
	Records []records.Record

	// Stats counts records at each step.
	Stats Statistics

	// Metadata describes the run.
	Metadata Metadata
}

// Statistics counts records through each reconciliation step.
type Statistics struct {
	Source   int
	WishList int
	Matched  int
	Complete int
	Kept     int

	DroppedUnmatched  int
	DroppedIncomplete int
	DroppedStale      int
}

// Metadata contains information about a reconciliation run.
type Metadata struct {
	Scenarios dimensions.Scenarios
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Empty reports whether no records survived.
func (r *Result) Empty() bool {
	return r == nil || len(r.Records) == 0
}

// Keys returns the number of reconciled (author, country, intervention) triples.
func (r *Result) Keys() int {
	if r == nil {
		return 0
	}
	keys := make(map[records.Key]struct{})
	for _, rec := range r.Records {
		keys[rec.Key()] = struct{}{}
	}
	return len(keys)
}

// EmptiedAt names the first step that left no records, or "" when the
// result is not empty.
func (r *Result) EmptiedAt() string {
	switch {
	case !r.Empty():
		return ""
	case r.Stats.WishList == 0:
		return "wish list"
	case r.Stats.Matched == 0:
		return "match"
	default:
		return "completeness"
	}
}

// Summary returns a one-line human-readable summary.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d source records, %d matched, %d complete, %d kept (%d stale dropped) in %v",
		r.Stats.Source, r.Stats.Matched, r.Stats.Complete, r.Stats.Kept, r.Stats.DroppedStale, r.Metadata.Duration)
}

package reconcile_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forecasthealth/botech/pkg/dimensions"
	"github.com/forecasthealth/botech/pkg/metadata"
	"github.com/forecasthealth/botech/pkg/reconcile"
	"github.com/forecasthealth/botech/pkg/records"
	"github.com/forecasthealth/botech/pkg/wishlist"
)

var (
	scenarios = dimensions.Scenarios{One: "baseline", Two: "scaled"}
	t1        = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2        = t1.Add(24 * time.Hour)
	t3        = t2.Add(24 * time.Hour)
)

func rec(author, country, intervention, scenario string, ts time.Time, effects, costs float64, uid string) records.Record {
	return records.New(records.Fields{
		Author: author, Country: country, Intervention: intervention, Scenario: scenario,
		Timestamp: ts, Effects: effects, Costs: costs, UID: uid,
	}, nil)
}

func uids(rs []records.Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.UID()
	}
	return out
}

func wish(t *testing.T, source []records.Record, filters dimensions.Filters) []wishlist.Entry {
	t.Helper()
	store := records.NewStore(source...)
	return wishlist.Generate(scenarios, filters, store.Authors(), store.Interventions(), metadata.TestRegistry(t))
}

func TestReconcileKeepsCompletePair(t *testing.T) {
	source := []records.Record{
		rec("A", "KE", "vaccine", "baseline", t1, 10, 100, "1"),
		rec("A", "KE", "vaccine", "scaled", t1, 50, 300, "2"),
	}

	result := reconcile.Reconcile(source, wish(t, source, nil), scenarios)

	assert.Equal(t, []string{"1", "2"}, uids(result.Records))
	assert.False(t, result.Empty())
	assert.Equal(t, 1, result.Keys())
	assert.Equal(t, 2, result.Stats.Kept)
	assert.Empty(t, result.EmptiedAt())
}

func TestReconcileLowerCaseCountry(t *testing.T) {
	source := []records.Record{
		rec("A", "ke", "vaccine", "baseline", t1, 10, 100, "1"),
		rec("A", "Ke", "vaccine", "scaled", t1, 50, 300, "2"),
	}

	filters := dimensions.Filters{dimensions.Country: {"KE"}}
	result := reconcile.Reconcile(source, wish(t, source, filters), scenarios)

	assert.Equal(t, []string{"1", "2"}, uids(result.Records))
	assert.Equal(t, "KE", result.Records[0].Country())
}

func TestMatchIsPerColumn(t *testing.T) {
	entries := []wishlist.Entry{
		{Author: "A", Country: "KE", Intervention: "vaccine", Scenario: "baseline"},
		{Author: "B", Country: "UG", Intervention: "tax", Scenario: "scaled"},
	}
	source := []records.Record{
		// not a wish list tuple, but every field appears somewhere
		rec("A", "UG", "tax", "baseline", t1, 0, 0, "mixed"),
		rec("C", "KE", "vaccine", "baseline", t1, 0, 0, "unknown-author"),
		rec("A", "KE", "vaccine", "other", t1, 0, 0, "unknown-scenario"),
	}

	assert.Equal(t, []string{"mixed"}, uids(reconcile.Match(source, entries)))
	assert.Empty(t, reconcile.Match(source, nil))
}

func TestCompleteDropsHalfPairs(t *testing.T) {
	source := []records.Record{
		rec("A", "KE", "vaccine", "baseline", t1, 0, 0, "ke-1"),
		rec("A", "UG", "vaccine", "baseline", t1, 0, 0, "ug-1"),
		rec("A", "KE", "vaccine", "scaled", t1, 0, 0, "ke-2"),
		rec("A", "KE", "vaccine", "scaled", t2, 0, 0, "ke-3"),
	}

	got := reconcile.Complete(source, scenarios)

	assert.Equal(t, []string{"ke-1", "ke-2", "ke-3"}, uids(got))
}

func TestLatestKeepsMostRecent(t *testing.T) {
	source := []records.Record{
		rec("A", "KE", "vaccine", "baseline", t1, 0, 0, "old"),
		rec("A", "KE", "vaccine", "baseline", t3, 0, 0, "new"),
		rec("A", "KE", "vaccine", "baseline", t2, 0, 0, "mid"),
		rec("A", "KE", "vaccine", "scaled", t1, 0, 0, "only"),
	}

	assert.Equal(t, []string{"new", "only"}, uids(reconcile.Latest(source)))
}

func TestLatestTieKeepsFirst(t *testing.T) {
	source := []records.Record{
		rec("A", "KE", "vaccine", "baseline", t1, 1, 0, "first"),
		rec("A", "KE", "vaccine", "baseline", t1, 2, 0, "second"),
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, []string{"first"}, uids(reconcile.Latest(source)))
	}
}

func TestReconcileInvariants(t *testing.T) {
	source := []records.Record{
		rec("A", "KE", "vaccine", "baseline", t1, 10, 100, "a1"),
		rec("A", "KE", "vaccine", "baseline", t2, 12, 100, "a2"),
		rec("A", "KE", "vaccine", "scaled", t1, 50, 300, "a3"),
		rec("A", "KE", "vaccine", "scaled", t3, 55, 310, "a4"),
		rec("A", "KE", "vaccine", "scaled", t2, 52, 305, "a5"),
		rec("A", "UG", "vaccine", "baseline", t1, 5, 50, "b1"),
		rec("B", "IN", "tax", "baseline", t1, 1, 1, "c1"),
		rec("B", "IN", "tax", "scaled", t1, 2, 3, "c2"),
		rec("B", "XX", "tax", "baseline", t1, 1, 1, "d1"),
		rec("B", "XX", "tax", "scaled", t1, 2, 3, "d2"),
	}

	result := reconcile.Reconcile(source, wish(t, source, nil), scenarios)

	counts := map[records.Key]map[string]int{}
	for _, r := range result.Records {
		if counts[r.Key()] == nil {
			counts[r.Key()] = map[string]int{}
		}
		counts[r.Key()][r.Scenario()]++
	}
	for key, perScenario := range counts {
		assert.Equal(t, map[string]int{"baseline": 1, "scaled": 1}, perScenario, "key %v", key)
	}

	assert.Equal(t, []string{"a2", "a4", "c1", "c2"}, uids(result.Records))
	assert.Equal(t, reconcile.Statistics{
		Source:            10,
		WishList:          2 * 6 * 2 * 2,
		Matched:           8,
		Complete:          7,
		Kept:              4,
		DroppedUnmatched:  2,
		DroppedIncomplete: 1,
		DroppedStale:      3,
	}, result.Stats)
}

func TestReconcileWithFilters(t *testing.T) {
	source := []records.Record{
		rec("A", "KE", "vaccine", "baseline", t1, 0, 0, "ke-1"),
		rec("A", "KE", "vaccine", "scaled", t1, 0, 0, "ke-2"),
		rec("A", "IN", "vaccine", "baseline", t1, 0, 0, "in-1"),
		rec("A", "IN", "vaccine", "scaled", t1, 0, 0, "in-2"),
	}

	result := reconcile.Reconcile(source, wish(t, source, dimensions.Filters{dimensions.Region: {"South Asia"}}), scenarios)

	assert.Equal(t, []string{"in-1", "in-2"}, uids(result.Records))
}

func TestReconcileEmptyIsNotAnError(t *testing.T) {
	source := []records.Record{
		rec("A", "KE", "vaccine", "baseline", t1, 0, 0, "1"),
	}

	result := reconcile.Reconcile(source, wish(t, source, nil), scenarios)
	require.NotNil(t, result)
	assert.True(t, result.Empty())
	assert.Equal(t, "completeness", result.EmptiedAt())

	result = reconcile.Reconcile(source, nil, scenarios)
	assert.Equal(t, "wish list", result.EmptiedAt())

	result = reconcile.Reconcile(source, wish(t, source, dimensions.Filters{dimensions.Country: {"US"}}), scenarios)
	assert.Equal(t, "match", result.EmptiedAt())
	assert.Contains(t, result.Summary(), "1 source records, 0 matched")
}

package records_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forecasthealth/botech/pkg/dimensions"
	"github.com/forecasthealth/botech/pkg/errors"
	"github.com/forecasthealth/botech/pkg/metadata"
	"github.com/forecasthealth/botech/pkg/records"
)

func TestNewDerivesClassification(t *testing.T) {
	reg := metadata.TestRegistry(t)

	r := records.New(records.Fields{Author: "A", Country: "KE", Intervention: "vaccine", Scenario: "baseline"}, reg)
	assert.Equal(t, "Sub-Saharan Africa", r.Region())
	assert.Equal(t, "Lower middle income", r.Income())
	assert.Equal(t, "true", r.Appendix3())

	us := records.New(records.Fields{Country: "US"}, reg)
	assert.Equal(t, "false", us.Appendix3())
}

func TestNewUnknownCountry(t *testing.T) {
	r := records.New(records.Fields{Country: "XX"}, metadata.TestRegistry(t))
	assert.Empty(t, r.Region())
	assert.Empty(t, r.Income())
	assert.Empty(t, r.Appendix3())

	r = records.New(records.Fields{Country: "KE"}, nil)
	assert.Empty(t, r.Region())
}

func TestNewNormalisesCountryCode(t *testing.T) {
	r := records.New(records.Fields{Author: "A", Country: " ke", Intervention: "vaccine", Scenario: "baseline"},
		metadata.TestRegistry(t))
	assert.Equal(t, "KE", r.Country())
	assert.Equal(t, "KE", r.Value(dimensions.Country))
	assert.Equal(t, "Sub-Saharan Africa", r.Region())
	assert.Equal(t, "true", r.Appendix3())
}

func TestRecordValue(t *testing.T) {
	r := records.New(records.Fields{Author: "A", Country: "IN", Intervention: "tax"}, metadata.TestRegistry(t))

	assert.Equal(t, "A", r.Value(dimensions.Author))
	assert.Equal(t, "IN", r.Value(dimensions.Country))
	assert.Equal(t, "tax", r.Value(dimensions.Intervention))
	assert.Equal(t, "South Asia", r.Value(dimensions.Region))
	assert.Equal(t, "Lower middle income", r.Value(dimensions.Income))
	assert.Equal(t, "true", r.Value(dimensions.Appendix3))
	assert.Empty(t, r.Value(dimensions.Dimension(0)))

	assert.Equal(t, records.Key{Author: "A", Country: "IN", Intervention: "tax"}, r.Key())
}

func TestRecordFieldsRoundTrip(t *testing.T) {
	f := records.Fields{
		Author: "A", Country: "KE", Intervention: "vaccine", Scenario: "baseline",
		Timestamp: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Effects: 10, Costs: 100, UID: "r-1",
	}
	assert.Equal(t, f, records.New(f, nil).Fields())
}

func TestStore(t *testing.T) {
	s := records.NewStore(
		records.New(records.Fields{Author: "B", Intervention: "tax"}, nil),
		records.New(records.Fields{Author: "A", Intervention: "tax"}, nil),
	)
	s.Add(records.New(records.Fields{Author: "B", Intervention: "vaccine"}, nil))

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"B", "A"}, s.Authors())
	assert.Equal(t, []string{"tax", "vaccine"}, s.Interventions())

	got := s.Records()
	got[0] = records.Record{}
	assert.Equal(t, "B", s.Records()[0].Author())
}

func TestFilter(t *testing.T) {
	reg := metadata.TestRegistry(t)
	scenarios := dimensions.Scenarios{One: "baseline", Two: "scaled"}
	all := []records.Record{
		records.New(records.Fields{Author: "A", Country: "KE", Scenario: "baseline"}, reg),
		records.New(records.Fields{Author: "A", Country: "IN", Scenario: "scaled"}, reg),
		records.New(records.Fields{Author: "B", Country: "KE", Scenario: "other"}, reg),
		records.New(records.Fields{Author: "B", Country: "UG", Scenario: "scaled"}, reg),
	}

	got := records.Filter(all, scenarios, nil)
	assert.Len(t, got, 3)

	got = records.Filter(all, scenarios, dimensions.Filters{dimensions.Region: {"Sub-Saharan Africa"}})
	require.Len(t, got, 2)
	assert.Equal(t, "KE", got[0].Country())
	assert.Equal(t, "UG", got[1].Country())

	got = records.Filter(all, scenarios, dimensions.Filters{
		dimensions.Region: {"Sub-Saharan Africa"},
		dimensions.Author: {"A"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "KE", got[0].Country())
}

const sampleCSV = `author,country,intervention,scenario,timestamp,effects,costs,uid
A,KE,vaccine,baseline,2024-01-01,10,100,r-1
A,KE,vaccine,scaled,2024-01-01 12:30:00,50,300,
A,KE,vaccine,scaled,2024-02-01T00:00:00Z,55,310,r-3
`

func TestReadCSV(t *testing.T) {
	got, err := records.ReadCSV(strings.NewReader(sampleCSV), metadata.TestRegistry(t))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "r-1", got[0].UID())
	assert.Empty(t, got[1].UID())
	assert.Equal(t, 50.0, got[1].Effects())
	assert.Equal(t, 300.0, got[1].Costs())
	assert.Equal(t, time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC), got[1].Timestamp())
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), got[2].Timestamp().UTC())
	assert.Equal(t, "Sub-Saharan Africa", got[2].Region())
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{
			name:    "missing columns",
			input:   "AUTHOR,COUNTRY\nA,KE\n",
			wantMsg: "INTERVENTION",
		},
		{
			name:    "bad number",
			input:   "AUTHOR,COUNTRY,INTERVENTION,SCENARIO,TIMESTAMP,EFFECTS,COSTS\nA,KE,v,s,2024-01-01,ten,1\n",
			wantMsg: "row 2 column EFFECTS",
		},
		{
			name:    "bad timestamp",
			input:   "AUTHOR,COUNTRY,INTERVENTION,SCENARIO,TIMESTAMP,EFFECTS,COSTS\nA,KE,v,s,yesterday,1,1\n",
			wantMsg: "column TIMESTAMP",
		},
		{
			name:    "empty",
			input:   "",
			wantMsg: "missing header row",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := records.ReadCSV(strings.NewReader(tt.input), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	got, err := records.LoadCSV(path, nil)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = records.LoadCSV(filepath.Join(t.TempDir(), "missing.csv"), nil)
	var ioErr *errors.IOError
	assert.True(t, errors.As(err, &ioErr))
}

// Package botech reconciles health-economic model outputs reported under two
// scenarios and compares them.
//
// A run takes a validated configuration and the source records:
//
//	cfg, _ := config.Load("spec.yaml")
//	reg, _ := metadata.Embedded()
//	source, _ := records.LoadCSV("results.csv", reg)
//	out, err := botech.Run(ctx, cfg, source, botech.WithMetadata(reg))
//
// The pipeline builds the wish list of expected record keys, reconciles the
// source against it, optionally pairs the scenarios into comparisons, and
// optionally groups the result. A run that reconciles no records returns an
// error satisfying errors.IsNoData.
package botech

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/forecasthealth/botech/pkg/compare"
	"github.com/forecasthealth/botech/pkg/config"
	"github.com/forecasthealth/botech/pkg/errors"
	"github.com/forecasthealth/botech/pkg/export"
	"github.com/forecasthealth/botech/pkg/groups"
	"github.com/forecasthealth/botech/pkg/logging"
	"github.com/forecasthealth/botech/pkg/reconcile"
	"github.com/forecasthealth/botech/pkg/records"
	"github.com/forecasthealth/botech/pkg/wishlist"
)

// DefaultFormat is used by Tables when the configuration names no format.
const DefaultFormat = export.FormatCSV

// Output is the result of a pipeline run.
type Output struct {
	RunID    string
	DataType config.DataType

	// Candidates are the resolved wish list dimensions.
	Candidates wishlist.Candidates

	// Reconciliation holds the reconciled records and step counts.
	Reconciliation *reconcile.Result

	// Comparisons is set when DataType is comparisons.
	Comparisons []compare.Comparison

	// GroupedRecords or GroupedComparisons is set when groups are configured.
	GroupedRecords     *groups.Groups[records.Record]
	GroupedComparisons *groups.Groups[compare.Comparison]
}

// Records returns the reconciled records.
func (o *Output) Records() []records.Record {
	if o.Reconciliation == nil {
		return nil
	}
	return o.Reconciliation.Records
}

// Tables flattens the output for export.
func (o *Output) Tables() []export.Table {
	switch {
	case o.GroupedComparisons != nil:
		return export.GroupedComparisons(o.GroupedComparisons)
	case o.GroupedRecords != nil:
		return export.GroupedRecords(o.GroupedRecords)
	case o.DataType == config.DataComparisons:
		return []export.Table{export.ComparisonsTable(o.Comparisons)}
	default:
		return []export.Table{export.RecordsTable(o.Records())}
	}
}

// Run executes the pipeline over source.
func Run(ctx context.Context, cfg config.Config, source []records.Record, opts ...Option) (*Output, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o, err := newOptions(opts...)
	if err != nil {
		return nil, errors.WrapConfig("options", err)
	}
	ctx, logger := runLogger(ctx, o)

	out := &Output{RunID: o.runID}
	out.DataType, _ = config.ParseDataType(string(cfg.DataType))
	ctx = logging.WithDataType(ctx, string(out.DataType))
	logger = logging.FromContext(ctx)

	logger.Info().
		Int("source_records", len(source)).
		Str("scenarios", cfg.Scenarios.String()).
		Msg("Starting pipeline run")

	// Wish list
	stageLog := logging.FromContext(logging.WithStage(ctx, "wish list"))
	store := records.NewStore(source...)
	out.Candidates = wishlist.Resolve(cfg.Filters, store.Authors(), store.Interventions(), o.adapter)
	if len(out.Candidates.DroppedCountries) > 0 {
		stageLog.Debug().Strs("countries", out.Candidates.DroppedCountries).Msg("Dropped unknown countries from filter")
	}
	wish := wishlist.Expand(out.Candidates, cfg.Scenarios)
	stageLog.Debug().
		Int("authors", len(out.Candidates.Authors)).
		Int("countries", len(out.Candidates.Countries)).
		Int("interventions", len(out.Candidates.Interventions)).
		Int("entries", len(wish)).
		Msg("Generated wish list")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Reconcile
	stageLog = logging.FromContext(logging.WithStage(ctx, "reconcile"))
	out.Reconciliation = reconcile.Reconcile(source, wish, cfg.Scenarios)
	stageLog.Debug().
		Int("matched", out.Reconciliation.Stats.Matched).
		Int("complete", out.Reconciliation.Stats.Complete).
		Int("kept", out.Reconciliation.Stats.Kept).
		Int("dropped_stale", out.Reconciliation.Stats.DroppedStale).
		Msg("Reconciled records")

	if out.Reconciliation.Empty() {
		stage := out.Reconciliation.EmptiedAt()
		logger.Warn().Str("emptied_at", stage).Msg("No data matched filters")
		return nil, errors.NewNoDataError(stage, len(source), out.Reconciliation.Stats.Matched)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Compare
	if out.DataType == config.DataComparisons {
		out.Comparisons = compare.Compare(out.Reconciliation.Records, cfg.Scenarios)
		logging.FromContext(logging.WithStage(ctx, "compare")).Debug().
			Int("comparisons", len(out.Comparisons)).
			Msg("Built comparisons")
	}

	// Group
	if cfg.Grouped() {
		if out.DataType == config.DataComparisons {
			out.GroupedComparisons, err = groups.Group(cfg.Groups, out.Comparisons)
		} else {
			out.GroupedRecords, err = groups.Group(cfg.Groups, out.Reconciliation.Records)
		}
		if err != nil {
			return nil, errors.WrapConfig("groups", err)
		}
		logging.FromContext(logging.WithStage(ctx, "group")).Debug().
			Int("axes", len(cfg.Groups)).
			Msg("Grouped output")
	}

	logger.Info().
		Int("records", len(out.Reconciliation.Records)).
		Int("comparisons", len(out.Comparisons)).
		Dur("duration", out.Reconciliation.Metadata.Duration).
		Msg("Pipeline run complete")

	return out, nil
}

// Tables runs the pipeline and writes the result to w in the configured
// output format, or DefaultFormat when none is configured.
func Tables(ctx context.Context, w io.Writer, cfg config.Config, source []records.Record, opts ...Option) error {
	format := cfg.OutputFormat
	if format == "" {
		format = DefaultFormat
	}
	writer, err := export.NewWriter(format)
	if err != nil {
		return err
	}

	out, err := Run(ctx, cfg, source, opts...)
	if err != nil {
		return err
	}

	if err := writer.Write(w, out.Tables()); err != nil {
		return errors.WrapIO("write", string(format), err)
	}
	return nil
}

// WishList resolves the wish list a run over source would use.
func WishList(cfg config.Config, source []records.Record, opts ...Option) (wishlist.Candidates, []wishlist.Entry, error) {
	if err := cfg.Validate(); err != nil {
		return wishlist.Candidates{}, nil, err
	}
	o, err := newOptions(opts...)
	if err != nil {
		return wishlist.Candidates{}, nil, errors.WrapConfig("options", err)
	}
	store := records.NewStore(source...)
	c := wishlist.Resolve(cfg.Filters, store.Authors(), store.Interventions(), o.adapter)
	return c, wishlist.Expand(c, cfg.Scenarios), nil
}

func runLogger(ctx context.Context, o *options) (context.Context, *zerolog.Logger) {
	if ctx == nil {
		ctx = context.Background()
	}
	if o.runID == "" {
		o.runID = uuid.NewString()
	}
	if o.logger != nil {
		ctx = logging.WithLogger(ctx, o.logger)
	}
	ctx = logging.WithRun(ctx, o.runID)
	return ctx, logging.FromContext(ctx)
}

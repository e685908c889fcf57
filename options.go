package botech

import (
	"github.com/rs/zerolog"

	"github.com/forecasthealth/botech/pkg/errors"
	"github.com/forecasthealth/botech/pkg/metadata"
)

// Option is a function that configures a pipeline run.
type Option func(*options) error

// options holds the settings applied by Option functions.
type options struct {
	adapter metadata.Adapter
	logger  *zerolog.Logger
	runID   string
}

func newOptions(opts ...Option) (*options, error) {
	o := &options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.adapter == nil {
		embedded, err := metadata.Embedded()
		if err != nil {
			return nil, errors.WrapConfig("metadata", err)
		}
		o.adapter = embedded
	}
	return o, nil
}

// WithMetadata configures the country metadata used to resolve geographic
// filters. The embedded registry is used by default.
func WithMetadata(adapter metadata.Adapter) Option {
	return func(o *options) error {
		if adapter == nil {
			return errors.NewValidationError("metadata", nil, "metadata adapter must not be nil")
		}
		o.adapter = adapter
		return nil
	}
}

// WithLogger configures the logger for the run. By default the logger
// carried by the context is used.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithRunID sets the identifier attached to every log line of the run.
// A random UUID is generated when none is given.
func WithRunID(id string) Option {
	return func(o *options) error {
		o.runID = id
		return nil
	}
}

// Package app provides the application context and dependency management
// for the botech CLI. It centralizes configuration, logging and the
// country metadata shared by every command.
package app

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/forecasthealth/botech/pkg/errors"
	"github.com/forecasthealth/botech/pkg/metadata"
)

// App represents the botech application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Command output; nil means os.Stdout and os.Stderr
	out    io.Writer
	errOut io.Writer

	// Metadata adapter (lazy-initialized, singleton)
	mu       sync.RWMutex
	metadata metadata.Adapter
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration loaded from the environment
// that can be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapConfig("app", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the --format flag value.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Metadata returns the country metadata adapter, loading it lazily.
// The configured metadata file wins over the embedded table.
func (a *App) Metadata() (metadata.Adapter, error) {
	a.mu.RLock()
	if a.metadata != nil {
		m := a.metadata
		a.mu.RUnlock()
		return m, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.metadata != nil {
		return a.metadata, nil
	}

	var (
		reg *metadata.Registry
		err error
	)
	if a.config.MetadataFile != "" {
		reg, err = metadata.LoadFile(a.config.MetadataFile)
	} else {
		reg, err = metadata.Embedded()
	}
	if err != nil {
		return nil, err
	}

	a.logger.Debug().
		Str("file", a.config.MetadataFile).
		Int("countries", reg.Len()).
		Msg("Loaded country metadata")

	a.metadata = reg
	return reg, nil
}

// Shutdown performs graceful shutdown of the application.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	a.metadata = nil
	a.mu.Unlock()
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewValidationError("config", nil, "config cannot be nil")
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithMetadata sets a custom metadata adapter (useful for testing).
func WithMetadata(m metadata.Adapter) Option {
	return func(a *App) error {
		a.metadata = m
		return nil
	}
}

// WithOutput redirects command output and errors (useful for testing).
func WithOutput(out, errOut io.Writer) Option {
	return func(a *App) error {
		a.out = out
		a.errOut = errOut
		return nil
	}
}

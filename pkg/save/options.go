// Package save writes exported tables to a file or writer.
package save

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/forecasthealth/botech/pkg/errors"
	"github.com/forecasthealth/botech/pkg/export"
)

// Permissions for created directories (rwxr-xr-x) and files (rw-r--r--).
const (
	DirPermissions  = 0755
	FilePermissions = 0644
)

// Options is the configuration for save.
type Options struct {
	path   string
	writer io.Writer
	format export.Format
}

// Path returns the path for the save options.
func (s *Options) Path() string {
	return s.path
}

// Writer returns the writer for the save options.
func (s *Options) Writer() io.Writer {
	return s.writer
}

// Format returns the format for the save options.
func (s *Options) Format() export.Format {
	return s.format
}

// Defaults returns the default save options: CSV to standard output.
func Defaults() *Options {
	return &Options{
		writer: os.Stdout,
		format: export.FormatCSV,
	}
}

// Apply applies the given options to the save options.
func (s *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(s)
	}
	return *s
}

// Option is a function that configures save options.
type Option func(*Options)

// WithFormat for custom output format. An empty format keeps the default.
func WithFormat(f export.Format) Option {
	return func(s *Options) {
		if f != "" {
			s.format = f
		}
	}
}

// WithPath for filesystem saves. A path takes precedence over the writer.
func WithPath(path string) Option {
	return func(s *Options) {
		s.path = path
	}
}

// WithWriter for custom outputs.
func WithWriter(w io.Writer) Option {
	return func(s *Options) {
		s.writer = w
	}
}

// Tables renders tables in the configured format and writes them to the
// configured path or writer. Parent directories of the path are created.
// Nothing is written to the path if rendering fails.
func Tables(tables []export.Table, opts ...Option) error {
	options := Defaults().Apply(opts...)

	writer, err := export.NewWriter(options.Format())
	if err != nil {
		return err
	}

	if options.Path() == "" {
		if options.Writer() == nil {
			return errors.NewConfigError("save", "no path or writer configured", nil)
		}
		if err := writer.Write(options.Writer(), tables); err != nil {
			return errors.WrapIO("write", string(options.Format()), err)
		}
		return nil
	}

	var buf bytes.Buffer
	if err := writer.Write(&buf, tables); err != nil {
		return errors.WrapIO("write", options.Path(), err)
	}
	dir := filepath.Dir(options.Path())
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}
	if err := os.WriteFile(options.Path(), buf.Bytes(), FilePermissions); err != nil {
		return errors.WrapIO("write", options.Path(), err)
	}
	return nil
}

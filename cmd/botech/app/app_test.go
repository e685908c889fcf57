package app

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/forecasthealth/botech/pkg/errors"
	"github.com/forecasthealth/botech/pkg/metadata"
)

const testdata = "../../../testdata/"

// newTestApp returns an app with a fixed configuration that logs nowhere.
func newTestApp(t *testing.T, opts ...Option) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	opts = append([]Option{
		WithConfig(&Config{LogFormat: "json", LogOutput: "discard"}),
		WithOutput(&stdout, &stderr),
	}, opts...)

	app, err := New("1.0.0", "abc123", "2024-01-01", "test", opts...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return app, &stdout, &stderr
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app, _, _ := newTestApp(t)

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
}

// TestApp_WithConfigNil verifies a nil config is rejected.
func TestApp_WithConfigNil(t *testing.T) {
	_, err := New("dev", "", "", "", WithConfig(nil))
	if !errors.IsValidationError(err) {
		t.Errorf("New(WithConfig(nil)) error = %v, want validation error", err)
	}
}

// TestApp_Metadata_Singleton verifies that Metadata() returns the same instance.
func TestApp_Metadata_Singleton(t *testing.T) {
	app, _, _ := newTestApp(t)

	m1, err := app.Metadata()
	if err != nil {
		t.Fatalf("Metadata() failed: %v", err)
	}
	m2, err := app.Metadata()
	if err != nil {
		t.Fatalf("Metadata() failed on second call: %v", err)
	}
	if m1 != m2 {
		t.Error("Metadata() returned different instances, expected singleton")
	}
	if len(m1.AllCountryCodes()) == 0 {
		t.Error("embedded metadata is empty")
	}
}

// TestApp_Metadata_ThreadSafe verifies concurrent Metadata() calls are safe.
func TestApp_Metadata_ThreadSafe(t *testing.T) {
	app, _, _ := newTestApp(t)

	const goroutines = 50
	var wg sync.WaitGroup
	results := make([]metadata.Adapter, goroutines)
	errs := make([]error, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = app.Metadata()
		}(i)
	}
	wg.Wait()

	for i := range results {
		if errs[i] != nil {
			t.Fatalf("goroutine %d: Metadata() failed: %v", i, errs[i])
		}
		if results[i] != results[0] {
			t.Errorf("goroutine %d got a different instance", i)
		}
	}
}

// TestApp_Metadata_File verifies a configured metadata file replaces the embedded table.
func TestApp_Metadata_File(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.Config().MetadataFile = testdata + "countries.yaml"

	m, err := app.Metadata()
	if err != nil {
		t.Fatalf("Metadata() failed: %v", err)
	}
	if got := m.AllCountryCodes(); len(got) != 3 {
		t.Errorf("AllCountryCodes() = %v, want the 3 countries in the file", got)
	}
}

// TestApp_WithMetadata verifies an injected adapter is used.
func TestApp_WithMetadata(t *testing.T) {
	reg := metadata.TestRegistry(t)
	app, _, _ := newTestApp(t, WithMetadata(reg))

	m, err := app.Metadata()
	if err != nil {
		t.Fatalf("Metadata() failed: %v", err)
	}
	if m != metadata.Adapter(reg) {
		t.Error("Metadata() did not return the injected adapter")
	}
}

// TestApp_Shutdown verifies shutdown releases the metadata.
func TestApp_Shutdown(t *testing.T) {
	app, _, _ := newTestApp(t, WithMetadata(metadata.TestRegistry(t)))

	if err := app.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}
	m, err := app.Metadata()
	if err != nil {
		t.Fatalf("Metadata() after Shutdown failed: %v", err)
	}
	if strings.Join(m.AllCountryCodes(), ",") == "IN,KE,NP,UG,US,ZA" {
		t.Error("Metadata() still returns the injected test registry after Shutdown")
	}
}

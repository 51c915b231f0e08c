package config

import (
	"context"
	"testing"

	"github.com/indaco/herald/internal/core"
)

// resultFor returns the validation result for a category.
func resultFor(t *testing.T, results []ValidationResult, category string) ValidationResult {
	t.Helper()
	for _, r := range results {
		if r.Category == category {
			return r
		}
	}
	t.Fatalf("no result for category %q in %+v", category, results)
	return ValidationResult{}
}

func TestValidator_AllChecksPass(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/proj/.herald.yaml", []byte("package: myproj\ndirectory: changelog.d\n"))
	fs.SetDir("/proj/src/myproj")
	fs.SetDir("/proj/changelog.d")

	cfg := &Config{Package: "myproj", PackageDir: "src", Directory: "changelog.d"}
	v := NewValidator(fs, cfg, "/proj/.herald.yaml", "/proj")

	results, err := v.Validate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if HasErrors(results) {
		t.Errorf("expected no errors, got %+v", results)
	}
}

func TestValidator_InvalidYAML(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/proj/.herald.yaml", []byte("package: [unclosed\n"))

	cfg := &Config{Package: "myproj"}
	v := NewValidator(fs, cfg, "/proj/.herald.yaml", "/proj")

	results, err := v.Validate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := resultFor(t, results, "Config Syntax")
	if r.Passed {
		t.Errorf("expected syntax check to fail, got %+v", r)
	}
	if !HasErrors(results) {
		t.Error("expected HasErrors to report the failure")
	}
}

func TestValidator_MissingPackage(t *testing.T) {
	fs := core.NewMockFileSystem()
	v := NewValidator(fs, &Config{}, "", "/proj")

	results, err := v.Validate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := resultFor(t, results, "Package")
	if r.Passed || !r.Warning {
		t.Errorf("expected a warning for a missing package, got %+v", r)
	}
}

func TestValidator_PackagePath(t *testing.T) {
	fs := core.NewMockFileSystem()
	v := NewValidator(fs, &Config{Package: "src/myproj"}, "", "/proj")

	results, err := v.Validate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := resultFor(t, results, "Package")
	if r.Passed || r.Warning {
		t.Errorf("expected a hard failure for a path-like package, got %+v", r)
	}
}

func TestValidator_MissingPackageDirIsWarning(t *testing.T) {
	fs := core.NewMockFileSystem()

	cfg := &Config{Package: "myproj", PackageDir: "src"}
	v := NewValidator(fs, cfg, "", "/proj")

	results, err := v.Validate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := resultFor(t, results, "Package Dir")
	if r.Passed || !r.Warning {
		t.Errorf("a missing package dir may still resolve via metadata, got %+v", r)
	}
}

func TestValidator_MissingFragmentsDirIsError(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetDir("/proj/src")

	cfg := &Config{Package: "myproj", PackageDir: "src", Directory: "changelog.d"}
	v := NewValidator(fs, cfg, "", "/proj")

	results, err := v.Validate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := resultFor(t, results, "Fragments Dir")
	if r.Passed || r.Warning {
		t.Errorf("expected a hard failure for a missing fragments dir, got %+v", r)
	}
}

func TestValidator_MetadataDepth(t *testing.T) {
	tests := []struct {
		name    string
		depth   int
		passed  bool
		warning bool
	}{
		{"valid depth", 3, true, false},
		{"negative depth", -1, false, false},
		{"excessive depth", core.MaxDiscoveryDepth + 1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := core.NewMockFileSystem()
			cfg := &Config{Package: "myproj", Metadata: &MetadataConfig{MaxDepth: tt.depth}}
			v := NewValidator(fs, cfg, "", "/proj")

			results, err := v.Validate(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			r := resultFor(t, results, "Metadata Scan")
			if r.Passed != tt.passed || r.Warning != tt.warning {
				t.Errorf("expected passed=%v warning=%v, got %+v", tt.passed, tt.warning, r)
			}
		})
	}
}

func TestValidator_VersionOverride(t *testing.T) {
	fs := core.NewMockFileSystem()

	cfg := &Config{Package: "myproj", Version: "not-a-version"}
	v := NewValidator(fs, cfg, "", "/proj")

	results, err := v.Validate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := resultFor(t, results, "Version Override")
	if r.Passed || !r.Warning {
		t.Errorf("non-semver overrides are advisory only, got %+v", r)
	}
	if HasErrors(results) {
		t.Errorf("warnings must not count as errors: %+v", results)
	}
}

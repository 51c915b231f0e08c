package doctor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/indaco/herald/internal/config"
	"github.com/indaco/herald/internal/testutils"
	"github.com/urfave/cli/v3"
)

// writeProject lays out a minimal resolvable project under a temp dir.
func writeProject(t *testing.T) (string, *config.Config) {
	t.Helper()
	tmp := t.TempDir()

	pkgDir := filepath.Join(tmp, "myproj")
	if err := os.MkdirAll(pkgDir, 0755); err != nil {
		t.Fatal(err)
	}
	src := "package myproj\n\nvar __version__ = \"1.2.3\"\n"
	if err := os.WriteFile(filepath.Join(pkgDir, "myproj.go"), []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(tmp, "changelog.d"), 0755); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{Package: "myproj", PackageDir: tmp, Directory: "changelog.d"}
	return tmp, cfg
}

func TestCLI_DoctorCommand_AllChecksPass(t *testing.T) {
	t.Setenv("HERALD_NO_INPUT", "1")
	tmp, cfg := writeProject(t)

	appCli := testutils.BuildCLIForTests([]*cli.Command{Run(cfg)})

	output, err := testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, appCli, []string{"herald", "doctor", "--dir", tmp}, tmp)
	})
	if err != nil {
		t.Fatalf("failed to capture stdout: %v", err)
	}

	if !strings.Contains(output, "All checks passed") {
		t.Errorf("expected a success summary, got %q", output)
	}
	if !strings.Contains(output, "resolves to Myproj 1.2.3") {
		t.Errorf("expected the resolution dry run in output, got %q", output)
	}
}

func TestCLI_DoctorCommand_ReportsVersionSources(t *testing.T) {
	t.Setenv("HERALD_NO_INPUT", "1")
	tmp, cfg := writeProject(t)

	manifest := `{"name": "myproj", "version": "1.2.3"}`
	if err := os.WriteFile(filepath.Join(tmp, "package.json"), []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}

	appCli := testutils.BuildCLIForTests([]*cli.Command{Run(cfg)})

	output, err := testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, appCli, []string{"herald", "doctor", "--dir", tmp}, tmp)
	})
	if err != nil {
		t.Fatalf("failed to capture stdout: %v", err)
	}

	if !strings.Contains(output, "package.json") {
		t.Errorf("expected the manifest in the version-source scan, got %q", output)
	}
}

func TestCLI_DoctorCommand_UnresolvablePackage(t *testing.T) {
	t.Setenv("HERALD_NO_INPUT", "1")
	tmp := t.TempDir()

	cfg := &config.Config{Package: "ghost", PackageDir: tmp}
	appCli := testutils.BuildCLIForTests([]*cli.Command{Run(cfg)})

	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(orig)
	})

	runErr := appCli.Run(context.Background(), []string{"herald", "doctor", "--dir", tmp})
	if runErr == nil || !strings.Contains(runErr.Error(), "doctor found problems") {
		t.Fatalf("expected doctor to fail, got %v", runErr)
	}
}

func TestCLI_DoctorCommand_PinnedConfigSkipsResolution(t *testing.T) {
	t.Setenv("HERALD_NO_INPUT", "1")
	tmp := t.TempDir()

	cfg := &config.Config{Package: "myproj", Name: "Myproj", Version: "2.0.0"}
	appCli := testutils.BuildCLIForTests([]*cli.Command{Run(cfg)})

	output, err := testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, appCli, []string{"herald", "doctor", "--dir", tmp}, tmp)
	})
	if err != nil {
		t.Fatalf("failed to capture stdout: %v", err)
	}

	if !strings.Contains(output, "pinned in config: Myproj 2.0.0") {
		t.Errorf("expected pinned resolution in output, got %q", output)
	}
}

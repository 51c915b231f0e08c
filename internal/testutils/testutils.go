// Package testutils provides shared helpers for command tests.
package testutils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/urfave/cli/v3"
)

// CaptureStdout captures everything written to stdout while fn runs.
func CaptureStdout(fn func()) (string, error) {
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		return "", fmt.Errorf("failed to create pipe: %w", err)
	}
	os.Stdout = w

	done := make(chan struct{})
	var buf bytes.Buffer
	go func() {
		_, _ = io.Copy(&buf, r)
		close(done)
	}()

	fn()

	os.Stdout = orig
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close pipe writer: %w", err)
	}
	<-done

	return buf.String(), nil
}

// BuildCLIForTests wraps subcommands in a minimal root command.
func BuildCLIForTests(commands []*cli.Command) *cli.Command {
	return &cli.Command{
		Name:     "herald",
		Commands: commands,
	}
}

// RunCLITest runs the command from dir, restoring the working
// directory afterwards, and fails the test on error.
func RunCLITest(t *testing.T, cmd *cli.Command, args []string, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = os.Chdir(orig)
	}()

	if err := cmd.Run(context.Background(), args); err != nil {
		t.Fatalf("command failed: %v", err)
	}
}

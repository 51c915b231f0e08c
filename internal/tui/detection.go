package tui

import (
	"os"

	"golang.org/x/term"
)

// ciEnvVars are environment variables commonly set by CI/CD systems.
var ciEnvVars = []string{
	"CI",                     // Generic CI indicator
	"CONTINUOUS_INTEGRATION", // Generic CI indicator
	"GITHUB_ACTIONS",         // GitHub Actions
	"GITLAB_CI",              // GitLab CI
	"CIRCLECI",               // CircleCI
	"TRAVIS",                 // Travis CI
	"JENKINS_HOME",           // Jenkins
	"BUILDKITE",              // Buildkite
	"BITBUCKET_BUILD_NUMBER", // Bitbucket Pipelines
	"DRONE",                  // Drone CI
	"TF_BUILD",               // Azure Pipelines
}

// IsInteractive determines if the current environment supports interactive prompts.
// It returns false in the following cases:
//   - HERALD_NO_INPUT is set (explicit opt-out)
//   - stdout is not a terminal (redirected to file, pipe, etc.)
//   - running in a CI/CD environment (detected via environment variables)
//
// Commands use this to skip TUI prompts in non-interactive contexts.
func IsInteractive() bool {
	if os.Getenv("HERALD_NO_INPUT") != "" {
		return false
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) { //nolint:gosec // G115: fd is a small value, no overflow risk
		return false
	}

	for _, env := range ciEnvVars {
		if os.Getenv(env) != "" {
			return false
		}
	}

	return true
}

// IsTTY checks if stdout is a terminal.
// This is a lower-level check than IsInteractive.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // G115: fd is a small value, no overflow risk
}

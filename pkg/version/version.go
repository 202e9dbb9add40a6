// Package version exposes build information set via -ldflags.
package version

import "fmt"

//nolint:gochecknoglobals // Set at link time.
var (
	version   = "0.0.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the semantic version of this build.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit this build was made from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns when this build was made.
func GetBuildDate() string {
	return buildDate
}

// String returns a one-line description for --version output.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", version, gitCommit, buildDate)
}

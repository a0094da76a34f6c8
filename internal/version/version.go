// Package version holds build information injected via ldflags, e.g.
// -ldflags="-X github.com/renato0307/maint/internal/version.Version=v1.0.0"
package version

import "fmt"

// Tagline is used in help text and the TUI header
const Tagline = "Maintenance tasks for your accommodations"

var (
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = "unknown"
	Version   = "dev"
)

// Info returns formatted version information
func Info() string {
	return fmt.Sprintf("maint %s (commit: %s, built: %s, go: %s)",
		Version, Commit, Date, GoVersion)
}

// ShortCommit returns the first seven characters of the commit hash
func ShortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}

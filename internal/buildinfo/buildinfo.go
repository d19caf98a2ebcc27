// Package buildinfo holds build-time variables injected via ldflags.
package buildinfo

import "fmt"

// Set with -ldflags "-X github.com/go-ports/protokoll/internal/buildinfo.Version=..."
// at release time; the defaults identify local builds.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// String returns a single-line description of the running build.
func String() string {
	return fmt.Sprintf("protokoll %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}

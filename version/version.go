// Package version exposes build metadata for idldoc binaries.
package version

import (
	"cmp"
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the application version, set via ldflags.
	Version string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string

	// Revision is the git commit revision.
	Revision = getRevision()
	// GoVersion is the Go version used to build.
	GoVersion = runtime.Version()
	// GoOS is the operating system target.
	GoOS = runtime.GOOS
	// GoArch is the architecture target.
	GoArch = runtime.GOARCH
)

// String renders the build metadata as a single line, suitable for
// [github.com/spf13/cobra.Command.Version].
func String() string {
	s := fmt.Sprintf("%s (revision %s, %s %s/%s)",
		cmp.Or(Version, moduleVersion(), "dev"), Revision, GoVersion, GoOS, GoArch)
	if BuildDate != "" {
		s += " built " + BuildDate
	}

	return s
}

// moduleVersion reports the main module version recorded by go install,
// or "" for local builds.
func moduleVersion() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok || buildInfo.Main.Version == "(devel)" {
		return ""
	}

	return buildInfo.Main.Version
}

func getRevision() string {
	rev := "unknown"

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value
		case "vcs.modified":
			modified = v.Value == "true"
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}

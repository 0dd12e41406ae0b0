package abeye

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// version is set via ldflags during release builds.
	// For development builds, this will show "dev"
	version = "dev"
	// commit is the git short hash, set via ldflags.
	commit = "unknown"
)

// Version returns the compiled version. Binaries built with go install
// report their module version; builds from source report "dev".
func Version() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return version
}

// Commit returns the git commit the binary was built from, or 'unknown'.
func Commit() string {
	return commit
}

// UserAgent returns the User-Agent string to use
func UserAgent() string {
	return fmt.Sprintf("abeye/%s", Version())
}

// BuildInfo returns a multi-line summary of the build metadata.
func BuildInfo() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nGo Version: %s", Version(), commit, runtime.Version())
}

package version

import (
	"fmt"
	"runtime/debug"
)

// devel is the placeholder the toolchain records for untagged builds.
const devel = "(devel)"

var (
	// Version is the semantic version of the build.
	Version = ""
	// Commit is the short git SHA of the build.
	Commit = "none"
	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"
)

// Short returns the semantic version, or "dev" when none is known.
func Short() string {
	if Version != "" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != devel {
		return info.Main.Version
	}

	return "dev"
}

// Full renders the version line printed by the version subcommand.
func Full(program string) string {
	return fmt.Sprintf("%s version: %s, commit: %s, built at: %s", program, Short(), Commit, BuildTime)
}

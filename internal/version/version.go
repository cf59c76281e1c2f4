package version

import (
	"fmt"
	"runtime/debug"
)

// These variables are set at build time via ldflags
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

var readBuildInfo = debug.ReadBuildInfo

// String returns the version string. Builds without ldflags, such as go install,
// fall back to the VCS stamp the toolchain embeds.
func String() string {
	commit, built := Commit, BuildTime
	dirty := false
	if commit == "unknown" {
		if info, ok := readBuildInfo(); ok {
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					commit = s.Value
				case "vcs.time":
					if built == "unknown" {
						built = s.Value
					}
				case "vcs.modified":
					dirty = s.Value == "true"
				}
			}
		}
	}
	commit = shortCommit(commit)
	if dirty {
		commit += "-dirty"
	}
	return fmt.Sprintf("edgegen dev (commit: %s, built: %s)", commit, built)
}

func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}

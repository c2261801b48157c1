// Package version reports the binary version for the CLI and the MCP handshake.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/matiasleandrokruk/peoplebridge/internal/version.Version=...".
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = "unknown"
)

// String returns "peoplebridge version <v> (<commit>, built <time>)".
// Without ldflags the commit comes from the Go build info when available.
func String() string {
	commit := Commit
	if commit == "" {
		commit = vcsRevision()
	}
	if commit == "" {
		return fmt.Sprintf("peoplebridge version %s (built %s)", Version, BuildTime)
	}
	return fmt.Sprintf("peoplebridge version %s (%s, built %s)", Version, commit, BuildTime)
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 12 {
			return s.Value[:12]
		}
	}
	return ""
}

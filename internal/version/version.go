// Package version holds build version information for fsradio tools.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Version and Commit are stamped at release time:
//
//	go build -ldflags="-X github.com/sd-personal/fsradio/internal/version.Version=v1.2.3 \
//	                   -X github.com/sd-personal/fsradio/internal/version.Commit=abc123"
//
// A plain `go build` from a git checkout falls back to the VCS metadata in
// the binary's build info, and a build without either gets a dev stamp.
var (
	Version = ""
	Commit  = ""
)

func init() {
	if Version == "" || Commit == "" {
		fromBuildInfo()
	}
	if Version == "" {
		Version = "dev-" + time.Now().Format("20060102-150405")
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// fromBuildInfo fills Version and Commit from the vcs.* build settings
func fromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}

	if rev := settings["vcs.revision"]; Commit == "" && rev != "" {
		if len(rev) > 7 {
			rev = rev[:7]
		}
		if settings["vcs.modified"] == "true" {
			rev += "-dirty"
		}
		Commit = rev
	}

	// Build info carries no tags, so the best version without ldflags is a
	// dev stamp from the commit time
	if Version == "" {
		if t, err := time.Parse(time.RFC3339, settings["vcs.time"]); err == nil {
			Version = "dev-" + t.Format("20060102")
		}
	}
}

// Full returns the version string including the commit hash
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

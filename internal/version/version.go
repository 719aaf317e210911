package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// These variables can be set at build time via ldflags:
//
//	go build -ldflags="-X github.com/muurk/wot-discovery/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/wot-discovery/internal/version.Commit=abc123"
//
// Otherwise they are filled from the module build info, falling back to
// "dev" and "unknown".
var (
	// Version is the semantic version of the module
	Version = ""
	// Commit is the git commit hash
	Commit = ""
)

// productName prefixes the User-Agent sent to Things
const productName = "wot-discovery"

func init() {
	if Version == "" || Commit == "" {
		populateFromBuildInfo()
	}

	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// populateFromBuildInfo reads the module version and VCS settings, which are
// present when built from a git checkout or installed with go install
func populateFromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	if Commit == "" && revision != "" {
		if len(revision) > 7 {
			revision = revision[:7]
		}
		Commit = revision
		if modified {
			Commit += "-dirty"
		}
	}
}

// Full returns the full version string including commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// UserAgent returns the HTTP User-Agent used for Thing Description requests
func UserAgent() string {
	return productName + "/" + strings.TrimPrefix(Version, "v")
}

package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Build-time variables injected via -ldflags, e.g.
//
//	-X github.com/tbckr/insight/internal/version.Version=1.0.0
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// shortCommit is the number of revision characters reported.
const shortCommit = 7

func init() {
	if bi, ok := debug.ReadBuildInfo(); ok {
		applyBuildInfo(bi)
	}
}

// applyBuildInfo fills the variables still holding their placeholder values.
// ldflags always win.
func applyBuildInfo(bi *debug.BuildInfo) {
	if v := bi.Main.Version; Version == "dev" && v != "" && v != "(devel)" {
		Version = strings.TrimPrefix(v, "v")
	}
	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}
	if rev := settings["vcs.revision"]; Commit == "none" && rev != "" {
		Commit = rev[:min(len(rev), shortCommit)]
	}
	if t := settings["vcs.time"]; Date == "unknown" && t != "" {
		Date = t
	}
}

// Info describes the running build.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the current build information.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

func (i Info) String() string {
	return fmt.Sprintf("insight version %s (commit: %s, built: %s)", i.Version, i.Commit, i.Date)
}

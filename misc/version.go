// Package misc keeps build identity helpers with no other dependencies.
package misc

import (
	"runtime/debug"
	"sync"
)

const appName = "cueweb"

// GetAppName returns short program name used for logs, temporary files and
// generated documents.
func GetAppName() string {
	return appName
}

var buildInfo = sync.OnceValue(func() *debug.BuildInfo {
	if bi, ok := debug.ReadBuildInfo(); ok {
		return bi
	}
	return nil
})

// GetVersion returns module version recorded in build info, or "devel" for
// local builds.
func GetVersion() string {
	bi := buildInfo()
	if bi == nil || bi.Main.Version == "" || bi.Main.Version == "(devel)" {
		return "devel"
	}
	return bi.Main.Version
}

// GetGitHash returns VCS revision recorded in build info, shortened to 12
// characters.
func GetGitHash() string {
	bi := buildInfo()
	if bi == nil {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return "unknown"
}

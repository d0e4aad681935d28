package api

import (
	"runtime/debug"

	"github.com/samber/lo"
)

// Version is reported by the root endpoint and in MCP serverInfo
var Version = "1.0.0"

// VersionCommit is the VCS revision embedded by the Go toolchain, if any
var VersionCommit = ""

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if rev, ok := lo.Find(info.Settings, func(s debug.BuildSetting) bool {
		return s.Key == "vcs.revision"
	}); ok {
		VersionCommit = rev.Value
	}
}

// VersionString returns the version with a short commit suffix when known
func VersionString() string {
	if VersionCommit == "" {
		return Version
	}
	return Version + " (" + lo.Substring(VersionCommit, 0, 7) + ")"
}

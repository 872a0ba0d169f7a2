// Package version reports which build of motif is running.
package version

import (
	"runtime/debug"
	"strings"
)

// Version can be set at build time, e.g.
// go build -ldflags "-X github.com/vsariola/motif/version.Version=$(git describe --dirty)"
var Version string

// Hash is the short VCS revision the binary was built from, with a "-dirty"
// suffix for modified trees. Empty when built without VCS information.
var Hash = revision()

// VersionOrHash is what the tools print for -v: the explicit Version, the
// module version of a go install build, or the revision hash.
var VersionOrHash = func() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && strings.HasPrefix(info.Main.Version, "v") {
		return info.Main.Version
	}
	return Hash
}()

func revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	var hash string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			hash = setting.Value[:min(7, len(setting.Value))]
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if hash != "" && modified {
		return hash + "-dirty"
	}
	return hash
}

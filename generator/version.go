package generator

import (
	"runtime/debug"
	"strings"
)

// Version is the version of kube2helm. It is set at compile time.
var Version = "master" // changed at compile time

// GetVersion returns the version of kube2helm. The version is set at compile
// time for the release binaries, but if the user gets kube2helm with
// `go install`, the build info is used instead.
func GetVersion() string {
	if strings.HasPrefix(Version, "release-") {
		return Version
	}
	// get the version from the build info
	v, ok := debug.ReadBuildInfo()
	if ok {
		return v.Main.Version + "-" + v.GoVersion
	}
	return Version
}

// Package build holds build metadata, set at link time with -ldflags "-X".
package build

import "runtime"

var (
	ReleaseVersion = "UNKNOWN_RELEASE_VERSION"
	GitCommit      = "UNKNOWN_GIT_COMMIT"
	GoVersion      = runtime.Version()
	BuildTime      = "UNKNOWN_BUILD_TIME"
)

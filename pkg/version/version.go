// Package version reports the build identity printed by asciitree --version.
package version

import (
	"fmt"
	"runtime"
)

// Build identity, overridden by the release build through the linker:
//
//	-ldflags "-X asciitree/pkg/version.Version=v0.3.0 -X asciitree/pkg/version.Commit=$(git rev-parse --short HEAD)"
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// AppName is the program name used in version output and log fields.
const AppName = "asciitree"

// Info is the build identity together with the running toolchain and platform.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	Platform  string // GOOS/GOARCH
}

// Get collects the build identity of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String formats the --version line.
func (i Info) String() string {
	return fmt.Sprintf("%s version %s (commit: %s) built at %s with %s on %s",
		AppName, i.Version, i.GitCommit, i.BuildTime, i.GoVersion, i.Platform)
}

// Package version is filled in at link time, e.g.
//
//	go build -ldflags "-X github.com/psydoom/ticksync/pkg/version.Version=1.1.0"
package version

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

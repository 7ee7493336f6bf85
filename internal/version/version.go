// Package version carries build metadata stamped in via ldflags.
package version

//nolint:revive // Overridden at build time with -ldflags -X.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

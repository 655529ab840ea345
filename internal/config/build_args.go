package config

import "fmt"

// The following vars are injected at build time, e.g.
//
//	go build -ldflags "-X github/chapool/sol-explorer/internal/config.Commit=$(git rev-parse HEAD)"
//
// No need to change them here.
var (
	ModuleName = "build.local/misses/ldflags" // e.g. "sol-explorer"
	Commit     = "< 40 chars git commit hash via ldflags >"
	BuildDate  = "1970-01-01T00:00:00+00:00"
)

// GetFormattedBuildArgs returns string representation of buildsargs set via ldflags "<ModuleName> @ <Commit> (<BuildDate>)"
func GetFormattedBuildArgs() string {
	return fmt.Sprintf("%v @ %v (%v)", ModuleName, Commit, BuildDate)
}

package app

import (
	"github.com/prometheus/common/version"

	"trustable/internal/domain"
)

// Program is the binary name reported in build information.
const Program = "trustable-mcp"

// Version is the build version, set at build time via -ldflags on
// github.com/prometheus/common/version.Version.
func Version() string {
	if version.Version == "" {
		return domain.DefaultServerVersion
	}
	return version.Version
}

// VersionInfo is the multi-line build report printed by `version`.
func VersionInfo() string {
	return version.Print(Program)
}

// Package version holds the build-time version information.
package version

import (
	"strings"

	"github.com/carlmjohnson/versioninfo"
)

var (
	// Version of roboshop, overridden during the release build
	Version = versioninfo.Version
	// GitCommit of the build, overridden during the release build
	GitCommit = versioninfo.Revision
	// Environment is "release" in released binaries
	Environment = "development"
)

// IsPre is true when the current version is a prerelease
func IsPre() bool {
	return strings.Contains(Version, "-")
}

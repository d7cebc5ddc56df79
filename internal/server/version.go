package server

import (
	"github.com/Masterminds/semver/v3"
)

// Version is the current version of the service.
const Version = "0.1.0"

// ApiVersion is the version of the HTTP API.
const ApiVersion = "v1"

// ApiVersionHeader lets clients pin the service version they were built for.
const ApiVersionHeader = "X-Walleterrors-Version"

// versionConstraint accepts clients of the same minor version.
var versionConstraint *semver.Constraints

func init() {
	var err error
	versionConstraint, err = semver.NewConstraint("~" + Version)
	if err != nil {
		panic(err)
	}
}

// IsVersionCompatible reports whether the given version is compatible
// with the current version. Returns false for invalid version strings.
func IsVersionCompatible(version string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return versionConstraint.Check(v)
}

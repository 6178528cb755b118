package entities

import (
	"strings"

	"golang.org/x/mod/semver"
)

// IsNewerVersion compares two version strings and returns true if
// newVersion is newer than currentVersion. Valid semver pairs are compared
// semantically; anything else (PyPI pre-release suffixes, date-based
// schemes) falls back to plain string ordering.
func IsNewerVersion(currentVersion, newVersion string) bool {
	current := normalizeVersion(currentVersion)
	next := normalizeVersion(newVersion)

	if semver.IsValid(current) && semver.IsValid(next) {
		return semver.Compare(next, current) > 0
	}

	return newVersion > currentVersion
}

// normalizeVersion ensures version has 'v' prefix for semver compatibility.
func normalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}

package entities

import "strings"

// Requirement represents a single declared package parsed from a
// requirements file. One Requirement exists per declared package per file;
// it is never mutated after parsing.
type Requirement struct {
	Name       string // Package name as written (without extras)
	Constraint string // Full version specifier as declared (e.g. "==2.28.0")
	Version    string // Pinned version; empty when the line carries no "==" pin
	FilePath   string // Requirements file this requirement came from
	Line       int    // Line number in the file
}

// PackageInfo correlates a declared requirement with the latest version
// reported by the package registry.
type PackageInfo struct {
	Name           string
	CurrentVersion string
	LatestVersion  string
	FilePath       string
}

// HasUpdate reports whether the registry knows a version different from the
// declared pin. The comparison is strict string inequality, matching the
// registry's notion of "latest" rather than any semantic ordering; an
// unpinned requirement never has an update.
func (p PackageInfo) HasUpdate() bool {
	return p.LatestVersion != "" &&
		p.CurrentVersion != "" &&
		p.LatestVersion != p.CurrentVersion
}

// NormalizePackageName canonicalizes a package name for registry lookups
// and name matching: lowercase, with runs of ".", "-" and "_" collapsed
// into a single "-" (PEP 503).
func NormalizePackageName(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))

	previousSeparator := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if r == '.' || r == '-' || r == '_' {
			previousSeparator = true
			continue
		}
		if previousSeparator && sb.Len() > 0 {
			sb.WriteByte('-')
		}
		previousSeparator = false
		sb.WriteRune(r)
	}

	return sb.String()
}

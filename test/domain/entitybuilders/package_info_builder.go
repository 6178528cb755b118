//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/pypiup/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// PackageInfoBuilder helps create test package candidates with a fluent interface.
type PackageInfoBuilder struct {
	*testkit.BaseBuilder
	name           string
	currentVersion string
	latestVersion  string
	filePath       string
}

// NewPackageInfoBuilder creates a new package info builder with sensible defaults.
func NewPackageInfoBuilder() *PackageInfoBuilder {
	return &PackageInfoBuilder{
		BaseBuilder:    testkit.NewBaseBuilder(),
		name:           "requests",
		currentVersion: "2.28.0",
		latestVersion:  "2.31.0",
		filePath:       "requirements/base.in",
	}
}

// WithName sets the package name.
func (b *PackageInfoBuilder) WithName(name string) *PackageInfoBuilder {
	b.name = name
	return b
}

// WithCurrentVersion sets the declared version.
func (b *PackageInfoBuilder) WithCurrentVersion(version string) *PackageInfoBuilder {
	b.currentVersion = version
	return b
}

// WithLatestVersion sets the registry-reported version.
func (b *PackageInfoBuilder) WithLatestVersion(version string) *PackageInfoBuilder {
	b.latestVersion = version
	return b
}

// WithFilePath sets the requirements file path.
func (b *PackageInfoBuilder) WithFilePath(path string) *PackageInfoBuilder {
	b.filePath = path
	return b
}

// Build creates the package info (satisfies testkit.Builder interface).
func (b *PackageInfoBuilder) Build() interface{} {
	return b.BuildPackageInfo()
}

// BuildPackageInfo creates the package info with a concrete return type.
func (b *PackageInfoBuilder) BuildPackageInfo() entities.PackageInfo {
	return entities.PackageInfo{
		Name:           b.name,
		CurrentVersion: b.currentVersion,
		LatestVersion:  b.latestVersion,
		FilePath:       b.filePath,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *PackageInfoBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "requests"
	b.currentVersion = "2.28.0"
	b.latestVersion = "2.31.0"
	b.filePath = "requirements/base.in"
	return b
}

// Clone creates a deep copy of the PackageInfoBuilder.
func (b *PackageInfoBuilder) Clone() testkit.Builder {
	return &PackageInfoBuilder{
		BaseBuilder:    b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:           b.name,
		currentVersion: b.currentVersion,
		latestVersion:  b.latestVersion,
		filePath:       b.filePath,
	}
}

//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/pypiup/internal/domain/entities"
	"github.com/rios0rios0/pypiup/internal/domain/repositories"
)

// RewriteCall records a single invocation of RewriteVersion.
type RewriteCall struct {
	FilePath    string
	PackageName string
	NewVersion  string
}

// SpyRequirementsRepository implements repositories.RequirementsRepository
// as a configurable spy.
type SpyRequirementsRepository struct {
	// --- Parse ---
	Requirements map[string][]entities.Requirement // file path -> records
	ParseErr     error
	ParsedFiles  []string

	// --- RewriteVersion ---
	RewriteErr   error
	NotFoundFor  map[string]bool // package name -> report "line not found"
	RewriteCalls []RewriteCall

	// --- DiscoverFiles ---
	Files           []string
	DiscoverErr     error
	DiscoveredRoots []string
}

var _ repositories.RequirementsRepository = (*SpyRequirementsRepository)(nil)

func (r *SpyRequirementsRepository) Parse(filePath string) ([]entities.Requirement, error) {
	r.ParsedFiles = append(r.ParsedFiles, filePath)
	if r.ParseErr != nil {
		return nil, r.ParseErr
	}
	return r.Requirements[filePath], nil
}

func (r *SpyRequirementsRepository) RewriteVersion(
	filePath, packageName, newVersion string,
) (bool, error) {
	r.RewriteCalls = append(r.RewriteCalls, RewriteCall{
		FilePath:    filePath,
		PackageName: packageName,
		NewVersion:  newVersion,
	})
	if r.RewriteErr != nil {
		return false, r.RewriteErr
	}
	if r.NotFoundFor != nil && r.NotFoundFor[packageName] {
		return false, nil
	}
	return true, nil
}

func (r *SpyRequirementsRepository) DiscoverFiles(rootDir string) ([]string, error) {
	r.DiscoveredRoots = append(r.DiscoveredRoots, rootDir)
	return r.Files, r.DiscoverErr
}

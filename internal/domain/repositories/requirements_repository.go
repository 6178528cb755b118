package repositories

import (
	"github.com/rios0rios0/pypiup/internal/domain/entities"
)

// RequirementsRepository abstracts access to pip requirements declaration
// files: parsing them into requirement records, rewriting a single version
// pin in place, and discovering the files under a root directory.
type RequirementsRepository interface {
	// Parse returns the ordered requirements declared in the given file.
	// Comments, includes, and blank lines are omitted; a file declaring no
	// packages yields an empty slice, not an error.
	Parse(filePath string) ([]entities.Requirement, error)

	// RewriteVersion replaces the version token of exactly one package pin
	// in the given file, preserving all other content byte-for-byte. It
	// returns false when no pinned line for the package could be located.
	RewriteVersion(filePath, packageName, newVersion string) (bool, error)

	// DiscoverFiles returns all recognized declaration files under rootDir,
	// in a deterministic order. A missing root yields an empty result.
	DiscoverFiles(rootDir string) ([]string, error)
}

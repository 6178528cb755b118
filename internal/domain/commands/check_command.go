package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pypiup/internal/domain/entities"
	"github.com/rios0rios0/pypiup/internal/domain/repositories"
)

// Check is the interface for the check command (read-only update scan).
type Check interface {
	Execute(ctx context.Context, settings *entities.Settings, files []string) (*CheckReport, error)
}

// CheckReport maps every checked file to its package candidates, keeping
// the file enumeration order so downstream processing is deterministic.
type CheckReport struct {
	Files    []string
	Packages map[string][]entities.PackageInfo
}

// TotalUpdates returns the number of packages with an available update
// across all files.
func (r *CheckReport) TotalUpdates() int {
	total := 0
	for _, packages := range r.Packages {
		for _, pkg := range packages {
			if pkg.HasUpdate() {
				total++
			}
		}
	}
	return total
}

// CheckCommand correlates parsed requirements against registry lookups.
// It has no side effects beyond registry reads.
type CheckCommand struct {
	requirements repositories.RequirementsRepository
	registry     repositories.RegistryRepository
}

// NewCheckCommand creates a new CheckCommand with the given collaborators.
func NewCheckCommand(
	requirements repositories.RequirementsRepository,
	registry repositories.RegistryRepository,
) *CheckCommand {
	return &CheckCommand{
		requirements: requirements,
		registry:     registry,
	}
}

// Execute checks the given files (or every file discovered under the
// configured requirements directory) for available updates. Files with no
// parseable packages yield an empty candidate list; a failed lookup for
// one package never fails the others.
func (it *CheckCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	files []string,
) (*CheckReport, error) {
	filePaths := files
	if len(filePaths) == 0 {
		discovered, err := it.requirements.DiscoverFiles(settings.RequirementsDir)
		if err != nil {
			return nil, fmt.Errorf("failed to discover requirements files: %w", err)
		}
		filePaths = discovered
	}

	report := &CheckReport{
		Files:    filePaths,
		Packages: make(map[string][]entities.PackageInfo, len(filePaths)),
	}

	for _, filePath := range filePaths {
		logger.Infof("Checking updates for %s", filePath)

		packages, err := it.checkFile(ctx, filePath)
		if err != nil {
			return nil, err
		}
		report.Packages[filePath] = packages

		updatesAvailable := 0
		for _, pkg := range packages {
			if pkg.HasUpdate() {
				updatesAvailable++
			}
		}
		logger.Infof("Found %d updates available in %s", updatesAvailable, filePath)
	}

	return report, nil
}

// checkFile parses one file and correlates its requirements with the
// registry. Lookups for the file's packages run as one bounded batch so
// error attribution stays local to the file.
func (it *CheckCommand) checkFile(
	ctx context.Context,
	filePath string,
) ([]entities.PackageInfo, error) {
	reqs, err := it.requirements.Parse(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}

	if len(reqs) == 0 {
		logger.Infof("No packages found in %s", filePath)
		return []entities.PackageInfo{}, nil
	}

	names := make([]string, 0, len(reqs))
	for _, req := range reqs {
		names = append(names, req.Name)
	}

	latest, lookupErr := it.registry.ResolveLatest(ctx, names)
	if lookupErr != nil {
		return nil, fmt.Errorf("registry lookup for %s: %w", filePath, lookupErr)
	}

	// One candidate per requirement record whose lookup succeeded;
	// duplicate names within a file are each correlated independently.
	packages := make([]entities.PackageInfo, 0, len(reqs))
	for _, req := range reqs {
		latestVersion, ok := latest[entities.NormalizePackageName(req.Name)]
		if !ok {
			continue
		}
		packages = append(packages, entities.PackageInfo{
			Name:           req.Name,
			CurrentVersion: req.Version,
			LatestVersion:  latestVersion,
			FilePath:       filePath,
		})
	}

	return packages, nil
}

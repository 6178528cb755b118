package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pypiup/internal/domain/entities"
	"github.com/rios0rios0/pypiup/internal/domain/repositories"
)

// ErrCancelled is returned when the operator quits an interactive run.
// It propagates to the top-level caller, which decides the exit code;
// the partial summary is discarded.
var ErrCancelled = errors.New("update process cancelled by user")

// Update is the interface for the update command (the mutating run).
type Update interface {
	Execute(ctx context.Context, settings *entities.Settings, opts UpdateOptions) (*entities.UpdateSummary, error)
}

// UpdateOptions holds runtime options for a single update run. The mode
// (dry-run / interactive / non-interactive) is selected once per run.
type UpdateOptions struct {
	Files       []string
	DryRun      bool
	AutoCompile bool
	Interactive bool
}

// UpdateCommand orchestrates the full update flow: check for updates ->
// run the per-candidate decision protocol -> optionally recompile locked
// requirements -> fold the outcomes into a summary.
type UpdateCommand struct {
	check        Check
	requirements repositories.RequirementsRepository
	compiler     repositories.CompilerRepository
	prompter     repositories.Prompter
}

// NewUpdateCommand creates a new UpdateCommand with the given collaborators.
func NewUpdateCommand(
	check Check,
	requirements repositories.RequirementsRepository,
	compiler repositories.CompilerRepository,
	prompter repositories.Prompter,
) *UpdateCommand {
	return &UpdateCommand{
		check:        check,
		requirements: requirements,
		compiler:     compiler,
		prompter:     prompter,
	}
}

// Execute runs one update cycle. A single package's failure is contained
// in the summary and never stops the run; only ErrCancelled (operator
// quit) aborts early.
func (it *UpdateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts UpdateOptions,
) (*entities.UpdateSummary, error) {
	logger.Info("Starting package update process...")

	report, err := it.check.Execute(ctx, settings, opts.Files)
	if err != nil {
		return nil, err
	}

	if len(report.Files) == 0 {
		logger.Info("No requirements files found to update")
		return entities.NewUpdateSummary(nil), nil
	}

	candidates := collectUpdatable(report)
	if len(candidates) == 0 {
		logger.Info("No updates available for any packages")
		return entities.NewUpdateSummary(nil), nil
	}

	logger.Infof("Found %d packages with available updates", len(candidates))

	results := make([]entities.UpdateResult, 0, len(candidates))
	mutatedFiles := make(map[string]bool)

	for _, pkg := range candidates {
		result, decisionErr := it.processCandidate(pkg, opts)
		if decisionErr != nil {
			return nil, decisionErr
		}
		results = append(results, result)

		if result.Success && !opts.DryRun {
			mutatedFiles[result.FilePath] = true
		}
	}

	if opts.AutoCompile && len(mutatedFiles) > 0 && !opts.DryRun {
		logger.Info("Running requirements compilation...")
		if compileErr := it.compiler.Compile(ctx, settings.ToolsDir); compileErr != nil {
			// Compile failures never alter the summary.
			logger.Errorf("Requirements compilation failed: %v", compileErr)
		}
	}

	summary := entities.NewUpdateSummary(results)

	logger.Infof("Update complete: %d/%d packages updated", summary.Updated, summary.Total)
	if summary.Failed > 0 {
		logger.Warnf("%d packages failed to update", summary.Failed)
	}
	if summary.Skipped > 0 {
		logger.Infof("%d packages skipped", summary.Skipped)
	}

	return summary, nil
}

// collectUpdatable flattens updatable candidates across all files,
// preserving file-then-package order. Candidates without an update never
// reach the decision protocol.
func collectUpdatable(report *CheckReport) []entities.PackageInfo {
	var candidates []entities.PackageInfo
	for _, filePath := range report.Files {
		for _, pkg := range report.Packages[filePath] {
			if pkg.HasUpdate() {
				candidates = append(candidates, pkg)
			}
		}
	}
	return candidates
}

// processCandidate runs the decision protocol for one candidate: apply,
// skip-by-user, or dry-run. At most one file mutation happens per
// candidate.
func (it *UpdateCommand) processCandidate(
	pkg entities.PackageInfo,
	opts UpdateOptions,
) (entities.UpdateResult, error) {
	logger.Infof("Package: %s", pkg.Name)
	logger.Infof("  Current: %s", pkg.CurrentVersion)
	logger.Infof("  Latest:  %s", pkg.LatestVersion)
	logger.Infof("  File:    %s", pkg.FilePath)

	if opts.DryRun {
		// Dry-run "successes" represent would-update, not did-update.
		logger.Info("  [DRY RUN] Would update package")
		return appliedResult(pkg), nil
	}

	if opts.Interactive {
		decision, err := it.prompter.Confirm(pkg)
		if err != nil {
			return entities.UpdateResult{}, fmt.Errorf("confirmation prompt failed: %w", err)
		}

		switch decision {
		case entities.DecisionQuit:
			return entities.UpdateResult{}, ErrCancelled
		case entities.DecisionSkip:
			logger.Infof("Skipping %s", pkg.Name)
			return skippedResult(pkg), nil
		case entities.DecisionApply:
			// fall through to apply
		}
	}

	return it.apply(pkg), nil
}

// apply rewrites the package's version pin in its file. Failures are
// local: they become a failed result and the run continues.
func (it *UpdateCommand) apply(pkg entities.PackageInfo) entities.UpdateResult {
	if !entities.IsNewerVersion(pkg.CurrentVersion, pkg.LatestVersion) {
		logger.Warnf(
			"Registry version %s for %s does not order after %s, applying anyway",
			pkg.LatestVersion, pkg.Name, pkg.CurrentVersion,
		)
	}

	found, err := it.requirements.RewriteVersion(pkg.FilePath, pkg.Name, pkg.LatestVersion)
	if err != nil {
		message := fmt.Sprintf("Failed to update %s in %s: %v", pkg.Name, pkg.FilePath, err)
		logger.Error(message)
		return failedResult(pkg, message)
	}
	if !found {
		message := fmt.Sprintf("Failed to update %s in %s", pkg.Name, pkg.FilePath)
		logger.Error(message)
		return failedResult(pkg, message)
	}

	logger.Infof("Updated %s to %s", pkg.Name, pkg.LatestVersion)
	return appliedResult(pkg)
}

func appliedResult(pkg entities.PackageInfo) entities.UpdateResult {
	return entities.UpdateResult{
		PackageName: pkg.Name,
		OldVersion:  pkg.CurrentVersion,
		NewVersion:  pkg.LatestVersion,
		FilePath:    pkg.FilePath,
		Success:     true,
	}
}

func skippedResult(pkg entities.PackageInfo) entities.UpdateResult {
	return entities.UpdateResult{
		PackageName:  pkg.Name,
		OldVersion:   pkg.CurrentVersion,
		NewVersion:   pkg.LatestVersion,
		FilePath:     pkg.FilePath,
		Success:      false,
		ErrorMessage: entities.SkippedByUserMessage,
	}
}

func failedResult(pkg entities.PackageInfo, message string) entities.UpdateResult {
	return entities.UpdateResult{
		PackageName:  pkg.Name,
		OldVersion:   pkg.CurrentVersion,
		NewVersion:   pkg.LatestVersion,
		FilePath:     pkg.FilePath,
		Success:      false,
		ErrorMessage: message,
	}
}

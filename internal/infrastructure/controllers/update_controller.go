package controllers

import (
	"context"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pypiup/internal/domain/commands"
	"github.com/rios0rios0/pypiup/internal/domain/entities"
)

// UpdateController handles the root command and the "update" subcommand:
// the mutating run that rewrites version pins.
type UpdateController struct {
	command  commands.Update
	settings *entities.Settings
}

// NewUpdateController creates a new UpdateController.
func NewUpdateController(command commands.Update, settings *entities.Settings) *UpdateController {
	return &UpdateController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the update controller.
func (it *UpdateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "update [files...]",
		Short: "Update package versions in requirements files",
		Long: `Check the package index for newer versions of the packages declared in
requirements files and rewrite the pins in place.

Without arguments every *.in file under the requirements directory is
processed; passing file paths restricts the run to those files. Each
update asks for confirmation unless --non-interactive or --dry-run is
set. After at least one file changed, the locked requirements are
recompiled unless --no-compile is set.`,
	}
}

// Execute runs the update operation. The returned error decides the
// process exit code: non-nil when at least one update failed, the
// operator quit, or the run aborted unexpectedly.
func (it *UpdateController) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	settings, err := resolveSettings(cmd, it.settings)
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	noCompile, _ := cmd.Flags().GetBool("no-compile")
	nonInteractive, _ := cmd.Flags().GetBool("non-interactive")

	summary, execErr := it.command.Execute(ctx, settings, commands.UpdateOptions{
		Files:       args,
		DryRun:      dryRun,
		AutoCompile: !noCompile,
		Interactive: !nonInteractive,
	})
	if execErr != nil {
		return execErr
	}

	commands.PrintSummary(os.Stdout, summary)

	if summary.Failed > 0 {
		return fmt.Errorf("%d package update(s) failed", summary.Failed)
	}
	return nil
}

// resolveSettings applies the --config flag and the directory flag
// overrides onto the shared settings instance.
func resolveSettings(cmd *cobra.Command, settings *entities.Settings) (*entities.Settings, error) {
	if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
		loaded, err := entities.NewSettings(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*settings = *loaded
		logger.Debugf("Using config file: %s", configPath)
	}

	if requirementsDir, _ := cmd.Flags().GetString("requirements-dir"); requirementsDir != "" {
		settings.RequirementsDir = requirementsDir
	}
	if toolsDir, _ := cmd.Flags().GetString("tools-dir"); toolsDir != "" {
		settings.ToolsDir = toolsDir
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	return settings, nil
}

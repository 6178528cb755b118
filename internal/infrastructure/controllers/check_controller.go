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

// CheckController handles the "check" subcommand: a read-only scan that
// reports available updates and never mutates any file.
type CheckController struct {
	command  commands.Check
	settings *entities.Settings
}

// NewCheckController creates a new CheckController.
func NewCheckController(command commands.Check, settings *entities.Settings) *CheckController {
	return &CheckController{command: command, settings: settings}
}

// GetBind returns the Cobra command metadata for the check controller.
func (it *CheckController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "check [files...]",
		Short: "Check for available package updates without changing anything",
		Long: `List packages in requirements files that have a newer version on the
package index. Nothing is written; the command always exits zero.`,
	}
}

// Execute runs the read-only check. Errors are reported but swallowed so
// the check surface always exits zero.
func (it *CheckController) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	settings, err := resolveSettings(cmd, it.settings)
	if err != nil {
		logger.Errorf("Check failed: %v", err)
		return nil
	}

	fmt.Fprintln(os.Stdout, "Checking for available updates...")

	report, execErr := it.command.Execute(ctx, settings, args)
	if execErr != nil {
		logger.Errorf("Check failed: %v", execErr)
		return nil
	}

	commands.PrintCheckReport(os.Stdout, report)
	return nil
}

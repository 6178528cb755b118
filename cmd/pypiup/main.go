package main

import (
	"errors"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pypiup/internal"
	"github.com/rios0rios0/pypiup/internal/domain/commands"
	"github.com/rios0rios0/pypiup/internal/infrastructure/controllers"
)

func buildRootCommand(updateController *controllers.UpdateController) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "pypiup [files...]",
		Short: "Update Python package versions in requirements files",
		Long: `Automatically update Python package versions in pip requirements files.

The packages declared in *.in files are checked against the package index;
for each one with a newer version the pin is rewritten in place, with
interactive confirmation by default. After updates, the locked
requirements are recompiled through the project's compilation script.

Usage modes:
  pypiup                  Update every *.in file under requirements/
  pypiup base.in dev.in   Update only the given files
  pypiup check            Report available updates without changing anything`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, args []string) error {
			return updateController.Execute(command, args)
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().String("requirements-dir", "",
		"Directory containing requirements files (default: requirements)")
	cmd.PersistentFlags().String("tools-dir", "",
		"Directory containing the compilation script (default: tools)")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Show what would be updated without making changes")
	cmd.PersistentFlags().Bool("no-compile", false,
		"Don't run the compilation script after updates")
	cmd.PersistentFlags().Bool("non-interactive", false,
		"Don't ask for confirmation before each update")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			RunE: func(command *cobra.Command, arguments []string) error {
				return controller.Execute(command, arguments)
			},
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	updateController := injectUpdateController()
	cobraRoot := buildRootCommand(updateController)

	// Add all subcommands
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		if errors.Is(err, commands.ErrCancelled) {
			logger.Error("Update process cancelled by user")
		} else {
			logger.Errorf("Error executing 'pypiup': %s", err)
		}
		os.Exit(1)
	}
}

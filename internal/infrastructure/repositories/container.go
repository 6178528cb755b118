package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/pypiup/internal/infrastructure/prompt"
	"github.com/rios0rios0/pypiup/internal/infrastructure/repositories/compiler"
	"github.com/rios0rios0/pypiup/internal/infrastructure/repositories/pypi"
	"github.com/rios0rios0/pypiup/internal/infrastructure/repositories/requirements"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(requirements.NewFileRequirementsRepository); err != nil {
		return err
	}
	if err := container.Provide(pypi.NewPyPIRegistryRepository); err != nil {
		return err
	}
	if err := container.Provide(compiler.NewScriptCompilerRepository); err != nil {
		return err
	}
	if err := container.Provide(prompt.NewTerminalPrompter); err != nil {
		return err
	}

	return nil
}

package entities

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// The settings instance is shared: controllers apply CLI overrides onto
	// it before handing it to the commands layer.
	return container.Provide(LoadSettings)
}

//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pypiup/internal/domain/commands"
	"github.com/rios0rios0/pypiup/internal/domain/entities"
	"github.com/rios0rios0/pypiup/test/infrastructure/repositorydoubles"
)

func TestCheckCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should discover files when none are given", func(t *testing.T) {
		t.Parallel()

		// given
		requirements := &repositorydoubles.SpyRequirementsRepository{
			Files: []string{"requirements/base.in", "requirements/dev.in"},
		}
		registry := &repositorydoubles.SpyRegistryRepository{}
		command := commands.NewCheckCommand(requirements, registry)
		settings := entities.DefaultSettings()

		// when
		report, err := command.Execute(context.Background(), settings, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"requirements"}, requirements.DiscoveredRoots)
		assert.Equal(t, []string{"requirements/base.in", "requirements/dev.in"}, report.Files)
	})

	t.Run("should not discover files when explicit files are given", func(t *testing.T) {
		t.Parallel()

		// given
		requirements := &repositorydoubles.SpyRequirementsRepository{
			Files: []string{"requirements/base.in"},
		}
		registry := &repositorydoubles.SpyRegistryRepository{}
		command := commands.NewCheckCommand(requirements, registry)
		settings := entities.DefaultSettings()

		// when
		report, err := command.Execute(context.Background(), settings, []string{"custom.in"})

		// then
		require.NoError(t, err)
		assert.Empty(t, requirements.DiscoveredRoots)
		assert.Equal(t, []string{"custom.in"}, report.Files)
	})

	t.Run("should yield an empty candidate list for a file with no packages", func(t *testing.T) {
		t.Parallel()

		// given
		requirements := &repositorydoubles.SpyRequirementsRepository{
			Requirements: map[string][]entities.Requirement{},
		}
		registry := &repositorydoubles.SpyRegistryRepository{}
		command := commands.NewCheckCommand(requirements, registry)
		settings := entities.DefaultSettings()

		// when
		report, err := command.Execute(context.Background(), settings, []string{"empty.in"})

		// then
		require.NoError(t, err)
		assert.Empty(t, report.Packages["empty.in"])
		assert.Empty(t, registry.ResolveCalls, "no lookup should happen for an empty file")
		assert.Equal(t, 0, report.TotalUpdates())
	})

	t.Run("should correlate registry versions back to each requirement", func(t *testing.T) {
		t.Parallel()

		// given
		requirements := &repositorydoubles.SpyRequirementsRepository{
			Requirements: map[string][]entities.Requirement{
				"base.in": {
					{Name: "requests", Version: "2.28.0", FilePath: "base.in", Line: 1},
					{Name: "click", Version: "8.1.7", FilePath: "base.in", Line: 2},
				},
			},
		}
		registry := &repositorydoubles.SpyRegistryRepository{
			Latest: map[string]string{
				"requests": "2.31.0",
				"click":    "8.1.7",
			},
		}
		command := commands.NewCheckCommand(requirements, registry)
		settings := entities.DefaultSettings()

		// when
		report, err := command.Execute(context.Background(), settings, []string{"base.in"})

		// then
		require.NoError(t, err)
		packages := report.Packages["base.in"]
		require.Len(t, packages, 2)
		assert.Equal(t, "requests", packages[0].Name)
		assert.Equal(t, "2.28.0", packages[0].CurrentVersion)
		assert.Equal(t, "2.31.0", packages[0].LatestVersion)
		assert.Equal(t, "base.in", packages[0].FilePath)
		assert.True(t, packages[0].HasUpdate())
		assert.Equal(t, "click", packages[1].Name)
		assert.False(t, packages[1].HasUpdate())
		assert.Equal(t, 1, report.TotalUpdates())
	})

	t.Run("should omit packages whose lookup failed", func(t *testing.T) {
		t.Parallel()

		// given: "internal-only" is absent from the registry map
		requirements := &repositorydoubles.SpyRequirementsRepository{
			Requirements: map[string][]entities.Requirement{
				"base.in": {
					{Name: "requests", Version: "2.28.0", FilePath: "base.in", Line: 1},
					{Name: "internal-only", Version: "1.0.0", FilePath: "base.in", Line: 2},
				},
			},
		}
		registry := &repositorydoubles.SpyRegistryRepository{
			Latest: map[string]string{"requests": "2.31.0"},
		}
		command := commands.NewCheckCommand(requirements, registry)
		settings := entities.DefaultSettings()

		// when
		report, err := command.Execute(context.Background(), settings, []string{"base.in"})

		// then
		require.NoError(t, err)
		packages := report.Packages["base.in"]
		require.Len(t, packages, 1)
		assert.Equal(t, "requests", packages[0].Name)
	})

	t.Run("should match registry results through name normalization", func(t *testing.T) {
		t.Parallel()

		// given: the file declares "Django", the registry knows "django"
		requirements := &repositorydoubles.SpyRequirementsRepository{
			Requirements: map[string][]entities.Requirement{
				"base.in": {
					{Name: "Django", Version: "4.2.0", FilePath: "base.in", Line: 1},
				},
			},
		}
		registry := &repositorydoubles.SpyRegistryRepository{
			Latest: map[string]string{"django": "5.0.1"},
		}
		command := commands.NewCheckCommand(requirements, registry)
		settings := entities.DefaultSettings()

		// when
		report, err := command.Execute(context.Background(), settings, []string{"base.in"})

		// then
		require.NoError(t, err)
		packages := report.Packages["base.in"]
		require.Len(t, packages, 1)
		assert.Equal(t, "Django", packages[0].Name, "declared spelling is preserved")
		assert.Equal(t, "5.0.1", packages[0].LatestVersion)
	})

	t.Run("should batch lookups per file", func(t *testing.T) {
		t.Parallel()

		// given
		requirements := &repositorydoubles.SpyRequirementsRepository{
			Requirements: map[string][]entities.Requirement{
				"base.in": {{Name: "requests", Version: "2.28.0", FilePath: "base.in", Line: 1}},
				"dev.in":  {{Name: "pytest", Version: "7.4.0", FilePath: "dev.in", Line: 1}},
			},
		}
		registry := &repositorydoubles.SpyRegistryRepository{
			Latest: map[string]string{"requests": "2.31.0", "pytest": "8.0.0"},
		}
		command := commands.NewCheckCommand(requirements, registry)
		settings := entities.DefaultSettings()

		// when
		_, err := command.Execute(context.Background(), settings, []string{"base.in", "dev.in"})

		// then
		require.NoError(t, err)
		require.Len(t, registry.ResolveCalls, 2)
		assert.Equal(t, []string{"requests"}, registry.ResolveCalls[0])
		assert.Equal(t, []string{"pytest"}, registry.ResolveCalls[1])
	})

	t.Run("should fail when discovery fails", func(t *testing.T) {
		t.Parallel()

		// given
		requirements := &repositorydoubles.SpyRequirementsRepository{
			DiscoverErr: errors.New("permission denied"),
		}
		registry := &repositorydoubles.SpyRegistryRepository{}
		command := commands.NewCheckCommand(requirements, registry)
		settings := entities.DefaultSettings()

		// when
		_, err := command.Execute(context.Background(), settings, nil)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to discover requirements files")
	})

	t.Run("should fail when a file cannot be parsed", func(t *testing.T) {
		t.Parallel()

		// given
		requirements := &repositorydoubles.SpyRequirementsRepository{
			ParseErr: errors.New("read error"),
		}
		registry := &repositorydoubles.SpyRegistryRepository{}
		command := commands.NewCheckCommand(requirements, registry)
		settings := entities.DefaultSettings()

		// when
		_, err := command.Execute(context.Background(), settings, []string{"broken.in"})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse broken.in")
	})
}

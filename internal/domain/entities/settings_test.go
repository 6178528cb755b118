//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pypiup/internal/domain/entities"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pypiup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	t.Run("should carry the documented defaults", func(t *testing.T) {
		t.Parallel()

		// when
		settings := entities.DefaultSettings()

		// then
		assert.Equal(t, "requirements", settings.RequirementsDir)
		assert.Equal(t, "tools", settings.ToolsDir)
		assert.Equal(t, "https://pypi.org", settings.RegistryURL)
		assert.Equal(t, 5, settings.LookupFanOut)
	})
}

//nolint:tparallel // some subtests use t.Setenv which is incompatible with t.Parallel on parent
func TestNewSettings(t *testing.T) {
	t.Run("should load values from a config file", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, `
requirements_dir: deps
tools_dir: scripts
lookup_fan_out: 10
`)

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "deps", settings.RequirementsDir)
		assert.Equal(t, "scripts", settings.ToolsDir)
		assert.Equal(t, 10, settings.LookupFanOut)
	})

	t.Run("should keep defaults for unset fields", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, "requirements_dir: deps\n")

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "https://pypi.org", settings.RegistryURL)
		assert.Equal(t, 5, settings.LookupFanOut)
	})

	t.Run("should expand environment variables in the registry URL", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("TEST_INDEX_HOST", "https://mirror.example.com")
		path := writeConfig(t, "registry_url: ${TEST_INDEX_HOST}\n")

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "https://mirror.example.com", settings.RegistryURL)
	})

	t.Run("should fail for a missing file", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.NewSettings(filepath.Join(t.TempDir(), "absent.yaml"))

		// then
		require.Error(t, err)
	})

	t.Run("should fail for malformed yaml", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, "requirements_dir: [unclosed\n")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
	})

	t.Run("should reject a non-positive fan-out", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, "lookup_fan_out: 0\n")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lookup_fan_out")
	})
}

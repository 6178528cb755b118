//go:build unit

package compiler_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pypiup/internal/infrastructure/repositories/compiler"
)

// writeScript lays out <project>/tools/update-locked-requirements with the
// given body and returns the tools directory.
func writeScript(t *testing.T, body string) string {
	t.Helper()

	toolsDir := filepath.Join(t.TempDir(), "tools")
	require.NoError(t, os.MkdirAll(toolsDir, 0o755))

	script := "#!/bin/sh\n" + body
	path := filepath.Join(toolsDir, compiler.CompileScriptName)
	require.NoError(t, os.WriteFile(path, []byte(script), 0o700))

	return toolsDir
}

func TestScriptCompilerRepositoryCompile(t *testing.T) {
	t.Parallel()

	t.Run("should succeed when the script exits cleanly", func(t *testing.T) {
		t.Parallel()

		// given
		toolsDir := writeScript(t, "exit 0\n")
		repository := compiler.NewScriptCompilerRepository()

		// when
		err := repository.Compile(context.Background(), toolsDir)

		// then
		require.NoError(t, err)
	})

	t.Run("should run the script from the project root", func(t *testing.T) {
		t.Parallel()

		// given: the script records its working directory next to itself
		toolsDir := writeScript(t, "pwd > \"$(dirname \"$0\")/cwd.txt\"\n")
		repository := compiler.NewScriptCompilerRepository()

		// when
		err := repository.Compile(context.Background(), toolsDir)

		// then
		require.NoError(t, err)
		recorded, readErr := os.ReadFile(filepath.Join(toolsDir, "cwd.txt"))
		require.NoError(t, readErr)

		projectRoot, evalErr := filepath.EvalSymlinks(filepath.Dir(toolsDir))
		require.NoError(t, evalErr)
		recordedDir, evalErr := filepath.EvalSymlinks(
			string(recorded[:len(recorded)-1]), // strip trailing newline
		)
		require.NoError(t, evalErr)
		assert.Equal(t, projectRoot, recordedDir)
	})

	t.Run("should treat a missing script as a no-op", func(t *testing.T) {
		t.Parallel()

		// given
		toolsDir := filepath.Join(t.TempDir(), "tools")
		repository := compiler.NewScriptCompilerRepository()

		// when
		err := repository.Compile(context.Background(), toolsDir)

		// then
		require.NoError(t, err)
	})

	t.Run("should surface a non-zero exit as an error", func(t *testing.T) {
		t.Parallel()

		// given
		toolsDir := writeScript(t, "echo broken >&2\nexit 3\n")
		repository := compiler.NewScriptCompilerRepository()

		// when
		err := repository.Compile(context.Background(), toolsDir)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "compilation script failed")
	})

	t.Run("should stop when the context is already cancelled", func(t *testing.T) {
		t.Parallel()

		// given
		toolsDir := writeScript(t, "exit 0\n")
		repository := compiler.NewScriptCompilerRepository()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		err := repository.Compile(ctx, toolsDir)

		// then
		require.Error(t, err)
	})
}

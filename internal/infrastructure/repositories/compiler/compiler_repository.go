package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pypiup/internal/domain/repositories"
)

const (
	// CompileScriptName is the fixed lock-file regeneration script looked
	// up inside the tools directory.
	CompileScriptName = "update-locked-requirements"

	compileTimeout = 5 * time.Minute
)

// ScriptCompilerRepository implements repositories.CompilerRepository by
// invoking the compilation script as an external process.
type ScriptCompilerRepository struct{}

// NewScriptCompilerRepository creates a new script compiler runner.
func NewScriptCompilerRepository() repositories.CompilerRepository {
	return &ScriptCompilerRepository{}
}

// Compile runs the compilation script from the project root (the parent of
// the tools directory) with a fixed timeout. A missing script is a logged
// warning, not an error; a timeout or non-zero exit is returned to the
// caller with stdout/stderr logged, never parsed.
func (it *ScriptCompilerRepository) Compile(ctx context.Context, toolsDir string) error {
	scriptPath := filepath.Join(toolsDir, CompileScriptName)

	if _, err := os.Stat(scriptPath); err != nil {
		logger.Warnf("Compilation script not found: %s", scriptPath)
		return nil
	}

	runCtx, cancel := context.WithTimeout(ctx, compileTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, scriptPath)
	cmd.Dir = filepath.Dir(toolsDir) // project root

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		logger.Info("Requirements compilation completed successfully")
		return nil
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("compilation script timed out after %s", compileTimeout)
	}

	logger.Errorf("Compilation script STDOUT: %s", stdout.String())
	logger.Errorf("Compilation script STDERR: %s", stderr.String())
	return fmt.Errorf("compilation script failed: %w", err)
}

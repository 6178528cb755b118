//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/pypiup/internal/domain/repositories"
)

// SpyCompilerRepository implements repositories.CompilerRepository as a
// configurable spy.
type SpyCompilerRepository struct {
	CompileErr   error
	CompileCalls []string // tools dirs received
}

var _ repositories.CompilerRepository = (*SpyCompilerRepository)(nil)

func (c *SpyCompilerRepository) Compile(_ context.Context, toolsDir string) error {
	c.CompileCalls = append(c.CompileCalls, toolsDir)
	return c.CompileErr
}

package repositories

import "context"

// CompilerRepository abstracts the downstream lock-file regeneration step:
// a single external script invoked from the project root with a bounded
// timeout. Its output is logged, never parsed.
type CompilerRepository interface {
	Compile(ctx context.Context, toolsDir string) error
}

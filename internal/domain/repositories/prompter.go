package repositories

import (
	"github.com/rios0rios0/pypiup/internal/domain/entities"
)

// Prompter is the injected capability that asks the operator whether to
// apply a single update. Implementations block until the operator answers;
// tests inject scripted responses.
type Prompter interface {
	Confirm(pkg entities.PackageInfo) (entities.Decision, error)
}

//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/pypiup/internal/domain/entities"
	"github.com/rios0rios0/pypiup/internal/domain/repositories"
)

// ScriptedPrompter implements repositories.Prompter with a fixed answer
// sequence, so interactive flows can be tested without a terminal.
// Once the script is exhausted every further prompt is answered with skip.
type ScriptedPrompter struct {
	Decisions []entities.Decision
	Err       error

	// spy: packages the operator was asked about, in order
	Prompted []entities.PackageInfo

	next int
}

var _ repositories.Prompter = (*ScriptedPrompter)(nil)

func (p *ScriptedPrompter) Confirm(pkg entities.PackageInfo) (entities.Decision, error) {
	p.Prompted = append(p.Prompted, pkg)
	if p.Err != nil {
		return entities.DecisionSkip, p.Err
	}

	if p.next >= len(p.Decisions) {
		return entities.DecisionSkip, nil
	}

	decision := p.Decisions[p.next]
	p.next++
	return decision, nil
}

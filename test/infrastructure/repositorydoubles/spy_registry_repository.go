//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/pypiup/internal/domain/entities"
	"github.com/rios0rios0/pypiup/internal/domain/repositories"
)

// SpyRegistryRepository implements repositories.RegistryRepository as a
// configurable spy. Latest maps normalized package names to versions;
// names absent from the map behave like failed lookups.
type SpyRegistryRepository struct {
	Latest       map[string]string
	ResolveErr   error
	ResolveCalls [][]string
}

var _ repositories.RegistryRepository = (*SpyRegistryRepository)(nil)

func (r *SpyRegistryRepository) ResolveLatest(
	_ context.Context,
	names []string,
) (map[string]string, error) {
	r.ResolveCalls = append(r.ResolveCalls, names)
	if r.ResolveErr != nil {
		return nil, r.ResolveErr
	}

	results := make(map[string]string, len(names))
	for _, name := range names {
		normalized := entities.NormalizePackageName(name)
		if version, ok := r.Latest[normalized]; ok {
			results[normalized] = version
		}
	}
	return results, nil
}

package repositories

import "context"

// RegistryRepository abstracts the package index. Lookups are batched and
// tolerant of partial failure: the result maps normalized package names
// (entities.NormalizePackageName) to their latest published version, with
// names that errored simply absent.
type RegistryRepository interface {
	ResolveLatest(ctx context.Context, names []string) (map[string]string, error)
}

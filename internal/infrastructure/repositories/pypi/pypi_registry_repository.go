package pypi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/pypiup/internal/domain/entities"
	"github.com/rios0rios0/pypiup/internal/domain/repositories"
)

const lookupTimeout = 15 * time.Second

// packageResponse is the subset of the PyPI JSON API we care about.
type packageResponse struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
}

// PyPIRegistryRepository implements repositories.RegistryRepository
// against the PyPI JSON API (`/pypi/<name>/json`).
type PyPIRegistryRepository struct {
	baseURL string
	fanOut  int
	client  *http.Client
}

// NewPyPIRegistryRepository creates a registry client configured from the
// run settings (index base URL and lookup fan-out).
func NewPyPIRegistryRepository(settings *entities.Settings) repositories.RegistryRepository {
	//nolint:exhaustruct // Minimal Client initialization with required fields only
	return &PyPIRegistryRepository{
		baseURL: settings.RegistryURL,
		fanOut:  settings.LookupFanOut,
		client:  &http.Client{Timeout: lookupTimeout},
	}
}

// ResolveLatest looks up the latest published version for every given
// name, issuing the lookups concurrently with a bounded fan-out. A lookup
// that fails (network error, unknown package) logs a warning and leaves
// its name absent from the result; it never fails the batch.
func (it *PyPIRegistryRepository) ResolveLatest(
	ctx context.Context,
	names []string,
) (map[string]string, error) {
	unique := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		normalized := entities.NormalizePackageName(name)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		unique = append(unique, normalized)
	}

	results := make(map[string]string, len(unique))
	var mutex sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(it.fanOut)

	for _, name := range unique {
		group.Go(func() error {
			version, err := it.fetchLatestVersion(groupCtx, name)
			if err != nil {
				logger.Warnf("Failed to fetch latest version for %q: %v", name, err)
				return nil // one failed lookup must not fail the others
			}

			mutex.Lock()
			results[name] = version
			mutex.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("registry lookup batch failed: %w", err)
	}

	return results, nil
}

// fetchLatestVersion queries the JSON API for one package.
func (it *PyPIRegistryRepository) fetchLatestVersion(
	ctx context.Context,
	name string,
) (string, error) {
	url := fmt.Sprintf("%s/pypi/%s/json", it.baseURL, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := it.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach registry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var payload packageResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil {
		return "", fmt.Errorf("failed to parse registry response: %w", decodeErr)
	}

	if payload.Info.Version == "" {
		return "", fmt.Errorf("registry reported no version for %q", name)
	}

	return payload.Info.Version, nil
}

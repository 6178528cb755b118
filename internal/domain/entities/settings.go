package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultRequirementsDir is where *.in declaration files are discovered.
	DefaultRequirementsDir = "requirements"
	// DefaultToolsDir is where the lock-file compilation script lives.
	DefaultToolsDir = "tools"
	// DefaultRegistryURL is the public PyPI endpoint.
	DefaultRegistryURL = "https://pypi.org"
	// DefaultLookupFanOut bounds concurrent registry lookups per batch.
	DefaultLookupFanOut = 5
)

// Settings is the explicit run configuration passed into the engine.
// Every field has a documented default; a missing config file is not an
// error.
type Settings struct {
	RequirementsDir string `yaml:"requirements_dir"` // Directory containing *.in files
	ToolsDir        string `yaml:"tools_dir"`        // Directory containing the compile script
	RegistryURL     string `yaml:"registry_url"`     // Package index base URL, ${ENV} expanded
	LookupFanOut    int    `yaml:"lookup_fan_out"`   // Max concurrent registry lookups
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns a Settings populated with the documented defaults.
func DefaultSettings() *Settings {
	return &Settings{
		RequirementsDir: DefaultRequirementsDir,
		ToolsDir:        DefaultToolsDir,
		RegistryURL:     DefaultRegistryURL,
		LookupFanOut:    DefaultLookupFanOut,
	}
}

// NewSettings reads and parses a configuration file, expanding environment
// variables and filling unset fields with defaults.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := DefaultSettings()
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.RegistryURL = expandEnv(settings.RegistryURL)

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}

	return settings, nil
}

// LoadSettings builds the run settings from the first config file found in
// the standard locations, falling back to defaults when there is none.
// Parse failures are logged and fall back too; the CLI reports them again
// when a config file is passed explicitly.
func LoadSettings() *Settings {
	path, err := FindConfigFile()
	if err != nil {
		logger.Debugf("No config file found, using defaults: %v", err)
		return DefaultSettings()
	}

	settings, loadErr := NewSettings(path)
	if loadErr != nil {
		logger.Warnf("Ignoring config file %q: %v", path, loadErr)
		return DefaultSettings()
	}

	logger.Debugf("Using config file: %s", path)
	return settings
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".pypiup.yaml",
		".pypiup.yml",
		"pypiup.yaml",
		"pypiup.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

func (s *Settings) validate() error {
	if s.RequirementsDir == "" {
		return errors.New("requirements_dir must not be empty")
	}
	if s.ToolsDir == "" {
		return errors.New("tools_dir must not be empty")
	}
	if s.RegistryURL == "" {
		return errors.New("registry_url must not be empty")
	}
	if s.LookupFanOut <= 0 {
		return fmt.Errorf("lookup_fan_out must be positive, got %d", s.LookupFanOut)
	}
	return nil
}

// expandEnv replaces ${VAR} references with their environment values.
func expandEnv(raw string) string {
	if raw == "" {
		return raw
	}

	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

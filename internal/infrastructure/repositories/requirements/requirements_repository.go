package requirements

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/rios0rios0/pypiup/internal/domain/entities"
	"github.com/rios0rios0/pypiup/internal/domain/repositories"
)

const declarationGlob = "*.in"

// requirementPattern matches a declaration line: package name, optional
// extras, optional version specifier. Hashes, markers, and inline comments
// are stripped before matching.
var requirementPattern = regexp.MustCompile(
	`^\s*([A-Za-z0-9][A-Za-z0-9._-]*)(\[[A-Za-z0-9._,\s-]+])?\s*((==|>=|<=|~=|!=|>|<)\s*\S+.*)?$`,
)

// pinnedVersionPattern extracts the version token of an exact pin.
var pinnedVersionPattern = regexp.MustCompile(`==\s*([^\s;,#]+)`)

// FileRequirementsRepository implements repositories.RequirementsRepository
// against pip-style requirements files on the local filesystem.
type FileRequirementsRepository struct{}

// NewFileRequirementsRepository creates a new requirements file repository.
func NewFileRequirementsRepository() repositories.RequirementsRepository {
	return &FileRequirementsRepository{}
}

// Parse reads the ordered package requirements declared in the given file.
// Blank lines, comments, and option lines ("-r includes", "--hash", etc.)
// are tolerated by omission; they never produce an error.
func (it *FileRequirementsRepository) Parse(filePath string) ([]entities.Requirement, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", filePath, err)
	}
	defer file.Close()

	var reqs []entities.Requirement

	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++

		req, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}

		req.FilePath = filePath
		req.Line = lineNumber
		reqs = append(reqs, req)
	}

	if scanErr := scanner.Err(); scanErr != nil {
		return nil, fmt.Errorf("failed to read %q: %w", filePath, scanErr)
	}

	return reqs, nil
}

// parseLine extracts a requirement from one declaration line, reporting
// false for lines that declare no package.
func parseLine(raw string) (entities.Requirement, bool) {
	line := stripInlineComment(raw)
	line = strings.TrimSpace(line)

	if line == "" || strings.HasPrefix(line, "-") {
		return entities.Requirement{}, false
	}

	matches := requirementPattern.FindStringSubmatch(line)
	if matches == nil {
		return entities.Requirement{}, false
	}

	constraint := strings.TrimSpace(matches[3])

	version := ""
	if pinned := pinnedVersionPattern.FindStringSubmatch(constraint); pinned != nil {
		version = pinned[1]
	}

	return entities.Requirement{
		Name:       matches[1],
		Constraint: constraint,
		Version:    version,
	}, true
}

// stripInlineComment removes a trailing "# ..." comment from a line.
func stripInlineComment(line string) string {
	if idx := strings.Index(line, "#"); idx >= 0 {
		return line[:idx]
	}
	return line
}

// RewriteVersion replaces the pinned version of exactly one package line,
// preserving every other byte of the file. Returns false when no pinned
// line for the package exists.
func (it *FileRequirementsRepository) RewriteVersion(
	filePath, packageName, newVersion string,
) (bool, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return false, fmt.Errorf("failed to stat %q: %w", filePath, err)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return false, fmt.Errorf("failed to read %q: %w", filePath, err)
	}

	lines := strings.Split(string(content), "\n")
	wantedName := entities.NormalizePackageName(packageName)

	for i, line := range lines {
		replaced, ok := rewriteLine(line, wantedName, newVersion)
		if !ok {
			continue
		}

		lines[i] = replaced
		writeErr := os.WriteFile(filePath, []byte(strings.Join(lines, "\n")), info.Mode())
		if writeErr != nil {
			return false, fmt.Errorf("failed to write %q: %w", filePath, writeErr)
		}
		return true, nil
	}

	return false, nil
}

// rewriteLine swaps the pinned version on a single line when the line
// declares the wanted package. The name, extras, spacing, and any trailing
// content survive untouched.
func rewriteLine(line, wantedName, newVersion string) (string, bool) {
	req, ok := parseLine(line)
	if !ok || req.Version == "" {
		return "", false
	}
	if entities.NormalizePackageName(req.Name) != wantedName {
		return "", false
	}

	replaced := false
	result := pinnedVersionPattern.ReplaceAllStringFunc(line, func(match string) string {
		if replaced {
			return match
		}
		replaced = true
		return "==" + newVersion
	})

	return result, replaced
}

// DiscoverFiles returns the sorted *.in declaration files directly under
// rootDir. A missing directory yields an empty result, not an error.
func (it *FileRequirementsRepository) DiscoverFiles(rootDir string) ([]string, error) {
	if _, err := os.Stat(rootDir); os.IsNotExist(err) {
		return nil, nil
	}

	files, err := filepath.Glob(filepath.Join(rootDir, declarationGlob))
	if err != nil {
		return nil, fmt.Errorf("failed to list %q: %w", rootDir, err)
	}

	sort.Strings(files)
	return files, nil
}

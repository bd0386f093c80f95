package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"lox/interpreter-go/pkg/runtime"
)

// ManifestFileName is the project manifest looked up by FindManifest.
const ManifestFileName = "lox.yml"

// Manifest represents the parsed contents of lox.yml.
type Manifest struct {
	Path    string
	Name    string
	Entry   string
	Globals map[string]any
	Suites  []*SuiteSpec
}

// SuiteSpec names a conformance suite file, either local or inside a git
// repository.
type SuiteSpec struct {
	Path string
	Git  string
	Ref  string
}

// IsGit reports whether the suite is fetched from a repository.
func (s *SuiteSpec) IsGit() bool {
	return s != nil && s.Git != ""
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

var ErrManifestNotFound = errors.New("manifest: " + ManifestFileName + " not found")

// FindManifest walks from start up to the filesystem root looking for
// lox.yml and returns its absolute path.
func FindManifest(start string) (string, error) {
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", start, err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ManifestFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrManifestNotFound
		}
		dir = parent
	}
}

// LoadManifest parses lox.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	for _, name := range sortedKeys(m.Globals) {
		if !identifierPattern.MatchString(name) {
			errs.Issues = append(errs.Issues, fmt.Sprintf("globals.%s: not a valid identifier", name))
			continue
		}
		if _, err := runtime.FromLiteral(m.Globals[name]); err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("globals.%s: must be nil, a boolean, a number or a string", name))
		}
	}
	for i, suite := range m.Suites {
		if suite.Path == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("suites[%d] requires a path", i))
		}
		if suite.Ref != "" && suite.Git == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("suites[%d]: ref only applies to git suites", i))
		}
		if suite.Git != "" && filepath.IsAbs(suite.Path) {
			errs.Issues = append(errs.Issues, fmt.Sprintf("suites[%d]: git suite path must be relative to the repository", i))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Dir is the directory containing the manifest.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// EntryPath returns the absolute entry script path, or "" when none is set.
func (m *Manifest) EntryPath() string {
	if m == nil || m.Entry == "" {
		return ""
	}
	return m.resolve(m.Entry)
}

// LocalSuitePath resolves a non-git suite against the manifest directory.
func (m *Manifest) LocalSuitePath(suite *SuiteSpec) string {
	return m.resolve(suite.Path)
}

func (m *Manifest) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(m.Dir(), filepath.FromSlash(path))
}

// GlobalValues converts the manifest globals into runtime values.
func (m *Manifest) GlobalValues() (map[string]runtime.Value, error) {
	if m == nil || len(m.Globals) == 0 {
		return nil, nil
	}
	out := make(map[string]runtime.Value, len(m.Globals))
	for _, name := range sortedKeys(m.Globals) {
		value, err := runtime.FromLiteral(m.Globals[name])
		if err != nil {
			return nil, fmt.Errorf("manifest: global %q: %w", name, err)
		}
		out[name] = value
	}
	return out, nil
}

type manifestFile struct {
	Name    string         `yaml:"name"`
	Entry   string         `yaml:"entry"`
	Globals map[string]any `yaml:"globals"`
	Suites  []suiteYAML    `yaml:"suites"`
}

type suiteYAML struct {
	Path string `yaml:"path"`
	Git  string `yaml:"git"`
	Ref  string `yaml:"ref"`
}

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path:    path,
		Name:    strings.TrimSpace(mf.Name),
		Entry:   strings.TrimSpace(mf.Entry),
		Globals: make(map[string]any, len(mf.Globals)),
		Suites:  make([]*SuiteSpec, 0, len(mf.Suites)),
	}
	for name, value := range mf.Globals {
		result.Globals[strings.TrimSpace(name)] = value
	}
	for _, suite := range mf.Suites {
		result.Suites = append(result.Suites, &SuiteSpec{
			Path: strings.TrimSpace(suite.Path),
			Git:  strings.TrimSpace(suite.Git),
			Ref:  strings.TrimSpace(suite.Ref),
		})
	}
	return result
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Package conformance runs YAML fixture suites of Lox programs against the
// interpreter and fetches shared suites from git repositories.
package conformance

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Suite is a named list of cases.
type Suite struct {
	Path  string
	Name  string
	Cases []Case
}

// Case is one program and its expected outcome. A case expects either
// syntax errors, a runtime error or a clean run; Stdout is checked in every
// case and nil means no output.
type Case struct {
	Name         string   `yaml:"name"`
	Source       string   `yaml:"source"`
	Stdout       []string `yaml:"stdout"`
	RuntimeError string   `yaml:"runtime_error"`
	SyntaxErrors int      `yaml:"syntax_errors"`
	Skip         string   `yaml:"skip"`
}

type suiteFile struct {
	Name  string `yaml:"name"`
	Cases []Case `yaml:"cases"`
}

// LoadSuite reads and validates a suite file.
func LoadSuite(path string) (*Suite, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("conformance: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("conformance: read %s: %w", abs, err)
	}
	suite, err := ParseSuite(data)
	if err != nil {
		return nil, fmt.Errorf("conformance: %s: %w", abs, err)
	}
	suite.Path = abs
	if suite.Name == "" {
		suite.Name = strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	}
	return suite, nil
}

// ParseSuite decodes suite YAML. Unknown fields are rejected.
func ParseSuite(data []byte) (*Suite, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var raw suiteFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty suite")
		}
		return nil, fmt.Errorf("parse suite: %w", err)
	}
	suite := &Suite{Name: strings.TrimSpace(raw.Name), Cases: raw.Cases}
	if err := suite.validate(); err != nil {
		return nil, err
	}
	return suite, nil
}

func (s *Suite) validate() error {
	var issues []string
	seen := make(map[string]struct{}, len(s.Cases))
	for idx, c := range s.Cases {
		name := strings.TrimSpace(c.Name)
		switch {
		case name == "":
			issues = append(issues, fmt.Sprintf("cases[%d] requires a name", idx))
		default:
			if _, dup := seen[name]; dup {
				issues = append(issues, fmt.Sprintf("case %q is defined more than once", name))
			}
			seen[name] = struct{}{}
		}
		if c.RuntimeError != "" && c.SyntaxErrors > 0 {
			issues = append(issues, fmt.Sprintf("case %q cannot expect both syntax and runtime errors", name))
		}
		if c.SyntaxErrors < 0 {
			issues = append(issues, fmt.Sprintf("case %q: syntax_errors must not be negative", name))
		}
	}
	if len(issues) > 0 {
		return fmt.Errorf("invalid suite:\n- %s", strings.Join(issues, "\n- "))
	}
	return nil
}

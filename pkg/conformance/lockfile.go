package conformance

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LockFileName sits next to lox.yml and pins git suites to commits.
const LockFileName = "lox.lock"

// Lockfile models the lox.lock contents.
type Lockfile struct {
	Path      string
	Generated string
	Suites    []*LockedSuite
}

// LockedSuite pins one git suite source.
type LockedSuite struct {
	Git      string
	Ref      string
	Commit   string
	Checksum string
}

// NewLockfile returns an empty lockfile.
func NewLockfile() *Lockfile {
	return &Lockfile{Suites: []*LockedSuite{}}
}

// LoadLockfile parses lox.lock from disk. A missing file yields an empty
// lockfile bound to path.
func LoadLockfile(path string) (*Lockfile, error) {
	if path == "" {
		return nil, fmt.Errorf("lockfile: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("lockfile: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if os.IsNotExist(err) {
		lock := NewLockfile()
		lock.Path = abs
		return lock, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var raw lockfileDisk
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("lockfile: parse %s: %w", abs, err)
	}
	lock := raw.toLockfile()
	lock.Path = abs
	lock.normalize()
	return lock, nil
}

// WriteLockfile serialises the lockfile, refreshing the generated stamp.
func WriteLockfile(lock *Lockfile, path string) error {
	if lock == nil {
		return fmt.Errorf("lockfile: nil lockfile")
	}
	if path == "" {
		if lock.Path == "" {
			return fmt.Errorf("lockfile: missing path")
		}
		path = lock.Path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("lockfile: resolve %s: %w", path, err)
	}
	lock.Generated = time.Now().UTC().Format(time.RFC3339)
	lock.Path = abs
	lock.normalize()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(lock.toDisk()); err != nil {
		return fmt.Errorf("lockfile: marshal %s: %w", abs, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("lockfile: encoder close: %w", err)
	}
	if err := os.WriteFile(abs, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("lockfile: write %s: %w", abs, err)
	}
	return nil
}

// Lookup finds the pin for a git source and ref.
func (l *Lockfile) Lookup(git, ref string) *LockedSuite {
	if l == nil {
		return nil
	}
	git, ref = strings.TrimSpace(git), strings.TrimSpace(ref)
	for _, s := range l.Suites {
		if s.Git == git && s.Ref == ref {
			return s
		}
	}
	return nil
}

// Pin records or replaces the pin for a git source and ref.
func (l *Lockfile) Pin(git, ref, commit, checksum string) *LockedSuite {
	if existing := l.Lookup(git, ref); existing != nil {
		existing.Commit = strings.TrimSpace(commit)
		existing.Checksum = strings.TrimSpace(checksum)
		return existing
	}
	entry := &LockedSuite{
		Git:      strings.TrimSpace(git),
		Ref:      strings.TrimSpace(ref),
		Commit:   strings.TrimSpace(commit),
		Checksum: strings.TrimSpace(checksum),
	}
	l.Suites = append(l.Suites, entry)
	return entry
}

func (l *Lockfile) normalize() {
	for _, s := range l.Suites {
		s.Git = strings.TrimSpace(s.Git)
		s.Ref = strings.TrimSpace(s.Ref)
		s.Commit = strings.TrimSpace(s.Commit)
		s.Checksum = strings.TrimSpace(s.Checksum)
	}
	sort.SliceStable(l.Suites, func(i, j int) bool {
		if l.Suites[i].Git == l.Suites[j].Git {
			return l.Suites[i].Ref < l.Suites[j].Ref
		}
		return l.Suites[i].Git < l.Suites[j].Git
	})
}

type lockfileDisk struct {
	Generated string          `yaml:"generated"`
	Suites    []lockfileSuite `yaml:"suites"`
}

type lockfileSuite struct {
	Git      string `yaml:"git"`
	Ref      string `yaml:"ref,omitempty"`
	Commit   string `yaml:"commit"`
	Checksum string `yaml:"checksum"`
}

func (l *Lockfile) toDisk() lockfileDisk {
	suites := make([]lockfileSuite, 0, len(l.Suites))
	for _, s := range l.Suites {
		suites = append(suites, lockfileSuite{Git: s.Git, Ref: s.Ref, Commit: s.Commit, Checksum: s.Checksum})
	}
	return lockfileDisk{Generated: l.Generated, Suites: suites}
}

func (d lockfileDisk) toLockfile() *Lockfile {
	lock := &Lockfile{
		Generated: strings.TrimSpace(d.Generated),
		Suites:    make([]*LockedSuite, 0, len(d.Suites)),
	}
	for _, s := range d.Suites {
		lock.Suites = append(lock.Suites, &LockedSuite{Git: s.Git, Ref: s.Ref, Commit: s.Commit, Checksum: s.Checksum})
	}
	return lock
}

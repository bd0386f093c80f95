package conformance

import (
	"errors"
	"fmt"
	"path/filepath"

	"lox/interpreter-go/pkg/driver"
)

// ResolveSuites maps the manifest's suites to local files. Git suites are
// fetched at the commit pinned in lock when one exists, otherwise at their
// ref, and the result is pinned back into lock.
func ResolveSuites(manifest *driver.Manifest, fetcher *GitFetcher, lock *Lockfile) ([]string, error) {
	if manifest == nil {
		return nil, errors.New("conformance: nil manifest")
	}
	paths := make([]string, 0, len(manifest.Suites))
	for _, suite := range manifest.Suites {
		if !suite.IsGit() {
			paths = append(paths, manifest.LocalSuitePath(suite))
			continue
		}
		if lock == nil {
			return nil, errors.New("conformance: git suites require a lockfile")
		}
		dir, err := fetchPinned(fetcher, lock, suite.Git, suite.Ref)
		if err != nil {
			return nil, err
		}
		paths = append(paths, filepath.Join(dir, filepath.FromSlash(suite.Path)))
	}
	return paths, nil
}

func fetchPinned(fetcher *GitFetcher, lock *Lockfile, url, ref string) (string, error) {
	want := ref
	pin := lock.Lookup(url, ref)
	if pin != nil && pin.Commit != "" {
		want = pin.Commit
	}
	dir, commit, err := fetcher.Fetch(url, want)
	if err != nil {
		return "", fmt.Errorf("conformance: fetch %s: %w", url, err)
	}
	checksum, err := DirChecksum(dir)
	if err != nil {
		return "", fmt.Errorf("conformance: checksum %s: %w", dir, err)
	}
	if pin != nil && pin.Commit == commit && pin.Checksum != "" && pin.Checksum != checksum {
		return "", fmt.Errorf("conformance: checksum mismatch for %s@%s", url, commit)
	}
	lock.Pin(url, ref, commit, checksum)
	return dir, nil
}

package main

import (
	"fmt"
	"path/filepath"

	"lox/interpreter-go/pkg/conformance"
	"lox/interpreter-go/pkg/driver"
)

const exitTestFailure = 1

func (c *cli) runTest(args []string) int {
	paths := args
	if len(paths) == 0 {
		resolved, code, ok := c.manifestSuites()
		if !ok {
			return code
		}
		paths = resolved
	}
	if len(paths) == 0 {
		fmt.Fprintln(c.stdout, "lox test: no suites found")
		return driver.ExitOK
	}

	failed := 0
	for _, path := range paths {
		suite, err := conformance.LoadSuite(path)
		if err != nil {
			fmt.Fprintln(c.stderr, err)
			return driver.ExitNoInput
		}
		report := conformance.Run(suite)
		for _, res := range report.Failed() {
			fmt.Fprintf(c.stdout, "FAIL %s/%s: %s\n", report.Suite, res.Name, res.Reason)
		}
		fmt.Fprintln(c.stdout, report.Summary())
		failed += len(report.Failed())
	}
	if failed > 0 {
		return exitTestFailure
	}
	return driver.ExitOK
}

// manifestSuites resolves the manifest's suites, fetching git suites and
// refreshing lox.lock next to the manifest.
func (c *cli) manifestSuites() ([]string, int, bool) {
	manifest, err := loadManifestFrom(".")
	if err != nil {
		fmt.Fprintf(c.stderr, "failed to load manifest: %v\n", err)
		return nil, driver.ExitUsage, false
	}
	if manifest == nil {
		return nil, driver.ExitOK, true
	}

	hasGit := false
	for _, suite := range manifest.Suites {
		hasGit = hasGit || suite.IsGit()
	}
	if !hasGit {
		paths, err := conformance.ResolveSuites(manifest, nil, nil)
		if err != nil {
			fmt.Fprintln(c.stderr, err)
			return nil, driver.ExitUsage, false
		}
		return paths, driver.ExitOK, true
	}

	cacheDir, err := conformance.DefaultCacheDir()
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return nil, driver.ExitSoftware, false
	}
	lock, err := conformance.LoadLockfile(filepath.Join(manifest.Dir(), conformance.LockFileName))
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return nil, driver.ExitDataErr, false
	}
	paths, err := conformance.ResolveSuites(manifest, conformance.NewGitFetcher(cacheDir), lock)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return nil, driver.ExitSoftware, false
	}
	if err := conformance.WriteLockfile(lock, ""); err != nil {
		fmt.Fprintln(c.stderr, err)
		return nil, driver.ExitSoftware, false
	}
	return paths, driver.ExitOK, true
}

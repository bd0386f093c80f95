package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kr/pretty"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/interpreter"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/scanner"
)

// loadManifestFrom returns the nearest manifest, or nil when there is none.
func loadManifestFrom(dir string) (*driver.Manifest, error) {
	path, err := driver.FindManifest(dir)
	if err != nil {
		if errors.Is(err, driver.ErrManifestNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return driver.LoadManifest(path)
}

func manifestGlobals(manifest *driver.Manifest) (map[string]runtime.Value, error) {
	if manifest == nil {
		return nil, nil
	}
	return manifest.GlobalValues()
}

func (c *cli) runEntry(args []string) int {
	if len(args) > 1 {
		fmt.Fprintf(c.stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return driver.ExitUsage
	}
	manifest, err := loadManifestFrom(".")
	if err != nil {
		fmt.Fprintf(c.stderr, "failed to load manifest: %v\n", err)
		return driver.ExitUsage
	}

	var path string
	switch {
	case len(args) == 1:
		path = args[0]
	case manifest != nil && manifest.EntryPath() != "":
		path = manifest.EntryPath()
	default:
		c.printUsage()
		return driver.ExitUsage
	}

	globals, err := manifestGlobals(manifest)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return driver.ExitUsage
	}
	source, err := driver.ReadSource(path)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return driver.ExitNoInput
	}
	result := driver.Run(source, driver.Options{
		Path:     path,
		Stdout:   c.stdout,
		Reporter: driver.ConsoleReporter{W: c.stderr},
		Globals:  globals,
	})
	c.printStats(result.Stats)
	return result.ExitCode()
}

// parseFile reads and parses path, printing diagnostics. ok is false when
// the caller should exit with code.
func (c *cli) parseFile(command string, args []string) (stmts []ast.Stmt, code int, ok bool) {
	if len(args) != 1 {
		fmt.Fprintf(c.stderr, "lox %s expects exactly one file\n", command)
		return nil, driver.ExitUsage, false
	}
	source, err := driver.ReadSource(args[0])
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return nil, driver.ExitNoInput, false
	}
	collector := &driver.Collector{Path: args[0]}
	stmts, _ = parser.ParseSource(source, driver.MultiReporter{collector, driver.ConsoleReporter{W: c.stderr}})
	if collector.HadError() {
		return nil, driver.ExitDataErr, false
	}
	return stmts, driver.ExitOK, true
}

func (c *cli) runCheck(args []string) int {
	stmts, code, ok := c.parseFile("check", args)
	if !ok {
		return code
	}
	fmt.Fprintf(c.stdout, "%s: ok (%d statements)\n", args[0], len(stmts))
	return driver.ExitOK
}

func (c *cli) runAST(args []string) int {
	verbose := false
	if len(args) > 0 && args[0] == "--verbose" {
		verbose = true
		args = args[1:]
	}
	stmts, code, ok := c.parseFile("ast", args)
	if !ok {
		return code
	}
	if verbose {
		for _, stmt := range stmts {
			fmt.Fprintf(c.stdout, "%# v\n", pretty.Formatter(stmt))
		}
		return driver.ExitOK
	}
	if len(stmts) > 0 {
		fmt.Fprintln(c.stdout, ast.SprintProgram(stmts))
	}
	return driver.ExitOK
}

func (c *cli) runTokens(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(c.stderr, "lox tokens expects exactly one file")
		return driver.ExitUsage
	}
	source, err := driver.ReadSource(args[0])
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return driver.ExitNoInput
	}
	reporter := driver.ConsoleReporter{W: c.stderr}
	sc := scanner.New(source, reporter.ReportError)
	for _, tok := range sc.Scan() {
		fmt.Fprintf(c.stdout, "%d %s\n", tok.Line, tok)
	}
	if sc.Errors() > 0 {
		return driver.ExitDataErr
	}
	return driver.ExitOK
}

func (c *cli) printStats(stats interpreter.Stats) {
	if !c.stats {
		return
	}
	fmt.Fprintf(c.stderr, "stats: statements=%d prints=%d max_scope_depth=%d\n",
		stats.Statements, stats.Prints, stats.MaxScopeDepth)
}

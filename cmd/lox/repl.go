package main

import (
	"bufio"
	"fmt"
	"strings"

	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/runtime"
)

const replPrompt = "> "

// runRepl reads one line at a time until EOF. Bindings persist between
// lines; errors are reported and the prompt continues.
func (c *cli) runRepl(args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(c.stderr, "lox repl does not take arguments (received %s)\n", strings.Join(args, " "))
		return driver.ExitUsage
	}
	manifest, err := loadManifestFrom(".")
	if err != nil {
		fmt.Fprintf(c.stderr, "failed to load manifest: %v\n", err)
		return driver.ExitUsage
	}
	globals, err := manifestGlobals(manifest)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return driver.ExitUsage
	}

	session := driver.NewSession(driver.Options{
		Stdout:   c.stdout,
		Reporter: driver.ConsoleReporter{W: c.stderr},
		Globals:  globals,
	})
	input := bufio.NewScanner(c.stdin)
	for {
		fmt.Fprint(c.stdout, replPrompt)
		if !input.Scan() {
			break
		}
		line := strings.TrimSpace(input.Text())
		switch line {
		case "":
			continue
		case ":quit", ":q":
			return driver.ExitOK
		case ":env":
			env := session.Interpreter().GlobalEnvironment()
			values := env.Snapshot()
			for _, name := range env.Keys() {
				fmt.Fprintf(c.stdout, "%s = %s\n", name, runtime.Stringify(values[name]))
			}
			continue
		}
		result := session.RunLine(line)
		c.printStats(result.Stats)
	}
	fmt.Fprintln(c.stdout)
	if err := input.Err(); err != nil {
		fmt.Fprintf(c.stderr, "read input: %v\n", err)
		return driver.ExitNoInput
	}
	return driver.ExitOK
}

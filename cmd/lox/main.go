package main

import (
	"fmt"
	"io"
	"os"

	"lox/interpreter-go/pkg/driver"
)

const cliToolVersion = "lox-cli 0.0.0-dev"

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// stats prints interpreter counters to stderr after a run.
	stats bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	c := &cli{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	return c.run(args)
}

func (c *cli) run(args []string) int {
	remaining := c.parseGlobalFlags(args)
	if len(remaining) == 0 {
		return c.runRepl(nil)
	}

	switch remaining[0] {
	case "--help", "-h", "help":
		c.printUsage()
		return driver.ExitOK
	case "--version", "-V", "version":
		fmt.Fprintln(c.stdout, cliToolVersion)
		return driver.ExitOK
	case "run":
		return c.runEntry(remaining[1:])
	case "repl":
		return c.runRepl(remaining[1:])
	case "check":
		return c.runCheck(remaining[1:])
	case "ast":
		return c.runAST(remaining[1:])
	case "tokens":
		return c.runTokens(remaining[1:])
	case "test":
		return c.runTest(remaining[1:])
	}
	if len(remaining) > 1 {
		c.printUsage()
		return driver.ExitUsage
	}
	return c.runEntry(remaining)
}

// parseGlobalFlags strips flags that apply to every command.
func (c *cli) parseGlobalFlags(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		switch arg {
		case "--stats":
			c.stats = true
		default:
			out = append(out, arg)
		}
	}
	return out
}

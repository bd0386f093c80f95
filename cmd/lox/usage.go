package main

import "fmt"

func (c *cli) printUsage() {
	fmt.Fprintln(c.stderr, "Usage:")
	fmt.Fprintln(c.stderr, "  lox [--stats] [script]")
	fmt.Fprintln(c.stderr, "  lox [--stats] run [file.lox]")
	fmt.Fprintln(c.stderr, "  lox [--stats] repl")
	fmt.Fprintln(c.stderr, "  lox check <file.lox>")
	fmt.Fprintln(c.stderr, "  lox ast [--verbose] <file.lox>")
	fmt.Fprintln(c.stderr, "  lox tokens <file.lox>")
	fmt.Fprintln(c.stderr, "  lox test [suite.yml ...]")
	fmt.Fprintln(c.stderr, "  lox --version")
}

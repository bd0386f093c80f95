// Package interpreter executes Lox programs by walking the AST produced by
// pkg/parser. Expressions reduce eagerly to runtime values; statements run
// against a chain of lexical scopes held in a runtime.Scopes arena, and the
// first runtime failure stops execution.
package interpreter

// Package token defines the lexical tokens consumed by the Lox parser.
package token

import "fmt"

// Kind identifies the lexical category of a token.
type Kind uint8

const (
	// Single-character tokens.
	LeftParen Kind = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One or two character tokens.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals.
	Identifier
	String
	Number

	// Keywords.
	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	EOF

	kindCount
)

var kindNames = [...]string{
	LeftParen:  "LEFT_PAREN",
	RightParen: "RIGHT_PAREN",
	LeftBrace:  "LEFT_BRACE",
	RightBrace: "RIGHT_BRACE",
	Comma:      "COMMA",
	Dot:        "DOT",
	Minus:      "MINUS",
	Plus:       "PLUS",
	Semicolon:  "SEMICOLON",
	Slash:      "SLASH",
	Star:       "STAR",

	Bang:         "BANG",
	BangEqual:    "BANG_EQUAL",
	Equal:        "EQUAL",
	EqualEqual:   "EQUAL_EQUAL",
	Greater:      "GREATER",
	GreaterEqual: "GREATER_EQUAL",
	Less:         "LESS",
	LessEqual:    "LESS_EQUAL",

	Identifier: "IDENTIFIER",
	String:     "STRING",
	Number:     "NUMBER",

	And:    "AND",
	Class:  "CLASS",
	Else:   "ELSE",
	False:  "FALSE",
	Fun:    "FUN",
	For:    "FOR",
	If:     "IF",
	Nil:    "NIL",
	Or:     "OR",
	Print:  "PRINT",
	Return: "RETURN",
	Super:  "SUPER",
	This:   "THIS",
	True:   "TRUE",
	Var:    "VAR",
	While:  "WHILE",

	EOF: "EOF",
}

// String returns the upper-case name of the kind, e.g. "BANG_EQUAL".
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= And && k <= While
}

var keywords = map[string]Kind{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"for":    For,
	"fun":    Fun,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

// Lookup maps an identifier to its keyword kind, or Identifier.
func Lookup(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Identifier
}

// Token is a single lexeme produced by the scanner. Literal carries the
// decoded value for NUMBER (float64) and STRING (string) tokens.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal any
	Line    int
}

// New builds a token without a literal payload.
func New(kind Kind, lexeme string, line int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: line}
}

// EOFAt returns the end-of-input marker for the given line.
func EOFAt(line int) Token {
	return Token{Kind: EOF, Line: line}
}

func (t Token) String() string {
	if t.Literal == nil {
		return fmt.Sprintf("%s %s null", t.Kind, t.Lexeme)
	}
	return fmt.Sprintf("%s %s %v", t.Kind, t.Lexeme, t.Literal)
}

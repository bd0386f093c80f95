// Package scanner turns Lox source text into the token slice consumed by the
// parser. The parser never sees raw characters.
package scanner

import (
	"strconv"

	"lox/interpreter-go/pkg/token"
)

// ErrorHandler receives lexical errors. where is always empty for scanner
// errors; it mirrors the parser reporting shape.
type ErrorHandler func(line int, where, msg string)

// Scanner performs lexical analysis over an in-memory source.
type Scanner struct {
	src    []byte
	start  int
	cur    int
	line   int
	tokens []token.Token

	errh   ErrorHandler
	errcnt int
}

// New creates a scanner over src. errh may be nil, in which case errors are
// only counted.
func New(src string, errh ErrorHandler) *Scanner {
	return &Scanner{
		src:  []byte(src),
		line: 1,
		errh: errh,
	}
}

// Scan scans the whole source. The result always ends with an EOF token,
// even when lexical errors were reported.
func (s *Scanner) Scan() []token.Token {
	for !s.atEnd() {
		s.start = s.cur
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.EOFAt(s.line))
	return s.tokens
}

// Errors returns the number of lexical errors encountered.
func (s *Scanner) Errors() int {
	return s.errcnt
}

// Tokens is a convenience wrapper for New(src, errh).Scan().
func Tokens(src string, errh ErrorHandler) []token.Token {
	return New(src, errh).Scan()
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.add(token.LeftParen)
	case ')':
		s.add(token.RightParen)
	case '{':
		s.add(token.LeftBrace)
	case '}':
		s.add(token.RightBrace)
	case ',':
		s.add(token.Comma)
	case '.':
		s.add(token.Dot)
	case '-':
		s.add(token.Minus)
	case '+':
		s.add(token.Plus)
	case ';':
		s.add(token.Semicolon)
	case '*':
		s.add(token.Star)
	case '!':
		s.add(s.pick('=', token.BangEqual, token.Bang))
	case '=':
		s.add(s.pick('=', token.EqualEqual, token.Equal))
	case '<':
		s.add(s.pick('=', token.LessEqual, token.Less))
	case '>':
		s.add(s.pick('=', token.GreaterEqual, token.Greater))
	case '/':
		if s.match('/') {
			// line comment
			for s.peek() != '\n' && !s.atEnd() {
				s.cur++
			}
			return
		}
		s.add(token.Slash)
	case ' ', '\r', '\t':
	case '\n':
		s.line++
	case '"':
		s.scanString()
	default:
		switch {
		case isDigit(c):
			s.scanNumber()
		case isAlpha(c):
			s.scanIdent()
		default:
			s.error("Unexpected character.")
		}
	}
}

func (s *Scanner) scanString() {
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.cur++
	}
	if s.atEnd() {
		s.error("Unterminated string.")
		return
	}
	s.cur++ // closing quote
	value := string(s.src[s.start+1 : s.cur-1])
	s.addLiteral(token.String, value)
}

func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.cur++
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.cur++
		for isDigit(s.peek()) {
			s.cur++
		}
	}
	text := string(s.src[s.start:s.cur])
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		s.error("Invalid number literal.")
		return
	}
	s.addLiteral(token.Number, value)
}

func (s *Scanner) scanIdent() {
	for isAlphaNumeric(s.peek()) {
		s.cur++
	}
	s.add(token.Lookup(string(s.src[s.start:s.cur])))
}

func (s *Scanner) add(kind token.Kind) {
	s.addLiteral(kind, nil)
}

func (s *Scanner) addLiteral(kind token.Kind, literal any) {
	s.tokens = append(s.tokens, token.Token{
		Kind:    kind,
		Lexeme:  string(s.src[s.start:s.cur]),
		Literal: literal,
		Line:    s.line,
	})
}

func (s *Scanner) pick(next byte, matched, single token.Kind) token.Kind {
	if s.match(next) {
		return matched
	}
	return single
}

func (s *Scanner) match(expected byte) bool {
	if s.atEnd() || s.src[s.cur] != expected {
		return false
	}
	s.cur++
	return true
}

func (s *Scanner) advance() byte {
	c := s.src[s.cur]
	s.cur++
	return c
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.cur]
}

func (s *Scanner) peekNext() byte {
	if s.cur+1 >= len(s.src) {
		return 0
	}
	return s.src[s.cur+1]
}

func (s *Scanner) atEnd() bool {
	return s.cur >= len(s.src)
}

func (s *Scanner) error(msg string) {
	s.errcnt++
	if s.errh != nil {
		s.errh(s.line, "", msg)
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

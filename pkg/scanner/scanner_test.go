package scanner

import (
	"testing"

	"lox/interpreter-go/pkg/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func TestScanOperatorsAndPunctuation(t *testing.T) {
	toks := Tokens("(){},.-+;/* ! != = == > >= < <=", nil)
	want := []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Slash, token.Star,
		token.Bang, token.BangEqual, token.Equal, token.EqualEqual,
		token.Greater, token.GreaterEqual, token.Less, token.LessEqual,
		token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestScanLiteralsAndKeywords(t *testing.T) {
	toks := Tokens(`var answer = 42.5; print "hi" or nil;`, nil)
	want := []struct {
		kind    token.Kind
		lexeme  string
		literal any
	}{
		{token.Var, "var", nil},
		{token.Identifier, "answer", nil},
		{token.Equal, "=", nil},
		{token.Number, "42.5", 42.5},
		{token.Semicolon, ";", nil},
		{token.Print, "print", nil},
		{token.String, `"hi"`, "hi"},
		{token.Or, "or", nil},
		{token.Nil, "nil", nil},
		{token.Semicolon, ";", nil},
		{token.EOF, "", nil},
	}
	if len(toks) != len(want) {
		t.Fatalf("token count = %d, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		tok := toks[i]
		if tok.Kind != w.kind || tok.Lexeme != w.lexeme || tok.Literal != w.literal {
			t.Fatalf("token %d = %v, want %s %q %v", i, tok, w.kind, w.lexeme, w.literal)
		}
	}
}

func TestScanTracksLinesAndComments(t *testing.T) {
	src := "// leading comment\nvar a;\n\"multi\nline\"\nb"
	toks := Tokens(src, nil)
	lines := map[string]int{}
	for _, tok := range toks {
		lines[tok.Lexeme] = tok.Line
	}
	if lines["var"] != 2 {
		t.Fatalf("var on line %d, want 2", lines["var"])
	}
	if lines["b"] != 5 {
		t.Fatalf("b on line %d, want 5", lines["b"])
	}
	if eof := toks[len(toks)-1]; eof.Kind != token.EOF || eof.Line != 5 {
		t.Fatalf("unexpected EOF token %v", eof)
	}
}

func TestScanReportsErrorsAndContinues(t *testing.T) {
	type report struct {
		line int
		msg  string
	}
	var reports []report
	s := New("var x = 1;\n@\n\"open", func(line int, where, msg string) {
		reports = append(reports, report{line, msg})
	})
	toks := s.Scan()
	if s.Errors() != 2 {
		t.Fatalf("Errors() = %d, want 2", s.Errors())
	}
	if reports[0] != (report{2, "Unexpected character."}) {
		t.Fatalf("first report = %+v", reports[0])
	}
	if reports[1] != (report{3, "Unterminated string."}) {
		t.Fatalf("second report = %+v", reports[1])
	}
	if toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("scan must end with EOF, got %v", toks[len(toks)-1])
	}
	if len(toks) != 6 {
		t.Fatalf("expected the valid statement to survive, got %v", toks)
	}
}

func TestScanNumberWithoutFraction(t *testing.T) {
	toks := Tokens("123.", nil)
	if toks[0].Kind != token.Number || toks[0].Literal != 123.0 {
		t.Fatalf("unexpected number token %v", toks[0])
	}
	if toks[1].Kind != token.Dot {
		t.Fatalf("trailing dot should scan separately, got %v", toks[1])
	}
}

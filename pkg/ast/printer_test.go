package ast

import "testing"

func TestSprintExpressions(t *testing.T) {
	cases := []struct {
		name string
		node Node
		want string
	}{
		{"nested", Bin("*", Un("-", Num(123)), Group(Num(45.67))), "(* (- 123) (group 45.67))"},
		{"literals", Bin("==", Nil(), Bool(false)), "(== nil false)"},
		{"string", Bin("+", Str("a"), Str("b")), `(+ "a" "b")`},
		{"logical", Or(ID("a"), And(ID("b"), ID("c"))), "(or a (and b c))"},
		{"assign", Assignment("x", Num(1.5)), "(= x 1.5)"},
		{"nil node", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Sprint(tc.node); got != tc.want {
				t.Fatalf("Sprint = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSprintStatements(t *testing.T) {
	program := []Stmt{
		VarS("i", Num(0)),
		VarS("j", nil),
		WhileS(Bin("<", ID("i"), Num(3)), BlockS(
			PrintS(ID("i")),
			ExprS(Assignment("i", Bin("+", ID("i"), Num(1)))),
		)),
		IfS(ID("i"), PrintS(Str("yes")), PrintS(Str("no"))),
		IfS(ID("j"), BlockS(), nil),
	}
	want := "(var i 0)\n" +
		"(var j)\n" +
		"(while (< i 3) (block (print i) (; (= i (+ i 1)))))\n" +
		`(if i (print "yes") (print "no"))` + "\n" +
		"(if j (block))"
	if got := SprintProgram(program); got != want {
		t.Fatalf("SprintProgram =\n%s\nwant\n%s", got, want)
	}
}

func TestNodeTypesAndLines(t *testing.T) {
	v := NewVariable(Name("x"))
	if v.NodeType() != NodeVariable {
		t.Fatalf("NodeType = %s", v.NodeType())
	}
	stmt := NewExpressionStmt(v)
	if stmt.Line() != 0 {
		t.Fatalf("synthesized nodes should report line 0, got %d", stmt.Line())
	}
	if NewPrint(v, 7).Line() != 7 {
		t.Fatalf("print line not preserved")
	}
}

func TestOpPanicsOnUnknownOperator(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown operator")
		}
	}()
	Op("%")
}

package ast

import (
	"testing"

	"github.com/nyxlang/nyx/internal/token"
)

func TestBinaryString(t *testing.T) {
	b := &Binary{
		Token:    token.Token{Type: token.PLUS, Literal: "+"},
		Left:     &Literal{Kind: "number", Num: 1},
		Operator: "+",
		Right:    &Literal{Kind: "number", Num: 2},
	}
	if got, want := b.String(), "(1 + 2)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestInterpolatedStringRoundTrip(t *testing.T) {
	s := &InterpolatedString{
		Segments: []InterpolatedStringSegment{
			{Text: "hi "},
			{IsExpr: true, Expr: &Identifier{Name: "name"}},
			{Text: "!"},
		},
	}
	if got, want := s.String(), `"hi #{name}!"`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestProgramPosUsesFirstStatement(t *testing.T) {
	p := &Program{Statements: []Statement{
		&ExpressionStmt{Token: token.Token{Pos: token.Position{Line: 4}}},
	}}
	if p.Pos() != 4 {
		t.Errorf("Program.Pos() = %d, want 4", p.Pos())
	}
}

func TestFuncDeclString(t *testing.T) {
	f := &FuncDecl{
		Name:   "add",
		Params: []Parameter{{Name: "a"}, {Name: "b"}},
		Body:   &Block{Statements: []Statement{&Return{Value: &Identifier{Name: "a"}}}},
	}
	got := f.String()
	want := "func add(a, b) {\nreturn a;\n}"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

package lexer

import (
	"testing"

	"github.com/nyxlang/nyx/internal/token"
)

func TestNextTokenPunctuationAndOperators(t *testing.T) {
	input := `auto x = 1 + 2 * 3 / 4 % 5; x++; x--; x != 1; x == 1; x <= 2; x >= 2;`

	want := []token.Type{
		token.AUTO, token.IDENT, token.ASSIGN, token.NUMBER, token.PLUS, token.NUMBER,
		token.STAR, token.NUMBER, token.SLASH, token.NUMBER, token.PERCENT, token.NUMBER, token.SEMI,
		token.IDENT, token.INC, token.SEMI,
		token.IDENT, token.DEC, token.SEMI,
		token.IDENT, token.NEQ, token.NUMBER, token.SEMI,
		token.IDENT, token.EQ, token.NUMBER, token.SEMI,
		token.IDENT, token.LE, token.NUMBER, token.SEMI,
		token.IDENT, token.GE, token.NUMBER, token.SEMI,
		token.EOF,
	}

	toks, errs := Tokenize(input)
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, tt)
		}
	}
}

func TestReadStringEscapesOnlyQuoteAndBackslash(t *testing.T) {
	toks, errs := Tokenize(`"line\nbreak \" end \\ done"`)
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	if toks[0].Type != token.STRING {
		t.Fatalf("expected STRING, got %s", toks[0].Type)
	}
	want := `line\nbreak " end \ done`
	if toks[0].Literal != want {
		t.Errorf("got %q, want %q", toks[0].Literal, want)
	}
}

func TestUnterminatedStringReportsError(t *testing.T) {
	_, errs := Tokenize(`"never closed`)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if errs[0].Message != "unterminated string literal" {
		t.Errorf("got message %q", errs[0].Message)
	}
}

func TestTypedefToken(t *testing.T) {
	toks, errs := Tokenize(`@Typedef(x);`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Type != token.TYPEDEF {
		t.Fatalf("expected TYPEDEF, got %s", toks[0].Type)
	}
}

func TestTypedefRejectsTrailingIdentChars(t *testing.T) {
	_, errs := Tokenize(`@TypedefX(x);`)
	if len(errs) == 0 {
		t.Fatalf("expected an error for @TypedefX")
	}
}

func TestLineCommentSkipped(t *testing.T) {
	toks, errs := Tokenize("auto x = 1; // trailing comment\nauto y = 2;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	var count int
	for _, tk := range toks {
		if tk.Type != token.EOF {
			count++
		}
	}
	if count != 10 {
		t.Fatalf("got %d non-EOF tokens, want 10: %v", count, toks)
	}
}

func TestReadNumberNoExponent(t *testing.T) {
	toks, _ := Tokenize("3.14 42 0.5")
	want := []string{"3.14", "42", "0.5"}
	for i, w := range want {
		if toks[i].Literal != w {
			t.Errorf("token %d: got %q, want %q", i, toks[i].Literal, w)
		}
	}
}

func TestIllegalCharacterReportsLine(t *testing.T) {
	_, errs := Tokenize("auto x = 1;\n$")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if errs[0].Line != 2 {
		t.Errorf("got line %d, want 2", errs[0].Line)
	}
}

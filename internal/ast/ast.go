// Package ast defines the syntax tree produced by the parser.
package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/nyxlang/nyx/internal/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() int // source line
}

// Expression is a Node that produces a Value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a Node executed for effect.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node: an ordered list of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() int {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return 0
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// ---- Expressions ----

// Literal holds a pre-evaluated constant: number, string, bool, or null.
type Literal struct {
	Token token.Token
	Kind  string // "number", "string", "bool", "null"
	Num   float64
	Str   string
	Bool  bool
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.Token.Literal }
func (l *Literal) Pos() int             { return l.Token.Pos.Line }
func (l *Literal) String() string {
	switch l.Kind {
	case "number":
		return fmt.Sprintf("%g", l.Num)
	case "string":
		return fmt.Sprintf("%q", l.Str)
	case "bool":
		if l.Bool {
			return "true"
		}
		return "false"
	default:
		return "null"
	}
}

// Identifier is a bare name reference.
type Identifier struct {
	Token token.Token
	Name  string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() int             { return i.Token.Pos.Line }
func (i *Identifier) String() string       { return i.Name }

// Assignment assigns Value to Target, which must be an Identifier, Subscript,
// or MemberAccess node.
type Assignment struct {
	Token  token.Token
	Target Expression
	Value  Expression
}

func (a *Assignment) expressionNode()      {}
func (a *Assignment) TokenLiteral() string { return a.Token.Literal }
func (a *Assignment) Pos() int             { return a.Token.Pos.Line }
func (a *Assignment) String() string {
	return fmt.Sprintf("(%s = %s)", a.Target.String(), a.Value.String())
}

// Unary applies a prefix operator (`-`, `!`, `not`) to Right.
type Unary struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (u *Unary) expressionNode()      {}
func (u *Unary) TokenLiteral() string { return u.Token.Literal }
func (u *Unary) Pos() int             { return u.Token.Pos.Line }
func (u *Unary) String() string {
	return fmt.Sprintf("(%s%s)", u.Operator, u.Right.String())
}

// Binary applies an infix operator to Left and Right.
type Binary struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (b *Binary) expressionNode()      {}
func (b *Binary) TokenLiteral() string { return b.Token.Literal }
func (b *Binary) Pos() int             { return b.Token.Pos.Line }
func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Operator, b.Right.String())
}

// PostfixUpdate is `target++` or `target--`; Target must be an Identifier or
// Subscript.
type PostfixUpdate struct {
	Token    token.Token
	Target   Expression
	Operator string
}

func (p *PostfixUpdate) expressionNode()      {}
func (p *PostfixUpdate) TokenLiteral() string { return p.Token.Literal }
func (p *PostfixUpdate) Pos() int             { return p.Token.Pos.Line }
func (p *PostfixUpdate) String() string {
	return fmt.Sprintf("(%s%s)", p.Target.String(), p.Operator)
}

// ListLiteral is `[e1, e2, ...]`.
type ListLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (l *ListLiteral) expressionNode()      {}
func (l *ListLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *ListLiteral) Pos() int             { return l.Token.Pos.Line }
func (l *ListLiteral) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Len is `len(expr)`.
type Len struct {
	Token token.Token
	Arg   Expression
}

func (l *Len) expressionNode()      {}
func (l *Len) TokenLiteral() string { return l.Token.Literal }
func (l *Len) Pos() int             { return l.Token.Pos.Line }
func (l *Len) String() string       { return fmt.Sprintf("len(%s)", l.Arg.String()) }

// Subscript is `base[index]`.
type Subscript struct {
	Token token.Token
	Base  Expression
	Index Expression
}

func (s *Subscript) expressionNode()      {}
func (s *Subscript) TokenLiteral() string { return s.Token.Literal }
func (s *Subscript) Pos() int             { return s.Token.Pos.Line }
func (s *Subscript) String() string {
	return fmt.Sprintf("%s[%s]", s.Base.String(), s.Index.String())
}

// InterpolatedStringSegment is either a literal text run (IsExpr == false)
// or a sub-expression parsed from a `#{...}` span.
type InterpolatedStringSegment struct {
	IsExpr bool
	Text   string
	Expr   Expression
}

// InterpolatedString is a string literal containing one or more `#{...}`
// spans, represented as alternating text/expression segments.
type InterpolatedString struct {
	Token    token.Token
	Segments []InterpolatedStringSegment
}

func (s *InterpolatedString) expressionNode()      {}
func (s *InterpolatedString) TokenLiteral() string { return s.Token.Literal }
func (s *InterpolatedString) Pos() int             { return s.Token.Pos.Line }
func (s *InterpolatedString) String() string {
	var out bytes.Buffer
	out.WriteString(`"`)
	for _, seg := range s.Segments {
		if seg.IsExpr {
			out.WriteString("#{")
			out.WriteString(seg.Expr.String())
			out.WriteString("}")
		} else {
			out.WriteString(seg.Text)
		}
	}
	out.WriteString(`"`)
	return out.String()
}

// Call is `callee(args...)`.
type Call struct {
	Token    token.Token
	Callee   Expression
	Args     []Expression
}

func (c *Call) expressionNode()      {}
func (c *Call) TokenLiteral() string { return c.Token.Literal }
func (c *Call) Pos() int             { return c.Token.Pos.Line }
func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee.String(), strings.Join(parts, ", "))
}

// MemberAccess is `base.name`.
type MemberAccess struct {
	Token token.Token
	Base  Expression
	Name  string
}

func (m *MemberAccess) expressionNode()      {}
func (m *MemberAccess) TokenLiteral() string { return m.Token.Literal }
func (m *MemberAccess) Pos() int             { return m.Token.Pos.Line }
func (m *MemberAccess) String() string {
	return fmt.Sprintf("%s.%s", m.Base.String(), m.Name)
}

// ---- Statements ----

// ExpressionStmt wraps an expression evaluated only for side effects.
type ExpressionStmt struct {
	Token token.Token
	Expr  Expression
}

func (e *ExpressionStmt) statementNode()     {}
func (e *ExpressionStmt) TokenLiteral() string { return e.Token.Literal }
func (e *ExpressionStmt) Pos() int           { return e.Token.Pos.Line }
func (e *ExpressionStmt) String() string {
	if e.Expr == nil {
		return ""
	}
	return e.Expr.String()
}

// Block is `{ statements... }`, executed in a new child environment.
type Block struct {
	Token      token.Token
	Statements []Statement
}

func (b *Block) statementNode()      {}
func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) Pos() int            { return b.Token.Pos.Line }
func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range b.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// VarDecl is `auto name = expr;` (Init may be nil).
type VarDecl struct {
	Token token.Token
	Name  string
	Init  Expression
}

func (v *VarDecl) statementNode()      {}
func (v *VarDecl) TokenLiteral() string { return v.Token.Literal }
func (v *VarDecl) Pos() int            { return v.Token.Pos.Line }
func (v *VarDecl) String() string {
	if v.Init == nil {
		return fmt.Sprintf("auto %s;", v.Name)
	}
	return fmt.Sprintf("auto %s = %s;", v.Name, v.Init.String())
}

// Output is `output(expr);`.
type Output struct {
	Token token.Token
	Arg   Expression
}

func (o *Output) statementNode()      {}
func (o *Output) TokenLiteral() string { return o.Token.Literal }
func (o *Output) Pos() int            { return o.Token.Pos.Line }
func (o *Output) String() string      { return fmt.Sprintf("output %s;", o.Arg.String()) }

// Put is `put(expr);`.
type Put struct {
	Token token.Token
	Arg   Expression
}

func (p *Put) statementNode()      {}
func (p *Put) TokenLiteral() string { return p.Token.Literal }
func (p *Put) Pos() int            { return p.Token.Pos.Line }
func (p *Put) String() string      { return fmt.Sprintf("put %s;", p.Arg.String()) }

// Parameter is a single function parameter name.
type Parameter struct {
	Token token.Token
	Name  string
}

// FuncDecl is `func name(params) = { body }`.
type FuncDecl struct {
	Token  token.Token
	Name   string
	Params []Parameter
	Body   *Block
}

func (f *FuncDecl) statementNode()      {}
func (f *FuncDecl) TokenLiteral() string { return f.Token.Literal }
func (f *FuncDecl) Pos() int            { return f.Token.Pos.Line }
func (f *FuncDecl) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.Name
	}
	return fmt.Sprintf("func %s(%s) %s", f.Name, strings.Join(parts, ", "), f.Body.String())
}

// Return is `return [expr];`.
type Return struct {
	Token token.Token
	Value Expression
}

func (r *Return) statementNode()      {}
func (r *Return) TokenLiteral() string { return r.Token.Literal }
func (r *Return) Pos() int            { return r.Token.Pos.Line }
func (r *Return) String() string {
	if r.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", r.Value.String())
}

// Import is `import "path" as alias;`. A path written as "std:name" names a
// native module (IsStd, with Path holding just name); the parser always
// requires the alias, so HasAlias is true for every parsed Import.
type Import struct {
	Token    token.Token
	IsStd    bool
	Path     string
	Alias    string
	HasAlias bool
}

func (i *Import) statementNode()      {}
func (i *Import) TokenLiteral() string { return i.Token.Literal }
func (i *Import) Pos() int            { return i.Token.Pos.Line }
func (i *Import) String() string {
	s := "import "
	if i.IsStd {
		s += "std:" + i.Path
	} else {
		s += fmt.Sprintf("%q", i.Path)
	}
	if i.HasAlias {
		s += " as " + i.Alias
	}
	return s + ";"
}

// Typedef is `@Typedef(expr);`, printing the runtime type name of expr.
type Typedef struct {
	Token token.Token
	Arg   Expression
}

func (t *Typedef) statementNode()      {}
func (t *Typedef) TokenLiteral() string { return t.Token.Literal }
func (t *Typedef) Pos() int            { return t.Token.Pos.Line }
func (t *Typedef) String() string      { return fmt.Sprintf("@Typedef %s;", t.Arg.String()) }

// If is `if (cond) then [else else_]`.
type If struct {
	Token     token.Token
	Condition Expression
	Then      Statement
	Else      Statement
}

func (i *If) statementNode()      {}
func (i *If) TokenLiteral() string { return i.Token.Literal }
func (i *If) Pos() int            { return i.Token.Pos.Line }
func (i *If) String() string {
	s := fmt.Sprintf("if (%s) %s", i.Condition.String(), i.Then.String())
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}

// For is `for (init; cond; incr) body`. Init, Condition, and Increment may
// each be nil.
type For struct {
	Token     token.Token
	Init      Statement
	Condition Expression
	Increment Expression
	Body      Statement
}

func (f *For) statementNode()      {}
func (f *For) TokenLiteral() string { return f.Token.Literal }
func (f *For) Pos() int            { return f.Token.Pos.Line }
func (f *For) String() string {
	return fmt.Sprintf("for (...) %s", f.Body.String())
}

// Break is `break;`.
type Break struct {
	Token token.Token
}

func (b *Break) statementNode()      {}
func (b *Break) TokenLiteral() string { return b.Token.Literal }
func (b *Break) Pos() int            { return b.Token.Pos.Line }
func (b *Break) String() string      { return "break;" }

// Continue is `continue;`.
type Continue struct {
	Token token.Token
}

func (c *Continue) statementNode()      {}
func (c *Continue) TokenLiteral() string { return c.Token.Literal }
func (c *Continue) Pos() int            { return c.Token.Pos.Line }
func (c *Continue) String() string      { return "continue;" }

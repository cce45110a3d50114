package ast

import "strings"

// stmtMarker is embedded by statement-only node types (never also an
// expression).
type stmtMarker struct{}

func (stmtMarker) stmtNode() {}

// BlockStmt is a `{ ... }` sequence of statements; used for function,
// class, and control-flow bodies.
type BlockStmt struct {
	span
	stmtMarker
	Stmts []Stmt
}

func (n *BlockStmt) Literal() string {
	var b strings.Builder
	b.WriteByte('{')
	for _, s := range n.Stmts {
		b.WriteString(s.Literal())
		b.WriteByte(';')
	}
	b.WriteByte('}')
	return b.String()
}

// ExprStmt wraps an expression used in statement position.
type ExprStmt struct {
	span
	stmtMarker
	X Expr
}

func (n *ExprStmt) Literal() string { return n.X.Literal() }

// ImportStmt is `import [.] name(.name)* [as alias]`.
type ImportStmt struct {
	span
	stmtMarker
	Relative bool
	Path     []string
	Alias    string // "" if no 'as' clause
}

func (n *ImportStmt) Literal() string {
	s := "import " + dottedPath(n.Relative, n.Path)
	if n.Alias != "" {
		s += " as " + n.Alias
	}
	return s
}

// IncludeStmt is `include [.] name(.name)*`.
type IncludeStmt struct {
	span
	stmtMarker
	Relative bool
	Path     []string
}

func (n *IncludeStmt) Literal() string { return "include " + dottedPath(n.Relative, n.Path) }

func dottedPath(relative bool, path []string) string {
	prefix := ""
	if relative {
		prefix = "."
	}
	return prefix + strings.Join(path, ".")
}

// FunctionStmt is `[incase] [static] def head(params, ...) [-> [ref] type] { body }`.
// Head is a name with optional `.name` scoping and `!T` / `!(T, ...)`
// templatizing, to allow scoped/templated method names such as
// `MyClass.method` or `Container!T.get`.
type FunctionStmt struct {
	span
	stmtMarker
	IsIncase    bool
	IsStatic    bool
	Head        Expr
	Params      []*VarDecl
	Variadic    *VarDecl // optional, trailing `...name`
	IsReturnRef bool
	ReturnType  Expr // optional
	Body        *BlockStmt
}

func (n *FunctionStmt) Literal() string {
	return "def " + n.Head.Literal() + "(" + joinParams(n.Params) + ") " + n.Body.Literal()
}

// ClassStmt covers both the CLASS and STRUCT tagged-variant statements:
// the grammar is identical for both, so
// IsStruct is the discriminant rather than two near-duplicate structs.
type ClassStmt struct {
	span
	stmtMarker
	IsIncase       bool
	IsStatic       bool
	IsStruct       bool
	Name           string
	TemplateParams []string
	Base           Expr // optional base type
	Body           *BlockStmt
}

func (n *ClassStmt) Literal() string {
	kw := "class"
	if n.IsStruct {
		kw = "struct"
	}
	s := kw + " " + n.Name
	if len(n.TemplateParams) > 0 {
		s += "!(" + strings.Join(n.TemplateParams, ", ") + ")"
	}
	if n.Base != nil {
		s += " (" + n.Base.Literal() + ")"
	}
	return s + " " + n.Body.Literal()
}

// EnumStmt is `enum Name { member (, member)* }`.
type EnumStmt struct {
	span
	stmtMarker
	IsIncase bool
	Name     string
	Members  []string
}

func (n *EnumStmt) Literal() string {
	return "enum " + n.Name + " {" + strings.Join(n.Members, ", ") + "}"
}

// AliasStmt is `[incase] alias Name expression`.
type AliasStmt struct {
	span
	stmtMarker
	IsIncase bool
	IsStatic bool
	Name     string
	Value    Expr
}

func (n *AliasStmt) Literal() string { return "alias " + n.Name + " " + n.Value.Literal() }

// IfStmt stores the if/elif chain as parallel condition/body sequences
// plus an optional else body.
type IfStmt struct {
	span
	stmtMarker
	Conds  []Expr
	Bodies []*BlockStmt
	Else   *BlockStmt // optional
}

func (n *IfStmt) Literal() string {
	var b strings.Builder
	for i, c := range n.Conds {
		if i == 0 {
			b.WriteString("if ")
		} else {
			b.WriteString(" elif ")
		}
		b.WriteString(c.Literal())
		b.WriteByte(' ')
		b.WriteString(n.Bodies[i].Literal())
	}
	if n.Else != nil {
		b.WriteString(" else ")
		b.WriteString(n.Else.Literal())
	}
	return b.String()
}

// WhileStmt is `while Cond { body }`.
type WhileStmt struct {
	span
	stmtMarker
	Cond Expr
	Body *BlockStmt
}

func (n *WhileStmt) Literal() string { return "while " + n.Cond.Literal() + " " + n.Body.Literal() }

// DoWhileStmt is `do { body } while Cond`.
type DoWhileStmt struct {
	span
	stmtMarker
	Body *BlockStmt
	Cond Expr
}

func (n *DoWhileStmt) Literal() string {
	return "do " + n.Body.Literal() + " while " + n.Cond.Literal()
}

// ForStmt is the classical `for Init, Cond, Step { body }` form: exactly
// three control expressions.
type ForStmt struct {
	span
	stmtMarker
	Init Expr
	Cond Expr
	Step Expr
	Body *BlockStmt
}

func (n *ForStmt) Literal() string {
	return "for " + n.Init.Literal() + ", " + n.Cond.Literal() + ", " + n.Step.Literal() + " " + n.Body.Literal()
}

// ForEachStmt is `for E1 [, E2 ...] in Iteratee { body }`: at least one
// iterator and exactly one iteratee.
type ForEachStmt struct {
	span
	stmtMarker
	Iterators []Expr
	Iteratee  Expr
	Body      *BlockStmt
}

func (n *ForEachStmt) Literal() string {
	return "for " + joinLiterals(n.Iterators) + " in " + n.Iteratee.Literal() + " " + n.Body.Literal()
}

// BreakStmt is `break`.
type BreakStmt struct {
	span
	stmtMarker
}

func (n *BreakStmt) Literal() string { return "break" }

// ContinueStmt is `continue`.
type ContinueStmt struct {
	span
	stmtMarker
}

func (n *ContinueStmt) Literal() string { return "continue" }

// ReturnStmt is `return [expr]`.
type ReturnStmt struct {
	span
	stmtMarker
	Value Expr // optional
}

func (n *ReturnStmt) Literal() string {
	if n.Value == nil {
		return "return"
	}
	return "return " + n.Value.Literal()
}

// InvalidStmt is the placeholder substituted when a statement cannot be
// parsed, error-recovery policy: "substituting a
// placeholder/INVALID node" rather than aborting.
type InvalidStmt struct {
	span
	stmtMarker
	Reason string
}

func (n *InvalidStmt) Literal() string { return "<invalid: " + n.Reason + ">" }

var (
	_ Stmt = (*BlockStmt)(nil)
	_ Stmt = (*ExprStmt)(nil)
	_ Stmt = (*ImportStmt)(nil)
	_ Stmt = (*IncludeStmt)(nil)
	_ Stmt = (*FunctionStmt)(nil)
	_ Stmt = (*ClassStmt)(nil)
	_ Stmt = (*EnumStmt)(nil)
	_ Stmt = (*AliasStmt)(nil)
	_ Stmt = (*IfStmt)(nil)
	_ Stmt = (*WhileStmt)(nil)
	_ Stmt = (*DoWhileStmt)(nil)
	_ Stmt = (*ForStmt)(nil)
	_ Stmt = (*ForEachStmt)(nil)
	_ Stmt = (*BreakStmt)(nil)
	_ Stmt = (*ContinueStmt)(nil)
	_ Stmt = (*ReturnStmt)(nil)
	_ Stmt = (*InvalidStmt)(nil)
)

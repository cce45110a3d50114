package ast

import (
	"fmt"
	"strings"

	"github.com/kharelang/kc/token"
)

// exprMarker is embedded by every expression type so it satisfies both
// stmtNode (an expression is also a statement) and exprNode.
type exprMarker struct{}

func (exprMarker) stmtNode() {}
func (exprMarker) exprNode() {}

// UnaryOp enumerates precedence-ladder level 15 (prefix) and level 16
// (postfix) unary operators.
type UnaryOp int

const (
	UnPlus UnaryOp = iota
	UnMinus
	UnBitNot
	UnLogicalNot // 'not'
	UnPreIncr
	UnPreDecr
	UnPostIncr
	UnPostDecr
	UnAddress // '@', level 15 prefix address-of
)

// BinaryOp enumerates every binary level (3-5, 8-14; all left-associative
// except level 14, power) plus the comparison-chain operators (level 7).
type BinaryOp int

const (
	BinOr BinaryOp = iota
	BinXor
	BinAnd
	BinBitOr
	BinBitXor
	BinBitAnd
	BinShl
	BinShr
	BinAdd
	BinSub
	BinMul
	BinDiv
	BinMod
	BinPow
	BinEq
	BinNe
	BinLt
	BinGt
	BinLe
	BinGe
)

// AssignOp enumerates the level-1 in-place assignment operators.
type AssignOp int

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
	AssignPow
	AssignDot
	AssignAnd
	AssignOr
	AssignXor
	AssignNot
	AssignShl
	AssignShr
)

// Ident is a bare name used as a value (level 17 atom).
type Ident struct {
	span
	exprMarker
	Name string
}

func (n *Ident) Literal() string { return n.Name }

// NumberLit covers every numeric token kind;
// one struct rather than twelve near-identical ones, discriminated by Kind
// the same way token.Token discriminates lexer output.
type NumberLit struct {
	span
	exprMarker
	Kind       token.Kind
	IntValue   uint64
	FloatValue float64
}

// Literal renders an unsuffixed INT as its bare value and every other kind
// as its value followed by the kind name.
func (n *NumberLit) Literal() string {
	if n.Kind == token.INT {
		return fmt.Sprintf("%v", n.IntValue)
	}
	if n.Kind == token.FLOAT || n.Kind == token.DOUBLE || n.Kind == token.IFLOAT || n.Kind == token.IDOUBLE {
		return fmt.Sprintf("%v%s", n.FloatValue, n.Kind)
	}
	return fmt.Sprintf("%v%s", n.IntValue, n.Kind)
}

// CharLit is a character literal, with IsByte marking the b'...' form.
type CharLit struct {
	span
	exprMarker
	Value  rune
	IsByte bool
}

func (n *CharLit) Literal() string { return fmt.Sprintf("'%c'", n.Value) }

// StringLit is a (possibly triple-quoted) string literal.
type StringLit struct {
	span
	exprMarker
	Value []rune
}

func (n *StringLit) Literal() string { return fmt.Sprintf("%q", string(n.Value)) }

// BufferLit is a byte buffer literal (b"...").
type BufferLit struct {
	span
	exprMarker
	Value []byte
}

func (n *BufferLit) Literal() string { return fmt.Sprintf("b%q", string(n.Value)) }

// TupleExpr is a parenthesized comma-separated list of expressions; a
// trailing comma makes a one-element tuple (`(x,)`), while a single
// parenthesized expression with no comma collapses to that inner
// expression instead of becoming a TupleExpr.
type TupleExpr struct {
	span
	exprMarker
	Elems []Expr
}

func (n *TupleExpr) Literal() string { return "(" + joinLiterals(n.Elems) + ")" }

// ArrayExpr is a bracketed list literal.
type ArrayExpr struct {
	span
	exprMarker
	Elems []Expr
}

func (n *ArrayExpr) Literal() string { return "[" + joinLiterals(n.Elems) + "]" }

// DictExpr is a brace-delimited key:value literal. len(Keys) == len(Values)
//.
type DictExpr struct {
	span
	exprMarker
	Keys   []Expr
	Values []Expr
}

func (n *DictExpr) Literal() string {
	var b strings.Builder
	b.WriteByte('{')
	for i := range n.Keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(n.Keys[i].Literal())
		b.WriteString(": ")
		b.WriteString(n.Values[i].Literal())
	}
	b.WriteByte('}')
	return b.String()
}

// UnaryExpr is a prefix or postfix unary operation.
type UnaryExpr struct {
	span
	exprMarker
	Op      UnaryOp
	Operand Expr
}

func (n *UnaryExpr) Literal() string {
	switch n.Op {
	case UnPostIncr:
		return n.Operand.Literal() + "++"
	case UnPostDecr:
		return n.Operand.Literal() + "--"
	default:
		return unaryOpText[n.Op] + n.Operand.Literal()
	}
}

var unaryOpText = map[UnaryOp]string{
	UnPlus: "+", UnMinus: "-", UnBitNot: "~", UnLogicalNot: "not ",
	UnPreIncr: "++", UnPreDecr: "--", UnAddress: "@",
}

// BinaryExpr is a two-operand operation at levels 3-5 or 8-14.
type BinaryExpr struct {
	span
	exprMarker
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (n *BinaryExpr) Literal() string {
	return n.Left.Literal() + " " + binaryOpText[n.Op] + " " + n.Right.Literal()
}

var binaryOpText = map[BinaryOp]string{
	BinOr: "or", BinXor: "xor", BinAnd: "and",
	BinBitOr: "|", BinBitXor: "^", BinBitAnd: "&",
	BinShl: "<<", BinShr: ">>",
	BinAdd: "+", BinSub: "-", BinMul: "*", BinDiv: "/", BinMod: "%", BinPow: "**",
	BinEq: "==", BinNe: "!=", BinLt: "<", BinGt: ">", BinLe: "<=", BinGe: ">=",
}

// AssignExpr is a level-1 right-associative in-place assignment.
type AssignExpr struct {
	span
	exprMarker
	Op     AssignOp
	Target Expr
	Value  Expr
}

func (n *AssignExpr) Literal() string {
	return n.Target.Literal() + " " + assignOpText[n.Op] + " " + n.Value.Literal()
}

var assignOpText = map[AssignOp]string{
	AssignPlain: "=", AssignAdd: "+=", AssignSub: "-=", AssignMul: "*=",
	AssignDiv: "/=", AssignMod: "%=", AssignPow: "**=", AssignDot: ".=",
	AssignAnd: "&=", AssignOr: "|=", AssignXor: "^=", AssignNot: "~=",
	AssignShl: "<<=", AssignShr: ">>=",
}

// TernaryExpr implements the level-2 `Value if Cond else Else` form.
type TernaryExpr struct {
	span
	exprMarker
	Value Expr
	Cond  Expr
	Else  Expr
}

func (n *TernaryExpr) Literal() string {
	return n.Value.Literal() + " if " + n.Cond.Literal() + " else " + n.Else.Literal()
}

// ComparisonExpr is a chain such as `a < b < c`: len(Ops) == len(Operands)-1
//.
type ComparisonExpr struct {
	span
	exprMarker
	Ops      []BinaryOp
	Operands []Expr
}

func (n *ComparisonExpr) Literal() string {
	var b strings.Builder
	b.WriteString(n.Operands[0].Literal())
	for i, op := range n.Ops {
		b.WriteByte(' ')
		b.WriteString(binaryOpText[op])
		b.WriteByte(' ')
		b.WriteString(n.Operands[i+1].Literal())
	}
	return b.String()
}

// CallExpr is a postfix call: callee(args...).
type CallExpr struct {
	span
	exprMarker
	Callee Expr
	Args   []Expr
}

func (n *CallExpr) Literal() string { return n.Callee.Literal() + "(" + joinLiterals(n.Args) + ")" }

// IndexExpr is a postfix index: indexee[args...].
type IndexExpr struct {
	span
	exprMarker
	Indexee Expr
	Args    []Expr
}

func (n *IndexExpr) Literal() string {
	return n.Indexee.Literal() + "[" + joinLiterals(n.Args) + "]"
}

// ScopeExpr is a postfix `.name(.name)*` chain off a value.
type ScopeExpr struct {
	span
	exprMarker
	Value Expr
	Names []string
}

func (n *ScopeExpr) Literal() string {
	return n.Value.Literal() + "." + strings.Join(n.Names, ".")
}

// TemplatizeExpr is a postfix `!ident` or `!(t, ...)` generic instantiation.
type TemplatizeExpr struct {
	span
	exprMarker
	Value    Expr
	TypeArgs []Expr
}

func (n *TemplatizeExpr) Literal() string {
	return n.Value.Literal() + "!(" + joinLiterals(n.TypeArgs) + ")"
}

// VarDecl is `[static] [wild] [ref] name [: type] [= init]`; at least one
// of Type or Init is non-nil. Also reused as a
// function/lambda parameter, in which case Init is the default value (or
// nil) and Type is the declared parameter type.
type VarDecl struct {
	span
	exprMarker
	IsStatic bool
	IsWild   bool
	IsRef    bool
	Name     string
	Type     Expr // optional
	Init     Expr // optional
}

func (n *VarDecl) Literal() string {
	var b strings.Builder
	if n.IsStatic {
		b.WriteString("static ")
	}
	if n.IsWild {
		b.WriteString("wild ")
	}
	if n.IsRef {
		b.WriteString("ref ")
	}
	b.WriteString(n.Name)
	if n.Type != nil {
		b.WriteString(": ")
		b.WriteString(n.Type.Literal())
	}
	if n.Init != nil {
		b.WriteString(" = ")
		b.WriteString(n.Init.Literal())
	}
	return b.String()
}

// LambdaExpr is the anonymous-function atom. Variadic, when non-nil, is the
// trailing `...name` parameter.
type LambdaExpr struct {
	span
	exprMarker
	Params      []*VarDecl
	Variadic    *VarDecl // optional
	IsReturnRef bool
	ReturnType  Expr // optional
	Body        *BlockStmt
}

func (n *LambdaExpr) Literal() string {
	return "def(" + joinParams(n.Params) + ") " + n.Body.Literal()
}

// FunctionTypeExpr is the `def!(...)` first-class function-type atom.
// len(ArgRefFlags) == len(ArgTypes).
type FunctionTypeExpr struct {
	span
	exprMarker
	ArgRefFlags []bool
	ArgTypes    []Expr
	IsReturnRef bool
	ReturnType  Expr // optional
}

func (n *FunctionTypeExpr) Literal() string {
	var parts []string
	for i, t := range n.ArgTypes {
		prefix := ""
		if n.ArgRefFlags[i] {
			prefix = "ref "
		}
		parts = append(parts, prefix+t.Literal())
	}
	return "def!(" + strings.Join(parts, ", ") + ")"
}

// InvalidExpr is the placeholder substituted when an expression cannot be
// parsed, mirroring InvalidStmt for statement-level recovery.
type InvalidExpr struct {
	span
	exprMarker
	Reason string
}

func (n *InvalidExpr) Literal() string { return "<invalid: " + n.Reason + ">" }

func joinLiterals(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.Literal()
	}
	return strings.Join(parts, ", ")
}

func joinParams(params []*VarDecl) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Literal()
	}
	return strings.Join(parts, ", ")
}

var (
	_ Expr = (*Ident)(nil)
	_ Expr = (*NumberLit)(nil)
	_ Expr = (*CharLit)(nil)
	_ Expr = (*StringLit)(nil)
	_ Expr = (*BufferLit)(nil)
	_ Expr = (*TupleExpr)(nil)
	_ Expr = (*ArrayExpr)(nil)
	_ Expr = (*DictExpr)(nil)
	_ Expr = (*UnaryExpr)(nil)
	_ Expr = (*BinaryExpr)(nil)
	_ Expr = (*AssignExpr)(nil)
	_ Expr = (*TernaryExpr)(nil)
	_ Expr = (*ComparisonExpr)(nil)
	_ Expr = (*CallExpr)(nil)
	_ Expr = (*IndexExpr)(nil)
	_ Expr = (*ScopeExpr)(nil)
	_ Expr = (*TemplatizeExpr)(nil)
	_ Expr = (*VarDecl)(nil)
	_ Expr = (*LambdaExpr)(nil)
	_ Expr = (*FunctionTypeExpr)(nil)
	_ Expr = (*InvalidExpr)(nil)
)

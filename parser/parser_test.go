package parser

import (
	"testing"

	"github.com/kharelang/kc/ast"
	"github.com/kharelang/kc/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSrc(t *testing.T, src string) ([]ast.Stmt, bool) {
	t.Helper()
	toks, lexSink := lexer.Lex([]rune(src))
	require.True(t, lexSink.Empty(), "unexpected lex diagnostics: %v", lexSink.Entries())
	stmts, sink := Parse(toks)
	return stmts, sink.Empty()
}

func singleExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	stmts, ok := parseSrc(t, src)
	require.True(t, ok)
	require.Len(t, stmts, 1)
	es, ok := stmts[0].(*ast.ExprStmt)
	require.True(t, ok, "expected ExprStmt, got %T", stmts[0])
	return es.X
}

func TestParse_ArithmeticPrecedence(t *testing.T) {
	x := singleExpr(t, "1 + 2 * 3\n")
	bin, ok := x.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BinAdd, bin.Op)
	assert.Equal(t, "1", bin.Left.Literal())
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BinMul, rhs.Op)
}

func TestParse_PowerIsRightAssociative(t *testing.T) {
	x := singleExpr(t, "2 ** 3 ** 2\n")
	top, ok := x.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BinPow, top.Op)
	assert.Equal(t, "2", top.Left.Literal())
	inner, ok := top.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BinPow, inner.Op)
}

func TestParse_AssignmentIsRightAssociative(t *testing.T) {
	x := singleExpr(t, "a = b = c\n")
	top, ok := x.(*ast.AssignExpr)
	require.True(t, ok)
	assert.Equal(t, "a", top.Target.Literal())
	inner, ok := top.Value.(*ast.AssignExpr)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Target.Literal())
}

func TestParse_ComparisonChain(t *testing.T) {
	x := singleExpr(t, "a < b < c\n")
	cmp, ok := x.(*ast.ComparisonExpr)
	require.True(t, ok)
	require.Len(t, cmp.Ops, 2)
	assert.Equal(t, ast.BinLt, cmp.Ops[0])
	assert.Equal(t, ast.BinLt, cmp.Ops[1])
	require.Len(t, cmp.Operands, 3)
}

func TestParse_TernaryExpression(t *testing.T) {
	x := singleExpr(t, "1 if cond else 2\n")
	tern, ok := x.(*ast.TernaryExpr)
	require.True(t, ok)
	assert.Equal(t, "1", tern.Value.Literal())
	assert.Equal(t, "cond", tern.Cond.Literal())
	assert.Equal(t, "2", tern.Else.Literal())
}

func TestParse_LogicalWordOperators(t *testing.T) {
	x := singleExpr(t, "a and b or c\n")
	top, ok := x.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BinOr, top.Op)
	lhs, ok := top.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BinAnd, lhs.Op)
}

func TestParse_LogicalNotBindsTighterThanAnd(t *testing.T) {
	x := singleExpr(t, "not a and b\n")
	top, ok := x.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BinAnd, top.Op)
	_, ok = top.Left.(*ast.UnaryExpr)
	assert.True(t, ok)
}

func TestParse_BitwiseLevelsNestCorrectly(t *testing.T) {
	x := singleExpr(t, "a | b ^ c & d\n")
	top, ok := x.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BinBitOr, top.Op)
	rhs, ok := top.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BinBitXor, rhs.Op)
	rrhs, ok := rhs.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.BinBitAnd, rrhs.Op)
}

func TestParse_CallIndexScopeChain(t *testing.T) {
	x := singleExpr(t, "a.b.c(1, 2)[0]\n")
	idx, ok := x.(*ast.IndexExpr)
	require.True(t, ok)
	call, ok := idx.Indexee.(*ast.CallExpr)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
	scope, ok := call.Callee.(*ast.ScopeExpr)
	require.True(t, ok)
	assert.Equal(t, []string{"b", "c"}, scope.Names)
}

func TestParse_TemplatizeSingleAndList(t *testing.T) {
	x := singleExpr(t, "Box!int\n")
	tmpl, ok := x.(*ast.TemplatizeExpr)
	require.True(t, ok)
	require.Len(t, tmpl.TypeArgs, 1)

	x2 := singleExpr(t, "Pair!(int, str)\n")
	tmpl2, ok := x2.(*ast.TemplatizeExpr)
	require.True(t, ok)
	require.Len(t, tmpl2.TypeArgs, 2)
}

func TestParse_ParenCollapsesSingleExprButNotTuple(t *testing.T) {
	x := singleExpr(t, "(1 + 2)\n")
	_, isBinary := x.(*ast.BinaryExpr)
	assert.True(t, isBinary, "a single parenthesized expression should collapse")

	x2 := singleExpr(t, "(1, 2)\n")
	tup, ok := x2.(*ast.TupleExpr)
	require.True(t, ok)
	assert.Len(t, tup.Elems, 2)
}

func TestParse_ArrayAndDictLiterals(t *testing.T) {
	x := singleExpr(t, "[1, 2, 3]\n")
	arr, ok := x.(*ast.ArrayExpr)
	require.True(t, ok)
	assert.Len(t, arr.Elems, 3)

	x2 := singleExpr(t, "{a: 1, b: 2}\n")
	dict, ok := x2.(*ast.DictExpr)
	require.True(t, ok)
	require.Len(t, dict.Keys, 2)
	require.Len(t, dict.Values, 2)
	assert.Equal(t, "a", dict.Keys[0].Literal())
}

func TestParse_VariableDeclarationInlineExpression(t *testing.T) {
	x := singleExpr(t, "x: int = 5\n")
	decl, ok := x.(*ast.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "x", decl.Name)
	require.NotNil(t, decl.Type)
	require.NotNil(t, decl.Init)
}

func TestParse_FunctionDefinition(t *testing.T) {
	stmts, ok := parseSrc(t, "def add(x: int, y: int) -> int {\n\treturn x + y\n}\n")
	require.True(t, ok)
	require.Len(t, stmts, 1)
	fn, ok := stmts[0].(*ast.FunctionStmt)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Head.Literal())
	require.Len(t, fn.Params, 2)
	require.NotNil(t, fn.ReturnType)
	require.Len(t, fn.Body.Stmts, 1)
	_, ok = fn.Body.Stmts[0].(*ast.ReturnStmt)
	assert.True(t, ok)
}

func TestParse_LambdaVsFunctionTypeDisambiguation(t *testing.T) {
	x := singleExpr(t, "def(x: int) { return x }\n")
	_, ok := x.(*ast.LambdaExpr)
	assert.True(t, ok)

	x2 := singleExpr(t, "def!(int) -> int\n")
	_, ok = x2.(*ast.FunctionTypeExpr)
	assert.True(t, ok)
}

func TestParse_ClassWithTemplateAndBase(t *testing.T) {
	stmts, ok := parseSrc(t, "class Box!T (Container) {\n\tdef get() -> T { return value }\n}\n")
	require.True(t, ok)
	require.Len(t, stmts, 1)
	cls, ok := stmts[0].(*ast.ClassStmt)
	require.True(t, ok)
	assert.False(t, cls.IsStruct)
	assert.Equal(t, "Box", cls.Name)
	assert.Equal(t, []string{"T"}, cls.TemplateParams)
	require.NotNil(t, cls.Base)
}

func TestParse_StructKeyword(t *testing.T) {
	stmts, ok := parseSrc(t, "struct Point {\n\tx: int\n\ty: int\n}\n")
	require.True(t, ok)
	cls, ok := stmts[0].(*ast.ClassStmt)
	require.True(t, ok)
	assert.True(t, cls.IsStruct)
}

func TestParse_EnumDeclaration(t *testing.T) {
	stmts, ok := parseSrc(t, "enum Color { Red, Green, Blue }\n")
	require.True(t, ok)
	en, ok := stmts[0].(*ast.EnumStmt)
	require.True(t, ok)
	assert.Equal(t, []string{"Red", "Green", "Blue"}, en.Members)
}

func TestParse_AliasDeclaration(t *testing.T) {
	stmts, ok := parseSrc(t, "alias Meters int\n")
	require.True(t, ok)
	al, ok := stmts[0].(*ast.AliasStmt)
	require.True(t, ok)
	assert.Equal(t, "Meters", al.Name)
}

func TestParse_IfElifElse(t *testing.T) {
	stmts, ok := parseSrc(t, "if a {\n\tb\n} elif c {\n\td\n} else {\n\te\n}\n")
	require.True(t, ok)
	ifs, ok := stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	require.Len(t, ifs.Conds, 2)
	require.NotNil(t, ifs.Else)
}

func TestParse_WhileAndDoWhile(t *testing.T) {
	stmts, ok := parseSrc(t, "while a {\n\tb\n}\n")
	require.True(t, ok)
	_, ok = stmts[0].(*ast.WhileStmt)
	assert.True(t, ok)

	stmts2, ok := parseSrc(t, "do {\n\tb\n} while a\n")
	require.True(t, ok)
	_, ok = stmts2[0].(*ast.DoWhileStmt)
	assert.True(t, ok)
}

func TestParse_ClassicalForLoop(t *testing.T) {
	stmts, ok := parseSrc(t, "for i = 0, i < 10, i++ {\n\tx\n}\n")
	require.True(t, ok)
	f, ok := stmts[0].(*ast.ForStmt)
	require.True(t, ok)
	require.NotNil(t, f.Init)
	require.NotNil(t, f.Cond)
	require.NotNil(t, f.Step)
}

func TestParse_ForEachLoop(t *testing.T) {
	stmts, ok := parseSrc(t, "for item in items {\n\tuse(item)\n}\n")
	require.True(t, ok)
	f, ok := stmts[0].(*ast.ForEachStmt)
	require.True(t, ok)
	require.Len(t, f.Iterators, 1)
	assert.Equal(t, "items", f.Iteratee.Literal())
}

func TestParse_BreakContinueReturn(t *testing.T) {
	stmts, ok := parseSrc(t, "break\ncontinue\nreturn 1\n")
	require.True(t, ok)
	require.Len(t, stmts, 3)
	_, ok = stmts[0].(*ast.BreakStmt)
	assert.True(t, ok)
	_, ok = stmts[1].(*ast.ContinueStmt)
	assert.True(t, ok)
	ret, ok := stmts[2].(*ast.ReturnStmt)
	require.True(t, ok)
	require.NotNil(t, ret.Value)
}

func TestParse_IncaseAndStaticSpecifiers(t *testing.T) {
	stmts, ok := parseSrc(t, "incase static def foo() { return 1 }\n")
	require.True(t, ok)
	fn, ok := stmts[0].(*ast.FunctionStmt)
	require.True(t, ok)
	assert.True(t, fn.IsIncase)
	assert.True(t, fn.IsStatic)
}

func TestParse_ImportAndInclude(t *testing.T) {
	stmts, ok := parseSrc(t, "import std.io as io\ninclude .local\n")
	require.True(t, ok)
	imp, ok := stmts[0].(*ast.ImportStmt)
	require.True(t, ok)
	assert.Equal(t, []string{"std", "io"}, imp.Path)
	assert.Equal(t, "io", imp.Alias)
	inc, ok := stmts[1].(*ast.IncludeStmt)
	require.True(t, ok)
	assert.True(t, inc.Relative)
}

func TestParse_MalformedInputReportsDiagnosticsAndRecovers(t *testing.T) {
	toks, _ := lexer.Lex([]rune("def\nreturn 1\n"))
	stmts, sink := Parse(toks)
	assert.False(t, sink.Empty())
	assert.NotEmpty(t, stmts)
}

// FuzzParse asserts that Parse never panics on arbitrary token streams
// produced by the lexer, and always returns a statement slice (possibly
// with diagnostics) rather than hanging — mirroring FuzzLex in package
// lexer for the parsing stage.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"def foo(x: int) -> int { return x }\n",
		"class Box!T { x: int }\n",
		"for i = 0, i < 10, i++ {\n\tx\n}\n",
		"a = b = c\n",
		"1 + 2 * 3 ** 4\n",
		"{a: 1, b: [1, 2, (3, 4)]}\n",
		"",
		"}}}}((([[[",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, src string) {
		toks, _ := lexer.Lex([]rune(src))
		done := make(chan struct{})
		go func() {
			defer close(done)
			Parse(toks)
		}()
		<-done
	})
}

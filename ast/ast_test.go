package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"

	"github.com/kharelang/kc/diag"
)

func TestLiteral_Expressions(t *testing.T) {
	cases := []struct {
		name string
		node Expr
		want string
	}{
		{"ident", &Ident{Name: "x"}, "x"},
		{"binary", &BinaryExpr{Op: BinAdd, Left: &Ident{Name: "a"}, Right: &Ident{Name: "b"}}, "a + b"},
		{"unary-prefix", &UnaryExpr{Op: UnMinus, Operand: &Ident{Name: "x"}}, "-x"},
		{"unary-postfix", &UnaryExpr{Op: UnPostIncr, Operand: &Ident{Name: "x"}}, "x++"},
		{"assign", &AssignExpr{Op: AssignAdd, Target: &Ident{Name: "x"}, Value: &Ident{Name: "y"}}, "x += y"},
		{"ternary", &TernaryExpr{Value: &Ident{Name: "a"}, Cond: &Ident{Name: "b"}, Else: &Ident{Name: "c"}}, "a if b else c"},
		{
			"comparison-chain",
			&ComparisonExpr{
				Ops:      []BinaryOp{BinLt, BinLe},
				Operands: []Expr{&Ident{Name: "a"}, &Ident{Name: "b"}, &Ident{Name: "c"}},
			},
			"a < b <= c",
		},
		{"call", &CallExpr{Callee: &Ident{Name: "f"}, Args: []Expr{&Ident{Name: "x"}}}, "f(x)"},
		{"index", &IndexExpr{Indexee: &Ident{Name: "a"}, Args: []Expr{&Ident{Name: "i"}}}, "a[i]"},
		{"scope", &ScopeExpr{Value: &Ident{Name: "a"}, Names: []string{"b", "c"}}, "a.b.c"},
		{
			"templatize-list",
			&TemplatizeExpr{Value: &Ident{Name: "Pair"}, TypeArgs: []Expr{&Ident{Name: "int"}, &Ident{Name: "str"}}},
			"Pair!(int, str)",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.node.Literal())
		})
	}
}

func TestLiteral_ClassStmtCoversClassAndStruct(t *testing.T) {
	cls := &ClassStmt{Name: "Box", TemplateParams: []string{"T"}, Body: &BlockStmt{}}
	assert.Equal(t, "class Box!(T) {}", cls.Literal())

	st := &ClassStmt{IsStruct: true, Name: "Point", Body: &BlockStmt{}}
	assert.Equal(t, "struct Point {}", st.Literal())
}

// TestComparisonExpr_StructuralEquality uses go-cmp to compare two
// independently built ComparisonExpr trees for deep equality while
// ignoring the embedded span (source positions are irrelevant to whether
// two parses produced the same shape).
func TestComparisonExpr_StructuralEquality(t *testing.T) {
	build := func() *ComparisonExpr {
		n := &ComparisonExpr{
			Ops:      []BinaryOp{BinLt, BinEq},
			Operands: []Expr{&Ident{Name: "a"}, &Ident{Name: "b"}, &Ident{Name: "c"}},
		}
		n.SetSpan(diag.Position{}, diag.Position{Line: 1, Column: 10})
		return n
	}
	a := build()
	b := build()
	b.SetSpan(diag.Position{Line: 9, Column: 9}, diag.Position{Line: 9, Column: 19}) // different span, same shape

	opts := []cmp.Option{
		cmpopts.IgnoreUnexported(ComparisonExpr{}, Ident{}),
	}
	if diff := cmp.Diff(a, b, opts...); diff != "" {
		t.Errorf("structurally equivalent trees differ (-want +got):\n%s", diff)
	}
}

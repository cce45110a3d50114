package parser

import (
	"github.com/kharelang/kc/ast"
	"github.com/kharelang/kc/diag"
	"github.com/kharelang/kc/token"
)

// Parse tokenizes-already toks into a complete statement list. This is the
// external entry point: a pure function from a token stream to
// (statements, diagnostics).
func Parse(toks []token.Token, opts ...Option) ([]ast.Stmt, *diag.Sink) {
	sink := diag.NewSink(0)
	p := New(toks, sink, opts...)
	return p.Parse(), sink
}

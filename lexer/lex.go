package lexer

import (
	"github.com/kharelang/kc/diag"
	"github.com/kharelang/kc/token"
)

// Lex tokenizes src in full, reporting diagnostics into a fresh Sink. This
// is the external entry point: a pure function from a
// code-point buffer to a token stream plus diagnostics.
func Lex(src []rune, opts ...Option) ([]token.Token, *diag.Sink) {
	sink := diag.NewSink(0)
	lx := New(src, sink, opts...)
	return lx.TokenizeAll(), sink
}

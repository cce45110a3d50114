// Package ast defines the tagged-union AST: a
// statement variant and an expression variant, each a fixed set of Go
// struct types implementing a shared Node interface. This generalizes a
// classic parser/node.go design, which keeps the same
// node-interface shape but for a smaller language with no classes,
// generics, or numeric tower.
//
// That design also runs every node through a NodeVisitor double-dispatch
// interface so a PrintVisitor/eval pass can walk the tree. This package has
// no such downstream pass — printing, type checking, and code generation
// are explicitly out of scope — so the visitor is dropped rather
// than kept unexercised; every node instead carries a Literal() method for
// debugging and test failure output, continuing the classic Literal()
// idiom without the dead double dispatch.
package ast

import "github.com/kharelang/kc/diag"

// Node is the base of every AST node: its source span and a debug
// rendering.
type Node interface {
	Pos() diag.Position
	End() diag.Position
	Literal() string
}

// Stmt is a statement node. Per , every expression is also a
// statement (an expression statement wraps itself), mirrored here by Expr
// embedding Stmt.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Stmt
	exprNode()
}

// span is embedded by every concrete node to implement Pos/End.
type span struct {
	begin diag.Position
	end   diag.Position
}

func (s span) Pos() diag.Position { return s.begin }
func (s span) End() diag.Position { return s.end }

// SetSpan is called once by the parser immediately after a node is built,
// since the node's end position (the last consumed token) is only known
// after every constructor field has been parsed.
func (s *span) SetSpan(begin, end diag.Position) {
	s.begin = begin
	s.end = end
}

// Package parser implements the recursive-descent, precedence-climbing
// parser: it consumes the token stream produced by
// package lexer and builds the tagged-union AST defined in package ast.
//
// The two-token-lookahead, error-collecting shape (advance/expect/addError,
// never panicking) is grounded on a classic parser/parser.go
// design built around a single Pratt
// dispatch table (UnaryFuncs/BinaryFuncs keyed by token type, as in
// a getPrecedence helper), generalized to a 17-level ladder
// that mixes right-associative, n-ary-chain, and
// type-filtered levels that don't fit one generic table — so the ladder is
// implemented as a cascade of per-level parse functions (parseLevel1
// through parseAtom) instead, each calling the next tighter level exactly
// like a classic recursive-descent-with-precedence parser.
package parser

import (
	"log/slog"

	"github.com/kharelang/kc/ast"
	"github.com/kharelang/kc/diag"
	"github.com/kharelang/kc/token"
)

// Parser holds all state for one parse of a token stream. It is built over
// the full token slice (rather than pulling from a live lexer, as the
// teacher does) because fixes the external interface as
// Parse(toks []token.Token) — the lexer and parser are separately testable
// stages joined only by that slice.
type Parser struct {
	toks []token.Token
	pos  int

	sink   *diag.Sink
	logger *slog.Logger

	// bracketDepth tracks nesting inside (), [], or !(...) template-argument
	// lists, where "expression mode inside brackets" applies
	// and NEWLINE tokens are transparently skipped. Statement-level parsing
	// and block bodies keep bracketDepth at 0, where newlines are
	// significant statement terminators.
	bracketDepth int

	// typeFilterDepth > 0 while descending through the ladder for a type
	// expression: value-only productions
	// (strings, floats, bools, lambdas, array/dict literals, assignment,
	// ternary, logical-not) are rejected in this mode.
	typeFilterDepth int

	// noVarDeclAtom suppresses the atom-level `identifier ':' type` inline
	// variable-declaration lookahead. Dict literal keys (`{k: v}`) use the
	// same "identifier followed by colon" shape; without this guard the
	// atom parser would swallow a dict key's colon as a declaration's type
	// annotation instead of leaving it for parseDictLit to consume as the
	// key/value separator.
	noVarDeclAtom bool
}

// New builds a Parser over the full token stream toks, reporting
// diagnostics into sink.
func New(toks []token.Token, sink *diag.Sink, opts ...Option) *Parser {
	p := &Parser{toks: toks, sink: sink, logger: defaultLogger()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) errorf(pos diag.Position, format string, args ...any) {
	p.sink.Add(diag.Parser, pos, format, args...)
}

// ignoreNewline reports whether NEWLINE tokens should be transparently
// skipped at the parser's current nesting.
func (p *Parser) ignoreNewline() bool {
	return p.bracketDepth > 0
}

// skip advances pos past COMMENT tokens (always) and NEWLINE tokens (only
// when ignoreNewline()), implementing token filter.
func (p *Parser) skip() {
	for p.pos < len(p.toks) {
		k := p.toks[p.pos].Kind
		if k == token.COMMENT || (k == token.NEWLINE && p.ignoreNewline()) {
			p.pos++
			continue
		}
		break
	}
}

// cur returns the current significant token without consuming it.
func (p *Parser) cur() token.Token {
	p.skip()
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

// peek returns the nth significant token after cur() (peek(0) == cur()),
// re-applying the same comment/newline filter at each step.
func (p *Parser) peek(n int) token.Token {
	save := p.pos
	defer func() { p.pos = save }()
	p.skip()
	for i := 0; i < n; i++ {
		if p.pos < len(p.toks) {
			p.pos++
		}
		p.skip()
	}
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

// advance consumes and returns the current significant token.
func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) atEOF() bool {
	return p.cur().Kind == token.EOF
}

// expectDelimiter consumes the current token if it is delimiter d,
// reporting a diagnostic and leaving the cursor in place otherwise.
func (p *Parser) expectDelimiter(d token.Delimiter, what string) (token.Token, bool) {
	t := p.cur()
	if t.Kind == token.DELIMITER && t.Delimiter == d {
		return p.advance(), true
	}
	p.errorf(t.Pos, "expected %s", what)
	return t, false
}

func (p *Parser) expectKeyword(kw token.Keyword, what string) (token.Token, bool) {
	t := p.cur()
	if t.Kind == token.KEYWORD && t.Keyword == kw {
		return p.advance(), true
	}
	p.errorf(t.Pos, "expected %s", what)
	return t, false
}

func (p *Parser) expectIdentifier() (string, diag.Position, bool) {
	t := p.cur()
	if t.Kind == token.IDENTIFIER {
		p.advance()
		return t.Text, t.Pos, true
	}
	p.errorf(t.Pos, "expected name")
	return "", t.Pos, false
}

func (p *Parser) isDelim(d token.Delimiter) bool {
	t := p.cur()
	return t.Kind == token.DELIMITER && t.Delimiter == d
}

func (p *Parser) isKeyword(kw token.Keyword) bool {
	t := p.cur()
	return t.Kind == token.KEYWORD && t.Keyword == kw
}

func (p *Parser) isOperator(op token.Operator) bool {
	t := p.cur()
	return t.Kind == token.OPERATOR && t.Operator == op
}

// Parse runs the top-level loop: parse statements until
// EOF, returning every statement plus whatever was accumulated into the
// sink. It never aborts — a malformed statement is reported to the sink,
// unparsable expressions inside it become ast.InvalidExpr placeholders, and
// the loop guarantees forward progress.
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.atEOF() {
		p.skipStatementSeparators()
		if p.atEOF() {
			break
		}
		before := p.pos
		stmts = append(stmts, p.parseStatement())
		if p.pos == before {
			// Guarantee forward progress).
			p.advance()
		}
	}
	return stmts
}

// skipStatementSeparators consumes leading NEWLINE/SEMICOLON tokens between
// statements ("each statement begins after any newlines", ).
func (p *Parser) skipStatementSeparators() {
	for {
		t := p.cur()
		if t.Kind == token.NEWLINE {
			p.advance()
			continue
		}
		if t.Kind == token.DELIMITER && t.Delimiter == token.SEMICOLON {
			p.advance()
			continue
		}
		break
	}
}

// expectTerminator implements statement-terminator rule:
// a newline, a semicolon, or (without consuming it) a closing '}'.
func (p *Parser) expectTerminator(begin diag.Position) {
	t := p.cur()
	switch {
	case t.Kind == token.NEWLINE:
		p.advance()
	case t.Kind == token.DELIMITER && t.Delimiter == token.SEMICOLON:
		p.advance()
	case t.Kind == token.DELIMITER && t.Delimiter == token.CURLY_CLOSE:
		// terminator is implicit before a block's closing brace
	case t.Kind == token.EOF:
		// terminator is implicit at end of input
	default:
		p.errorf(begin, "missing statement terminator")
	}
}

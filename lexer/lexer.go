// Package lexer implements a Unicode lexer: a pure
// function from a mutable Cursor over a 32-bit code-point buffer to one
// token per call. It never aborts; malformed input is reported to a
// diag.Sink and recovered from locally.
//
// The dispatch-by-current-character shape is grounded on a classic
// lexer/lexer.go (a switch on lex.Current producing one Token per call) and
// on an original kh_lex implementation (original_source/src/lexer.c),
// generalized from a small ASCII-operator grammar to the full
// classification order this language's grammar needs (word vs.
// byte-prefixed char/buffer, number with base prefixes,
// character/string/triple-string, line comment, symbol).
package lexer

import (
	"log/slog"
	"unicode"

	"github.com/kharelang/kc/diag"
	"github.com/kharelang/kc/token"
)

// Lexer tokenizes a single source buffer. It holds no state beyond the
// cursor, so two Lexers over disjoint buffers may run concurrently.
type Lexer struct {
	cur    Cursor
	sink   *diag.Sink
	logger *slog.Logger

	maxDiagnostics int
}

// New constructs a Lexer over buf, reporting diagnostics into sink.
func New(buf []rune, sink *diag.Sink, opts ...Option) *Lexer {
	lx := &Lexer{
		cur:    NewCursor(buf),
		sink:   sink,
		logger: defaultLogger(),
	}
	for _, opt := range opts {
		opt(lx)
	}
	return lx
}

func (lx *Lexer) errorf(pos diag.Position, format string, args ...any) {
	if lx.maxDiagnostics > 0 {
		n := 0
		for _, d := range lx.sink.Entries() {
			if d.Phase == diag.Lexer {
				n++
			}
		}
		if n >= lx.maxDiagnostics {
			return
		}
	}
	lx.sink.Add(diag.Lexer, pos, format, args...)
}

func (lx *Lexer) make(kind token.Kind, begin diag.Position) token.Token {
	return token.Token{Kind: kind, Pos: begin, End: lx.cur.Position()}
}

// TokenizeAll drains the lexer into a slice, ending with (and including) the
// EOF token. Grounded on the classic Lexer.ConsumeTokens /
// TokenizeToSlice batch helpers.
func (lx *Lexer) TokenizeAll() []token.Token {
	var toks []token.Token
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	return toks
}

// Next returns the next token and advances the cursor past it. This is the
// lex(cursor) -> Token contract this package is built around.
func (lx *Lexer) Next() token.Token {
	lx.skipInlineWhitespace()

	begin := lx.cur.Position()
	ch := lx.cur.Current()

	switch {
	case ch == 0 && lx.cur.AtEnd():
		return lx.make(token.EOF, begin)

	case ch == '\n':
		lx.cur.Bump()
		return lx.make(token.NEWLINE, begin)

	case ch == '#':
		return lx.lexComment(begin)

	case isAlpha(ch):
		return lx.lexWordOrBytePrefixed(begin)

	case isDigit(ch):
		return lx.lexNumber(begin)

	case ch == '\'':
		return lx.lexChar(begin, false)

	case ch == '"':
		return lx.lexString(begin, false)

	default:
		return lx.lexSymbol(begin)
	}
}

// skipInlineWhitespace skips spaces/tabs/CR but never newlines — newlines
// are a significant NEWLINE token.
func (lx *Lexer) skipInlineWhitespace() {
	for {
		ch := lx.cur.Current()
		if ch == '\n' || ch == 0 {
			return
		}
		if unicode.IsSpace(ch) {
			lx.cur.Bump()
			continue
		}
		return
	}
}

func (lx *Lexer) lexComment(begin diag.Position) token.Token {
	// '#' ... up to (not including) the newline.
	for lx.cur.Current() != '\n' && lx.cur.Current() != 0 {
		lx.cur.Bump()
	}
	return lx.make(token.COMMENT, begin)
}

// lexWordOrBytePrefixed implements the first classification-order step: a
// 'b'/'B' immediately followed by a quote starts a byte character or byte
// buffer literal; otherwise consume a maximal identifier word and classify
// it as a keyword/word-operator or a plain identifier.
func (lx *Lexer) lexWordOrBytePrefixed(begin diag.Position) token.Token {
	ch := lx.cur.Current()
	if (ch == 'b' || ch == 'B') && (lx.cur.Peek(1) == '\'' || lx.cur.Peek(1) == '"') {
		isString := lx.cur.Peek(1) == '"'
		lx.cur.Bump() // consume b/B
		if isString {
			return lx.lexString(begin, true)
		}
		return lx.lexChar(begin, true)
	}

	var runes []rune
	for isAlpha(lx.cur.Current()) || isDigit(lx.cur.Current()) {
		runes = append(runes, lx.cur.Bump())
	}
	word := string(runes)

	if kw, ok := token.LookupKeyword(word); ok {
		t := lx.make(token.KEYWORD, begin)
		t.Keyword = kw
		t.Text = word
		return t
	}
	t := lx.make(token.IDENTIFIER, begin)
	t.Text = word
	return t
}

func isAlpha(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// digitValue implements Kithare's digitOf: 0-35 for [0-9A-Za-z], 255
// (invalid) otherwise. The accepted base is enforced by the caller via
// comparison against the base.
func digitValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'A' && r <= 'Z':
		return int(r-'A') + 10
	case r >= 'a' && r <= 'z':
		return int(r-'a') + 10
	default:
		return 255
	}
}

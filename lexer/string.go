package lexer

import (
	"github.com/kharelang/kc/diag"
	"github.com/kharelang/kc/token"
)

// lexChar implements character literal: '<char-or-escape>'.
// isByte selects the byte-character form (the 'b'/'B' prefix has already
// been consumed by the caller), in which \u/\U and code points above 255
// are rejected.
func (lx *Lexer) lexChar(begin diag.Position, isByte bool) token.Token {
	lx.cur.Bump() // opening '

	if lx.cur.Current() == '\'' {
		lx.errorf(begin, "empty character literal")
		lx.cur.Bump()
		return lx.make(token.NONE, begin)
	}

	r, ok := lx.lexOneChar(begin, isByte)
	if lx.cur.Current() != '\'' {
		lx.errorf(begin, "unterminated character literal")
		return lx.makeChar(begin, isByte, r)
	}
	lx.cur.Bump() // closing '
	if !ok {
		return lx.make(token.NONE, begin)
	}
	return lx.makeChar(begin, isByte, r)
}

func (lx *Lexer) makeChar(begin diag.Position, isByte bool, r rune) token.Token {
	t := lx.make(token.CHAR, begin)
	t.Rune = r
	t.IsByte = isByte
	if isByte {
		t.IntValue = uint64(byte(r))
	}
	return t
}

// lexString implements the single/triple-quoted string and byte-buffer
// forms. isByte selects a byte buffer (the 'b'/'B' prefix already
// consumed).
func (lx *Lexer) lexString(begin diag.Position, isByte bool) token.Token {
	lx.cur.Bump() // opening "

	triple := lx.cur.Current() == '"' && lx.cur.Peek(1) == '"'
	if triple {
		lx.cur.Bump()
		lx.cur.Bump()
	}

	var runes []rune
	for {
		ch := lx.cur.Current()
		if ch == 0 && lx.cur.AtEnd() {
			lx.errorf(begin, "unterminated string literal")
			break
		}
		if ch == '"' {
			if triple {
				if lx.cur.Peek(1) == '"' && lx.cur.Peek(2) == '"' {
					lx.cur.Bump()
					lx.cur.Bump()
					lx.cur.Bump()
					break
				}
				// a lone or double '"' inside a triple-quoted string is literal
				runes = append(runes, lx.cur.Bump())
				continue
			}
			lx.cur.Bump()
			break
		}
		if ch == '\n' && !triple {
			lx.errorf(begin, "raw newline in single-quoted string")
			break
		}
		r, ok := lx.lexOneChar(begin, isByte)
		if ok {
			runes = append(runes, r)
		}
	}

	if isByte {
		t := lx.make(token.BUFFER, begin)
		t.Bytes = make([]byte, len(runes))
		for i, r := range runes {
			t.Bytes[i] = byte(r)
		}
		return t
	}
	t := lx.make(token.STRING, begin)
	t.Runes = runes
	return t
}

// lexOneChar decodes one source character or escape sequence starting at
// the cursor (which must be positioned on the character, past any opening
// quote), leaving the cursor positioned just after it.
func (lx *Lexer) lexOneChar(begin diag.Position, isByte bool) (rune, bool) {
	if lx.cur.Current() != '\\' {
		r := lx.cur.Bump()
		if isByte && r > 255 {
			lx.errorf(begin, "code point %U exceeds byte range", r)
			return r, false
		}
		return r, true
	}
	lx.cur.Bump() // '\'
	esc := lx.cur.Bump()
	switch esc {
	case '0':
		return 0, true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case 'v':
		return '\v', true
	case 'b':
		return '\b', true
	case 'a':
		return '\a', true
	case 'f':
		return '\f', true
	case '\\':
		return '\\', true
	case '\'':
		return '\'', true
	case '"':
		return '"', true
	case 'x':
		return lx.lexHexEscape(begin, 2)
	case 'u':
		if isByte {
			lx.errorf(begin, "\\u escape not allowed in byte literal")
			lx.skipHexDigits(4)
			return 0, false
		}
		return lx.lexHexEscape(begin, 4)
	case 'U':
		if isByte {
			lx.errorf(begin, "\\U escape not allowed in byte literal")
			lx.skipHexDigits(8)
			return 0, false
		}
		r, ok := lx.lexHexEscape(begin, 8)
		return r, ok
	default:
		lx.errorf(begin, "unknown escape sequence \\%c", esc)
		return esc, false
	}
}

func (lx *Lexer) lexHexEscape(begin diag.Position, digits int) (rune, bool) {
	val := 0
	got := 0
	for got < digits {
		d := digitValue(lx.cur.Current())
		if d >= 16 {
			break
		}
		val = val*16 + d
		lx.cur.Bump()
		got++
	}
	if got != digits {
		lx.errorf(begin, "expected %d hex digits in escape, got %d", digits, got)
		return rune(val), false
	}
	r := rune(val)
	if digits == 2 && r > 255 {
		lx.errorf(begin, "\\x escape out of byte range")
		return r, false
	}
	return r, true
}

func (lx *Lexer) skipHexDigits(n int) {
	for i := 0; i < n && digitValue(lx.cur.Current()) < 16; i++ {
		lx.cur.Bump()
	}
}

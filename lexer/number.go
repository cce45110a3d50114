package lexer

import (
	"math"
	"strings"

	"github.com/kharelang/kc/diag"
	"github.com/kharelang/kc/token"
)

// lexNumber implements the number literal rule. It first tries
// an integer parse with a 64-bit accumulator and an overflow flag
// (grounded on the original kh_lexInt, original_source/src/lexer.c, whose
// overflow-triggers-float-reparse heuristic this preserves verbatim). If
// the integer parse overflows, or is immediately followed by '.', 'e'/'E',
// or 'p'/'P', the whole literal is re-lexed as a float from the same
// starting position — the one narrowly-scoped rewind this lexer allows.
func (lx *Lexer) lexNumber(begin diag.Position) token.Token {
	origin := lx.cur.Checkpoint()

	base := lx.scanBasePrefix()
	intVal, overflowed, sawDigit := lx.scanDigitRun(base)

	if !sawDigit {
		lx.errorf(begin, "invalid digit for base %d", base)
	}

	next := lx.cur.Current()
	triggersFloat := overflowed || next == '.' || next == 'e' || next == 'E' || next == 'p' || next == 'P'

	if triggersFloat {
		lx.cur.Rewind(origin)
		return lx.lexFloat(begin)
	}

	suffix := lx.scanSuffix()
	kind, forceFloat := classifyIntSuffix(suffix)
	if !validSuffix(suffix, forceFloat, kind) {
		lx.errorf(begin, "unknown numeric suffix %q", suffix)
	}

	t := lx.make(kind, begin)
	if forceFloat {
		t.FloatValue = float64(intVal)
	} else {
		t.IntValue = intVal
	}
	return t
}

// lexFloat re-lexes the literal starting at begin as a floating-point
// number: mantissa in the current base, optional fractional part, optional
// base-10 ('e'/'E') or base-2 ('p'/'P') exponent, then a suffix.
func (lx *Lexer) lexFloat(begin diag.Position) token.Token {
	base := lx.scanBasePrefix()

	mantissa := 0.0
	for {
		d := digitValue(lx.cur.Current())
		if d >= base {
			break
		}
		mantissa = mantissa*float64(base) + float64(d)
		lx.cur.Bump()
	}

	if lx.cur.Current() == '.' {
		lx.cur.Bump()
		frac := 1.0
		for {
			d := digitValue(lx.cur.Current())
			if d >= base {
				break
			}
			frac /= float64(base)
			mantissa += float64(d) * frac
			lx.cur.Bump()
		}
	}

	switch lx.cur.Current() {
	case 'e', 'E':
		lx.cur.Bump()
		mantissa *= math.Pow(10, lx.scanSignedExponent())
	case 'p', 'P':
		lx.cur.Bump()
		mantissa *= math.Pow(2, lx.scanSignedExponent())
	}

	suffix := lx.scanSuffix()
	kind, ok := classifyFloatSuffix(suffix)
	if !ok {
		lx.errorf(begin, "unknown or non-float numeric suffix %q", suffix)
		kind = token.DOUBLE
	}

	t := lx.make(kind, begin)
	t.FloatValue = mantissa
	return t
}

// scanSignedExponent reads an optional sign followed by a run of base-10
// digits, returning the signed exponent as a float64 so huge exponents
// saturate math.Pow's result to +Inf/0 instead of overflowing an int,
// matching saturation rule.
func (lx *Lexer) scanSignedExponent() float64 {
	sign := 1.0
	switch lx.cur.Current() {
	case '+':
		lx.cur.Bump()
	case '-':
		sign = -1.0
		lx.cur.Bump()
	}
	exp := 0.0
	for isDigit(lx.cur.Current()) {
		exp = exp*10 + float64(lx.cur.Current()-'0')
		lx.cur.Bump()
	}
	return sign * exp
}

// scanBasePrefix consumes a 0b/0o/0x base prefix if present and followed by
// at least one valid digit of that base; otherwise it consumes nothing and
// returns base 10.
func (lx *Lexer) scanBasePrefix() int {
	if lx.cur.Current() != '0' {
		return 10
	}
	var base int
	switch lx.cur.Peek(1) {
	case 'b', 'B':
		base = 2
	case 'o', 'O':
		base = 8
	case 'x', 'X':
		base = 16
	default:
		return 10
	}
	if digitValue(lx.cur.Peek(2)) >= base {
		return 10 // e.g. "0x" with no hex digit after — leave as a bare '0'
	}
	lx.cur.Bump() // '0'
	lx.cur.Bump() // b/o/x
	return base
}

// scanDigitRun consumes a maximal run of digits valid in base, accumulating
// a uint64 value and reporting whether it overflowed.
func (lx *Lexer) scanDigitRun(base int) (value uint64, overflowed bool, sawDigit bool) {
	ub := uint64(base)
	for {
		d := digitValue(lx.cur.Current())
		if d >= base {
			break
		}
		sawDigit = true
		ud := uint64(d)
		if value > (math.MaxUint64-ud)/ub {
			overflowed = true
		}
		value = value*ub + ud
		lx.cur.Bump()
	}
	return
}

// scanSuffix consumes a maximal run of ASCII letters following a numeric
// literal's digits.
func (lx *Lexer) scanSuffix() string {
	start := lx.cur.pos
	for isASCIIAlpha(lx.cur.Current()) {
		lx.cur.Bump()
	}
	return string(lx.cur.buf[start:lx.cur.pos])
}

func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// intSuffixes is the "Integer form" column of suffix table.
var intSuffixes = map[string]token.Kind{
	"":   token.INT,
	"b":  token.BYTE,
	"sb": token.SBYTE,
	"s":  token.SHORT,
	"ss": token.SHORT,
	"sl": token.LONG,
	"l":  token.LONG,
	"ub": token.BYTE,
	"us": token.USHORT,
	"ul": token.ULONG,
	"u":  token.UINT,
}

// floatSuffixes is the "Float form" column, and also the set of suffixes
// that force a bare-integer-looking literal to be treated as a float
// (f, d, if, id, i).
var floatSuffixes = map[string]token.Kind{
	"":   token.DOUBLE,
	"f":  token.FLOAT,
	"d":  token.DOUBLE,
	"if": token.IFLOAT,
	"id": token.IDOUBLE,
	"i":  token.IDOUBLE,
}

// classifyIntSuffix resolves a suffix for a literal lexed as an integer. If
// the suffix is one of f/d/if/id/i, the literal must be treated as a float
// value even though it was written without a '.' or exponent.
func classifyIntSuffix(suffix string) (kind token.Kind, forceFloat bool) {
	norm := strings.ToLower(suffix)
	if k, ok := floatSuffixes[norm]; ok && norm != "" {
		return k, true
	}
	if k, ok := intSuffixes[norm]; ok {
		return k, false
	}
	return token.UINT, false
}

func validSuffix(suffix string, forceFloat bool, kind token.Kind) bool {
	norm := strings.ToLower(suffix)
	if forceFloat {
		_, ok := floatSuffixes[norm]
		return ok
	}
	_, ok := intSuffixes[norm]
	return ok
}

// classifyFloatSuffix resolves a suffix for a literal lexed as a float. The
// integer-only suffixes (b, sb, s, ss, sl, l, ub, us, ul, u) have no float
// form and are rejected.
func classifyFloatSuffix(suffix string) (token.Kind, bool) {
	norm := strings.ToLower(suffix)
	k, ok := floatSuffixes[norm]
	return k, ok
}

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kharelang/kc/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func lexAll(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, sink := Lex([]rune(src))
	assert.True(t, sink.Empty(), "unexpected diagnostics: %v", sink.Entries())
	return toks
}

func TestLex_IdentifiersAndKeywords(t *testing.T) {
	toks := lexAll(t, "def foo class Bar_9 for")
	assert.Equal(t, []token.Kind{
		token.KEYWORD, token.IDENTIFIER, token.KEYWORD, token.IDENTIFIER, token.KEYWORD, token.EOF,
	}, kinds(toks))
	assert.Equal(t, token.DEF, toks[0].Keyword)
	assert.Equal(t, "foo", toks[1].Text)
	assert.Equal(t, token.CLASS, toks[2].Keyword)
	assert.Equal(t, "Bar_9", toks[3].Text)
	assert.Equal(t, token.FOR, toks[4].Keyword)
}

func TestLex_NewlineIsSignificant(t *testing.T) {
	toks, sink := Lex([]rune("a\nb"))
	assert.True(t, sink.Empty())
	assert.Equal(t, []token.Kind{
		token.IDENTIFIER, token.NEWLINE, token.IDENTIFIER, token.EOF,
	}, kinds(toks))
}

func TestLex_IntegerBases(t *testing.T) {
	cases := []struct {
		src  string
		want uint64
	}{
		{"0b1010", 10},
		{"0o17", 15},
		{"0x1F", 31},
		{"42", 42},
	}
	for _, c := range cases {
		toks := lexAll(t, c.src)
		assert.Equal(t, token.INT, toks[0].Kind, c.src)
		assert.Equal(t, c.want, toks[0].IntValue, c.src)
	}
}

func TestLex_IntegerSuffixes(t *testing.T) {
	cases := []struct {
		suffix string
		kind   token.Kind
	}{
		{"", token.INT},
		{"b", token.BYTE},
		{"sb", token.SBYTE},
		{"s", token.SHORT},
		{"ss", token.SHORT},
		{"sl", token.LONG},
		{"l", token.LONG},
		{"ub", token.BYTE},
		{"us", token.USHORT},
		{"ul", token.ULONG},
		{"u", token.UINT},
	}
	for _, c := range cases {
		toks := lexAll(t, "42"+c.suffix)
		assert.Equal(t, c.kind, toks[0].Kind, c.suffix)
		assert.Equal(t, uint64(42), toks[0].IntValue, c.suffix)
	}
}

func TestLex_FloatForcingSuffixes(t *testing.T) {
	cases := []struct {
		suffix string
		kind   token.Kind
	}{
		{"f", token.FLOAT},
		{"d", token.DOUBLE},
		{"if", token.IFLOAT},
		{"id", token.IDOUBLE},
		{"i", token.IDOUBLE},
	}
	for _, c := range cases {
		toks := lexAll(t, "42"+c.suffix)
		assert.Equal(t, c.kind, toks[0].Kind, c.suffix)
		assert.Equal(t, float64(42), toks[0].FloatValue, c.suffix)
	}
}

func TestLex_FloatLiteral(t *testing.T) {
	toks := lexAll(t, "3.25")
	assert.Equal(t, token.DOUBLE, toks[0].Kind)
	assert.InDelta(t, 3.25, toks[0].FloatValue, 1e-9)
}

func TestLex_ExponentForms(t *testing.T) {
	toks := lexAll(t, "1e3")
	assert.Equal(t, token.DOUBLE, toks[0].Kind)
	assert.InDelta(t, 1000.0, toks[0].FloatValue, 1e-9)

	toks = lexAll(t, "1p4")
	assert.Equal(t, token.DOUBLE, toks[0].Kind)
	assert.InDelta(t, 16.0, toks[0].FloatValue, 1e-9)
}

func TestLex_IntegerOverflowReparsesAsFloat(t *testing.T) {
	toks := lexAll(t, "99999999999999999999")
	assert.Equal(t, token.DOUBLE, toks[0].Kind)
	assert.InDelta(t, 99999999999999999999.0, toks[0].FloatValue, 1e9)
}

func TestLex_StringEscapesAndTripleQuote(t *testing.T) {
	toks := lexAll(t, `"a\nb"`)
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, []rune("a\nb"), toks[0].Runes)

	toks = lexAll(t, "\"\"\"line1\nline2\"\"\"")
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, []rune("line1\nline2"), toks[0].Runes)
}

func TestLex_SingleQuotedStringRejectsRawNewline(t *testing.T) {
	_, sink := Lex([]rune("\"a\nb\""))
	assert.False(t, sink.Empty())
}

func TestLex_ByteCharAndBuffer(t *testing.T) {
	toks := lexAll(t, `b'A'`)
	assert.Equal(t, token.CHAR, toks[0].Kind)
	assert.True(t, toks[0].IsByte)
	assert.Equal(t, uint64('A'), toks[0].IntValue)

	toks = lexAll(t, `b"AB"`)
	assert.Equal(t, token.BUFFER, toks[0].Kind)
	assert.Equal(t, []byte("AB"), toks[0].Bytes)
}

func TestLex_ByteLiteralRejectsUnicodeEscape(t *testing.T) {
	_, sink := Lex([]rune("b\"\\u0041\""))
	assert.False(t, sink.Empty())
}

func TestLex_SymbolsLongestMatch(t *testing.T) {
	toks := lexAll(t, "<<= << <= < >>= >> >= > ** * += ++ + -> -- -=")
	ops := make([]token.Operator, 0)
	delims := make([]token.Delimiter, 0)
	for _, tk := range toks {
		switch tk.Kind {
		case token.OPERATOR:
			ops = append(ops, tk.Operator)
		case token.DELIMITER:
			delims = append(delims, tk.Delimiter)
		}
	}
	assert.Contains(t, ops, token.SHL_ASSIGN)
	assert.Contains(t, ops, token.SHL)
	assert.Contains(t, ops, token.LE)
	assert.Contains(t, ops, token.LT)
	assert.Contains(t, ops, token.SHR_ASSIGN)
	assert.Contains(t, ops, token.SHR)
	assert.Contains(t, ops, token.GE)
	assert.Contains(t, ops, token.GT)
	assert.Contains(t, ops, token.POW)
	assert.Contains(t, ops, token.STAR)
	assert.Contains(t, ops, token.PLUS_ASSIGN)
	assert.Contains(t, ops, token.INCR)
	assert.Contains(t, ops, token.PLUS)
	assert.Contains(t, ops, token.DECR)
	assert.Contains(t, ops, token.MINUS_ASSIGN)
	assert.Contains(t, delims, token.ARROW)
}

func TestLex_UnknownSymbolIsReportedAsNone(t *testing.T) {
	toks, sink := Lex([]rune("$"))
	assert.False(t, sink.Empty())
	assert.Equal(t, token.NONE, toks[0].Kind)
}

func TestLex_CommentRunsToNewline(t *testing.T) {
	toks := lexAll(t, "a # trailing comment\nb")
	assert.Equal(t, []token.Kind{
		token.IDENTIFIER, token.COMMENT, token.NEWLINE, token.IDENTIFIER, token.EOF,
	}, kinds(toks))
}

// FuzzLex asserts that the cursor always strictly
// advances (TokenizeAll terminates) and the lexer never panics on
// arbitrary input.
func FuzzLex(f *testing.F) {
	seeds := []string{
		"", "def foo(x int) { return x + 1 }",
		"0x1F.5p3ul", `"""multi\nline"""`, "b'\\xFF'",
		"<<<<<<====", "# comment only", "\x00",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, src string) {
		toks, _ := Lex([]rune(src))
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("token stream did not end in EOF: %v", toks)
		}
	})
}

// Package token defines the tagged-union token model: a
// Kind discriminant plus the payload fields relevant to that kind, splitting
// the token type out from the lexer the way some interpreters keep a
// dedicated "types" package for TokenType/Token. A smaller single flat
// TokenType-string + Literal struct would fit a smaller keyword set; this
// package keeps that flat-struct shape but grows the Kind/Keyword/Operator/
// Delimiter enumerations to cover the full grammar.
package token

import "github.com/kharelang/kc/diag"

// Kind is the token's tagged-union discriminant.
type Kind int

const (
	NONE Kind = iota // error sentinel
	EOF
	NEWLINE
	COMMENT

	IDENTIFIER
	KEYWORD
	OPERATOR
	DELIMITER

	CHAR
	STRING
	BUFFER

	BYTE
	SBYTE
	SHORT
	USHORT
	INT
	UINT
	LONG
	ULONG

	FLOAT
	DOUBLE
	IFLOAT
	IDOUBLE
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

var kindNames = map[Kind]string{
	NONE: "NONE", EOF: "EOF", NEWLINE: "NEWLINE", COMMENT: "COMMENT",
	IDENTIFIER: "IDENTIFIER", KEYWORD: "KEYWORD", OPERATOR: "OPERATOR", DELIMITER: "DELIMITER",
	CHAR: "CHAR", STRING: "STRING", BUFFER: "BUFFER",
	BYTE: "BYTE", SBYTE: "SBYTE", SHORT: "SHORT", USHORT: "USHORT",
	INT: "INT", UINT: "UINT", LONG: "LONG", ULONG: "ULONG",
	FLOAT: "FLOAT", DOUBLE: "DOUBLE", IFLOAT: "IFLOAT", IDOUBLE: "IDOUBLE",
}

// Keyword enumerates the fixed keyword set plus the word operators
// ... Word operators: not, and, or, xor").
type Keyword int

const (
	IMPORT Keyword = iota
	INCLUDE
	AS
	TRY
	DEF
	CLASS
	STRUCT
	ENUM
	ALIAS
	REF
	WILD
	PUBLIC
	PRIVATE
	STATIC
	INCASE
	IF
	ELIF
	ELSE
	FOR
	WHILE
	DO
	BREAK
	CONTINUE
	RETURN
	IN
	NOT
	AND
	OR
	XOR
)

var keywords = map[string]Keyword{
	"import": IMPORT, "include": INCLUDE, "as": AS, "try": TRY,
	"def": DEF, "class": CLASS, "struct": STRUCT, "enum": ENUM, "alias": ALIAS,
	"ref": REF, "wild": WILD, "public": PUBLIC, "private": PRIVATE, "static": STATIC,
	"incase": INCASE, "if": IF, "elif": ELIF, "else": ELSE,
	"for": FOR, "while": WHILE, "do": DO,
	"break": BREAK, "continue": CONTINUE, "return": RETURN, "in": IN,
	"not": NOT, "and": AND, "or": OR, "xor": XOR,
}

// LookupKeyword reports whether word is one of the fixed keywords or word
// operators, returning its Keyword code.
func LookupKeyword(word string) (Keyword, bool) {
	k, ok := keywords[word]
	return k, ok
}

// Operator enumerates every operator code.
type Operator int

const (
	PLUS Operator = iota
	MINUS
	STAR
	SLASH
	PERCENT
	POW // **

	ASSIGN // =
	PLUS_ASSIGN
	MINUS_ASSIGN
	STAR_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN
	POW_ASSIGN
	DOT_ASSIGN // .=
	AND_ASSIGN // &=
	OR_ASSIGN  // |=
	XOR_ASSIGN // ^=
	NOT_ASSIGN // ~=
	SHL_ASSIGN // <<=
	SHR_ASSIGN // >>=

	EQ // ==
	NE // !=
	LT
	GT
	LE
	GE

	BIT_AND // &
	BIT_OR  // |
	BIT_XOR // ^ — listed in precedence ladder (level 9) but
	// easy to omit from a first pass at the operator token enumeration;
	// kept here since the ladder cannot be implemented without it.
	BIT_NOT // ~
	SHL     // <<
	SHR     // >>

	INCR // ++
	DECR // --  (post/pre distinguished by the parser, not the lexer)

	// ADDRESS is the '@' operator. The original source calls this operator
	// "ID" in the lexer layer and "ADDRESS" in the AST layer; this
	// package uses ADDRESS throughout to avoid carrying two names for one
	// concept.
	ADDRESS
)

// Delimiter enumerates the delimiter codes. The original source maps ']' to
// the same code as '}' (apparently a typo); this enumeration keeps
// SQUARE_CLOSE distinct from CURLY_CLOSE.
type Delimiter int

const (
	COMMA Delimiter = iota
	COLON
	SEMICOLON
	PAREN_OPEN
	PAREN_CLOSE
	CURLY_OPEN
	CURLY_CLOSE
	SQUARE_OPEN
	SQUARE_CLOSE
	DOT
	ELLIPSIS // ...
	ARROW    // ->
	BANG     // ! (templatize marker, e.g. !T / !(T, U))
)

// Token is the tagged union: a Kind discriminant
// plus the payload fields relevant to that Kind. Unused fields for a given
// Kind are zero; this mirrors a classic flat Token{Type, Literal, ...}
// design generalized to a richer payload
// (integer/float value, keyword/operator/delimiter codes, rune/byte
// sequences for string/char/buffer literals).
type Token struct {
	Kind Kind
	Pos  diag.Position // begin position — "Each token carries its begin position"
	End  diag.Position

	Text string // identifier text, or the raw lexeme for diagnostics/printing

	Keyword   Keyword
	Operator  Operator
	Delimiter Delimiter

	IntValue   uint64  // BYTE/SBYTE/SHORT/USHORT/INT/UINT/LONG/ULONG
	FloatValue float64 // FLOAT/DOUBLE/IFLOAT/IDOUBLE

	Rune   rune   // CHAR
	IsByte bool   // CHAR: true for the b'...' byte-character form
	Runes  []rune // STRING
	Bytes  []byte // BUFFER
}

// IsNumeric reports whether the token is one of the numeric literal kinds.
func (t Token) IsNumeric() bool {
	switch t.Kind {
	case BYTE, SBYTE, SHORT, USHORT, INT, UINT, LONG, ULONG, FLOAT, DOUBLE, IFLOAT, IDOUBLE:
		return true
	default:
		return false
	}
}

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKeyword(t *testing.T) {
	k, ok := LookupKeyword("class")
	assert.True(t, ok)
	assert.Equal(t, CLASS, k)

	_, ok = LookupKeyword("notakeyword")
	assert.False(t, ok)
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, Token{Kind: INT}.IsNumeric())
	assert.True(t, Token{Kind: IDOUBLE}.IsNumeric())
	assert.False(t, Token{Kind: IDENTIFIER}.IsNumeric())
	assert.False(t, Token{Kind: STRING}.IsNumeric())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "IDENTIFIER", IDENTIFIER.String())
	assert.Equal(t, "UNKNOWN", Kind(999).String())
}

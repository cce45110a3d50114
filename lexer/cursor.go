package lexer

import "github.com/kharelang/kc/diag"

// Cursor replaces raw char32_t**-style pointer-to-pointer threading with a
// small value passed by mutable reference: "passes a small Cursor{buf, pos}
// by mutable reference and exposes peek, bump, checkpoint, and rewind". A
// simpler lexer might instead keep position/column fields directly on
// *Lexer; this package keeps that same "fields on the struct, no pointer
// chasing" idiom but factors the cursor out since the lexer's
// integer-to-float rewind needs to save/restore it independently of the
// rest of the Lexer's state.
//
// buf is terminated by a zero code point ; pos never reads
// past len(buf)-1.
type Cursor struct {
	buf    []rune
	pos    int
	line   int
	column int
}

// NewCursor wraps a zero-terminated rune buffer. If buf is not already
// zero-terminated, one is appended so Current() never runs off the end.
func NewCursor(buf []rune) Cursor {
	if len(buf) == 0 || buf[len(buf)-1] != 0 {
		buf = append(append([]rune{}, buf...), 0)
	}
	return Cursor{buf: buf, pos: 0, line: 1, column: 1}
}

// Current returns the code point under the cursor (0 at end of input).
func (c *Cursor) Current() rune {
	if c.pos >= len(c.buf) {
		return 0
	}
	return c.buf[c.pos]
}

// Peek returns the code point n positions ahead of the cursor without
// advancing it (Peek(0) == Current()).
func (c *Cursor) Peek(n int) rune {
	i := c.pos + n
	if i < 0 || i >= len(c.buf) {
		return 0
	}
	return c.buf[i]
}

// Bump advances the cursor by one code point, tracking line/column.
// Invariant: the cursor strictly advances unless
// already at end of input.
func (c *Cursor) Bump() rune {
	ch := c.Current()
	if ch == 0 && c.pos >= len(c.buf)-1 {
		return 0
	}
	c.pos++
	if ch == '\n' {
		c.line++
		c.column = 1
	} else {
		c.column++
	}
	return ch
}

// AtEnd reports whether the cursor has reached the terminating zero code
// point.
func (c *Cursor) AtEnd() bool {
	return c.pos >= len(c.buf)-1
}

// Position captures the cursor's current location as a diag.Position.
func (c *Cursor) Position() diag.Position {
	return diag.Position{Offset: c.pos, Line: c.line, Column: c.column}
}

// checkpoint is an opaque saved cursor state. Its one user is lexNumber,
// which rewinds to the start of a literal to reparse an integer as a float.
type checkpoint struct {
	pos    int
	line   int
	column int
}

// Checkpoint saves the cursor's current position.
func (c *Cursor) Checkpoint() checkpoint {
	return checkpoint{pos: c.pos, line: c.line, column: c.column}
}

// Rewind restores a previously saved checkpoint.
func (c *Cursor) Rewind(cp checkpoint) {
	c.pos, c.line, c.column = cp.pos, cp.line, cp.column
}

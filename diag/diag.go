// Package diag implements the append-only diagnostic sink shared by the
// lexer and the parser. Neither phase ever aborts on error;
// both record a Diagnostic and keep going.
package diag

import "fmt"

// Phase identifies which stage of the front end raised a Diagnostic.
type Phase string

const (
	Lexer  Phase = "LEXER"
	Parser Phase = "PARSER"
)

// Position is a pointer into the source buffer, used for error reporting.
// Line and Column are 1-indexed; Offset is the 0-indexed rune offset.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Diagnostic is one reported error: {phase, message, pointer_into_source}.
type Diagnostic struct {
	Phase   Phase
	Message string
	Pos     Position
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Pos, d.Phase, d.Message)
}

// Sink accumulates diagnostics across a single lex/parse invocation. It is
// never shared across invocations — cursor state is exclusive to one
// parse call — and is safe to pass by reference into every helper.
type Sink struct {
	entries []Diagnostic
	limit   int // 0 means unbounded
}

// NewSink creates an empty Sink. A limit of 0 means no cap on the number of
// recorded diagnostics; a positive limit silently drops entries past it so
// that pathological input cannot grow the sink unboundedly.
func NewSink(limit int) *Sink {
	return &Sink{limit: limit}
}

// Add appends a diagnostic at the given phase, message, and position.
func (s *Sink) Add(phase Phase, pos Position, format string, args ...any) {
	if s.limit > 0 && len(s.entries) >= s.limit {
		return
	}
	s.entries = append(s.entries, Diagnostic{
		Phase:   phase,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	})
}

// Entries returns the diagnostics recorded so far, in discovery order.
func (s *Sink) Entries() []Diagnostic {
	return s.entries
}

// Empty reports whether no diagnostics have been recorded: the input is
// well-formed iff the diagnostics list is empty.
func (s *Sink) Empty() bool {
	return len(s.entries) == 0
}

// Err returns a single error summarizing the sink's contents, or nil if the
// sink is empty. This is the boundary a caller (outside this repo's scope)
// can use to fold diagnostics into ordinary Go error handling.
func (s *Sink) Err() error {
	if s.Empty() {
		return nil
	}
	if len(s.entries) == 1 {
		return fmt.Errorf("%s", s.entries[0])
	}
	return fmt.Errorf("%s (and %d more diagnostic(s))", s.entries[0], len(s.entries)-1)
}

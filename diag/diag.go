// Package diag defines the single error type shared by every compiler phase.
//
// Every phase (lexer, parser, sema, codegen) reports its first failure as a
// *diag.Error and stops; there is no error list and no recovery, matching the
// single-error-fatal policy the rest of the pipeline relies on. main.go is the
// only place that formats and prints one.
package diag

import "fmt"

// Phase names the pipeline stage that produced an Error.
type Phase string

const (
	Lex     Phase = "Lex"
	Parse   Phase = "Parse"
	Semantic Phase = "Semantic"
	Codegen Phase = "Codegen"
)

// Error is a line/column-stamped diagnostic from one compiler phase.
type Error struct {
	Phase   Phase
	Line    int
	Column  int
	Message string
}

func (e *Error) Error() string {
	// The lexer predates the uniform "[line L:C] <Phase> error:" wire format
	// and keeps its own two message shapes (see NewLex); every later phase
	// uses the common template.
	if e.Phase == Lex {
		return e.Message
	}
	return fmt.Sprintf("[line %d:%d] %s error: %s", e.Line, e.Column, e.Phase, e.Message)
}

// New builds an Error for Parse, Semantic, or Codegen phases, whose messages
// are formatted uniformly by Error().
func New(phase Phase, line, column int, format string, args ...any) *Error {
	return &Error{Phase: phase, Line: line, Column: column, Message: fmt.Sprintf(format, args...)}
}

// NewLex builds a lexer diagnostic. message is the complete, already-formatted
// text (e.g. "Indentation error at line 4" or "Unexpected '!' at line 4, column 9"),
// preserved verbatim from the reference lexer rather than forced into the
// bracketed [line L:C] template the other phases share.
func NewLex(line, column int, message string) *Error {
	return &Error{Phase: Lex, Line: line, Column: column, Message: message}
}

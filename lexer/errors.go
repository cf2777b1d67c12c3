package lexer

import "fmt"

// Message text for the lexer's two fatal diagnostics, kept verbatim from the
// reference lexer rather than forced into the "[line L:C] <Phase> error:"
// template the later phases share (see diag.NewLex).

func indentationErrorMessage(line int) string {
	return fmt.Sprintf("Indentation error at line %d", line)
}

func unexpectedBangMessage(line, column int) string {
	return fmt.Sprintf("Unexpected '!' at line %d, column %d", line, column)
}

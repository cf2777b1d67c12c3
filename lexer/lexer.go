/*
File    : lazylang/lexer/lexer.go
*/

// Package lexer turns source text into a stream of Tokens with explicit
// INDENT/DEDENT bookkeeping, so that the parser never has to look at raw
// whitespace.
package lexer

import (
	"github.com/chmenegatti/lazylang/diag"
)

const maxIndentDepth = 128

// Lexer scans a source buffer byte by byte. It never allocates token text:
// identifier, number, and string lexemes are slices of Src, and punctuation
// and structural tokens carry constant text, so Src must outlive every Token
// this Lexer produces.
type Lexer struct {
	Src    string
	Pos    int
	Line   int
	Column int

	indentStack    []int
	pendingDedents int
	atLineStart    bool
}

// NewLexer creates a Lexer positioned at the start of src, ready to emit the
// first token via NextToken.
func NewLexer(src string) *Lexer {
	return &Lexer{
		Src:         src,
		Pos:         0,
		Line:        1,
		Column:      1,
		indentStack: []int{0},
		atLineStart: true,
	}
}

func (lx *Lexer) peekByte() byte {
	if lx.Pos >= len(lx.Src) {
		return 0
	}
	return lx.Src[lx.Pos]
}

func (lx *Lexer) peekByteAt(offset int) byte {
	if lx.Pos+offset >= len(lx.Src) {
		return 0
	}
	return lx.Src[lx.Pos+offset]
}

func (lx *Lexer) advance() byte {
	c := lx.peekByte()
	if c == 0 {
		return 0
	}
	lx.Pos++
	if c == '\n' {
		lx.Line++
		lx.Column = 1
	} else {
		lx.Column++
	}
	return c
}

func (lx *Lexer) match(expected byte) bool {
	if lx.peekByte() != expected {
		return false
	}
	lx.advance()
	return true
}

func (lx *Lexer) makeToken(kind TokenKind, lexeme string, line, column int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: line, Column: column}
}

// countIndent measures the leading run of spaces/tabs at the lexer's current
// position without consuming anything past it; tabs count as one column each,
// matching the reference lexer.
func (lx *Lexer) countIndent() int {
	n := 0
	for {
		c := lx.peekByteAt(n)
		if c == ' ' || c == '\t' {
			n++
			continue
		}
		break
	}
	return n
}

// NextToken returns the next token in the stream. It is infallible except
// for two fatal diagnostics: an indentation level with no matching entry on
// the indent stack, and a stray '!' not followed by '='.
func (lx *Lexer) NextToken() (Token, error) {
	if lx.pendingDedents > 0 {
		lx.pendingDedents--
		return lx.makeToken(DEDENT, "", lx.Line, lx.Column), nil
	}

	if lx.atLineStart {
		// A line consisting only of whitespace up to a newline or EOF
		// produces no structural tokens; indentation is only meaningful
		// in front of actual content.
		indent := lx.countIndent()
		peek := lx.peekByteAt(indent)
		if peek != '\n' && peek != 0 && peek != '\r' {
			lx.atLineStart = false
			top := lx.indentStack[len(lx.indentStack)-1]
			switch {
			case indent > top:
				if len(lx.indentStack) >= maxIndentDepth {
					return Token{}, diag.NewLex(lx.Line, lx.Column, indentationErrorMessage(lx.Line))
				}
				lx.indentStack = append(lx.indentStack, indent)
				for i := 0; i < indent; i++ {
					lx.advance()
				}
				return lx.makeToken(INDENT, "", lx.Line, lx.Column), nil
			case indent < top:
				popped := 0
				for len(lx.indentStack) > 0 && lx.indentStack[len(lx.indentStack)-1] > indent {
					lx.indentStack = lx.indentStack[:len(lx.indentStack)-1]
					popped++
				}
				if len(lx.indentStack) == 0 || lx.indentStack[len(lx.indentStack)-1] != indent {
					return Token{}, diag.NewLex(lx.Line, lx.Column, indentationErrorMessage(lx.Line))
				}
				for i := 0; i < indent; i++ {
					lx.advance()
				}
				lx.pendingDedents = popped - 1
				return lx.makeToken(DEDENT, "", lx.Line, lx.Column), nil
			default:
				for i := 0; i < indent; i++ {
					lx.advance()
				}
			}
		} else {
			lx.atLineStart = false
		}
	}

	for {
		c := lx.peekByte()
		if c == ' ' || c == '\t' || c == '\r' {
			lx.advance()
			continue
		}
		break
	}

	line, col := lx.Line, lx.Column
	c := lx.peekByte()

	if c == 0 {
		// Drain the remaining indent levels one DEDENT per call; the parser
		// calls NextToken again immediately, so there is no need to queue
		// these the way a mid-line dedent run does.
		if len(lx.indentStack) > 1 {
			lx.indentStack = lx.indentStack[:len(lx.indentStack)-1]
			return lx.makeToken(DEDENT, "", line, col), nil
		}
		return lx.makeToken(EOF, "", line, col), nil
	}

	if c == '\n' {
		lx.advance()
		lx.atLineStart = true
		return lx.makeToken(NEWLINE, "\n", line, col), nil
	}

	if isAlpha(c) || c == '_' {
		return lx.readIdentifier(), nil
	}

	if isDigit(c) {
		return lx.readNumber(), nil
	}

	if c == '"' {
		return lx.readString(), nil
	}

	switch c {
	case ':':
		lx.advance()
		return lx.makeToken(COLON, ":", line, col), nil
	case ',':
		lx.advance()
		return lx.makeToken(COMMA, ",", line, col), nil
	case '.':
		lx.advance()
		return lx.makeToken(DOT, ".", line, col), nil
	case '(':
		lx.advance()
		return lx.makeToken(LPAREN, "(", line, col), nil
	case ')':
		lx.advance()
		return lx.makeToken(RPAREN, ")", line, col), nil
	case '[':
		lx.advance()
		return lx.makeToken(LBRACKET, "[", line, col), nil
	case ']':
		lx.advance()
		return lx.makeToken(RBRACKET, "]", line, col), nil
	case '+':
		lx.advance()
		return lx.makeToken(PLUS, "+", line, col), nil
	case '*':
		lx.advance()
		return lx.makeToken(STAR, "*", line, col), nil
	case '/':
		lx.advance()
		return lx.makeToken(SLASH, "/", line, col), nil
	case '-':
		lx.advance()
		if lx.match('>') {
			return lx.makeToken(ARROW, "->", line, col), nil
		}
		return lx.makeToken(MINUS, "-", line, col), nil
	case '=':
		lx.advance()
		if lx.match('=') {
			return lx.makeToken(EQ, "==", line, col), nil
		}
		return lx.makeToken(ASSIGN, "=", line, col), nil
	case '!':
		lx.advance()
		if lx.match('=') {
			return lx.makeToken(NEQ, "!=", line, col), nil
		}
		return Token{}, diag.NewLex(line, col, unexpectedBangMessage(line, col))
	case '<':
		lx.advance()
		if lx.match('=') {
			return lx.makeToken(LE, "<=", line, col), nil
		}
		return lx.makeToken(LT, "<", line, col), nil
	case '>':
		lx.advance()
		if lx.match('=') {
			return lx.makeToken(GE, ">=", line, col), nil
		}
		return lx.makeToken(GT, ">", line, col), nil
	}

	// An unrecognized byte is consumed and dropped; there is no default-case
	// diagnostic here, matching the reference lexer's next_token switch,
	// which has no default case at all. The scan simply resumes on the
	// next call.
	lx.advance()
	return lx.NextToken()
}

func (lx *Lexer) readIdentifier() Token {
	line, col := lx.Line, lx.Column
	start := lx.Pos
	for isAlpha(lx.peekByte()) || isDigit(lx.peekByte()) || lx.peekByte() == '_' {
		lx.advance()
	}
	text := lx.Src[start:lx.Pos]
	return lx.makeToken(lookupIdent(text), text, line, col)
}

// readNumber scans an integer, or a float if exactly one '.' is followed by
// more digits. There is no scientific notation, no digit grouping, and no
// sign prefix; the parser has no unary minus either.
func (lx *Lexer) readNumber() Token {
	line, col := lx.Line, lx.Column
	start := lx.Pos
	for isDigit(lx.peekByte()) {
		lx.advance()
	}
	kind := INT
	if lx.peekByte() == '.' && isDigit(lx.peekByteAt(1)) {
		kind = FLOAT
		lx.advance()
		for isDigit(lx.peekByte()) {
			lx.advance()
		}
	}
	return lx.makeToken(kind, lx.Src[start:lx.Pos], line, col)
}

// readString scans until the matching closing quote or end-of-input. There
// is no escape processing inside the lexer; the lexeme spans only the
// interior characters. An unterminated string at end-of-input is closed
// silently rather than diagnosed — a deliberately preserved quirk of the
// reference lexer (see SPEC_FULL.md Open Questions).
func (lx *Lexer) readString() Token {
	line, col := lx.Line, lx.Column
	lx.advance() // opening quote
	start := lx.Pos
	for lx.peekByte() != '"' && lx.peekByte() != 0 {
		lx.advance()
	}
	text := lx.Src[start:lx.Pos]
	if lx.peekByte() == '"' {
		lx.advance()
	}
	return lx.makeToken(STRING, text, line, col)
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

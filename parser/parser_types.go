package parser

import (
	"strings"

	"github.com/chmenegatti/lazylang/lexer"
)

// collectType accumulates raw token text into a type-name string until it
// sees terminator at bracket-depth 0. Types have no parsed structure: they
// are free-form strings like "int", "result[int,string]", or
// "maybe[MyStruct]", built purely by concatenating lexemes.
//
// Inside brackets, commas and further nested brackets accumulate freely. A
// NEWLINE or DEDENT is only legal when it is itself the terminator (i.e. at
// depth 0, right where the caller expected the type to end); anywhere else
// it is fatal, since a type never legitimately spans a line break.
//
// When the terminator is ')' (a parameter-type list), a ',' at depth 0 also
// ends the type, so each entry of the list is collected as its own type.
func (p *Parser) collectType(terminator lexer.TokenKind) (string, error) {
	var sb strings.Builder
	depth := 0
	for {
		if depth == 0 && (p.check(terminator) || (terminator == lexer.RPAREN && p.check(lexer.COMMA))) {
			return sb.String(), nil
		}
		tok := p.current
		switch tok.Kind {
		case lexer.NEWLINE, lexer.DEDENT, lexer.EOF:
			return "", p.errorf("unexpected line break in type")
		case lexer.LBRACKET:
			depth++
		case lexer.RBRACKET:
			depth--
		case lexer.IDENT, lexer.NULL, lexer.COMMA, lexer.DOT:
			// allowed at any depth
		default:
			return "", p.errorf("unexpected token in type")
		}
		sb.WriteString(tok.Lexeme)
		if err := p.advance(); err != nil {
			return "", err
		}
	}
}

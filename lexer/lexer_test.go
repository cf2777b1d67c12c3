package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain tokenizes all of src and fails the test immediately on any lexer
// error, returning the resulting token stream (EOF included).
func drain(t *testing.T, src string) []Token {
	t.Helper()
	lx := NewLexer(src)
	var toks []Token
	for {
		tok, err := lx.NextToken()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == EOF {
			break
		}
	}
	return toks
}

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexer_SimpleAssignmentLine(t *testing.T) {
	toks := drain(t, "x: int = 1\n")
	assert.Equal(t, []TokenKind{IDENT, COLON, IDENT, ASSIGN, INT, NEWLINE, EOF}, kinds(toks))
}

func TestLexer_KeywordsNotIdentifiers(t *testing.T) {
	toks := drain(t, "if else for in struct mut pub import task return true false null\n")
	want := []TokenKind{IF, ELSE, FOR, IN, STRUCT, MUT, PUB, IMPORT, TASK, RETURN, TRUE, FALSE, NULL, NEWLINE, EOF}
	assert.Equal(t, want, kinds(toks))
}

func TestLexer_TwoCharOperators(t *testing.T) {
	toks := drain(t, "== != -> <= >=\n")
	assert.Equal(t, []TokenKind{EQ, NEQ, ARROW, LE, GE, NEWLINE, EOF}, kinds(toks))
}

func TestLexer_FloatRequiresDigitAfterDot(t *testing.T) {
	toks := drain(t, "1.5 2.\n")
	// "2." has no digit after the dot, so the dot is not consumed as part
	// of the number; it is lexed as its own DOT token.
	assert.Equal(t, []TokenKind{FLOAT, INT, DOT, NEWLINE, EOF}, kinds(toks))
}

func TestLexer_StringLiteralExcludesQuotes(t *testing.T) {
	toks := drain(t, `"hello"`+"\n")
	require.Len(t, toks, 3)
	assert.Equal(t, STRING, toks[0].Kind)
	assert.Equal(t, "hello", toks[0].Lexeme)
}

func TestLexer_UnterminatedStringClosesSilently(t *testing.T) {
	toks := drain(t, `"unterminated`)
	require.Len(t, toks, 2)
	assert.Equal(t, STRING, toks[0].Kind)
	assert.Equal(t, "unterminated", toks[0].Lexeme)
	assert.Equal(t, EOF, toks[1].Kind)
}

func TestLexer_IndentAndDedentBalance(t *testing.T) {
	src := "if true\n    x: int = 1\n    y: int = 2\nz: int = 3\n"
	toks := drain(t, src)
	k := kinds(toks)
	assert.Equal(t, IF, k[0])
	assert.Contains(t, k, INDENT)
	assert.Contains(t, k, DEDENT)
	assert.Equal(t, EOF, k[len(k)-1])

	indents, dedents := 0, 0
	for _, kind := range k {
		if kind == INDENT {
			indents++
		}
		if kind == DEDENT {
			dedents++
		}
	}
	assert.Equal(t, indents, dedents)
}

func TestLexer_NestedIndentation(t *testing.T) {
	src := "if true\n    if true\n        x: int = 1\n"
	toks := drain(t, src)
	k := kinds(toks)
	indentCount, dedentCount := 0, 0
	for _, kind := range k {
		if kind == INDENT {
			indentCount++
		}
		if kind == DEDENT {
			dedentCount++
		}
	}
	assert.Equal(t, 2, indentCount)
	assert.Equal(t, 2, dedentCount)
}

func TestLexer_InconsistentDedentIsFatal(t *testing.T) {
	src := "if true\n        x: int = 1\n   y: int = 2\n"
	lx := NewLexer(src)
	var lastErr error
	for {
		tok, err := lx.NextToken()
		if err != nil {
			lastErr = err
			break
		}
		if tok.Kind == EOF {
			break
		}
	}
	require.Error(t, lastErr)
	assert.Contains(t, lastErr.Error(), "Indentation error")
}

func TestLexer_StrayBangIsFatal(t *testing.T) {
	lx := NewLexer("x ! y\n")
	_, err := lx.NextToken() // IDENT x
	require.NoError(t, err)
	_, err = lx.NextToken() // '!'
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unexpected '!'")
}

func TestLexer_BlankLinesProduceOnlyNewlines(t *testing.T) {
	toks := drain(t, "\n\nx: int = 1\n")
	k := kinds(toks)
	assert.Equal(t, []TokenKind{NEWLINE, NEWLINE, IDENT, COLON, IDENT, ASSIGN, INT, NEWLINE, EOF}, k)
}

func TestLexer_CarriageReturnIgnored(t *testing.T) {
	toks := drain(t, "x: int = 1\r\n")
	k := kinds(toks)
	assert.Equal(t, []TokenKind{IDENT, COLON, IDENT, ASSIGN, INT, NEWLINE, EOF}, k)
}

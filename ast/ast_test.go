package ast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chmenegatti/lazylang/lexer"
)

func TestPrint_EmptyProgram(t *testing.T) {
	prog := &Program{}
	out := Print(prog)
	assert.Contains(t, out, "Program (0 import(s), 0 declaration(s))")
}

func TestPrint_FunctionWithBody(t *testing.T) {
	prog := &Program{
		Declarations: []Node{
			&FunctionDecl{
				Name:       "main",
				ReturnType: "null",
				Body: &Block{
					Statements: []Node{
						&ExprStmt{
							Expression: &Call{
								Callee:    &Identifier{Name: "log"},
								Arguments: []Node{&Literal{LiteralKind: LiteralString, Text: "hi"}},
							},
						},
					},
				},
			},
		},
	}
	out := Print(prog)
	assert.True(t, strings.Contains(out, "FunctionDecl main"))
	assert.True(t, strings.Contains(out, "Call (1 argument(s))"))
	assert.True(t, strings.Contains(out, "Identifier log"))
}

func TestNodeKinds(t *testing.T) {
	assert.Equal(t, KindIdentifier, (&Identifier{}).Kind())
	assert.Equal(t, KindBinary, (&Binary{Op: lexer.PLUS}).Kind())
	assert.Equal(t, KindFor, (&For{}).Kind())
}

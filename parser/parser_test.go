package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmenegatti/lazylang/ast"
)

func TestParseProgram_HelloFunction(t *testing.T) {
	src := "main: () -> null = ()\n    if true\n        log(\"hello\")\n"
	prog, err := ParseProgram(src)
	require.NoError(t, err)
	require.Len(t, prog.Declarations, 1)

	fn, ok := prog.Declarations[0].(*ast.FunctionDecl)
	require.True(t, ok)
	assert.Equal(t, "main", fn.Name)
	assert.Equal(t, "null", fn.ReturnType)
	assert.Empty(t, fn.Params)
	require.Len(t, fn.Body.Statements, 1)

	ifStmt, ok := fn.Body.Statements[0].(*ast.If)
	require.True(t, ok)
	require.Len(t, ifStmt.Then.Statements, 1)
}

func TestParseProgram_FunctionWithParams(t *testing.T) {
	src := "is_positive: (int) -> bool = (x)\n    if (x > 0)\n        true\n    else\n        false\n"
	prog, err := ParseProgram(src)
	require.NoError(t, err)
	fn := prog.Declarations[0].(*ast.FunctionDecl)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "x", fn.Params[0].Name)
	assert.Equal(t, "int", fn.Params[0].TypeName)
	assert.Equal(t, "bool", fn.ReturnType)
}

func TestParseProgram_MismatchedParamTypesAndNames(t *testing.T) {
	src := "f: (int, int) -> null = (x)\n    return\n"
	_, err := ParseProgram(src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mismatched parameter types and names")
}

func TestParseProgram_StructDecl(t *testing.T) {
	src := "pub struct Point\n    x: int\n    y: int\n"
	prog, err := ParseProgram(src)
	require.NoError(t, err)
	st := prog.Declarations[0].(*ast.StructDecl)
	assert.True(t, st.IsPublic)
	assert.Equal(t, "Point", st.Name)
	require.Len(t, st.Fields, 2)
	assert.Equal(t, "x", st.Fields[0].Name)
	assert.Equal(t, "int", st.Fields[0].TypeName)
}

func TestParseProgram_ResultTypeWithBrackets(t *testing.T) {
	src := "g: () -> result[int,string] = ()\n    return 0\n"
	prog, err := ParseProgram(src)
	require.NoError(t, err)
	fn := prog.Declarations[0].(*ast.FunctionDecl)
	assert.Equal(t, "result[int,string]", fn.ReturnType)
}

func TestParseProgram_ImportsBeforeDeclarations(t *testing.T) {
	src := "import a.b.c\nmain: () -> null = ()\n    return\nimport x\n"
	_, err := ParseProgram(src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "imports must appear before declarations")
}

func TestParseProgram_ImportDottedPath(t *testing.T) {
	src := "import a.b.c\nmain: () -> null = ()\n    return\n"
	prog, err := ParseProgram(src)
	require.NoError(t, err)
	require.Len(t, prog.Imports, 1)
	assert.Equal(t, []string{"a", "b", "c"}, prog.Imports[0].Segments)
}

func TestParseProgram_AssignmentStatement(t *testing.T) {
	src := "main: () -> null = ()\n    mut x: int = 1\n    x = 2\n    return\n"
	prog, err := ParseProgram(src)
	require.NoError(t, err)
	fn := prog.Declarations[0].(*ast.FunctionDecl)
	require.Len(t, fn.Body.Statements, 3)
	decl := fn.Body.Statements[0].(*ast.VarDecl)
	assert.True(t, decl.IsMutable)
	assign := fn.Body.Statements[1].(*ast.Assign)
	assert.Equal(t, "x", assign.Target)
}

func TestParseProgram_CallChaining(t *testing.T) {
	src := "main: () -> null = ()\n    f()()\n"
	prog, err := ParseProgram(src)
	require.NoError(t, err)
	fn := prog.Declarations[0].(*ast.FunctionDecl)
	exprStmt := fn.Body.Statements[0].(*ast.ExprStmt)
	outer := exprStmt.Expression.(*ast.Call)
	_, ok := outer.Callee.(*ast.Call)
	assert.True(t, ok)
}

func TestParseProgram_UnexpectedTokenIsFatal(t *testing.T) {
	src := "main: () -> null = ()\n    )\n"
	_, err := ParseProgram(src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Parse error")
}

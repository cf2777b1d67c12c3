package codegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmenegatti/lazylang/parser"
	"github.com/chmenegatti/lazylang/sema"
)

// compile parses, checks, and generates src in a scratch directory, since
// Emit always materializes the runtime sources relative to the working
// directory.
func compile(t *testing.T, src string) string {
	t.Helper()
	prog, err := parser.ParseProgram(src)
	require.NoError(t, err)
	require.NoError(t, sema.CheckProgram(prog))

	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { require.NoError(t, os.Chdir(cwd)) }()

	cPath := filepath.Join(dir, "out.c")
	err = Emit(prog, Options{COutputPath: cPath, EmitBinary: false})
	require.NoError(t, err)

	out, err := os.ReadFile(cPath)
	require.NoError(t, err)
	return string(out)
}

func TestEmit_MainTrampolineCallsLzFnMain(t *testing.T) {
	src := "main: () -> null = ()\n    log(\"hi\")\n"
	c := compile(t, src)
	assert.Contains(t, c, "static void lz_fn_main(void)")
	assert.Contains(t, c, "int main(void) {")
	assert.Contains(t, c, "lz_fn_main();")
}

func TestEmit_NoMainPrintsFallback(t *testing.T) {
	src := "helper: () -> null = ()\n    return\n"
	c := compile(t, src)
	assert.Contains(t, c, "no entry point defined")
	assert.Contains(t, c, "return 1;")
}

func TestEmit_StructEmitsForwardDeclDefinitionAndHelper(t *testing.T) {
	src := "struct Point\n    x: int\n    y: int\n\nmain: () -> null = ()\n    return\n"
	c := compile(t, src)
	assert.Contains(t, c, "typedef struct Point Point;")
	assert.Contains(t, c, "struct Point {")
	assert.Contains(t, c, "int64_t x;")
	assert.Contains(t, c, "lz_assign_struct_Point")
}

func TestEmit_StringLiteralEscaping(t *testing.T) {
	// The lexer performs no escape processing (see lexer.readString), so a
	// literal backslash byte between the quotes reaches codegen verbatim and
	// must come back out C-escaped.
	src := "main: () -> null = ()\n    log(\"a\\b\")\n"
	c := compile(t, src)
	assert.Contains(t, c, `lz_string_from_literal("a\\b")`)
}

func TestEmit_TailReturnSynthesizedWhenLastStatementIsExpr(t *testing.T) {
	src := "f: () -> int = ()\n    1\n\nmain: () -> null = ()\n    return\n"
	c := compile(t, src)
	assert.Contains(t, c, "__lz_ret")
	assert.Contains(t, c, "lz_assign_int64(&__lz_ret, 1);")
	assert.Contains(t, c, "return __lz_ret;")
}

func TestEmit_ExplicitReturnSkipsTailSlot(t *testing.T) {
	src := "f: () -> int = ()\n    return 1\n\nmain: () -> null = ()\n    return\n"
	c := compile(t, src)
	assert.NotContains(t, c, "__lz_ret")
}

func TestEmit_BinaryOperatorText(t *testing.T) {
	src := "main: () -> null = ()\n    mut x: int = 1\n    x = 1 + 2\n"
	c := compile(t, src)
	assert.Contains(t, c, "lz_assign_int64(&x, (1 + 2));")
}

func TestEmit_IncludesRuntimeHeaderWithStructsDefined(t *testing.T) {
	src := "main: () -> null = ()\n    return\n"
	c := compile(t, src)
	assert.Contains(t, c, "#define LZ_RUNTIME_DEFINE_STRUCTS")
	assert.Contains(t, c, "#include \"src/runtime/runtime.h\"")
}

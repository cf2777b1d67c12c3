/*
File    : lazylang/codegen/codegen.go
*/

// Package codegen lowers a checked Program to a single C translation unit
// and, optionally, invokes an external C compiler to build it into an
// executable. It performs no semantic validation of its own; every Codegen
// diagnostic it can raise (an unsupported node kind, an assignment to an
// unknown symbol) indicates a bug upstream in the analyzer, not a malformed
// program. File-write and external-compiler failures are returned as plain
// errors.
package codegen

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/chmenegatti/lazylang/ast"
	"github.com/chmenegatti/lazylang/codegen/runtimeassets"
	"github.com/chmenegatti/lazylang/diag"
	"github.com/chmenegatti/lazylang/lexer"
)

const (
	defaultCOutput      = "lazylang_out.c"
	defaultBinaryOutput = "lazylang_out"
	runtimeDir          = "src/runtime"
)

// Options configures one Emit call.
type Options struct {
	COutputPath      string
	BinaryOutputPath string
	EmitBinary       bool
}

// generator carries all state threaded through one Emit call: the metadata
// pre-pass tables, the writer, and the scope stack used while walking
// function bodies.
type generator struct {
	w          writer
	program    *ast.Program
	structs    []*structInfo
	functions  []*functionInfo
	scopes     []*genScope
	hadError   bool
	firstError error
}

// Emit writes the generated C source to opts.COutputPath (or the default),
// then, if opts.EmitBinary, invokes an external C compiler to produce
// opts.BinaryOutputPath (or the default). It returns the first codegen
// error encountered, if any.
func Emit(program *ast.Program, opts Options) error {
	cPath := opts.COutputPath
	if cPath == "" {
		cPath = defaultCOutput
	}
	binaryPath := opts.BinaryOutputPath
	if binaryPath == "" {
		binaryPath = defaultBinaryOutput
	}

	if err := writeRuntimeAssets(); err != nil {
		return err
	}

	g := &generator{program: program}
	g.emitProgram()
	if g.hadError {
		return g.firstError
	}

	if err := os.WriteFile(cPath, []byte(g.w.String()), 0o644); err != nil {
		return fmt.Errorf("failed to open '%s' for writing: %w", cPath, err)
	}

	if opts.EmitBinary {
		if err := runExternalCompiler(cPath, binaryPath); err != nil {
			return err
		}
	}
	return nil
}

// writeRuntimeAssets materializes the embedded runtime sources at
// src/runtime/runtime.{c,h} relative to the current working directory, where
// both the generated include directive and the compiler invocation expect
// to find them.
func writeRuntimeAssets() error {
	if err := os.MkdirAll(runtimeDir, 0o755); err != nil {
		return fmt.Errorf("failed to create '%s': %w", runtimeDir, err)
	}
	if err := os.WriteFile(filepath.Join(runtimeDir, "runtime.h"), runtimeassets.RuntimeH, 0o644); err != nil {
		return fmt.Errorf("failed to write runtime.h: %w", err)
	}
	if err := os.WriteFile(filepath.Join(runtimeDir, "runtime.c"), runtimeassets.RuntimeC, 0o644); err != nil {
		return fmt.Errorf("failed to write runtime.c: %w", err)
	}
	return nil
}

func (g *generator) fail(tok lexer.Token, format string, args ...any) {
	if g.hadError {
		return
	}
	g.hadError = true
	g.firstError = diag.New(diag.Codegen, tok.Line, tok.Column, format, args...)
}

func (g *generator) emitProgram() {
	g.collectMetadata()
	g.emitFileHeader()
	g.emitIncludes()
	g.w.blankLine()
	g.emitStructForwardDecls()
	g.w.blankLine()
	g.emitStructs()
	g.w.blankLine()
	g.emitStructAssignHelpers()
	g.w.blankLine()
	g.emitFunctionPrototypes()
	g.w.blankLine()
	g.emitFunctionDefinitions()
	g.w.blankLine()
	g.emitEntrypoint()
}

func (g *generator) emitFileHeader() {
	g.w.line("/* Auto-generated C output from lazylang */")
}

func (g *generator) emitIncludes() {
	g.w.line("#include <stdint.h>")
	g.w.line("#include <stdbool.h>")
	g.w.line("#include <stddef.h>")
	g.w.line("#include <stdio.h>")
	g.w.line("#include <stdlib.h>")
	g.w.line("#include <string.h>")
	g.w.line("#if defined(__GNUC__) || defined(__clang__)")
	g.w.line("#define LZ_UNUSED __attribute__((unused))")
	g.w.line("#else")
	g.w.line("#define LZ_UNUSED")
	g.w.line("#endif")
	g.w.line("#define LZ_RUNTIME_DEFINE_STRUCTS")
	g.w.line("#include \"src/runtime/runtime.h\"")
}

func (g *generator) emitStructForwardDecls() {
	for _, st := range g.structs {
		g.w.line("typedef struct %s %s;", st.name, st.name)
	}
}

func (g *generator) emitStructs() {
	for _, st := range g.structs {
		g.w.line("struct %s {", st.decl.Name)
		g.w.push()
		for _, field := range st.decl.Fields {
			g.w.line("%s %s;", g.cType(field.TypeName), field.Name)
		}
		g.w.pop()
		g.w.line("};")
		g.w.blankLine()
	}
}

func (g *generator) emitStructAssignHelpers() {
	for _, st := range g.structs {
		g.w.line("static void LZ_UNUSED %s(%s *dst, %s value) {", st.assignHelper, st.name, st.name)
		g.w.push()
		g.w.line("*dst = value;")
		g.w.pop()
		g.w.line("}")
		g.w.blankLine()
	}
}

func (g *generator) emitFunctionSignature(info *functionInfo, prototype bool) {
	fn := info.decl
	retType := g.cReturnType(fn.ReturnType)
	g.w.beginLine()
	g.w.printf("static %s %s(", retType, info.cName)
	if len(fn.Params) == 0 {
		g.w.printf("void")
	} else {
		for i, param := range fn.Params {
			g.w.printf("%s %s", g.cType(param.TypeName), param.Name)
			if i+1 < len(fn.Params) {
				g.w.printf(", ")
			}
		}
	}
	g.w.printf(")")
	if prototype {
		g.w.printf(";")
	}
	g.w.endLine()
}

func (g *generator) emitFunctionPrototypes() {
	for _, fn := range g.functions {
		g.emitFunctionSignature(fn, true)
	}
}

func (g *generator) emitFunctionBody(fn *ast.FunctionDecl) {
	if fn.Body == nil {
		g.w.line("{")
		g.w.line("}")
		return
	}

	g.w.line("{")
	g.w.push()
	g.scopePush()
	for _, param := range fn.Params {
		g.scopeAdd(param.Name, param.TypeName, false)
	}

	retType := g.cReturnType(fn.ReturnType)
	returnsValue := retType != "void"
	stmts := fn.Body.Statements
	var lastStmt ast.Node
	if len(stmts) > 0 {
		lastStmt = stmts[len(stmts)-1]
	}
	_, lastIsReturn := lastStmt.(*ast.Return)
	needsTailReturn := returnsValue && (lastStmt == nil || !lastIsReturn)

	var tailVar, tailHelper string
	if needsTailReturn {
		tailVar = "__lz_ret"
		tailHelper = g.assignHelper(fn.ReturnType)
		g.w.line("%s %s = {0};", g.cType(fn.ReturnType), tailVar)
	}

	for i, stmt := range stmts {
		isLast := i+1 == len(stmts)
		stmtTailVar, stmtTailHelper := "", ""
		if needsTailReturn && isLast {
			stmtTailVar, stmtTailHelper = tailVar, tailHelper
		}
		g.emitStatement(stmt, stmtTailVar, stmtTailHelper)
	}

	if needsTailReturn {
		g.w.line("return %s;", tailVar)
	}

	g.scopePop()
	g.w.pop()
	g.w.line("}")
}

func (g *generator) emitFunctionDefinitions() {
	for _, fn := range g.functions {
		g.emitFunctionSignature(fn, false)
		g.emitFunctionBody(fn.decl)
		g.w.blankLine()
	}
}

func (g *generator) emitEntrypoint() {
	mainFn := g.findFunction("main")
	g.w.line("int main(void) {")
	g.w.push()
	if mainFn != nil {
		if len(mainFn.decl.Params) == 0 {
			g.w.line("%s();", mainFn.cName)
		} else {
			g.w.line("/* TODO: pass CLI arguments to main */")
			g.w.line("%s();", mainFn.cName)
		}
		g.w.line("return 0;")
	} else {
		g.w.line("fprintf(stderr, \"no entry point defined\\n\");")
		g.w.line("return 1;")
	}
	g.w.pop()
	g.w.line("}")
}

func (g *generator) emitBlock(block *ast.Block, tailVar, tailHelper string) {
	g.w.line("{")
	g.w.push()
	g.scopePush()
	if block != nil {
		for i, stmt := range block.Statements {
			isLast := i+1 == len(block.Statements)
			stmtTailVar, stmtTailHelper := "", ""
			if tailVar != "" && isLast {
				stmtTailVar, stmtTailHelper = tailVar, tailHelper
			}
			g.emitStatement(stmt, stmtTailVar, stmtTailHelper)
		}
	}
	g.scopePop()
	g.w.pop()
	g.w.line("}")
}

func (g *generator) emitStatement(node ast.Node, tailVar, tailHelper string) {
	if g.hadError || node == nil {
		return
	}
	switch v := node.(type) {
	case *ast.VarDecl:
		g.emitVarDecl(v)
	case *ast.Assign:
		g.emitAssignment(v)
	case *ast.If:
		g.emitIf(v, tailVar, tailHelper)
	case *ast.Return:
		g.emitReturn(v)
	case *ast.ExprStmt:
		g.emitExprStmt(v, tailVar, tailHelper)
	case *ast.For:
		g.fail(v.Token, "for-in loops are not supported yet")
	default:
		g.fail(node.Tok(), "unsupported statement kind in codegen")
	}
}

func (g *generator) emitVarDecl(decl *ast.VarDecl) {
	g.w.line("%s %s = {0};", g.cType(decl.TypeName), decl.Name)
	g.scopeAdd(decl.Name, decl.TypeName, decl.IsMutable)
	g.emitAssignmentCall(decl.Name, decl.TypeName, decl.Initializer)
}

func (g *generator) emitAssignment(assign *ast.Assign) {
	binding, ok := g.scopeLookup(assign.Target)
	if !ok {
		g.fail(assign.Token, "assignment to unknown symbol")
		return
	}
	g.emitAssignmentCall(assign.Target, binding.typeName, assign.Value)
}

func (g *generator) emitIf(stmt *ast.If, tailVar, tailHelper string) {
	g.w.beginLine()
	g.w.printf("if (")
	g.emitExpression(stmt.Condition)
	g.w.printf(") ")
	g.w.endLine()
	g.emitBlock(stmt.Then, tailVar, tailHelper)
	if stmt.Else != nil {
		g.w.line("else")
		g.emitBlock(stmt.Else, tailVar, tailHelper)
	}
}

func (g *generator) emitReturn(stmt *ast.Return) {
	g.w.beginLine()
	g.w.printf("return")
	if stmt.Value != nil {
		g.w.printf(" ")
		g.emitExpression(stmt.Value)
	}
	g.w.printf(";")
	g.w.endLine()
}

func (g *generator) emitExprStmt(stmt *ast.ExprStmt, tailVar, tailHelper string) {
	g.w.beginLine()
	if tailVar != "" && tailHelper != "" && stmt.Expression != nil {
		g.w.printf("%s(&%s, ", tailHelper, tailVar)
		g.emitExpression(stmt.Expression)
		g.w.printf(");")
	} else {
		if stmt.Expression != nil {
			g.emitExpression(stmt.Expression)
		}
		g.w.printf(";")
	}
	g.w.endLine()
}

func (g *generator) emitExpression(node ast.Node) {
	if node == nil {
		g.w.printf("NULL")
		return
	}
	switch v := node.(type) {
	case *ast.Literal:
		g.emitLiteral(v)
	case *ast.Identifier:
		g.emitIdentifier(v)
	case *ast.Call:
		g.emitCall(v)
	case *ast.Binary:
		g.emitBinary(v)
	default:
		g.fail(node.Tok(), "unsupported expression kind")
		g.w.printf("/* unsupported expr */")
	}
}

func (g *generator) emitLiteral(lit *ast.Literal) {
	switch lit.LiteralKind {
	case ast.LiteralInt, ast.LiteralFloat:
		text := lit.Text
		if text == "" {
			text = "0"
		}
		g.w.printf("%s", text)
	case ast.LiteralBool:
		if lit.BoolValue {
			g.w.printf("true")
		} else {
			g.w.printf("false")
		}
	case ast.LiteralString:
		g.emitStringLiteral(lit.Text)
	case ast.LiteralNull:
		g.w.printf("NULL")
	}
}

func (g *generator) emitIdentifier(ident *ast.Identifier) {
	if ident.Name == "log" {
		g.w.printf("lz_runtime_log")
		return
	}
	if _, ok := g.scopeLookup(ident.Name); ok {
		g.w.printf("%s", ident.Name)
		return
	}
	if fn := g.findFunction(ident.Name); fn != nil {
		g.w.printf("%s", fn.cName)
		return
	}
	g.w.printf("%s", ident.Name)
}

func (g *generator) emitCall(call *ast.Call) {
	g.emitExpression(call.Callee)
	g.w.printf("(")
	for i, arg := range call.Arguments {
		if i > 0 {
			g.w.printf(", ")
		}
		g.emitExpression(arg)
	}
	g.w.printf(")")
}

// binaryOpText maps a binary operator's token kind to its C operator text.
// Every operator lazylang supports is also valid C syntax, so the token
// kind's own string value is the operator text; the table only exists to
// keep emission explicit about which operators are recognized.
func binaryOpText(op lexer.TokenKind) string {
	switch op {
	case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH,
		lexer.EQ, lexer.NEQ, lexer.LT, lexer.LE, lexer.GT, lexer.GE:
		return string(op)
	default:
		return "/*?*/"
	}
}

func (g *generator) emitBinary(binary *ast.Binary) {
	g.w.printf("(")
	g.emitExpression(binary.Left)
	g.w.printf(" %s ", binaryOpText(binary.Op))
	g.emitExpression(binary.Right)
	g.w.printf(")")
}

func (g *generator) emitStringLiteral(text string) {
	g.w.printf("lz_string_from_literal(\"")
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch ch {
		case '\\':
			g.w.printf(`\\`)
		case '"':
			g.w.printf(`\"`)
		case '\n':
			g.w.printf(`\n`)
		case '\r':
			g.w.printf(`\r`)
		case '\t':
			g.w.printf(`\t`)
		default:
			if ch >= 0x20 && ch < 0x7f {
				g.w.buf.WriteByte(ch)
			} else {
				g.w.printf("\\x%02X", ch)
			}
		}
	}
	g.w.printf("\")")
}

func (g *generator) emitAssignmentCall(target, typeName string, value ast.Node) {
	g.w.beginLine()
	g.w.printf("%s(&%s, ", g.assignHelper(typeName), target)
	g.emitExpression(value)
	g.w.printf(");")
	g.w.endLine()
}

func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// runExternalCompiler builds the generated translation unit together with
// the runtime sources, preferring clang and falling back to cc.
func runExternalCompiler(cPath, binaryPath string) error {
	compiler := ""
	switch {
	case commandExists("clang"):
		compiler = "clang"
	case commandExists("cc"):
		compiler = "cc"
	default:
		return fmt.Errorf("no suitable C compiler found (missing clang and cc)")
	}

	cmd := exec.Command(compiler, "-std=c11", "-Wall", "-Wextra",
		cPath, filepath.Join(runtimeDir, "runtime.c"), "-o", binaryPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed while building '%s': %w", compiler, binaryPath, err)
	}
	return nil
}

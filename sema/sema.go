/*
File    : lazylang/sema/sema.go
*/

// Package sema walks a parsed Program and enforces scoping, mutability,
// type-family restrictions, and the maybe/result flow-mixing rule. It never
// mutates the tree it walks; its only externally visible effect is the
// diagnostic it returns on the first rule violation.
package sema

import (
	"github.com/chmenegatti/lazylang/ast"
	"github.com/chmenegatti/lazylang/diag"
	"github.com/chmenegatti/lazylang/lexer"
)

// flowMode classifies a function by whether its return type, parameter
// types, or local declarations involve "maybe", "result", or neither.
// Mixing both inside one function is fatal.
type flowMode int

const (
	flowNone flowMode = iota
	flowMaybe
	flowResult
)

// functionSymbol is what the pre-registration sweep records for every
// top-level function, so that a body may call a function declared later in
// the source.
type functionSymbol struct {
	Name       string
	ReturnType string
}

// context carries the state threaded through one CheckProgram call: the
// function table built by the pre-pass, the current scope, the current
// function's flow mode, and whether the analyzer is inside a function body
// (return is only legal there).
type context struct {
	functions   map[string]functionSymbol
	scope       *scope
	flow        flowMode
	inFunction  bool
	currentName string
}

// CheckProgram runs the two-sweep semantic analysis pass: first every
// function's name and return type are registered (so forward references
// resolve), then every declaration is fully checked. The first violation
// aborts with a Semantic diagnostic; there is no error list.
func CheckProgram(prog *ast.Program) error {
	ctx := &context{functions: make(map[string]functionSymbol)}
	registerBuiltins(ctx)

	for _, decl := range prog.Declarations {
		fn, ok := decl.(*ast.FunctionDecl)
		if !ok {
			continue
		}
		if _, exists := ctx.functions[fn.Name]; exists {
			return semaErr(fn.Token, "function already declared")
		}
		ctx.functions[fn.Name] = functionSymbol{Name: fn.Name, ReturnType: fn.ReturnType}
	}

	for _, decl := range prog.Declarations {
		switch v := decl.(type) {
		case *ast.FunctionDecl:
			if err := ctx.checkFunction(v); err != nil {
				return err
			}
		case *ast.StructDecl:
			if err := ctx.checkStruct(v); err != nil {
				return err
			}
		}
	}
	return nil
}

// registerBuiltins pre-registers the one built-in callable the language
// defines: log, which returns null and is otherwise handled specially by
// the code generator (it always emits lz_runtime_log).
func registerBuiltins(ctx *context) {
	ctx.functions["log"] = functionSymbol{Name: "log", ReturnType: "null"}
}

// semaErr builds a Semantic-phase diagnostic anchored at tok.
func semaErr(tok lexer.Token, format string, args ...any) error {
	return diag.New(diag.Semantic, tok.Line, tok.Column, format, args...)
}

package sema

import (
	"github.com/chmenegatti/lazylang/ast"
	"github.com/chmenegatti/lazylang/lexer"
)

// checkTypeAllowed rejects concurrency types wherever a type name appears
// and folds the type into the current function's flow mode. tok anchors the
// diagnostic to the declaration that introduced the type.
func (c *context) checkTypeAllowed(typeName string, tok lexer.Token) error {
	kind := classifyType(typeName)
	if kind == typeConcurrency {
		return semaErr(tok, "concurrency types are not supported")
	}
	return c.noteFlow(kind, tok)
}

// noteFlow updates the current function's flow mode for a maybe or result
// type usage, rejecting the function the moment both modes appear together.
func (c *context) noteFlow(kind typeKind, tok lexer.Token) error {
	switch kind {
	case typeMaybe:
		if c.flow == flowResult {
			return semaErr(tok, "cannot mix maybe and result in the same function")
		}
		c.flow = flowMaybe
	case typeResult:
		if c.flow == flowMaybe {
			return semaErr(tok, "cannot mix maybe and result in the same function")
		}
		c.flow = flowResult
	}
	return nil
}

// checkFunction analyzes one top-level function: its return type, its
// parameters (registered as immutable bindings, matching how the code
// generator treats them), and its body, all inside one scope that is never
// reopened for the top-level block itself.
func (c *context) checkFunction(fn *ast.FunctionDecl) error {
	c.scope = newScope(nil)
	c.flow = flowNone
	c.inFunction = true
	c.currentName = fn.Name
	defer func() {
		c.inFunction = false
		c.currentName = ""
	}()

	if err := c.checkTypeAllowed(fn.ReturnType, fn.Token); err != nil {
		return err
	}
	if fn.Name == "main" && classifyType(fn.ReturnType) == typeResult {
		return semaErr(fn.Token, "main must not return a result type")
	}

	for _, param := range fn.Params {
		if err := c.checkTypeAllowed(param.TypeName, param.Token); err != nil {
			return err
		}
		if !c.scope.declare(varSymbol{Name: param.Name, TypeName: param.TypeName, IsMutable: false, Token: param.Token}) {
			return semaErr(param.Token, "symbol already declared in this scope")
		}
	}

	for _, stmt := range fn.Body.Statements {
		if err := c.checkStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// checkStruct enforces that every field name is unique and every field type
// is a bare primitive — maybe, result, struct, and self-referential field
// types are all rejected by the same rule (anything non-primitive).
func (c *context) checkStruct(st *ast.StructDecl) error {
	seen := make(map[string]bool)
	for _, field := range st.Fields {
		if seen[field.Name] {
			return semaErr(field.Token, "duplicate field name in struct")
		}
		seen[field.Name] = true
		if classifyType(field.TypeName) != typePrimitive {
			return semaErr(field.Token, "struct field type must be primitive")
		}
	}
	return nil
}

func (c *context) checkStatement(stmt ast.Node) error {
	switch v := stmt.(type) {
	case *ast.VarDecl:
		return c.checkVarDecl(v)
	case *ast.Assign:
		return c.checkAssign(v)
	case *ast.If:
		return c.checkIf(v)
	case *ast.For:
		return semaErr(v.Token, "not yet supported for this type")
	case *ast.Return:
		return c.checkReturn(v)
	case *ast.ExprStmt:
		return c.checkExprStmt(v)
	}
	return nil
}

func (c *context) checkVarDecl(v *ast.VarDecl) error {
	if err := c.checkTypeAllowed(v.TypeName, v.Token); err != nil {
		return err
	}
	if v.Initializer != nil {
		if err := c.checkExpression(v.Initializer); err != nil {
			return err
		}
	}
	sym := varSymbol{Name: v.Name, TypeName: v.TypeName, IsMutable: v.IsMutable, Token: v.Token}
	if !c.scope.declare(sym) {
		return semaErr(v.Token, "symbol already declared in this scope")
	}
	return nil
}

func (c *context) checkAssign(v *ast.Assign) error {
	sym, ok := c.scope.lookup(v.Target)
	if !ok {
		return semaErr(v.Token, "assignment to undeclared variable")
	}
	if !sym.IsMutable {
		return semaErr(v.Token, "cannot assign to immutable variable")
	}
	return c.checkExpression(v.Value)
}

func (c *context) checkIf(v *ast.If) error {
	if err := c.checkExpression(v.Condition); err != nil {
		return err
	}
	if err := c.checkChildBlock(v.Then); err != nil {
		return err
	}
	if v.Else != nil {
		if err := c.checkChildBlock(v.Else); err != nil {
			return err
		}
	}
	return nil
}

// checkChildBlock checks a block's statements inside a fresh scope that is
// a child of the current one, restoring the parent scope afterward. This is
// how if-branches (and, were they supported, for bodies) get independent
// scoping from their enclosing function.
func (c *context) checkChildBlock(block *ast.Block) error {
	parent := c.scope
	c.scope = newScope(parent)
	defer func() { c.scope = parent }()
	for _, stmt := range block.Statements {
		if err := c.checkStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *context) checkReturn(v *ast.Return) error {
	if !c.inFunction {
		return semaErr(v.Token, "return outside of function")
	}
	if v.Value != nil {
		return c.checkExpression(v.Value)
	}
	return nil
}

func (c *context) checkExprStmt(v *ast.ExprStmt) error {
	if err := c.checkExpression(v.Expression); err != nil {
		return err
	}
	if call, ok := v.Expression.(*ast.Call); ok {
		if ident, ok := call.Callee.(*ast.Identifier); ok {
			if sym, known := c.functions[ident.Name]; known && classifyType(sym.ReturnType) == typeResult {
				return semaErr(v.Token, "result-returning function must not be ignored")
			}
		}
	}
	return nil
}

func (c *context) checkExpression(expr ast.Node) error {
	switch v := expr.(type) {
	case *ast.Literal:
		return nil
	case *ast.Identifier:
		return c.checkIdentifier(v)
	case *ast.Call:
		return c.checkCall(v)
	case *ast.Binary:
		if err := c.checkExpression(v.Left); err != nil {
			return err
		}
		return c.checkExpression(v.Right)
	}
	return nil
}

func (c *context) checkIdentifier(v *ast.Identifier) error {
	if isReservedIdentifier(v.Name) {
		return semaErr(v.Token, "cannot use reserved identifier %q", v.Name)
	}
	if _, ok := c.scope.lookup(v.Name); ok {
		return nil
	}
	if _, ok := c.functions[v.Name]; ok {
		return nil
	}
	return semaErr(v.Token, "undeclared identifier")
}

func (c *context) checkCall(v *ast.Call) error {
	if ident, ok := v.Callee.(*ast.Identifier); ok {
		if isReservedIdentifier(ident.Name) {
			return semaErr(ident.Token, "cannot use reserved identifier %q", ident.Name)
		}
		if ident.Name == "log" {
			if len(v.Arguments) != 1 {
				return semaErr(v.Token, "log call must have exactly one argument")
			}
		} else {
			_, isFn := c.functions[ident.Name]
			_, isVar := c.scope.lookup(ident.Name)
			if !isFn && !isVar {
				return semaErr(v.Token, "call to undefined function")
			}
		}
	} else if err := c.checkExpression(v.Callee); err != nil {
		return err
	}
	for _, arg := range v.Arguments {
		if err := c.checkExpression(arg); err != nil {
			return err
		}
	}
	return nil
}

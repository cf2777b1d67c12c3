package codegen

import (
	"strings"

	"github.com/chmenegatti/lazylang/ast"
)

// structInfo is what the pre-pass records for one user struct: its
// declaration, its C name, and the name of its generated assignment helper.
type structInfo struct {
	decl         *ast.StructDecl
	name         string
	assignHelper string
}

// functionInfo is what the pre-pass records for one user function: its
// declaration and its mangled C name.
type functionInfo struct {
	decl  *ast.FunctionDecl
	name  string
	cName string
}

// varBinding is one scope entry the generator tracks while emitting a
// function body, mirroring the binding shape the analyzer itself declares.
type varBinding struct {
	name      string
	typeName  string
	isMutable bool
}

// genScope is one level of the generator's own variable-scope stack, kept
// independently from the analyzer's because codegen runs as a second,
// unrelated walk over the same tree.
type genScope struct {
	vars map[string]varBinding
}

func newGenScope() *genScope {
	return &genScope{vars: make(map[string]varBinding)}
}

// collectMetadata walks top-level declarations once, registering every
// struct and function before any emission begins, so forward references
// resolve the same way they do during semantic analysis.
func (g *generator) collectMetadata() {
	for _, decl := range g.program.Declarations {
		switch v := decl.(type) {
		case *ast.StructDecl:
			g.registerStruct(v)
		case *ast.FunctionDecl:
			g.registerFunction(v)
		}
	}
}

func (g *generator) registerStruct(decl *ast.StructDecl) {
	g.structs = append(g.structs, &structInfo{
		decl:         decl,
		name:         decl.Name,
		assignHelper: "lz_assign_struct_" + decl.Name,
	})
}

func (g *generator) registerFunction(decl *ast.FunctionDecl) {
	g.functions = append(g.functions, &functionInfo{
		decl:  decl,
		name:  decl.Name,
		cName: "lz_fn_" + decl.Name,
	})
}

func (g *generator) findFunction(name string) *functionInfo {
	for _, fn := range g.functions {
		if fn.name == name {
			return fn
		}
	}
	return nil
}

func (g *generator) findStruct(name string) *structInfo {
	for _, st := range g.structs {
		if st.name == name {
			return st
		}
	}
	return nil
}

func (g *generator) scopePush() {
	g.scopes = append(g.scopes, newGenScope())
}

func (g *generator) scopePop() {
	if len(g.scopes) == 0 {
		return
	}
	g.scopes = g.scopes[:len(g.scopes)-1]
}

func (g *generator) scopeAdd(name, typeName string, isMutable bool) {
	if len(g.scopes) == 0 {
		g.scopePush()
	}
	top := g.scopes[len(g.scopes)-1]
	top.vars[name] = varBinding{name: name, typeName: typeName, isMutable: isMutable}
}

func (g *generator) scopeLookup(name string) (varBinding, bool) {
	for i := len(g.scopes) - 1; i >= 0; i-- {
		if b, ok := g.scopes[i].vars[name]; ok {
			return b, true
		}
	}
	return varBinding{}, false
}

// cType maps a lazylang type-name string to the C type it is stored as.
func (g *generator) cType(typeName string) string {
	switch typeName {
	case "int":
		return "int64_t"
	case "float":
		return "double"
	case "bool":
		return "bool"
	case "string":
		return "struct lz_string *"
	case "null":
		return "void *"
	}
	if isResultType(typeName) {
		return "lz_result"
	}
	if isMaybeType(typeName) {
		return "lz_maybe"
	}
	if st := g.findStruct(typeName); st != nil {
		return st.name
	}
	return typeName
}

// cReturnType is cType except that "null" maps to "void" in return position.
func (g *generator) cReturnType(typeName string) string {
	if typeName == "" || typeName == "null" {
		return "void"
	}
	return g.cType(typeName)
}

// assignHelper maps a lazylang type-name string to the lz_assign_* funnel
// that every initialization and assignment statement is routed through.
func (g *generator) assignHelper(typeName string) string {
	switch typeName {
	case "int":
		return "lz_assign_int64"
	case "float":
		return "lz_assign_double"
	case "bool":
		return "lz_assign_bool"
	case "string":
		return "lz_assign_string"
	}
	if isResultType(typeName) {
		return "lz_assign_result"
	}
	if isMaybeType(typeName) {
		return "lz_assign_maybe"
	}
	if st := g.findStruct(typeName); st != nil {
		return st.assignHelper
	}
	return "lz_assign_ptr"
}

// isResultType and isMaybeType apply the same prefix rule as the analyzer:
// the prefix only counts when followed by end-of-string or '['.
func isResultType(typeName string) bool {
	return hasTypePrefix(typeName, "result")
}

func isMaybeType(typeName string) bool {
	return hasTypePrefix(typeName, "maybe")
}

func hasTypePrefix(typeName, prefix string) bool {
	rest, ok := strings.CutPrefix(typeName, prefix)
	return ok && (rest == "" || rest[0] == '[')
}

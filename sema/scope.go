package sema

import "github.com/chmenegatti/lazylang/lexer"

// varSymbol is what the analyzer tracks for one bound name: its declared
// type (as a raw string, same as everywhere else in this compiler), whether
// it may be reassigned, and the token that introduced it.
type varSymbol struct {
	Name      string
	TypeName  string
	IsMutable bool
	Token     lexer.Token
}

// scope is one level of the variable-scope stack. Function bodies open one
// scope shared with parameters; if-branches open independent child scopes.
// There is no map-of-maps closure capture here — unlike a tree-walking
// interpreter's scope chain, this scope only needs declare/lookup for
// diagnostics, never runtime value storage.
type scope struct {
	vars   map[string]varSymbol
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: make(map[string]varSymbol), parent: parent}
}

// declare adds name to this scope only. It returns false if name was already
// bound in this exact scope (redeclaration), matching the rule that
// redeclaration within a scope is fatal but shadowing an outer scope is not.
func (s *scope) declare(sym varSymbol) bool {
	if _, exists := s.vars[sym.Name]; exists {
		return false
	}
	s.vars[sym.Name] = sym
	return true
}

// lookup searches this scope and every enclosing scope.
func (s *scope) lookup(name string) (varSymbol, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.vars[name]; ok {
			return sym, true
		}
	}
	return varSymbol{}, false
}

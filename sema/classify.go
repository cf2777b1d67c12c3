package sema

import "strings"

// typeKind classifies a raw type-name string by prefix/exact match. There is
// no parsed type AST (see ast.Param/ast.Field): the analyzer and the code
// generator both interpret these strings the same way, independently.
type typeKind int

const (
	typePrimitive typeKind = iota
	typeMaybe
	typeResult
	typeConcurrency
	typeStructOrUnknown
)

// classifyType implements the exact prefix rule SPEC_FULL.md's component
// design spells out: a "maybe"/"result"/"future"/"chan" prefix only counts
// if the next character is either end-of-string or '[', so that "maybeFoo"
// is a struct name, not a maybe type.
func classifyType(name string) typeKind {
	switch name {
	case "int", "float", "bool", "string", "null":
		return typePrimitive
	}
	if startsWithBoundary(name, "maybe") {
		return typeMaybe
	}
	if startsWithBoundary(name, "result") {
		return typeResult
	}
	if startsWithBoundary(name, "future") || startsWithBoundary(name, "chan") {
		return typeConcurrency
	}
	return typeStructOrUnknown
}

func startsWithBoundary(name, prefix string) bool {
	if !strings.HasPrefix(name, prefix) {
		return false
	}
	rest := name[len(prefix):]
	return rest == "" || rest[0] == '['
}

// isReservedIdentifier reports whether name is one of the words reserved for
// future concurrency support. They are rejected at any expression position,
// independent of whether they resolve to anything.
func isReservedIdentifier(name string) bool {
	return name == "task" || name == "future" || name == "chan"
}

/*
File    : lazylang/ast/ast.go
*/

// Package ast defines the closed tree of node types the parser builds and the
// later phases walk read-only. Every node carries its own Kind discriminator
// and the Token that identifies it for diagnostics; there is no parent
// back-pointer and no shared ownership between nodes.
package ast

import "github.com/chmenegatti/lazylang/lexer"

// Kind discriminates the node variants. Sema, codegen, and the debug printer
// dispatch with Go type switches over the concrete node types rather than a
// visitor, the counterpart of the reference compiler's switch(node->kind);
// Kind reports the same discriminator as a value.
type Kind int

const (
	KindProgram Kind = iota
	KindImport
	KindFunctionDecl
	KindStructDecl
	KindBlock
	KindVarDecl
	KindAssign
	KindIf
	KindFor
	KindReturn
	KindExprStmt
	KindLiteral
	KindIdentifier
	KindCall
	KindBinary
)

// Node is implemented by every AST variant. Tok returns the token that
// anchors diagnostics to this node's source position.
type Node interface {
	Kind() Kind
	Tok() lexer.Token
}

// LiteralKind distinguishes the five literal shapes the language has.
type LiteralKind int

const (
	LiteralInt LiteralKind = iota
	LiteralFloat
	LiteralString
	LiteralBool
	LiteralNull
)

// Program is the root node: an ordered list of imports followed by an
// ordered list of top-level declarations. The two lists are disjoint — an
// Import never appears in Declarations and vice versa.
type Program struct {
	Token        lexer.Token
	Imports      []*Import
	Declarations []Node // *FunctionDecl or *StructDecl
}

func (n *Program) Kind() Kind        { return KindProgram }
func (n *Program) Tok() lexer.Token  { return n.Token }

// Import is one `import a.b.c` statement, represented as its dotted path
// segments in source order.
type Import struct {
	Token    lexer.Token
	Segments []string
}

func (n *Import) Kind() Kind       { return KindImport }
func (n *Import) Tok() lexer.Token { return n.Token }

// Param is one formal parameter of a FunctionDecl: a name, its type-name
// string (preserved verbatim, not parsed into a type AST — see
// SPEC_FULL.md), and the token that introduced it, for diagnostics.
type Param struct {
	Name     string
	TypeName string
	Token    lexer.Token
}

// FunctionDecl is a top-level function declaration. The two-parenthesis
// syntax that produced Params and ReturnType keeps the type list and the
// name list as two independently-parsed sequences the parser reconciles by
// length before building this node.
type FunctionDecl struct {
	Token      lexer.Token
	IsPublic   bool
	Name       string
	Params     []Param
	ReturnType string
	Body       *Block
}

func (n *FunctionDecl) Kind() Kind       { return KindFunctionDecl }
func (n *FunctionDecl) Tok() lexer.Token { return n.Token }

// Field is one struct member: a name, its type-name string, and the
// defining token.
type Field struct {
	Name     string
	TypeName string
	Token    lexer.Token
}

// StructDecl is a top-level struct declaration with an ordered field list.
type StructDecl struct {
	Token    lexer.Token
	IsPublic bool
	Name     string
	Fields   []Field
}

func (n *StructDecl) Kind() Kind       { return KindStructDecl }
func (n *StructDecl) Tok() lexer.Token { return n.Token }

// Block is an ordered list of statements delimited by INDENT/DEDENT in
// source.
type Block struct {
	Token      lexer.Token
	Statements []Node
}

func (n *Block) Kind() Kind       { return KindBlock }
func (n *Block) Tok() lexer.Token { return n.Token }

// VarDecl declares a new binding. Initializer is nil only when the grammar
// permits a bare declaration (it currently never does — VarDecl always
// carries an initializer — but the field stays optional to mirror the
// reference AST shape).
type VarDecl struct {
	Token       lexer.Token
	IsMutable   bool
	Name        string
	TypeName    string
	Initializer Node
}

func (n *VarDecl) Kind() Kind       { return KindVarDecl }
func (n *VarDecl) Tok() lexer.Token { return n.Token }

// Assign rebinds an existing variable: `target = value`.
type Assign struct {
	Token  lexer.Token
	Target string
	Value  Node
}

func (n *Assign) Kind() Kind       { return KindAssign }
func (n *Assign) Tok() lexer.Token { return n.Token }

// If is a conditional; Else is nil when the statement has no else-branch.
type If struct {
	Token     lexer.Token
	Condition Node
	Then      *Block
	Else      *Block
}

func (n *If) Kind() Kind       { return KindIf }
func (n *If) Tok() lexer.Token { return n.Token }

// For is `for IDENT in <expr> <block>`. It is always fully parsed but
// rejected by the semantic analyzer — see SPEC_FULL.md Open Questions: the
// AST node is kept for a future pass that will support it.
type For struct {
	Token    lexer.Token
	Iterator string
	Iterable Node
	Body     *Block
}

func (n *For) Kind() Kind       { return KindFor }
func (n *For) Tok() lexer.Token { return n.Token }

// Return is `return <expr>?`; Value is nil for a bare return.
type Return struct {
	Token lexer.Token
	Value Node
}

func (n *Return) Kind() Kind       { return KindReturn }
func (n *Return) Tok() lexer.Token { return n.Token }

// ExprStmt is an expression evaluated for its side effects and discarded.
type ExprStmt struct {
	Token      lexer.Token
	Expression Node
}

func (n *ExprStmt) Kind() Kind       { return KindExprStmt }
func (n *ExprStmt) Tok() lexer.Token { return n.Token }

// Literal is an int/float/string/bool/null constant. Text holds the raw
// source text for numeric and string literals; BoolValue is meaningful only
// when LiteralKind is LiteralBool.
type Literal struct {
	Token       lexer.Token
	LiteralKind LiteralKind
	Text        string
	BoolValue   bool
}

func (n *Literal) Kind() Kind       { return KindLiteral }
func (n *Literal) Tok() lexer.Token { return n.Token }

// Identifier is a bare name reference.
type Identifier struct {
	Token lexer.Token
	Name  string
}

func (n *Identifier) Kind() Kind       { return KindIdentifier }
func (n *Identifier) Tok() lexer.Token { return n.Token }

// Call is `callee(args...)`. Callee is itself an expression so that chained
// postfix calls (`f()()`) compose naturally.
type Call struct {
	Token     lexer.Token
	Callee    Node
	Arguments []Node
}

func (n *Call) Kind() Kind       { return KindCall }
func (n *Call) Tok() lexer.Token { return n.Token }

// Binary is a left-associative binary expression; Op is the operator
// token's kind.
type Binary struct {
	Token lexer.Token
	Op    lexer.TokenKind
	Left  Node
	Right Node
}

func (n *Binary) Kind() Kind       { return KindBinary }
func (n *Binary) Tok() lexer.Token { return n.Token }

package ast

import (
	"bytes"
	"fmt"
)

const printIndentSize = 2

// Printer renders a Program as an indented debug tree, one line per node,
// adapted from a visitor-based expression printer and rewritten as a type
// switch over the full declaration/statement tree (see DESIGN.md).
type Printer struct {
	indent int
	buf    bytes.Buffer
}

// Print renders prog to a string. It is intended for debugging a parsed or
// analyzed tree, not for any part of the compile pipeline itself.
func Print(prog *Program) string {
	p := &Printer{}
	p.visitProgram(prog)
	return p.buf.String()
}

func (p *Printer) line(format string, args ...any) {
	p.buf.WriteString(indentPad(p.indent))
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func indentPad(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

func (p *Printer) visitProgram(n *Program) {
	p.line("Program (%d import(s), %d declaration(s))", len(n.Imports), len(n.Declarations))
	p.indent += printIndentSize
	for _, imp := range n.Imports {
		p.visitImport(imp)
	}
	for _, decl := range n.Declarations {
		p.visitNode(decl)
	}
	p.indent -= printIndentSize
}

func (p *Printer) visitImport(n *Import) {
	p.line("Import %v", n.Segments)
}

func (p *Printer) visitNode(n Node) {
	switch v := n.(type) {
	case *FunctionDecl:
		p.visitFunctionDecl(v)
	case *StructDecl:
		p.visitStructDecl(v)
	case *Block:
		p.visitBlock(v)
	case *VarDecl:
		p.visitVarDecl(v)
	case *Assign:
		p.visitAssign(v)
	case *If:
		p.visitIf(v)
	case *For:
		p.visitFor(v)
	case *Return:
		p.visitReturn(v)
	case *ExprStmt:
		p.visitExprStmt(v)
	case *Literal:
		p.visitLiteral(v)
	case *Identifier:
		p.visitIdentifier(v)
	case *Call:
		p.visitCall(v)
	case *Binary:
		p.visitBinary(v)
	default:
		p.line("<unknown node>")
	}
}

func (p *Printer) visitFunctionDecl(n *FunctionDecl) {
	p.line("FunctionDecl %s pub=%v -> %s", n.Name, n.IsPublic, n.ReturnType)
	p.indent += printIndentSize
	for _, param := range n.Params {
		p.line("Param %s: %s", param.Name, param.TypeName)
	}
	p.visitBlock(n.Body)
	p.indent -= printIndentSize
}

func (p *Printer) visitStructDecl(n *StructDecl) {
	p.line("StructDecl %s pub=%v", n.Name, n.IsPublic)
	p.indent += printIndentSize
	for _, field := range n.Fields {
		p.line("Field %s: %s", field.Name, field.TypeName)
	}
	p.indent -= printIndentSize
}

func (p *Printer) visitBlock(n *Block) {
	if n == nil {
		p.line("Block <nil>")
		return
	}
	p.line("Block (%d statement(s))", len(n.Statements))
	p.indent += printIndentSize
	for _, stmt := range n.Statements {
		p.visitNode(stmt)
	}
	p.indent -= printIndentSize
}

func (p *Printer) visitVarDecl(n *VarDecl) {
	p.line("VarDecl %s: %s mut=%v", n.Name, n.TypeName, n.IsMutable)
	p.indent += printIndentSize
	if n.Initializer != nil {
		p.visitNode(n.Initializer)
	}
	p.indent -= printIndentSize
}

func (p *Printer) visitAssign(n *Assign) {
	p.line("Assign %s", n.Target)
	p.indent += printIndentSize
	p.visitNode(n.Value)
	p.indent -= printIndentSize
}

func (p *Printer) visitIf(n *If) {
	p.line("If")
	p.indent += printIndentSize
	p.visitNode(n.Condition)
	p.visitBlock(n.Then)
	if n.Else != nil {
		p.visitBlock(n.Else)
	}
	p.indent -= printIndentSize
}

func (p *Printer) visitFor(n *For) {
	p.line("For %s in", n.Iterator)
	p.indent += printIndentSize
	p.visitNode(n.Iterable)
	p.visitBlock(n.Body)
	p.indent -= printIndentSize
}

func (p *Printer) visitReturn(n *Return) {
	p.line("Return")
	if n.Value != nil {
		p.indent += printIndentSize
		p.visitNode(n.Value)
		p.indent -= printIndentSize
	}
}

func (p *Printer) visitExprStmt(n *ExprStmt) {
	p.line("ExprStmt")
	p.indent += printIndentSize
	p.visitNode(n.Expression)
	p.indent -= printIndentSize
}

func (p *Printer) visitLiteral(n *Literal) {
	p.line("Literal kind=%d text=%q bool=%v", n.LiteralKind, n.Text, n.BoolValue)
}

func (p *Printer) visitIdentifier(n *Identifier) {
	p.line("Identifier %s", n.Name)
}

func (p *Printer) visitCall(n *Call) {
	p.line("Call (%d argument(s))", len(n.Arguments))
	p.indent += printIndentSize
	p.visitNode(n.Callee)
	for _, arg := range n.Arguments {
		p.visitNode(arg)
	}
	p.indent -= printIndentSize
}

func (p *Printer) visitBinary(n *Binary) {
	p.line("Binary %s", n.Op)
	p.indent += printIndentSize
	p.visitNode(n.Left)
	p.visitNode(n.Right)
	p.indent -= printIndentSize
}

package parser

import (
	"github.com/chmenegatti/lazylang/ast"
	"github.com/chmenegatti/lazylang/lexer"
)

// parseBlock parses `NEWLINE INDENT statement* DEDENT`.
func (p *Parser) parseBlock() (*ast.Block, error) {
	tok := p.current
	if _, err := p.consume(lexer.NEWLINE, "expected newline before block"); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.INDENT, "expected indented block"); err != nil {
		return nil, err
	}
	block := &ast.Block{Token: tok}
	for {
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
		if p.check(lexer.DEDENT) {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	if _, err := p.consume(lexer.DEDENT, "expected end of block"); err != nil {
		return nil, err
	}
	return block, nil
}

// parseStatement dispatches on the current (and, for IDENT, next) token.
func (p *Parser) parseStatement() (ast.Node, error) {
	switch p.current.Kind {
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.MUT:
		return p.parseVarDecl(true)
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.IDENT:
		switch p.next.Kind {
		case lexer.COLON:
			return p.parseVarDecl(false)
		case lexer.ASSIGN:
			return p.parseAssignStmt()
		}
	}
	return p.parseExprStmt()
}

func (p *Parser) parseIfStmt() (*ast.If, error) {
	tok := p.current
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node := &ast.If{Token: tok, Condition: cond, Then: then}
	if p.check(lexer.ELSE) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		elseBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		node.Else = elseBlock
	}
	return node, nil
}

// parseForStmt parses `for IDENT in <expr> <block>`. The node is fully
// built — it is sema's job, not the parser's, to reject it (see
// SPEC_FULL.md Open Questions).
func (p *Parser) parseForStmt() (*ast.For, error) {
	tok := p.current
	if err := p.advance(); err != nil {
		return nil, err
	}
	iterTok, err := p.consume(lexer.IDENT, "expected loop variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.IN, "expected 'in' in for statement"); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.For{Token: tok, Iterator: iterTok.Lexeme, Iterable: iterable, Body: body}, nil
}

// parseVarDecl parses `[mut] IDENT ':' <type> '=' <expr> NEWLINE`.
func (p *Parser) parseVarDecl(isMutable bool) (*ast.VarDecl, error) {
	if isMutable {
		if err := p.advance(); err != nil { // consume 'mut'
			return nil, err
		}
	}
	nameTok, err := p.consume(lexer.IDENT, "expected variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.COLON, "expected ':' after variable name"); err != nil {
		return nil, err
	}
	typeName, err := p.collectType(lexer.ASSIGN)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.ASSIGN, "expected '=' in variable declaration"); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.requireLineBreak(); err != nil {
		return nil, err
	}
	return &ast.VarDecl{Token: nameTok, IsMutable: isMutable, Name: nameTok.Lexeme, TypeName: typeName, Initializer: value}, nil
}

// parseAssignStmt parses `IDENT '=' <expr> NEWLINE`.
func (p *Parser) parseAssignStmt() (*ast.Assign, error) {
	nameTok, err := p.consume(lexer.IDENT, "expected assignment target")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.ASSIGN, "expected '=' in assignment"); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.requireLineBreak(); err != nil {
		return nil, err
	}
	return &ast.Assign{Token: nameTok, Target: nameTok.Lexeme, Value: value}, nil
}

func (p *Parser) parseReturnStmt() (*ast.Return, error) {
	tok := p.current
	if err := p.advance(); err != nil {
		return nil, err
	}
	node := &ast.Return{Token: tok}
	if !p.check(lexer.NEWLINE) && !p.check(lexer.DEDENT) && !p.check(lexer.EOF) {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.Value = value
	}
	if err := p.requireLineBreak(); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) parseExprStmt() (*ast.ExprStmt, error) {
	tok := p.current
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.requireLineBreak(); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Token: tok, Expression: expr}, nil
}

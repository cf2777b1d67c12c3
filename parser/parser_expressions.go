package parser

import (
	"github.com/chmenegatti/lazylang/ast"
	"github.com/chmenegatti/lazylang/lexer"
)

// parseExpression is the grammar's entry point; precedence climbs from
// equality (lowest) to primary (highest) through the chain of methods below.
// All binary operators are left-associative.
func (p *Parser) parseExpression() (ast.Node, error) {
	return p.parseEquality()
}

func (p *Parser) parseEquality() (ast.Node, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.EQ) || p.check(lexer.NEQ) {
		op := p.current
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Token: op, Op: op.Kind, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseComparison() (ast.Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.LT) || p.check(lexer.LE) || p.check(lexer.GT) || p.check(lexer.GE) {
		op := p.current
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Token: op, Op: op.Kind, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseTerm() (ast.Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.PLUS) || p.check(lexer.MINUS) {
		op := p.current
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Token: op, Op: op.Kind, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseFactor() (ast.Node, error) {
	left, err := p.parseCall()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.STAR) || p.check(lexer.SLASH) {
		op := p.current
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseCall()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Token: op, Op: op.Kind, Left: left, Right: right}
	}
	return left, nil
}

// parseCall handles any number of postfix `(args?)` pairs chaining onto the
// preceding expression, so `f()()` parses as Call{Call{f}}.
func (p *Parser) parseCall() (ast.Node, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.LPAREN) {
		expr, err = p.finishCall(expr)
		if err != nil {
			return nil, err
		}
	}
	return expr, nil
}

func (p *Parser) finishCall(callee ast.Node) (ast.Node, error) {
	tok := p.current
	if _, err := p.consume(lexer.LPAREN, "expected '('"); err != nil {
		return nil, err
	}
	var args []ast.Node
	if !p.check(lexer.RPAREN) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.check(lexer.COMMA) {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}
	if _, err := p.consume(lexer.RPAREN, "expected ')' to close call"); err != nil {
		return nil, err
	}
	return &ast.Call{Token: tok, Callee: callee, Arguments: args}, nil
}

// parsePrimary parses an integer, float, string, true/false, null,
// identifier, or a parenthesized expression.
func (p *Parser) parsePrimary() (ast.Node, error) {
	tok := p.current
	switch tok.Kind {
	case lexer.INT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Token: tok, LiteralKind: ast.LiteralInt, Text: tok.Lexeme}, nil
	case lexer.FLOAT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Token: tok, LiteralKind: ast.LiteralFloat, Text: tok.Lexeme}, nil
	case lexer.STRING:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Token: tok, LiteralKind: ast.LiteralString, Text: tok.Lexeme}, nil
	case lexer.TRUE:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Token: tok, LiteralKind: ast.LiteralBool, BoolValue: true}, nil
	case lexer.FALSE:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Token: tok, LiteralKind: ast.LiteralBool, BoolValue: false}, nil
	case lexer.NULL:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Literal{Token: tok, LiteralKind: ast.LiteralNull}, nil
	case lexer.IDENT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Identifier{Token: tok, Name: tok.Lexeme}, nil
	case lexer.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RPAREN, "expected ')' to close expression"); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, p.errorf("unexpected token in expression")
}

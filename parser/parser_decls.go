package parser

import (
	"github.com/chmenegatti/lazylang/ast"
	"github.com/chmenegatti/lazylang/lexer"
)

// parseStructDecl parses `pub? struct IDENT NEWLINE INDENT (IDENT ':' <type> NEWLINE)+ DEDENT`.
func (p *Parser) parseStructDecl(isPublic bool) (*ast.StructDecl, error) {
	tok := p.current
	if _, err := p.consume(lexer.STRUCT, "expected 'struct'"); err != nil {
		return nil, err
	}
	nameTok, err := p.consume(lexer.IDENT, "expected struct name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.NEWLINE, "expected newline after struct name"); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.INDENT, "expected indented struct body"); err != nil {
		return nil, err
	}

	decl := &ast.StructDecl{Token: tok, IsPublic: isPublic, Name: nameTok.Lexeme}
	for !p.check(lexer.DEDENT) {
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
		if p.check(lexer.DEDENT) {
			break
		}
		fieldTok, err := p.consume(lexer.IDENT, "expected field name")
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.COLON, "expected ':' after field name"); err != nil {
			return nil, err
		}
		typeName, err := p.collectType(lexer.NEWLINE)
		if err != nil {
			return nil, err
		}
		if err := p.requireLineBreak(); err != nil {
			return nil, err
		}
		decl.Fields = append(decl.Fields, ast.Field{Name: fieldTok.Lexeme, TypeName: typeName, Token: fieldTok})
	}
	if _, err := p.consume(lexer.DEDENT, "expected end of struct body"); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseFunctionDecl parses the deliberately unusual two-parenthesis function
// syntax:
//
//	[pub] NAME ':' '(' <type> (',' <type>)* ')' '->' <ret-type> '=' '(' IDENT (',' IDENT)* ')' <block>
//
// The type list and the name list are parsed independently and then checked
// to have equal length; a mismatch is fatal.
func (p *Parser) parseFunctionDecl(isPublic bool) (*ast.FunctionDecl, error) {
	nameTok, err := p.consume(lexer.IDENT, "expected function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.COLON, "expected ':' after function name"); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LPAREN, "expected '(' to start parameter types"); err != nil {
		return nil, err
	}

	var types []string
	if !p.check(lexer.RPAREN) {
		for {
			typeName, err := p.collectType(lexer.RPAREN)
			if err != nil {
				return nil, err
			}
			types = append(types, typeName)
			if p.check(lexer.COMMA) {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}
	if _, err := p.consume(lexer.RPAREN, "expected ')' to close parameter types"); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.ARROW, "expected '->' before return type"); err != nil {
		return nil, err
	}
	returnType, err := p.collectType(lexer.ASSIGN)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.ASSIGN, "expected '=' before parameter names"); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LPAREN, "expected '(' to start parameter names"); err != nil {
		return nil, err
	}

	var names []lexer.Token
	if !p.check(lexer.RPAREN) {
		for {
			n, err := p.consume(lexer.IDENT, "expected parameter name")
			if err != nil {
				return nil, err
			}
			names = append(names, n)
			if p.check(lexer.COMMA) {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}
	if _, err := p.consume(lexer.RPAREN, "expected ')' to close parameter names"); err != nil {
		return nil, err
	}

	if len(types) != len(names) {
		return nil, p.errorf("mismatched parameter types and names")
	}
	params := make([]ast.Param, len(names))
	for i := range names {
		if types[i] == "" {
			return nil, p.errorf("missing parameter type")
		}
		params[i] = ast.Param{Name: names[i].Lexeme, TypeName: types[i], Token: names[i]}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDecl{
		Token:      nameTok,
		IsPublic:   isPublic,
		Name:       nameTok.Lexeme,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
	}, nil
}

/*
File    : lazylang/parser/parser.go
*/

// Package parser implements a recursive-descent parser that turns a lazylang
// token stream into an *ast.Program.
//
// Unlike a Pratt parser that collects a list of errors and keeps going, this
// parser aborts on the very first unexpected token: there is no panic
// recovery and no synchronizing to the next statement. Every parse method
// returns (value, error) and the caller is expected to give up the moment an
// error comes back, matching the single-error-fatal policy the rest of the
// pipeline follows.
package parser

import (
	"github.com/chmenegatti/lazylang/ast"
	"github.com/chmenegatti/lazylang/diag"
	"github.com/chmenegatti/lazylang/lexer"
)

// Parser holds two tokens of lookahead over a Lexer.
type Parser struct {
	lex     *lexer.Lexer
	current lexer.Token
	next    lexer.Token
}

// NewParser creates a Parser over src and primes its two-token lookahead.
func NewParser(src string) (*Parser, error) {
	p := &Parser{lex: lexer.NewLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// advance discards current, promotes next into it, and pulls a fresh token
// into next.
func (p *Parser) advance() error {
	p.current = p.next
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.next = tok
	return nil
}

// check reports whether the current token has the given kind.
func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.current.Kind == kind
}

// match consumes and returns true if the current token has the given kind;
// otherwise it leaves the parser state untouched and returns false.
func (p *Parser) match(kind lexer.TokenKind) (bool, error) {
	if !p.check(kind) {
		return false, nil
	}
	if err := p.advance(); err != nil {
		return false, err
	}
	return true, nil
}

// consume requires the current token to have the given kind, advances past
// it, and otherwise fails with message.
func (p *Parser) consume(kind lexer.TokenKind, message string) (lexer.Token, error) {
	if !p.check(kind) {
		return lexer.Token{}, p.errorf("%s", message)
	}
	tok := p.current
	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

// errorf builds a Parse-phase diagnostic anchored at the current token.
func (p *Parser) errorf(format string, args ...any) error {
	return diag.New(diag.Parse, p.current.Line, p.current.Column, format, args...)
}

// skipNewlines consumes zero or more consecutive NEWLINE tokens. Blank lines
// between statements are otherwise meaningless to the grammar.
func (p *Parser) skipNewlines() error {
	for p.check(lexer.NEWLINE) {
		if err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}

// requireLineBreak enforces that a statement ends here: an explicit NEWLINE
// is consumed, but DEDENT or EOF is accepted silently since they already
// imply the statement is over (the block or program is ending right here).
func (p *Parser) requireLineBreak() error {
	if p.check(lexer.NEWLINE) {
		return p.advance()
	}
	if p.check(lexer.DEDENT) || p.check(lexer.EOF) {
		return nil
	}
	return p.errorf("expected end of line")
}

// ParseProgram parses an entire source file into a Program. Imports must
// appear before any other top-level declaration.
func ParseProgram(src string) (*ast.Program, error) {
	p, err := NewParser(src)
	if err != nil {
		return nil, err
	}
	return p.parseProgram()
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{Token: p.current}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}

	seenDeclaration := false
	for !p.check(lexer.EOF) {
		if p.check(lexer.IMPORT) {
			if seenDeclaration {
				return nil, p.errorf("imports must appear before declarations")
			}
			imp, err := p.parseImport()
			if err != nil {
				return nil, err
			}
			prog.Imports = append(prog.Imports, imp)
		} else {
			decl, err := p.parseTopLevelDecl()
			if err != nil {
				return nil, err
			}
			seenDeclaration = true
			prog.Declarations = append(prog.Declarations, decl)
		}
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
	}
	return prog, nil
}

func (p *Parser) parseImport() (*ast.Import, error) {
	tok := p.current
	if _, err := p.consume(lexer.IMPORT, "expected 'import'"); err != nil {
		return nil, err
	}
	first, err := p.consume(lexer.IDENT, "expected identifier in import path")
	if err != nil {
		return nil, err
	}
	segments := []string{first.Lexeme}
	for p.check(lexer.DOT) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		seg, err := p.consume(lexer.IDENT, "expected identifier after '.' in import path")
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg.Lexeme)
	}
	if err := p.requireLineBreak(); err != nil {
		return nil, err
	}
	return &ast.Import{Token: tok, Segments: segments}, nil
}

func (p *Parser) parseTopLevelDecl() (ast.Node, error) {
	isPublic, err := p.match(lexer.PUB)
	if err != nil {
		return nil, err
	}
	if p.check(lexer.STRUCT) {
		return p.parseStructDecl(isPublic)
	}
	return p.parseFunctionDecl(isPublic)
}

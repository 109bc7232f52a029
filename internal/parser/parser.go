// Package parser implements the Lox recursive-descent parser.
//
// Key patterns:
//   - One method per grammar nonterminal; precedence climbs from assignment
//     down to primary.
//   - Error recovery: panic-mode synchronize() skips to the next statement
//     boundary so a single parse reports every diagnostic.
//   - Atomic failure: a parse with any diagnostic yields no statements.
package parser

import (
	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/errors"
	"github.com/cwbudde/go-lox/pkg/token"
)

// Parser represents the Lox parser. It consumes the scanner's token
// sequence, which is always terminated by an EOF marker.
type Parser struct {
	tokens []token.Token
	errors []*ParserError
	pos    int
}

// New creates a new Parser for the given token sequence.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Errors returns the list of parsing errors.
func (p *Parser) Errors() []*ParserError {
	return p.errors
}

// ParseProgram parses the whole token sequence into a statement list.
// On failure the returned program is nil and every diagnostic is available
// through Errors().
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.synchronize()
			continue
		}
		program.Statements = append(program.Statements, stmt)
	}

	if len(p.errors) > 0 {
		return nil
	}
	return program
}

// Cursor helpers

// peek returns the current token without consuming it.
func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

// previous returns the most recently consumed token.
func (p *Parser) previous() token.Token {
	return p.tokens[p.pos-1]
}

// isAtEnd reports whether the cursor has reached the EOF marker.
func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

// advance consumes and returns the current token.
func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.pos++
	}
	return p.previous()
}

// check reports whether the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.peek().Type == t
}

// match consumes the current token if it is one of the given types.
func (p *Parser) match(types ...token.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past the expected token type or records a diagnostic at
// the current token.
func (p *Parser) consume(t token.TokenType, message string) (token.Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorAt(p.peek(), message)
}

// errorAt records a diagnostic at the given token and returns it so callers
// can unwind to the nearest synchronization point.
func (p *Parser) errorAt(tok token.Token, message string) error {
	err := &ParserError{Tok: tok, Message: message}
	p.errors = append(p.errors, err)
	return err
}

// synchronize discards tokens until a likely statement boundary: just past a
// semicolon, or just before a statement-starting keyword.
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}

		switch p.peek().Type {
		case token.CLASS, token.FUN, token.VAR, token.FOR,
			token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}

		p.advance()
	}
}

// ParserError represents an error encountered during parsing.
type ParserError struct {
	Tok     token.Token
	Message string
}

func (e *ParserError) Error() string {
	return errors.Format(e.Tok.Pos.Line, e.Tok.Literal, e.Message)
}

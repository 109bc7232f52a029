package parser

import (
	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/pkg/token"
)

// maxCallArgs is the limit on argument and parameter list lengths.
const maxCallArgs = 255

// declaration parses a class, function or variable declaration, or falls
// through to an ordinary statement.
func (p *Parser) declaration() (ast.Statement, error) {
	switch {
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.match(token.FUN):
		return p.function("function")
	case p.match(token.VAR):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

// classDeclaration parses `class Name [< Superclass] { methods }`.
func (p *Parser) classDeclaration() (ast.Statement, error) {
	name, err := p.consume(token.IDENT, "Expect class name.")
	if err != nil {
		return nil, err
	}

	var superclass *ast.Identifier
	if p.match(token.LESS) {
		superName, err := p.consume(token.IDENT, "Expect superclass name.")
		if err != nil {
			return nil, err
		}
		superclass = &ast.Identifier{Token: superName, Value: superName.Literal}
	}

	if _, err := p.consume(token.LBRACE, "Expect '{' before class body."); err != nil {
		return nil, err
	}

	var methods []*ast.FunctionDecl
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		method, err := p.function("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method.(*ast.FunctionDecl))
	}

	if _, err := p.consume(token.RBRACE, "Expect '}' after class body."); err != nil {
		return nil, err
	}

	return &ast.ClassDecl{Name: name, Superclass: superclass, Methods: methods}, nil
}

// function parses a function or method declaration; kind selects the
// diagnostic wording ("function" or "method").
func (p *Parser) function(kind string) (ast.Statement, error) {
	name, err := p.consume(token.IDENT, "Expect "+kind+" name.")
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(token.LPAREN, "Expect '(' after "+kind+" name."); err != nil {
		return nil, err
	}

	var params []token.Token
	if !p.check(token.RPAREN) {
		for {
			if len(params) >= maxCallArgs {
				p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}

			param, err := p.consume(token.IDENT, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)

			if !p.match(token.COMMA) {
				break
			}
		}
	}

	if _, err := p.consume(token.RPAREN, "Expect ')' after parameters."); err != nil {
		return nil, err
	}

	lbrace, err := p.consume(token.LBRACE, "Expect '{' before "+kind+" body.")
	if err != nil {
		return nil, err
	}

	body, err := p.blockStatements(lbrace)
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDecl{Name: name, Params: params, Body: body}, nil
}

// varDeclaration parses `var name [= initializer];`.
func (p *Parser) varDeclaration() (ast.Statement, error) {
	name, err := p.consume(token.IDENT, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var initializer ast.Expression
	if p.match(token.EQ) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.SEMICOLON, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}

	return &ast.VarStatement{Name: name, Initializer: initializer}, nil
}

// statement parses a non-declaration statement.
func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.LBRACE):
		return p.blockStatements(p.previous())
	default:
		return p.expressionStatement()
	}
}

// forStatement parses a for loop and desugars it into while form:
// the increment is appended to the body block, the condition defaults to
// literal true when omitted, and the initializer wraps the loop in a block.
func (p *Parser) forStatement() (ast.Statement, error) {
	forTok := p.previous()

	if _, err := p.consume(token.LPAREN, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var initializer ast.Statement
	var err error
	switch {
	case p.match(token.SEMICOLON):
		initializer = nil
	case p.match(token.VAR):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition ast.Expression
	if !p.check(token.SEMICOLON) {
		condition, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment ast.Expression
	if !p.check(token.RPAREN) {
		increment, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RPAREN, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = &ast.BlockStatement{
			Token:      forTok,
			Statements: []ast.Statement{body, &ast.ExpressionStatement{Expression: increment}},
		}
	}

	if condition == nil {
		condition = &ast.BooleanLiteral{Token: forTok, Value: true}
	}
	var loop ast.Statement = &ast.WhileStatement{Token: forTok, Condition: condition, Body: body}

	if initializer != nil {
		loop = &ast.BlockStatement{
			Token:      forTok,
			Statements: []ast.Statement{initializer, loop},
		}
	}

	return loop, nil
}

// ifStatement parses `if (condition) then [else otherwise]`.
func (p *Parser) ifStatement() (ast.Statement, error) {
	ifTok := p.previous()

	if _, err := p.consume(token.LPAREN, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RPAREN, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}

	var elseBranch ast.Statement
	if p.match(token.ELSE) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}

	return &ast.IfStatement{
		Token:      ifTok,
		Condition:  condition,
		ThenBranch: thenBranch,
		ElseBranch: elseBranch,
	}, nil
}

// printStatement parses `print expression;`.
func (p *Parser) printStatement() (ast.Statement, error) {
	printTok := p.previous()

	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after value."); err != nil {
		return nil, err
	}

	return &ast.PrintStatement{Token: printTok, Expression: value}, nil
}

// returnStatement parses `return [value];`.
func (p *Parser) returnStatement() (ast.Statement, error) {
	keyword := p.previous()

	var value ast.Expression
	var err error
	if !p.check(token.SEMICOLON) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.SEMICOLON, "Expect ';' after return value."); err != nil {
		return nil, err
	}

	return &ast.ReturnStatement{Keyword: keyword, Value: value}, nil
}

// whileStatement parses `while (condition) body`.
func (p *Parser) whileStatement() (ast.Statement, error) {
	whileTok := p.previous()

	if _, err := p.consume(token.LPAREN, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RPAREN, "Expect ')' after condition."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStatement{Token: whileTok, Condition: condition, Body: body}, nil
}

// blockStatements parses the statements of a braced block, recovering at
// statement boundaries so one bad statement doesn't hide the rest.
func (p *Parser) blockStatements(lbrace token.Token) (*ast.BlockStatement, error) {
	var statements []ast.Statement

	for !p.check(token.RBRACE) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.synchronize()
			continue
		}
		statements = append(statements, stmt)
	}

	if _, err := p.consume(token.RBRACE, "Expect '}' after block."); err != nil {
		return nil, err
	}

	return &ast.BlockStatement{Token: lbrace, Statements: statements}, nil
}

// expressionStatement parses a bare expression followed by ';'.
func (p *Parser) expressionStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after expression."); err != nil {
		return nil, err
	}

	return &ast.ExpressionStatement{Expression: expr}, nil
}

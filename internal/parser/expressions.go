package parser

import (
	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/pkg/token"
)

// expression parses any expression; assignment has the lowest precedence.
func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

// assignment parses `target = value`. The target is parsed as an ordinary
// expression first and converted afterwards: a variable reference becomes an
// assignment, a property access becomes a property set. Anything else is an
// invalid target, reported at the '=' token without unwinding so parsing
// continues with the already-parsed expression.
func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.logicalOr()
	if err != nil {
		return nil, err
	}

	if p.match(token.EQ) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}

		switch target := expr.(type) {
		case *ast.Identifier:
			return &ast.AssignExpression{Name: target.Token, Value: value}, nil
		case *ast.GetExpression:
			return &ast.SetExpression{Object: target.Object, Name: target.Name, Value: value}, nil
		default:
			p.errorAt(equals, "Invalid assignment target.")
		}
	}

	return expr, nil
}

// logicalOr parses `a or b` chains.
func (p *Parser) logicalOr() (ast.Expression, error) {
	expr, err := p.logicalAnd()
	if err != nil {
		return nil, err
	}

	for p.match(token.OR) {
		operator := p.previous()
		right, err := p.logicalAnd()
		if err != nil {
			return nil, err
		}
		expr = &ast.LogicalExpression{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

// logicalAnd parses `a and b` chains.
func (p *Parser) logicalAnd() (ast.Expression, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}

	for p.match(token.AND) {
		operator := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &ast.LogicalExpression{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

// equality parses != and == chains.
func (p *Parser) equality() (ast.Expression, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}

	for p.match(token.EXCL_EQ, token.EQ_EQ) {
		operator := p.previous()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpression{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

// comparison parses > >= < <= chains.
func (p *Parser) comparison() (ast.Expression, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}

	for p.match(token.GREATER, token.GREATER_EQ, token.LESS, token.LESS_EQ) {
		operator := p.previous()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpression{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

// term parses + and - chains.
func (p *Parser) term() (ast.Expression, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}

	for p.match(token.MINUS, token.PLUS) {
		operator := p.previous()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpression{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

// factor parses * and / chains.
func (p *Parser) factor() (ast.Expression, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}

	for p.match(token.SLASH, token.ASTERISK) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpression{Left: expr, Operator: operator, Right: right}
	}

	return expr, nil
}

// unary parses prefix ! and - expressions.
func (p *Parser) unary() (ast.Expression, error) {
	if p.match(token.EXCLAMATION, token.MINUS) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Operator: operator, Right: right}, nil
	}

	return p.call()
}

// call parses call and property-access chains: f(a)(b).c.d(e).
func (p *Parser) call() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.match(token.LPAREN):
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		case p.match(token.DOT):
			name, err := p.consume(token.IDENT, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = &ast.GetExpression{Object: expr, Name: name}
		default:
			return expr, nil
		}
	}
}

// finishCall parses the argument list after the opening parenthesis.
func (p *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	var arguments []ast.Expression

	if !p.check(token.RPAREN) {
		for {
			if len(arguments) >= maxCallArgs {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}

			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			arguments = append(arguments, arg)

			if !p.match(token.COMMA) {
				break
			}
		}
	}

	paren, err := p.consume(token.RPAREN, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}

	return &ast.CallExpression{Callee: callee, Paren: paren, Arguments: arguments}, nil
}

// primary parses literals, variable references, this/super, and grouping.
func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.match(token.FALSE):
		return &ast.BooleanLiteral{Token: p.previous(), Value: false}, nil
	case p.match(token.TRUE):
		return &ast.BooleanLiteral{Token: p.previous(), Value: true}, nil
	case p.match(token.NIL):
		return &ast.NilLiteral{Token: p.previous()}, nil

	case p.match(token.NUMBER):
		tok := p.previous()
		return &ast.NumberLiteral{Token: tok, Value: tok.Value.(float64)}, nil
	case p.match(token.STRING):
		tok := p.previous()
		return &ast.StringLiteral{Token: tok, Value: tok.Value.(string)}, nil

	case p.match(token.SUPER):
		keyword := p.previous()
		if _, err := p.consume(token.DOT, "Expect '.' after 'super'."); err != nil {
			return nil, err
		}
		method, err := p.consume(token.IDENT, "Expect superclass method name.")
		if err != nil {
			return nil, err
		}
		return &ast.SuperExpression{Keyword: keyword, Method: method}, nil

	case p.match(token.THIS):
		return &ast.ThisExpression{Keyword: p.previous()}, nil

	case p.match(token.IDENT):
		tok := p.previous()
		return &ast.Identifier{Token: tok, Value: tok.Literal}, nil

	case p.match(token.LPAREN):
		lparen := p.previous()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RPAREN, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &ast.GroupingExpression{Token: lparen, Expression: expr}, nil
	}

	return nil, p.errorAt(p.peek(), "Expect expression.")
}

package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/cwbudde/go-lox/pkg/token"
)

// Identifier represents a variable reference.
type Identifier struct {
	Token token.Token // The IDENT token
	Value string      // The actual identifier name
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }
func (i *Identifier) Pos() token.Position  { return i.Token.Pos }

// NumberLiteral represents a number literal. Lox numbers are IEEE-754 doubles.
type NumberLiteral struct {
	Token token.Token // The NUMBER token
	Value float64
}

func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NumberLiteral) String() string       { return nl.Token.Literal }
func (nl *NumberLiteral) Pos() token.Position  { return nl.Token.Pos }

// StringLiteral represents a string literal value.
type StringLiteral struct {
	Token token.Token // The STRING token
	Value string      // The parsed string value (without quotes)
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string       { return strconv.Quote(sl.Value) }
func (sl *StringLiteral) Pos() token.Position  { return sl.Token.Pos }

// BooleanLiteral represents a true or false literal.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) String() string {
	if bl.Value {
		return "true"
	}
	return "false"
}
func (bl *BooleanLiteral) Pos() token.Position { return bl.Token.Pos }

// NilLiteral represents the nil literal.
type NilLiteral struct {
	Token token.Token
}

func (nl *NilLiteral) expressionNode()      {}
func (nl *NilLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NilLiteral) String() string       { return "nil" }
func (nl *NilLiteral) Pos() token.Position  { return nl.Token.Pos }

// GroupingExpression represents a parenthesized expression.
type GroupingExpression struct {
	Token      token.Token // The '(' token
	Expression Expression
}

func (ge *GroupingExpression) expressionNode()      {}
func (ge *GroupingExpression) TokenLiteral() string { return ge.Token.Literal }
func (ge *GroupingExpression) String() string       { return "(" + ge.Expression.String() + ")" }
func (ge *GroupingExpression) Pos() token.Position  { return ge.Token.Pos }

// UnaryExpression represents a prefix operator expression: -x or !x.
type UnaryExpression struct {
	Operator token.Token
	Right    Expression
}

func (ue *UnaryExpression) expressionNode()      {}
func (ue *UnaryExpression) TokenLiteral() string { return ue.Operator.Literal }
func (ue *UnaryExpression) String() string {
	return "(" + ue.Operator.Literal + ue.Right.String() + ")"
}
func (ue *UnaryExpression) Pos() token.Position { return ue.Operator.Pos }

// BinaryExpression represents an infix operator expression: a + b, a < b, …
type BinaryExpression struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Operator.Literal }
func (be *BinaryExpression) String() string {
	return "(" + be.Left.String() + " " + be.Operator.Literal + " " + be.Right.String() + ")"
}
func (be *BinaryExpression) Pos() token.Position { return be.Operator.Pos }

// LogicalExpression represents a short-circuiting `and` or `or` expression.
// Unlike BinaryExpression it may skip evaluating its right operand.
type LogicalExpression struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func (le *LogicalExpression) expressionNode()      {}
func (le *LogicalExpression) TokenLiteral() string { return le.Operator.Literal }
func (le *LogicalExpression) String() string {
	return "(" + le.Left.String() + " " + le.Operator.Literal + " " + le.Right.String() + ")"
}
func (le *LogicalExpression) Pos() token.Position { return le.Operator.Pos }

// AssignExpression represents assignment to a variable: x = value.
type AssignExpression struct {
	Name  token.Token // The IDENT token of the assignment target
	Value Expression
}

func (ae *AssignExpression) expressionNode()      {}
func (ae *AssignExpression) TokenLiteral() string { return ae.Name.Literal }
func (ae *AssignExpression) String() string {
	return "(" + ae.Name.Literal + " = " + ae.Value.String() + ")"
}
func (ae *AssignExpression) Pos() token.Position { return ae.Name.Pos }

// CallExpression represents a call: callee(arguments...).
// Paren is the closing parenthesis, kept for error reporting.
type CallExpression struct {
	Callee    Expression
	Paren     token.Token
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Paren.Literal }
func (ce *CallExpression) String() string {
	var out bytes.Buffer

	args := make([]string, len(ce.Arguments))
	for i, arg := range ce.Arguments {
		args[i] = arg.String()
	}

	out.WriteString(ce.Callee.String())
	out.WriteString("(")
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")

	return out.String()
}
func (ce *CallExpression) Pos() token.Position { return ce.Paren.Pos }

// GetExpression represents property access: object.name.
type GetExpression struct {
	Object Expression
	Name   token.Token
}

func (ge *GetExpression) expressionNode()      {}
func (ge *GetExpression) TokenLiteral() string { return ge.Name.Literal }
func (ge *GetExpression) String() string       { return ge.Object.String() + "." + ge.Name.Literal }
func (ge *GetExpression) Pos() token.Position  { return ge.Name.Pos }

// SetExpression represents property assignment: object.name = value.
type SetExpression struct {
	Object Expression
	Name   token.Token
	Value  Expression
}

func (se *SetExpression) expressionNode()      {}
func (se *SetExpression) TokenLiteral() string { return se.Name.Literal }
func (se *SetExpression) String() string {
	return "(" + se.Object.String() + "." + se.Name.Literal + " = " + se.Value.String() + ")"
}
func (se *SetExpression) Pos() token.Position { return se.Name.Pos }

// ThisExpression represents the `this` keyword inside a method.
type ThisExpression struct {
	Keyword token.Token
}

func (te *ThisExpression) expressionNode()      {}
func (te *ThisExpression) TokenLiteral() string { return te.Keyword.Literal }
func (te *ThisExpression) String() string       { return "this" }
func (te *ThisExpression) Pos() token.Position  { return te.Keyword.Pos }

// SuperExpression represents a superclass method access: super.method.
type SuperExpression struct {
	Keyword token.Token // The `super` token
	Method  token.Token // The method name after the dot
}

func (se *SuperExpression) expressionNode()      {}
func (se *SuperExpression) TokenLiteral() string { return se.Keyword.Literal }
func (se *SuperExpression) String() string       { return "super." + se.Method.Literal }
func (se *SuperExpression) Pos() token.Position  { return se.Keyword.Pos }

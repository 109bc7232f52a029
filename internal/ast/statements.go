package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/go-lox/pkg/token"
)

// ExpressionStatement wraps an expression evaluated for its side effects.
type ExpressionStatement struct {
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Expression.TokenLiteral() }
func (es *ExpressionStatement) String() string       { return es.Expression.String() + ";" }
func (es *ExpressionStatement) Pos() token.Position  { return es.Expression.Pos() }

// PrintStatement writes the stringified value of its expression to the
// interpreter's output sink.
type PrintStatement struct {
	Token      token.Token // The `print` keyword
	Expression Expression
}

func (ps *PrintStatement) statementNode()       {}
func (ps *PrintStatement) TokenLiteral() string { return ps.Token.Literal }
func (ps *PrintStatement) String() string       { return "print " + ps.Expression.String() + ";" }
func (ps *PrintStatement) Pos() token.Position  { return ps.Token.Pos }

// VarStatement declares a variable with an optional initializer.
type VarStatement struct {
	Name        token.Token // The IDENT token
	Initializer Expression  // nil when the declaration has no initializer
}

func (vs *VarStatement) statementNode()       {}
func (vs *VarStatement) TokenLiteral() string { return vs.Name.Literal }
func (vs *VarStatement) String() string {
	var out bytes.Buffer

	out.WriteString("var ")
	out.WriteString(vs.Name.Literal)
	if vs.Initializer != nil {
		out.WriteString(" = ")
		out.WriteString(vs.Initializer.String())
	}
	out.WriteString(";")

	return out.String()
}
func (vs *VarStatement) Pos() token.Position { return vs.Name.Pos }

// BlockStatement groups statements in their own lexical scope.
type BlockStatement struct {
	Token      token.Token // The '{' token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer

	out.WriteString("{ ")
	for _, stmt := range bs.Statements {
		out.WriteString(stmt.String())
		out.WriteString(" ")
	}
	out.WriteString("}")

	return out.String()
}
func (bs *BlockStatement) Pos() token.Position { return bs.Token.Pos }

// IfStatement represents conditional execution with an optional else branch.
type IfStatement struct {
	Token      token.Token // The `if` keyword
	Condition  Expression
	ThenBranch Statement
	ElseBranch Statement // nil when there is no else branch
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) String() string {
	var out bytes.Buffer

	out.WriteString("if (")
	out.WriteString(is.Condition.String())
	out.WriteString(") ")
	out.WriteString(is.ThenBranch.String())
	if is.ElseBranch != nil {
		out.WriteString(" else ")
		out.WriteString(is.ElseBranch.String())
	}

	return out.String()
}
func (is *IfStatement) Pos() token.Position { return is.Token.Pos }

// WhileStatement represents a while loop. The parser also desugars for
// loops into while loops, so there is no for node.
type WhileStatement struct {
	Token     token.Token // The `while` (or originating `for`) keyword
	Condition Expression
	Body      Statement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) String() string {
	return "while (" + ws.Condition.String() + ") " + ws.Body.String()
}
func (ws *WhileStatement) Pos() token.Position { return ws.Token.Pos }

// FunctionDecl declares a named function or a class method.
type FunctionDecl struct {
	Name   token.Token // The IDENT token
	Params []token.Token
	Body   *BlockStatement
}

func (fd *FunctionDecl) statementNode()       {}
func (fd *FunctionDecl) TokenLiteral() string { return fd.Name.Literal }
func (fd *FunctionDecl) String() string {
	var out bytes.Buffer

	params := make([]string, len(fd.Params))
	for i, param := range fd.Params {
		params[i] = param.Literal
	}

	out.WriteString("fun ")
	out.WriteString(fd.Name.Literal)
	out.WriteString("(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") ")
	out.WriteString(fd.Body.String())

	return out.String()
}
func (fd *FunctionDecl) Pos() token.Position { return fd.Name.Pos }

// ReturnStatement returns from the enclosing function, optionally with a value.
type ReturnStatement struct {
	Keyword token.Token // The `return` keyword, kept for error reporting
	Value   Expression  // nil for a bare `return;`
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Keyword.Literal }
func (rs *ReturnStatement) String() string {
	if rs.Value == nil {
		return "return;"
	}
	return "return " + rs.Value.String() + ";"
}
func (rs *ReturnStatement) Pos() token.Position { return rs.Keyword.Pos }

// ClassDecl declares a class with an optional superclass and a method list.
type ClassDecl struct {
	Name       token.Token
	Superclass *Identifier // nil when the class has no superclass
	Methods    []*FunctionDecl
}

func (cd *ClassDecl) statementNode()       {}
func (cd *ClassDecl) TokenLiteral() string { return cd.Name.Literal }
func (cd *ClassDecl) String() string {
	var out bytes.Buffer

	out.WriteString("class ")
	out.WriteString(cd.Name.Literal)
	if cd.Superclass != nil {
		out.WriteString(" < ")
		out.WriteString(cd.Superclass.Value)
	}
	out.WriteString(" { ")
	for _, method := range cd.Methods {
		out.WriteString(method.Name.Literal)
		out.WriteString(" ")
	}
	out.WriteString("}")

	return out.String()
}
func (cd *ClassDecl) Pos() token.Position { return cd.Name.Pos }

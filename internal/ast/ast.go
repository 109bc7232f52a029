// Package ast defines the Abstract Syntax Tree node types for Lox.
//
// Nodes are immutable after construction and always handled through
// pointers. Pointer identity is what distinguishes two textually identical
// occurrences in source: the resolver keys its scope-distance side-table by
// the Expression interface value, so the same `x` appearing twice resolves
// independently.
package ast

import (
	"bytes"

	"github.com/cwbudde/go-lox/pkg/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// TokenLiteral returns the literal value of the token this node is associated with.
	TokenLiteral() string

	// String returns a string representation of the node for debugging and testing.
	String() string

	// Pos returns the position of the node in the source code for error reporting.
	Pos() token.Position
}

// Expression represents any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement represents a node that performs an action but doesn't produce a value.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node of the AST.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer

	for _, stmt := range p.Statements {
		out.WriteString(stmt.String())
	}

	return out.String()
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1, Offset: 0}
}

// Package semantic implements the static resolver for Lox.
//
// The resolver runs between parsing and evaluation. It computes, for every
// variable reference, the number of enclosing scopes between the reference
// and its declaration, and it enforces the contextual rules that are cheaper
// to diagnose statically than to trap at runtime: this/super placement,
// top-level return, double declaration, self-inheritance, and reading a
// local in its own initializer.
package semantic

import (
	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/errors"
	"github.com/cwbudde/go-lox/pkg/token"
)

// functionType tags the kind of function body being resolved.
type functionType int

const (
	funcNone functionType = iota
	funcFunction
	funcInitializer
	funcMethod
)

// classType tags the kind of class body being resolved.
type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Resolver performs scope analysis over a parsed program.
//
// Each entry in the scope stack maps a name to whether it has been fully
// DEFINED (true) or merely DECLARED (false); the gap between the two is what
// detects `var a = a;`. Distances are recorded in a side-table keyed by
// expression identity, so two textually identical references resolve
// independently.
type Resolver struct {
	scopes          []map[string]bool
	bindings        map[ast.Expression]int
	errors          []*ResolveError
	currentFunction functionType
	currentClass    classType
}

// NewResolver creates a resolver with an empty scope stack. Names that fall
// through the whole stack are globals and get no recorded distance.
func NewResolver() *Resolver {
	return &Resolver{
		bindings: make(map[ast.Expression]int),
	}
}

// Analyze resolves the whole program. All diagnostics are accumulated and
// returned as one aggregated error; on failure the bindings are unusable.
func (r *Resolver) Analyze(program *ast.Program) error {
	r.resolveStatements(program.Statements)
	return errors.Aggregate(r.errors)
}

// Bindings returns the side-table of scope distances keyed by expression
// identity. The evaluator consults it for every variable access.
func (r *Resolver) Bindings() map[ast.Expression]int {
	return r.bindings
}

// Errors returns the accumulated diagnostics.
func (r *Resolver) Errors() []*ResolveError {
	return r.errors
}

// addError records a diagnostic at the given token.
func (r *Resolver) addError(tok token.Token, message string) {
	r.errors = append(r.errors, &ResolveError{Tok: tok, Message: message})
}

// Scope stack

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare inserts the name into the innermost scope, not yet defined.
// Redeclaring a name in the same local scope is a diagnostic; globals are
// exempt because the scope stack is empty at top level.
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}

	scope := r.scopes[len(r.scopes)-1]
	if _, exists := scope[name.Literal]; exists {
		r.addError(name, "Already a variable with this name in this scope.")
	}
	scope[name.Literal] = false
}

// define marks the name as fully initialized in the innermost scope.
func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Literal] = true
}

// resolveLocal walks the scope stack innermost-outward and records the
// distance to the first scope containing the name. No match means the name
// is global and gets no recorded distance.
func (r *Resolver) resolveLocal(expr ast.Expression, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Literal]; ok {
			r.bindings[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

// Statements

func (r *Resolver) resolveStatements(statements []ast.Statement) {
	for _, stmt := range statements {
		r.resolveStatement(stmt)
	}
}

func (r *Resolver) resolveStatement(stmt ast.Statement) {
	switch stmt := stmt.(type) {
	case *ast.BlockStatement:
		r.beginScope()
		r.resolveStatements(stmt.Statements)
		r.endScope()

	case *ast.VarStatement:
		r.declare(stmt.Name)
		if stmt.Initializer != nil {
			r.resolveExpression(stmt.Initializer)
		}
		r.define(stmt.Name)

	case *ast.FunctionDecl:
		r.declare(stmt.Name)
		r.define(stmt.Name)
		r.resolveFunction(stmt, funcFunction)

	case *ast.ClassDecl:
		r.resolveClass(stmt)

	case *ast.ExpressionStatement:
		r.resolveExpression(stmt.Expression)

	case *ast.IfStatement:
		r.resolveExpression(stmt.Condition)
		r.resolveStatement(stmt.ThenBranch)
		if stmt.ElseBranch != nil {
			r.resolveStatement(stmt.ElseBranch)
		}

	case *ast.PrintStatement:
		r.resolveExpression(stmt.Expression)

	case *ast.ReturnStatement:
		if r.currentFunction == funcNone {
			r.addError(stmt.Keyword, "Can't return from top-level code.")
		}
		if stmt.Value != nil {
			if r.currentFunction == funcInitializer {
				r.addError(stmt.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpression(stmt.Value)
		}

	case *ast.WhileStatement:
		r.resolveExpression(stmt.Condition)
		r.resolveStatement(stmt.Body)
	}
}

// resolveFunction resolves a function or method body. Parameters live in
// their own scope; the body statements are resolved directly inside it, the
// same scope the evaluator binds arguments into.
func (r *Resolver) resolveFunction(fn *ast.FunctionDecl, fnType functionType) {
	enclosing := r.currentFunction
	r.currentFunction = fnType

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStatements(fn.Body.Statements)
	r.endScope()

	r.currentFunction = enclosing
}

// resolveClass resolves a class declaration: the optional superclass, a
// scope holding "super" when one is present, a scope holding "this", and
// every method body.
func (r *Resolver) resolveClass(class *ast.ClassDecl) {
	enclosing := r.currentClass
	r.currentClass = classClass

	r.declare(class.Name)
	r.define(class.Name)

	if class.Superclass != nil {
		if class.Superclass.Value == class.Name.Literal {
			r.addError(class.Superclass.Token, "A class can't inherit from itself.")
		}

		r.currentClass = classSubclass
		r.resolveExpression(class.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range class.Methods {
		fnType := funcMethod
		if method.Name.Literal == "init" {
			fnType = funcInitializer
		}
		r.resolveFunction(method, fnType)
	}

	r.endScope()

	if class.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosing
}

// Expressions

func (r *Resolver) resolveExpression(expr ast.Expression) {
	switch expr := expr.(type) {
	case *ast.Identifier:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][expr.Value]; declared && !defined {
				r.addError(expr.Token, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(expr, expr.Token)

	case *ast.AssignExpression:
		r.resolveExpression(expr.Value)
		r.resolveLocal(expr, expr.Name)

	case *ast.BinaryExpression:
		r.resolveExpression(expr.Left)
		r.resolveExpression(expr.Right)

	case *ast.LogicalExpression:
		r.resolveExpression(expr.Left)
		r.resolveExpression(expr.Right)

	case *ast.UnaryExpression:
		r.resolveExpression(expr.Right)

	case *ast.CallExpression:
		r.resolveExpression(expr.Callee)
		for _, arg := range expr.Arguments {
			r.resolveExpression(arg)
		}

	case *ast.GetExpression:
		r.resolveExpression(expr.Object)

	case *ast.SetExpression:
		r.resolveExpression(expr.Value)
		r.resolveExpression(expr.Object)

	case *ast.GroupingExpression:
		r.resolveExpression(expr.Expression)

	case *ast.ThisExpression:
		if r.currentClass == classNone {
			r.addError(expr.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(expr, expr.Keyword)

	case *ast.SuperExpression:
		switch r.currentClass {
		case classNone:
			r.addError(expr.Keyword, "Can't use 'super' outside of a class.")
		case classClass:
			r.addError(expr.Keyword, "Can't use 'super' in a class with no superclass.")
		default:
			r.resolveLocal(expr, expr.Keyword)
		}
	}
	// Literals resolve to nothing.
}

// ResolveError represents a contextual rule violation found during
// resolution.
type ResolveError struct {
	Tok     token.Token
	Message string
}

func (e *ResolveError) Error() string {
	return errors.Format(e.Tok.Pos.Line, e.Tok.Literal, e.Message)
}

package interp

import (
	"fmt"

	"github.com/cwbudde/go-lox/internal/ast"
)

// execute runs a single statement.
func (i *Interpreter) execute(stmt ast.Statement) error {
	switch stmt := stmt.(type) {
	case *ast.ExpressionStatement:
		_, err := i.evalExpression(stmt.Expression)
		return err

	case *ast.PrintStatement:
		return i.execPrint(stmt)

	case *ast.VarStatement:
		return i.execVar(stmt)

	case *ast.BlockStatement:
		return i.executeBlock(stmt.Statements, NewEnclosedEnvironment(i.env))

	case *ast.IfStatement:
		return i.execIf(stmt)

	case *ast.WhileStatement:
		return i.execWhile(stmt)

	case *ast.FunctionDecl:
		fn := NewFunction(stmt, i.env, false)
		i.env.Define(stmt.Name.Literal, fn)
		return nil

	case *ast.ReturnStatement:
		return i.execReturn(stmt)

	case *ast.ClassDecl:
		return i.execClass(stmt)

	default:
		return fmt.Errorf("interp: unhandled statement type %T", stmt)
	}
}

// execPrint writes the stringified value followed by a newline.
func (i *Interpreter) execPrint(stmt *ast.PrintStatement) error {
	value, err := i.evalExpression(stmt.Expression)
	if err != nil {
		return err
	}

	fmt.Fprintln(i.output, value.String())
	return nil
}

// execVar defines a variable in the current scope, defaulting to nil when
// the declaration has no initializer.
func (i *Interpreter) execVar(stmt *ast.VarStatement) error {
	var value Value = &NilValue{}

	if stmt.Initializer != nil {
		var err error
		value, err = i.evalExpression(stmt.Initializer)
		if err != nil {
			return err
		}
	}

	i.env.Define(stmt.Name.Literal, value)
	return nil
}

// execIf evaluates the condition with the truthiness rule and runs one
// branch.
func (i *Interpreter) execIf(stmt *ast.IfStatement) error {
	condition, err := i.evalExpression(stmt.Condition)
	if err != nil {
		return err
	}

	if isTruthy(condition) {
		return i.execute(stmt.ThenBranch)
	}
	if stmt.ElseBranch != nil {
		return i.execute(stmt.ElseBranch)
	}
	return nil
}

// execWhile re-evaluates the condition before every iteration.
func (i *Interpreter) execWhile(stmt *ast.WhileStatement) error {
	for {
		condition, err := i.evalExpression(stmt.Condition)
		if err != nil {
			return err
		}
		if !isTruthy(condition) {
			return nil
		}

		if err := i.execute(stmt.Body); err != nil {
			return err
		}
	}
}

// execReturn raises the return signal; the value defaults to nil for a bare
// `return;`. The signal unwinds to the nearest user-function call.
func (i *Interpreter) execReturn(stmt *ast.ReturnStatement) error {
	var value Value = &NilValue{}

	if stmt.Value != nil {
		var err error
		value, err = i.evalExpression(stmt.Value)
		if err != nil {
			return err
		}
	}

	return &returnSignal{value: value}
}

// execClass declares a class. The name is defined as nil first so methods
// can reference the class being declared; when a superclass is present the
// method closures are built inside an extra scope binding "super".
func (i *Interpreter) execClass(stmt *ast.ClassDecl) error {
	var superclass *ClassValue
	if stmt.Superclass != nil {
		value, err := i.evalExpression(stmt.Superclass)
		if err != nil {
			return err
		}

		var ok bool
		superclass, ok = value.(*ClassValue)
		if !ok {
			return newRuntimeError(stmt.Name, "Superclass must be a class.")
		}
	}

	i.env.Define(stmt.Name.Literal, &NilValue{})

	methodEnv := i.env
	if superclass != nil {
		methodEnv = NewEnclosedEnvironment(methodEnv)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*FunctionValue, len(stmt.Methods))
	for _, method := range stmt.Methods {
		isInitializer := method.Name.Literal == "init"
		methods[method.Name.Literal] = NewFunction(method, methodEnv, isInitializer)
	}

	class := &ClassValue{
		Name:       stmt.Name.Literal,
		Superclass: superclass,
		Methods:    methods,
	}

	i.env.Assign(stmt.Name.Literal, class)
	return nil
}

package interp

import (
	"github.com/cwbudde/go-lox/internal/ast"
)

// FunctionValue represents a user-declared function or method. It pairs the
// syntactic declaration with the environment captured at declaration time
// (the closure) so the body sees the variables that were in scope then,
// including ones the declaring frame has already abandoned.
type FunctionValue struct {
	Decl          *ast.FunctionDecl
	Closure       *Environment
	IsInitializer bool
}

// NewFunction creates a function value over its declaration and closure.
// isInitializer is set for methods named "init", which implicitly return
// their instance.
func NewFunction(decl *ast.FunctionDecl, closure *Environment, isInitializer bool) *FunctionValue {
	return &FunctionValue{Decl: decl, Closure: closure, IsInitializer: isInitializer}
}

// Type returns "FUNCTION".
func (f *FunctionValue) Type() string {
	return "FUNCTION"
}

// String returns "<fn NAME>".
func (f *FunctionValue) String() string {
	return "<fn " + f.Decl.Name.Literal + ">"
}

// Arity returns the declared parameter count.
func (f *FunctionValue) Arity() int {
	return len(f.Decl.Params)
}

// Bind produces a copy of the function whose closure is extended with a
// scope defining "this" as the given instance. Retrieving a method from an
// instance always goes through here, so the bound method carries its
// receiver wherever it is stored.
func (f *FunctionValue) Bind(instance *InstanceValue) *FunctionValue {
	env := NewEnclosedEnvironment(f.Closure)
	env.Define("this", instance)
	return NewFunction(f.Decl, env, f.IsInitializer)
}

// Call executes the function body in a fresh environment enclosed by the
// closure, with each parameter bound to its argument. A return signal from
// the body is consumed here; initializers always yield their "this" binding
// regardless of how the body exits.
func (f *FunctionValue) Call(i *Interpreter, arguments []Value) (Value, error) {
	env := NewEnclosedEnvironment(f.Closure)
	for idx, param := range f.Decl.Params {
		env.Define(param.Literal, arguments[idx])
	}

	if err := i.executeBlock(f.Decl.Body.Statements, env); err != nil {
		ret, ok := err.(*returnSignal)
		if !ok {
			return nil, err
		}
		if f.IsInitializer {
			return f.boundThis(), nil
		}
		return ret.value, nil
	}

	if f.IsInitializer {
		return f.boundThis(), nil
	}
	return &NilValue{}, nil
}

// boundThis reads the "this" binding from the closure's innermost scope.
// Only valid on bound methods; initializers are always bound before calling.
func (f *FunctionValue) boundThis() Value {
	this, _ := f.Closure.GetAt(0, "this")
	return this
}

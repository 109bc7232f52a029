package interp

import (
	"fmt"
	"io"

	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/errors"
	"github.com/cwbudde/go-lox/pkg/token"
)

// Interpreter executes resolved Lox AST nodes and manages the runtime
// environment. Execution is single-threaded and synchronous: side effects
// (prints, field writes, clock reads) happen in source order of evaluation.
type Interpreter struct {
	output   io.Writer              // Where to write output (print statements and runtime errors)
	globals  *Environment           // The outermost environment, holds natives and top-level names
	env      *Environment           // The current execution environment
	bindings map[ast.Expression]int // Resolver side-table: scope distance per variable reference
}

// New creates a new Interpreter with a fresh global environment.
// The output writer is where `print` writes. The native `clock` function is
// seeded into the globals.
func New(output io.Writer) *Interpreter {
	globals := NewEnvironment()
	globals.Define("clock", newClockNative())

	return &Interpreter{
		output:   output,
		globals:  globals,
		env:      globals,
		bindings: make(map[ast.Expression]int),
	}
}

// Globals returns the global environment. Primarily for tests.
func (i *Interpreter) Globals() *Environment {
	return i.globals
}

// BindLocals merges the resolver's scope-distance side-table into the
// interpreter. Merging rather than replacing keeps earlier bindings alive,
// which the REPL relies on: a closure defined on a previous line still
// resolves through the distances recorded when it was analyzed.
func (i *Interpreter) BindLocals(bindings map[ast.Expression]int) {
	for expr, distance := range bindings {
		i.bindings[expr] = distance
	}
}

// Reset prepares the interpreter for a fresh run: the current scope pointer
// returns to the globals and the resolver side-table is cleared. Global
// definitions survive.
func (i *Interpreter) Reset() {
	i.env = i.globals
	i.bindings = make(map[ast.Expression]int)
}

// Interpret executes the program's statements in order. Each runtime error
// is written as a line to the output sink and execution continues with the
// next statement; the aggregated error is returned at the end, nil when
// every statement succeeded.
func (i *Interpreter) Interpret(program *ast.Program) error {
	i.env = i.globals

	var errs []error
	for _, stmt := range program.Statements {
		if err := i.execute(stmt); err != nil {
			if _, ok := err.(*returnSignal); ok {
				// The resolver rejects top-level returns, so a signal
				// escaping to here is a bug in the host, not the program.
				panic("interp: return signal escaped to top level")
			}
			fmt.Fprintln(i.output, err.Error())
			errs = append(errs, err)
		}
	}

	return errors.Aggregate(errs)
}

// EvalExpression evaluates a single expression and returns its stringified
// value. This is the test entry point.
func (i *Interpreter) EvalExpression(expr ast.Expression) (string, error) {
	value, err := i.evalExpression(expr)
	if err != nil {
		return "", err
	}
	return value.String(), nil
}

// executeBlock runs statements in the given environment, restoring the
// previous one afterwards even when a statement fails or returns.
func (i *Interpreter) executeBlock(statements []ast.Statement, env *Environment) error {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, stmt := range statements {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// lookupVariable reads a variable through the resolver's recorded distance,
// or from the globals when the reference resolved to no local scope.
func (i *Interpreter) lookupVariable(name token.Token, expr ast.Expression) (Value, error) {
	if distance, ok := i.bindings[expr]; ok {
		if value, ok := i.env.GetAt(distance, name.Literal); ok {
			return value, nil
		}
	} else if value, ok := i.globals.Get(name.Literal); ok {
		return value, nil
	}

	return nil, newRuntimeError(name, "Undefined variable '"+name.Literal+"'.")
}

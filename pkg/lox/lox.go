// Package lox is the embedding API for the Lox interpreter. It wires the
// scanner, parser, resolver and evaluator into the standard pipeline:
//
//	source text → tokens → syntax tree → resolved tree → evaluation
//
// Each stage runs to completion collecting every diagnostic it can; a stage
// with any diagnostic fails atomically and nothing runs downstream.
package lox

import (
	"io"

	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/errors"
	"github.com/cwbudde/go-lox/internal/interp"
	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/internal/parser"
	"github.com/cwbudde/go-lox/internal/semantic"
)

// Script is a compiled program: the syntax tree plus the resolver's
// scope-distance bindings, ready to run any number of times.
type Script struct {
	program  *ast.Program
	bindings map[ast.Expression]int
}

// Compile scans, parses and resolves source text. The returned error is the
// aggregated diagnostics of the first stage that failed.
func Compile(source string) (*Script, error) {
	tokens, err := lexer.New(source).ScanTokens()
	if err != nil {
		return nil, err
	}

	p := parser.New(tokens)
	program := p.ParseProgram()
	if program == nil {
		return nil, errors.Aggregate(p.Errors())
	}

	resolver := semantic.NewResolver()
	if err := resolver.Analyze(program); err != nil {
		return nil, err
	}

	return &Script{program: program, bindings: resolver.Bindings()}, nil
}

// Run executes the script on a fresh interpreter, writing program output
// and runtime errors to out. Returns the aggregated runtime error, nil when
// every statement succeeded.
func (s *Script) Run(out io.Writer) error {
	i := interp.New(out)
	i.BindLocals(s.bindings)
	return i.Interpret(s.program)
}

// Run compiles and executes source in one step.
func Run(source string, out io.Writer) error {
	script, err := Compile(source)
	if err != nil {
		return err
	}
	return script.Run(out)
}

// Session is a long-lived interpreter for line-at-a-time use (the REPL).
// Globals and resolved bindings accumulate across Eval calls, so functions
// and closures defined on earlier lines keep working.
type Session struct {
	interpreter *interp.Interpreter
}

// NewSession creates a session writing to out.
func NewSession(out io.Writer) *Session {
	return &Session{interpreter: interp.New(out)}
}

// Eval compiles and runs one line of input. Scan, parse and resolve
// diagnostics are returned; runtime errors have already been written to the
// session's output sink and are not.
func (s *Session) Eval(source string) error {
	script, err := Compile(source)
	if err != nil {
		return err
	}

	s.interpreter.BindLocals(script.bindings)
	_ = s.interpreter.Interpret(script.program)
	return nil
}

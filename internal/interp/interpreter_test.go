package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/internal/parser"
	"github.com/cwbudde/go-lox/internal/semantic"
)

// compileProgram is a helper that runs the scan-parse-resolve pipeline,
// failing the test on any static diagnostic.
func compileProgram(t *testing.T, input string) (*ast.Program, map[ast.Expression]int) {
	t.Helper()

	tokens, err := lexer.New(input).ScanTokens()
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	p := parser.New(tokens)
	program := p.ParseProgram()
	if program == nil {
		t.Fatalf("parse failed: %v", p.Errors())
	}

	resolver := semantic.NewResolver()
	if err := resolver.Analyze(program); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	return program, resolver.Bindings()
}

// testRun is a helper that compiles and interprets input, returning the
// captured output and the aggregated runtime error.
func testRun(t *testing.T, input string) (string, error) {
	t.Helper()

	program, bindings := compileProgram(t, input)

	var buf bytes.Buffer
	i := New(&buf)
	i.BindLocals(bindings)
	err := i.Interpret(program)

	return buf.String(), err
}

// runOK is a helper asserting the program runs without runtime errors.
func runOK(t *testing.T, input string) string {
	t.Helper()

	output, err := testRun(t, input)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	return output
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"print 1 + 2 * 3;", "7.0\n"},
		{"print (1 + 2) * 3;", "9.0\n"},
		{"print 10 - 4 / 2;", "8.0\n"},
		{"print -3 + 1;", "-2.0\n"},
		{"print 1.5 * 2;", "3.0\n"},
		{"print 7 / 2;", "3.5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := runOK(t, tt.input); got != tt.expected {
				t.Errorf("output = %q, want %q", got, tt.expected)
			}
		})
	}
}

// IEEE-754 division: dividing by zero yields infinities or NaN, never an
// error.
func TestDivisionByZero(t *testing.T) {
	output := runOK(t, "print 1 / 0; print -1 / 0; print 0 / 0;")
	if output != "inf\n-inf\nNaN\n" {
		t.Errorf("output = %q", output)
	}
}

func TestStringConcatenation(t *testing.T) {
	output := runOK(t, `print "foo" + "bar";`)
	if output != "foobar\n" {
		t.Errorf("output = %q, want %q", output, "foobar\n")
	}
}

func TestComparisonAndEquality(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"print 1 < 2;", "true\n"},
		{"print 2 <= 2;", "true\n"},
		{"print 3 > 4;", "false\n"},
		{"print 4 >= 5;", "false\n"},
		{"print 1 == 1;", "true\n"},
		{"print 1 != 1;", "false\n"},
		{`print "a" == "a";`, "true\n"},
		{`print 1 == "1";`, "false\n"},
		{"print nil == nil;", "true\n"},
		{"print 0 == 0;", "true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := runOK(t, tt.input); got != tt.expected {
				t.Errorf("output = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestUnaryOperators(t *testing.T) {
	output := runOK(t, `print -5; print !true; print !nil; print !0; print !"";`)
	if output != "-5.0\nfalse\ntrue\nfalse\nfalse\n" {
		t.Errorf("output = %q", output)
	}
}

func TestBlockScoping(t *testing.T) {
	output := runOK(t, "var a = 1; { var a = 2; print a; } print a;")
	if output != "2.0\n1.0\n" {
		t.Errorf("output = %q, want %q", output, "2.0\n1.0\n")
	}
}

func TestIfElse(t *testing.T) {
	output := runOK(t, `
		if (1 < 2) print "then"; else print "else";
		if (nil) print "then"; else print "else";
		if ("") print "truthy string";
	`)
	if output != "then\nelse\ntruthy string\n" {
		t.Errorf("output = %q", output)
	}
}

func TestWhileLoop(t *testing.T) {
	output := runOK(t, "var i = 0; while (i < 3) { print i; i = i + 1; }")
	if output != "0.0\n1.0\n2.0\n" {
		t.Errorf("output = %q", output)
	}
}

func TestForLoop(t *testing.T) {
	output := runOK(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	if output != "0.0\n1.0\n2.0\n" {
		t.Errorf("output = %q", output)
	}
}

// `and`/`or` return the deciding operand itself, not a coerced boolean, and
// skip the right operand entirely when the left decides.
func TestShortCircuit(t *testing.T) {
	output := runOK(t, `
		fun loud() { print "evaluated"; return true; }
		print false and loud();
		print true or loud();
		print nil or "fallback";
		print 0 and "reached";
	`)
	if output != "false\ntrue\nfallback\nreached\n" {
		t.Errorf("output = %q", output)
	}
}

func TestFunctionsAndReturn(t *testing.T) {
	output := runOK(t, `
		fun add(a, b) { return a + b; }
		print add(1, 2);
		fun noReturn() {}
		print noReturn();
		fun bareReturn() { return; }
		print bareReturn();
	`)
	if output != "3.0\nnil\nnil\n" {
		t.Errorf("output = %q", output)
	}
}

func TestRecursion(t *testing.T) {
	output := runOK(t, `
		fun fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
		print fib(10);
	`)
	if output != "55.0\n" {
		t.Errorf("output = %q, want %q", output, "55.0\n")
	}
}

// Closures capture mutable variables from frames that have already exited.
func TestClosures(t *testing.T) {
	output := runOK(t, `
		fun make() { var i = 0; fun inc() { i = i + 1; print i; } return inc; }
		var c = make(); c(); c();
	`)
	if output != "1.0\n2.0\n" {
		t.Errorf("output = %q, want %q", output, "1.0\n2.0\n")
	}
}

func TestClosuresShareEnvironment(t *testing.T) {
	output := runOK(t, `
		fun pair() {
			var n = 0;
			fun bump() { n = n + 1; }
			fun read() { print n; }
			bump(); bump(); read();
		}
		pair();
	`)
	if output != "2.0\n" {
		t.Errorf("output = %q, want %q", output, "2.0\n")
	}
}

func TestClassesAndFields(t *testing.T) {
	output := runOK(t, `
		class Point { init(x, y) { this.x = x; this.y = y; } }
		var p = Point(1, 2);
		print p.x + p.y;
		p.x = 10;
		print p.x;
	`)
	if output != "3.0\n10.0\n" {
		t.Errorf("output = %q", output)
	}
}

func TestMethodsSeeThis(t *testing.T) {
	output := runOK(t, `
		class Counter {
			init() { this.n = 0; }
			bump() { this.n = this.n + 1; return this.n; }
		}
		var c = Counter();
		c.bump();
		print c.bump();
	`)
	if output != "2.0\n" {
		t.Errorf("output = %q", output)
	}
}

// A retrieved method stays bound to its instance wherever it travels.
func TestBoundMethods(t *testing.T) {
	output := runOK(t, `
		class Person {
			init(name) { this.name = name; }
			sayName() { print this.name; }
		}
		var jane = Person("Jane");
		var method = jane.sayName;
		method();
		var bill = Person("Bill");
		bill.sayName = jane.sayName;
		bill.sayName();
	`)
	if output != "Jane\nJane\n" {
		t.Errorf("output = %q", output)
	}
}

func TestInheritance(t *testing.T) {
	output := runOK(t, `
		class A { greet() { print "hi"; } }
		class B < A {}
		B().greet();
	`)
	if output != "hi\n" {
		t.Errorf("output = %q, want %q", output, "hi\n")
	}
}

func TestSuperCalls(t *testing.T) {
	output := runOK(t, `
		class A { m() { print "A"; } }
		class B < A { m() { super.m(); print "B"; } }
		B().m();
	`)
	if output != "A\nB\n" {
		t.Errorf("output = %q, want %q", output, "A\nB\n")
	}
}

// super binds methods against the declaring class's superclass, not the
// receiver's class.
func TestSuperThroughGrandchild(t *testing.T) {
	output := runOK(t, `
		class A { method() { print "A method"; } }
		class B < A {
			method() { print "B method"; }
			test() { super.method(); }
		}
		class C < B {}
		C().test();
	`)
	if output != "A method\n" {
		t.Errorf("output = %q", output)
	}
}

// An initializer implicitly returns the instance, even through a bare
// `return;`.
func TestInitializerReturnsInstance(t *testing.T) {
	output := runOK(t, `
		class Foo {
			init() {
				this.x = 1;
				return;
			}
		}
		print Foo().x;
		var f = Foo();
		print f.init().x;
	`)
	if output != "1.0\n1.0\n" {
		t.Errorf("output = %q", output)
	}
}

func TestClassArity(t *testing.T) {
	output := runOK(t, `
		class NoInit {}
		print NoInit();
		class OneArg { init(a) { this.a = a; } }
		print OneArg(7).a;
	`)
	if output != "NoInit instance\n7.0\n" {
		t.Errorf("output = %q", output)
	}
}

func TestClockNative(t *testing.T) {
	output := runOK(t, "print clock; print clock() > 0;")
	if output != "<native fn>\ntrue\n" {
		t.Errorf("output = %q", output)
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"subtract string",
			`"a" - 1;`,
			"[line 1] Error at '-': Operand must be a number.",
		},
		{
			"negate string",
			`-"a";`,
			"[line 1] Error at '-': Operand must be a number.",
		},
		{
			"compare mixed",
			`1 < "2";`,
			"[line 1] Error at '<': Operand must be a number.",
		},
		{
			"add mixed",
			`1 + "a";`,
			"[line 1] Error at '+': Operands must be two numbers or two strings.",
		},
		{
			"undefined variable",
			"print missing;",
			"[line 1] Error at 'missing': Undefined variable 'missing'.",
		},
		{
			"undefined assignment",
			"missing = 1;",
			"[line 1] Error at 'missing': Undefined variable 'missing'.",
		},
		{
			"call non-callable",
			`"not a fn"();`,
			"[line 1] Error at ')': Can only call functions and classes.",
		},
		{
			"arity mismatch",
			"fun f(a, b) {} f(1);",
			"[line 1] Error at ')': Expected 2 arguments but got 1.",
		},
		{
			"property on non-instance",
			"var x = 1; x.y;",
			"[line 1] Error at 'y': Only instances have properties.",
		},
		{
			"field on non-instance",
			"var x = 1; x.y = 2;",
			"[line 1] Error at 'y': Only instances have fields.",
		},
		{
			"undefined property",
			"class C {} C().missing;",
			"[line 1] Error at 'missing': Undefined property 'missing'.",
		},
		{
			"undefined super method",
			"class A {} class B < A { m() { super.missing(); } } B().m();",
			"[line 1] Error at 'missing': Undefined property 'missing'.",
		},
		{
			"non-class superclass",
			"var NotAClass = 1; class A < NotAClass {}",
			"[line 1] Error at 'A': Superclass must be a class.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := testRun(t, tt.input)
			if err == nil {
				t.Fatalf("expected runtime error for %q", tt.input)
			}
			if !strings.Contains(err.Error(), tt.expected) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.expected)
			}
			// Each runtime error is also written to the output sink.
			if !strings.Contains(output, tt.expected) {
				t.Errorf("output = %q, want it to contain %q", output, tt.expected)
			}
		})
	}
}

// The interpreter reports per statement and continues with the next one.
func TestContinuesAfterRuntimeError(t *testing.T) {
	output, err := testRun(t, "print 1;\nmissing;\nprint 2;")
	if err == nil {
		t.Fatal("expected aggregated runtime error")
	}

	expected := "1.0\n[line 2] Error at 'missing': Undefined variable 'missing'.\n2.0\n"
	if output != expected {
		t.Errorf("output = %q, want %q", output, expected)
	}
	if err.Error() != "[line 2] Error at 'missing': Undefined variable 'missing'." {
		t.Errorf("error = %q", err.Error())
	}
}

// Running the interpreter twice on the same source produces identical error
// text and ordering.
func TestErrorIdempotence(t *testing.T) {
	input := "missing;\n\"a\" - 1;\nprint 1;"

	first, errFirst := testRun(t, input)
	second, errSecond := testRun(t, input)

	if first != second {
		t.Errorf("outputs differ:\n%q\n%q", first, second)
	}
	if errFirst == nil || errSecond == nil || errFirst.Error() != errSecond.Error() {
		t.Errorf("errors differ: %v vs %v", errFirst, errSecond)
	}
}

func TestEvalExpression(t *testing.T) {
	program, bindings := compileProgram(t, "1 + 2 * 3;")
	expr := program.Statements[0].(*ast.ExpressionStatement).Expression

	var buf bytes.Buffer
	i := New(&buf)
	i.BindLocals(bindings)

	got, err := i.EvalExpression(expr)
	if err != nil {
		t.Fatalf("EvalExpression failed: %v", err)
	}
	if got != "7.0" {
		t.Errorf("EvalExpression = %q, want %q", got, "7.0")
	}
}

// Reset returns the scope pointer to the globals and clears the resolver
// side-table; global definitions survive into the next run.
func TestReset(t *testing.T) {
	var buf bytes.Buffer
	i := New(&buf)

	program, bindings := compileProgram(t, "var a = 1;")
	i.BindLocals(bindings)
	if err := i.Interpret(program); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	i.Reset()

	program, bindings = compileProgram(t, "print a;")
	i.BindLocals(bindings)
	if err := i.Interpret(program); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if buf.String() != "1.0\n" {
		t.Errorf("output = %q, want %q", buf.String(), "1.0\n")
	}
}

// Class methods may reference the class being defined.
func TestMethodReferencesOwnClass(t *testing.T) {
	output := runOK(t, `
		class Factory {
			clone() { return Factory(); }
		}
		print Factory().clone();
	`)
	if output != "Factory instance\n" {
		t.Errorf("output = %q", output)
	}
}

// Package interp provides the runtime values and the tree-walking evaluator
// for Lox.
package interp

import (
	"math"
	"strconv"
	"strings"
)

// Value represents a runtime value in the Lox interpreter.
// All runtime values must implement this interface.
type Value interface {
	// Type returns the type name of the value (e.g., "NUMBER", "STRING")
	Type() string
	// String returns the print representation of the value
	String() string
}

// Callable is implemented by values that can appear as the callee of a call
// expression: user functions, classes, and natives.
type Callable interface {
	Value
	// Arity returns the number of arguments the callable expects.
	Arity() int
	// Call invokes the callable with already-evaluated arguments.
	Call(i *Interpreter, arguments []Value) (Value, error)
}

// NumberValue represents a Lox number. All Lox numbers are IEEE-754 doubles.
type NumberValue struct {
	Value float64
}

// Type returns "NUMBER".
func (n *NumberValue) Type() string {
	return "NUMBER"
}

// String returns the shortest round-trip decimal, with a ".0" suffix when
// the value is integral (1 → "1.0", 1.5 → "1.5").
func (n *NumberValue) String() string {
	return FormatNumber(n.Value)
}

// StringValue represents a string value.
type StringValue struct {
	Value string
}

// Type returns "STRING".
func (s *StringValue) Type() string {
	return "STRING"
}

// String returns the raw characters, without quotes.
func (s *StringValue) String() string {
	return s.Value
}

// BooleanValue represents a boolean value.
type BooleanValue struct {
	Value bool
}

// Type returns "BOOLEAN".
func (b *BooleanValue) Type() string {
	return "BOOLEAN"
}

// String returns "true" or "false".
func (b *BooleanValue) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// NilValue represents the nil value.
type NilValue struct{}

// Type returns "NIL".
func (n *NilValue) Type() string {
	return "NIL"
}

// String returns "nil".
func (n *NilValue) String() string {
	return "nil"
}

// FormatNumber renders a float64 the way Lox prints numbers: the shortest
// decimal that round-trips, with ".0" appended to integral values.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// isTruthy applies the Lox truthiness rule: false and nil are falsey,
// every other value (including 0 and "") is truthy.
func isTruthy(v Value) bool {
	switch v := v.(type) {
	case *NilValue:
		return false
	case *BooleanValue:
		return v.Value
	default:
		return true
	}
}

// valuesEqual compares two values: numbers, strings, booleans and nil by
// value (number equality follows IEEE-754, so NaN != NaN), callables and
// instances by identity.
func valuesEqual(a, b Value) bool {
	switch a := a.(type) {
	case *NilValue:
		_, ok := b.(*NilValue)
		return ok
	case *NumberValue:
		b, ok := b.(*NumberValue)
		return ok && a.Value == b.Value
	case *StringValue:
		b, ok := b.(*StringValue)
		return ok && a.Value == b.Value
	case *BooleanValue:
		b, ok := b.(*BooleanValue)
		return ok && a.Value == b.Value
	default:
		return a == b
	}
}

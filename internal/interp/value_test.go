package interp

import (
	"math"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/pkg/token"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{1, "1.0"},
		{7, "7.0"},
		{0, "0.0"},
		{-3, "-3.0"},
		{1.5, "1.5"},
		{123.456, "123.456"},
		{0.0001, "0.0001"},
		{math.Copysign(0, -1), "-0.0"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			qt.Assert(t, qt.Equals(FormatNumber(tt.value), tt.expected))
		})
	}
}

func TestValueStrings(t *testing.T) {
	class := &ClassValue{Name: "Bagel"}
	instance := NewInstance(class)
	fn := &FunctionValue{Decl: &ast.FunctionDecl{Name: token.NewToken(token.IDENT, "make", token.Position{Line: 1})}}

	tests := []struct {
		value    Value
		expected string
	}{
		{&NumberValue{Value: 1}, "1.0"},
		{&StringValue{Value: "raw chars"}, "raw chars"},
		{&BooleanValue{Value: true}, "true"},
		{&BooleanValue{Value: false}, "false"},
		{&NilValue{}, "nil"},
		{class, "Bagel"},
		{instance, "Bagel instance"},
		{fn, "<fn make>"},
		{newClockNative(), "<native fn>"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			qt.Assert(t, qt.Equals(tt.value.String(), tt.expected))
		})
	}
}

func TestTruthiness(t *testing.T) {
	qt.Assert(t, qt.IsFalse(isTruthy(&NilValue{})))
	qt.Assert(t, qt.IsFalse(isTruthy(&BooleanValue{Value: false})))

	// Everything else is truthy, including 0 and "".
	qt.Assert(t, qt.IsTrue(isTruthy(&BooleanValue{Value: true})))
	qt.Assert(t, qt.IsTrue(isTruthy(&NumberValue{Value: 0})))
	qt.Assert(t, qt.IsTrue(isTruthy(&StringValue{Value: ""})))
	qt.Assert(t, qt.IsTrue(isTruthy(&ClassValue{Name: "C"})))
}

func TestValueEquality(t *testing.T) {
	qt.Assert(t, qt.IsTrue(valuesEqual(&NumberValue{Value: 1}, &NumberValue{Value: 1})))
	qt.Assert(t, qt.IsFalse(valuesEqual(&NumberValue{Value: 1}, &NumberValue{Value: 2})))
	qt.Assert(t, qt.IsTrue(valuesEqual(&StringValue{Value: "a"}, &StringValue{Value: "a"})))
	qt.Assert(t, qt.IsTrue(valuesEqual(&NilValue{}, &NilValue{})))
	qt.Assert(t, qt.IsFalse(valuesEqual(&NilValue{}, &BooleanValue{Value: false})))
	qt.Assert(t, qt.IsFalse(valuesEqual(&NumberValue{Value: 1}, &StringValue{Value: "1"})))
}

// Number equality follows IEEE-754: NaN != NaN, +0 == -0.
func TestIEEEEquality(t *testing.T) {
	nan := &NumberValue{Value: math.NaN()}
	qt.Assert(t, qt.IsFalse(valuesEqual(nan, nan)))

	posZero := &NumberValue{Value: 0}
	negZero := &NumberValue{Value: math.Copysign(0, -1)}
	qt.Assert(t, qt.IsTrue(valuesEqual(posZero, negZero)))
}

// Instances and callables compare by identity, not structure.
func TestIdentityEquality(t *testing.T) {
	class := &ClassValue{Name: "C"}
	a := NewInstance(class)
	b := NewInstance(class)

	qt.Assert(t, qt.IsTrue(valuesEqual(a, a)))
	qt.Assert(t, qt.IsFalse(valuesEqual(a, b)))

	other := &ClassValue{Name: "C"}
	qt.Assert(t, qt.IsTrue(valuesEqual(class, class)))
	qt.Assert(t, qt.IsFalse(valuesEqual(class, other)))
}

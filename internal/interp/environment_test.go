package interp

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestDefineAndGet(t *testing.T) {
	env := NewEnvironment()
	env.Define("a", &NumberValue{Value: 1})

	got, ok := env.Get("a")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(got.(*NumberValue).Value, 1.0))
}

func TestGetUndefined(t *testing.T) {
	env := NewEnvironment()

	_, ok := env.Get("missing")
	qt.Assert(t, qt.IsFalse(ok))
}

// Defining a name overwrites any prior same-name entry in that scope.
func TestDefineOverwrites(t *testing.T) {
	env := NewEnvironment()
	env.Define("a", &NumberValue{Value: 1})
	env.Define("a", &StringValue{Value: "two"})

	got, ok := env.Get("a")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(got.(*StringValue).Value, "two"))
}

func TestGetWalksEnclosingScopes(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("a", &NumberValue{Value: 1})
	inner := NewEnclosedEnvironment(NewEnclosedEnvironment(outer))

	got, ok := inner.Get("a")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(got.(*NumberValue).Value, 1.0))
}

func TestAssignWalksEnclosingScopes(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("a", &NumberValue{Value: 1})
	inner := NewEnclosedEnvironment(outer)

	qt.Assert(t, qt.IsTrue(inner.Assign("a", &NumberValue{Value: 2})))

	got, _ := outer.Get("a")
	qt.Assert(t, qt.Equals(got.(*NumberValue).Value, 2.0))
}

func TestAssignUndefinedFails(t *testing.T) {
	env := NewEnclosedEnvironment(NewEnvironment())

	qt.Assert(t, qt.IsFalse(env.Assign("missing", &NilValue{})))
}

// Lookup with a distance returns the binding in exactly the d-th enclosing
// environment, skipping shadowing entries in between.
func TestGetAtDistance(t *testing.T) {
	global := NewEnvironment()
	global.Define("x", &StringValue{Value: "global"})

	middle := NewEnclosedEnvironment(global)
	middle.Define("x", &StringValue{Value: "middle"})

	inner := NewEnclosedEnvironment(middle)
	inner.Define("x", &StringValue{Value: "inner"})

	for distance, want := range map[int]string{0: "inner", 1: "middle", 2: "global"} {
		got, ok := inner.GetAt(distance, "x")
		qt.Assert(t, qt.IsTrue(ok))
		qt.Assert(t, qt.Equals(got.(*StringValue).Value, want))
	}
}

func TestAssignAtWritesDirectly(t *testing.T) {
	global := NewEnvironment()
	global.Define("x", &NumberValue{Value: 1})

	middle := NewEnclosedEnvironment(global)
	middle.Define("x", &NumberValue{Value: 2})

	inner := NewEnclosedEnvironment(middle)
	inner.AssignAt(2, "x", &NumberValue{Value: 99})

	got, _ := global.Get("x")
	qt.Assert(t, qt.Equals(got.(*NumberValue).Value, 99.0))

	// The shadowing binding in the middle scope is untouched.
	shadow, _ := middle.GetAt(0, "x")
	qt.Assert(t, qt.Equals(shadow.(*NumberValue).Value, 2.0))
}

// Two closures can share one environment; a write through either handle is
// seen by both.
func TestSharedEnvironment(t *testing.T) {
	shared := NewEnclosedEnvironment(NewEnvironment())
	shared.Define("count", &NumberValue{Value: 0})

	handleA := NewEnclosedEnvironment(shared)
	handleB := NewEnclosedEnvironment(shared)

	handleA.Assign("count", &NumberValue{Value: 1})

	got, _ := handleB.Get("count")
	qt.Assert(t, qt.Equals(got.(*NumberValue).Value, 1.0))
}

func TestOuter(t *testing.T) {
	outer := NewEnvironment()
	inner := NewEnclosedEnvironment(outer)

	qt.Assert(t, qt.Equals(inner.Outer(), outer))
	qt.Assert(t, qt.IsNil(outer.Outer()))
}

package interp

import (
	"time"
)

// NativeFunction wraps a Go function as a Lox callable.
type NativeFunction struct {
	fn    func(i *Interpreter, arguments []Value) (Value, error)
	name  string
	arity int
}

// Type returns "NATIVE".
func (n *NativeFunction) Type() string {
	return "NATIVE"
}

// String returns "<native fn>".
func (n *NativeFunction) String() string {
	return "<native fn>"
}

// Arity returns the number of arguments the native expects.
func (n *NativeFunction) Arity() int {
	return n.arity
}

// Call invokes the wrapped Go function.
func (n *NativeFunction) Call(i *Interpreter, arguments []Value) (Value, error) {
	return n.fn(i, arguments)
}

// newClockNative returns the `clock` builtin: current wall time as
// seconds since epoch, with microsecond precision.
func newClockNative() *NativeFunction {
	return &NativeFunction{
		name:  "clock",
		arity: 0,
		fn: func(_ *Interpreter, _ []Value) (Value, error) {
			return &NumberValue{Value: float64(time.Now().UnixMicro()) / 1e6}, nil
		},
	}
}

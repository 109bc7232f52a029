package interp

import (
	"github.com/cwbudde/go-lox/pkg/token"
)

// ClassValue represents a class: a name, an optional superclass reference,
// and a method table. Calling the class constructs an instance.
type ClassValue struct {
	Name       string
	Superclass *ClassValue
	Methods    map[string]*FunctionValue
}

// Type returns "CLASS".
func (c *ClassValue) Type() string {
	return "CLASS"
}

// String returns the class name.
func (c *ClassValue) String() string {
	return c.Name
}

// FindMethod looks the name up in this class, then walks the superclass
// chain. Returns nil when no class in the hierarchy defines it.
func (c *ClassValue) FindMethod(name string) *FunctionValue {
	if method, ok := c.Methods[name]; ok {
		return method
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Arity returns the init method's arity, or 0 when the class has no init.
func (c *ClassValue) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call allocates an instance and, when the class defines an init method,
// runs it bound to the new instance with the given arguments.
func (c *ClassValue) Call(i *Interpreter, arguments []Value) (Value, error) {
	instance := NewInstance(c)

	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(instance).Call(i, arguments); err != nil {
			return nil, err
		}
	}

	return instance, nil
}

// InstanceValue represents a class instance: a class reference plus a
// mutable field table.
type InstanceValue struct {
	Class  *ClassValue
	Fields map[string]Value
}

// NewInstance allocates an instance of the given class with no fields.
func NewInstance(class *ClassValue) *InstanceValue {
	return &InstanceValue{
		Class:  class,
		Fields: make(map[string]Value),
	}
}

// Type returns "INSTANCE".
func (inst *InstanceValue) Type() string {
	return "INSTANCE"
}

// String returns "ClassName instance".
func (inst *InstanceValue) String() string {
	return inst.Class.Name + " instance"
}

// Get resolves a property: instance fields shadow methods, and a method hit
// is returned bound to this instance.
func (inst *InstanceValue) Get(name token.Token) (Value, error) {
	if value, ok := inst.Fields[name.Literal]; ok {
		return value, nil
	}

	if method := inst.Class.FindMethod(name.Literal); method != nil {
		return method.Bind(inst), nil
	}

	return nil, newRuntimeError(name, "Undefined property '"+name.Literal+"'.")
}

// Set writes a field. Fields spring into existence on first write.
func (inst *InstanceValue) Set(name token.Token, value Value) {
	inst.Fields[name.Literal] = value
}

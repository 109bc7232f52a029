package interp

import (
	"fmt"

	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/pkg/token"
)

// evalExpression evaluates a single expression node.
func (i *Interpreter) evalExpression(expr ast.Expression) (Value, error) {
	switch expr := expr.(type) {
	case *ast.NumberLiteral:
		return &NumberValue{Value: expr.Value}, nil
	case *ast.StringLiteral:
		return &StringValue{Value: expr.Value}, nil
	case *ast.BooleanLiteral:
		return &BooleanValue{Value: expr.Value}, nil
	case *ast.NilLiteral:
		return &NilValue{}, nil

	case *ast.GroupingExpression:
		return i.evalExpression(expr.Expression)

	case *ast.UnaryExpression:
		return i.evalUnary(expr)

	case *ast.BinaryExpression:
		return i.evalBinary(expr)

	case *ast.LogicalExpression:
		return i.evalLogical(expr)

	case *ast.Identifier:
		return i.lookupVariable(expr.Token, expr)

	case *ast.AssignExpression:
		return i.evalAssign(expr)

	case *ast.CallExpression:
		return i.evalCall(expr)

	case *ast.GetExpression:
		return i.evalGet(expr)

	case *ast.SetExpression:
		return i.evalSet(expr)

	case *ast.ThisExpression:
		return i.lookupVariable(expr.Keyword, expr)

	case *ast.SuperExpression:
		return i.evalSuper(expr)

	default:
		return nil, fmt.Errorf("interp: unhandled expression type %T", expr)
	}
}

// evalUnary evaluates prefix - and !.
func (i *Interpreter) evalUnary(expr *ast.UnaryExpression) (Value, error) {
	right, err := i.evalExpression(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case token.MINUS:
		operand, ok := right.(*NumberValue)
		if !ok {
			return nil, newRuntimeError(expr.Operator, "Operand must be a number.")
		}
		return &NumberValue{Value: -operand.Value}, nil

	case token.EXCLAMATION:
		return &BooleanValue{Value: !isTruthy(right)}, nil
	}

	return nil, fmt.Errorf("interp: unhandled unary operator %s", expr.Operator.Type)
}

// evalBinary evaluates arithmetic, comparison and equality operators.
// Both operands are evaluated before any type checking.
func (i *Interpreter) evalBinary(expr *ast.BinaryExpression) (Value, error) {
	left, err := i.evalExpression(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpression(expr.Right)
	if err != nil {
		return nil, err
	}

	op := expr.Operator
	switch op.Type {
	case token.PLUS:
		if ln, ok := left.(*NumberValue); ok {
			if rn, ok := right.(*NumberValue); ok {
				return &NumberValue{Value: ln.Value + rn.Value}, nil
			}
		}
		if ls, ok := left.(*StringValue); ok {
			if rs, ok := right.(*StringValue); ok {
				return &StringValue{Value: ls.Value + rs.Value}, nil
			}
		}
		return nil, newRuntimeError(op, "Operands must be two numbers or two strings.")

	case token.MINUS:
		ln, rn, err := numberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return &NumberValue{Value: ln - rn}, nil

	case token.ASTERISK:
		ln, rn, err := numberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return &NumberValue{Value: ln * rn}, nil

	case token.SLASH:
		ln, rn, err := numberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		// IEEE-754 division: dividing by zero yields ±Inf or NaN, never an error.
		return &NumberValue{Value: ln / rn}, nil

	case token.GREATER:
		ln, rn, err := numberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return &BooleanValue{Value: ln > rn}, nil

	case token.GREATER_EQ:
		ln, rn, err := numberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return &BooleanValue{Value: ln >= rn}, nil

	case token.LESS:
		ln, rn, err := numberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return &BooleanValue{Value: ln < rn}, nil

	case token.LESS_EQ:
		ln, rn, err := numberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return &BooleanValue{Value: ln <= rn}, nil

	case token.EQ_EQ:
		return &BooleanValue{Value: valuesEqual(left, right)}, nil

	case token.EXCL_EQ:
		return &BooleanValue{Value: !valuesEqual(left, right)}, nil
	}

	return nil, fmt.Errorf("interp: unhandled binary operator %s", op.Type)
}

// numberOperands extracts both operands as numbers or fails with the
// operator's type-mismatch diagnostic.
func numberOperands(op token.Token, left, right Value) (float64, float64, error) {
	ln, ok := left.(*NumberValue)
	if !ok {
		return 0, 0, newRuntimeError(op, "Operand must be a number.")
	}
	rn, ok := right.(*NumberValue)
	if !ok {
		return 0, 0, newRuntimeError(op, "Operand must be a number.")
	}
	return ln.Value, rn.Value, nil
}

// evalLogical short-circuits: `or` yields the left operand when truthy,
// `and` when falsey. The result is the operand itself, never a coerced
// boolean.
func (i *Interpreter) evalLogical(expr *ast.LogicalExpression) (Value, error) {
	left, err := i.evalExpression(expr.Left)
	if err != nil {
		return nil, err
	}

	if expr.Operator.Type == token.OR {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}

	return i.evalExpression(expr.Right)
}

// evalAssign assigns through the resolver's recorded distance, or to the
// global scope when the target resolved to no local.
func (i *Interpreter) evalAssign(expr *ast.AssignExpression) (Value, error) {
	value, err := i.evalExpression(expr.Value)
	if err != nil {
		return nil, err
	}

	if distance, ok := i.bindings[expr]; ok {
		i.env.AssignAt(distance, expr.Name.Literal, value)
	} else if !i.globals.Assign(expr.Name.Literal, value) {
		return nil, newRuntimeError(expr.Name, "Undefined variable '"+expr.Name.Literal+"'.")
	}

	return value, nil
}

// evalCall evaluates the callee, then the arguments left to right, then
// dispatches through the Callable contract.
func (i *Interpreter) evalCall(expr *ast.CallExpression) (Value, error) {
	callee, err := i.evalExpression(expr.Callee)
	if err != nil {
		return nil, err
	}

	arguments := make([]Value, 0, len(expr.Arguments))
	for _, arg := range expr.Arguments {
		value, err := i.evalExpression(arg)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, value)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(expr.Paren, "Can only call functions and classes.")
	}

	if len(arguments) != callable.Arity() {
		return nil, newRuntimeError(expr.Paren, fmt.Sprintf(
			"Expected %d arguments but got %d.", callable.Arity(), len(arguments)))
	}

	return callable.Call(i, arguments)
}

// evalGet resolves a property access on an instance.
func (i *Interpreter) evalGet(expr *ast.GetExpression) (Value, error) {
	object, err := i.evalExpression(expr.Object)
	if err != nil {
		return nil, err
	}

	instance, ok := object.(*InstanceValue)
	if !ok {
		return nil, newRuntimeError(expr.Name, "Only instances have properties.")
	}

	return instance.Get(expr.Name)
}

// evalSet writes a field on an instance. The object is checked before the
// value is evaluated.
func (i *Interpreter) evalSet(expr *ast.SetExpression) (Value, error) {
	object, err := i.evalExpression(expr.Object)
	if err != nil {
		return nil, err
	}

	instance, ok := object.(*InstanceValue)
	if !ok {
		return nil, newRuntimeError(expr.Name, "Only instances have fields.")
	}

	value, err := i.evalExpression(expr.Value)
	if err != nil {
		return nil, err
	}

	instance.Set(expr.Name, value)
	return value, nil
}

// evalSuper finds the method in the superclass hierarchy and binds it to
// the current instance. The resolver's distance locates the scope holding
// "super"; "this" lives one scope inward.
func (i *Interpreter) evalSuper(expr *ast.SuperExpression) (Value, error) {
	distance := i.bindings[expr]

	superValue, _ := i.env.GetAt(distance, "super")
	superclass, ok := superValue.(*ClassValue)
	if !ok {
		return nil, newRuntimeError(expr.Keyword, "Can't use 'super' in a class with no superclass.")
	}

	thisValue, _ := i.env.GetAt(distance-1, "this")
	instance, ok := thisValue.(*InstanceValue)
	if !ok {
		return nil, newRuntimeError(expr.Keyword, "Can't use 'super' outside of a class.")
	}

	method := superclass.FindMethod(expr.Method.Literal)
	if method == nil {
		return nil, newRuntimeError(expr.Method, "Undefined property '"+expr.Method.Literal+"'.")
	}

	return method.Bind(instance), nil
}

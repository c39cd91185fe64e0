package expr

// Helpers for assembling trees with inferred result types.

// Const returns a constant whose type is inferred from the Go value.
func Const(v any) *Constant {
	var t *Type
	switch x := v.(type) {
	case nil:
		t = Object
	case bool:
		t = Bool
	case int, int32, int16, int8:
		t = Int
	case int64:
		t = Long
	case uint, uint32, uint16:
		t = UInt
	case uint64:
		t = ULong
	case uint8:
		t = Byte
	case float32:
		t = Float
	case float64:
		t = Double
	case string:
		t = String
	case *Type:
		t = TypeOfType
	case EnumValue:
		t = x.Enum
	default:
		t = Object
	}
	return &Constant{Value: v, Typ: t}
}

// Var returns a new variable or parameter.
func Var(name string, t *Type) *Parameter { return &Parameter{Name: name, Typ: t} }

// NewLabel returns a new jump target.
func NewLabel(name string, t *Type) *LabelTarget { return &LabelTarget{Name: name, Typ: t} }

// MakeBinary infers the result type of a binary operation.
func MakeBinary(op BinaryOp, left, right Node) *Binary {
	t := left.Type()
	switch op {
	case Equal, NotEqual, LessThan, LessThanOrEqual, GreaterThan, GreaterThanOrEqual, AndAlso, OrElse:
		t = Bool
	case Coalesce:
		if t != nil && t.Kind == TypeNullable {
			t = t.Elem
		}
	case ArrayIndex:
		if t != nil && t.Elem != nil {
			t = t.Elem
		}
	}
	return &Binary{Op: op, Left: left, Right: right, Typ: t}
}

// MakeUnary infers the result type of a unary operation.
func MakeUnary(op UnaryOp, operand Node) *Unary {
	t := operand.Type()
	switch op {
	case IsTrue, IsFalse:
		t = Bool
	case ArrayLength:
		t = Int
	}
	return &Unary{Op: op, Operand: operand, Typ: t}
}

// AssignTo returns a plain assignment.
func AssignTo(target, value Node) *Assign { return &Assign{Op: AssignPlain, Target: target, Value: value} }

// MakeBlock returns a block typed by its last expression.
func MakeBlock(vars []*Parameter, exprs ...Node) *Block {
	return &Block{Variables: vars, Expressions: exprs}
}

// IfThen returns a void conditional without an alternative.
func IfThen(test, ifTrue Node) *Conditional {
	return &Conditional{Test: test, IfTrue: ifTrue, Typ: Void}
}

// IfThenElse returns a void conditional with an alternative.
func IfThenElse(test, ifTrue, ifFalse Node) *Conditional {
	return &Conditional{Test: test, IfTrue: ifTrue, IfFalse: ifFalse, Typ: Void}
}

// Ternary returns a value-producing conditional.
func Ternary(test, ifTrue, ifFalse Node) *Conditional {
	return &Conditional{Test: test, IfTrue: ifTrue, IfFalse: ifFalse, Typ: ifTrue.Type()}
}

// Return jumps to target carrying value, which may be nil.
func Return(target *LabelTarget, value Node) *Goto {
	return &Goto{Jump: JumpReturn, Target: target, Value: value}
}

// Break jumps to a loop's break target.
func Break(target *LabelTarget) *Goto { return &Goto{Jump: JumpBreak, Target: target} }

// Continue jumps to a loop's continue target.
func Continue(target *LabelTarget) *Goto { return &Goto{Jump: JumpContinue, Target: target} }

// GotoLabel jumps to an arbitrary label.
func GotoLabel(target *LabelTarget) *Goto { return &Goto{Jump: JumpGoto, Target: target} }

// StaticMethod describes a static method whose parameters take the types
// of args.
func StaticMethod(declaring *Type, name string, result *Type, args ...Node) *Method {
	return &Method{Name: name, Declaring: declaring, Static: true, Params: paramsFor(args), Result: result}
}

// InstanceMethod describes an instance method whose parameters take the
// types of args.
func InstanceMethod(declaring *Type, name string, result *Type, args ...Node) *Method {
	return &Method{Name: name, Declaring: declaring, Params: paramsFor(args), Result: result}
}

// CallStatic returns a static method call.
func CallStatic(declaring *Type, name string, result *Type, args ...Node) *Call {
	return &Call{Method: StaticMethod(declaring, name, result, args...), Args: args}
}

// CallMethod returns an instance method call on obj.
func CallMethod(obj Node, name string, result *Type, args ...Node) *Call {
	return &Call{Object: obj, Method: InstanceMethod(obj.Type(), name, result, args...), Args: args}
}

// Property returns an instance member access.
func Property(obj Node, member string, t *Type) *MemberAccess {
	return &MemberAccess{Object: obj, Member: member, Declaring: obj.Type(), Typ: t}
}

func paramsFor(args []Node) []Param {
	params := make([]Param, len(args))
	for i, a := range args {
		params[i] = Param{Type: a.Type()}
		if p, ok := a.(*Parameter); ok && p.ByRef {
			params[i].Mode = ByRef
		}
	}
	return params
}

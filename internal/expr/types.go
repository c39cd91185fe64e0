package expr

import "strings"

// TypeKind classifies a Type.
type TypeKind int

const (
	TypeVoid TypeKind = iota
	TypeBool
	TypeChar
	TypeByte
	TypeShort
	TypeInt
	TypeLong
	TypeUInt
	TypeULong
	TypeFloat
	TypeDouble
	TypeDecimal
	TypeString
	TypeObject
	TypeClass
	TypeStruct
	TypeInterface
	TypeEnum
	TypeArray
	TypeNullable
	TypeDelegate
	TypeAnonymous
	TypeGenericParam
)

var primitiveNames = map[TypeKind]string{
	TypeVoid:    "void",
	TypeBool:    "bool",
	TypeChar:    "char",
	TypeByte:    "byte",
	TypeShort:   "short",
	TypeInt:     "int",
	TypeLong:    "long",
	TypeUInt:    "uint",
	TypeULong:   "ulong",
	TypeFloat:   "float",
	TypeDouble:  "double",
	TypeDecimal: "decimal",
	TypeString:  "string",
	TypeObject:  "object",
}

// Type describes the declared type of a node. Types are values built once
// and never mutated.
type Type struct {
	Kind TypeKind
	// Name is set for named, delegate and generic-parameter types.
	Name string
	// Args holds generic arguments. For Func delegates the last argument is
	// the result type.
	Args []*Type
	// Elem is the element type of arrays and nullables.
	Elem *Type
	// Rank is the number of array dimensions.
	Rank int
	// Base is the base class, used to walk exception hierarchies.
	Base *Type
	// Members names the properties of an anonymous type.
	Members []string
}

var (
	Void    = &Type{Kind: TypeVoid}
	Bool    = &Type{Kind: TypeBool}
	Char    = &Type{Kind: TypeChar}
	Byte    = &Type{Kind: TypeByte}
	Short   = &Type{Kind: TypeShort}
	Int     = &Type{Kind: TypeInt}
	Long    = &Type{Kind: TypeLong}
	UInt    = &Type{Kind: TypeUInt}
	ULong   = &Type{Kind: TypeULong}
	Float   = &Type{Kind: TypeFloat}
	Double  = &Type{Kind: TypeDouble}
	Decimal = &Type{Kind: TypeDecimal}
	String  = &Type{Kind: TypeString}
	Object  = &Type{Kind: TypeObject}

	// Exception is the root of the exception hierarchy.
	Exception = &Type{Kind: TypeClass, Name: "Exception"}
	// TypeOfType is the type of typeof(...) constants.
	TypeOfType = &Type{Kind: TypeClass, Name: "Type"}
)

// Class returns a named reference type.
func Class(name string, args ...*Type) *Type {
	return &Type{Kind: TypeClass, Name: name, Args: args}
}

// Struct returns a named value type.
func Struct(name string, args ...*Type) *Type {
	return &Type{Kind: TypeStruct, Name: name, Args: args}
}

// Interface returns a named interface type.
func Interface(name string, args ...*Type) *Type {
	return &Type{Kind: TypeInterface, Name: name, Args: args}
}

// Enum returns a named enum type.
func Enum(name string) *Type { return &Type{Kind: TypeEnum, Name: name} }

// GenericParam returns an open generic parameter such as T.
func GenericParam(name string) *Type { return &Type{Kind: TypeGenericParam, Name: name} }

// ExceptionType returns an exception class deriving from base, or from
// Exception when base is nil.
func ExceptionType(name string, base *Type) *Type {
	if base == nil {
		base = Exception
	}
	return &Type{Kind: TypeClass, Name: name, Base: base}
}

// ArrayOf returns a single-dimensional array of elem.
func ArrayOf(elem *Type) *Type { return &Type{Kind: TypeArray, Elem: elem, Rank: 1} }

// ArrayOfRank returns a rank-dimensional array of elem.
func ArrayOfRank(elem *Type, rank int) *Type {
	if rank < 1 {
		rank = 1
	}
	return &Type{Kind: TypeArray, Elem: elem, Rank: rank}
}

// NullableOf returns the nullable form of a value type.
func NullableOf(elem *Type) *Type { return &Type{Kind: TypeNullable, Elem: elem} }

// Func returns a Func delegate type; the last argument is the result.
func Func(args ...*Type) *Type {
	return &Type{Kind: TypeDelegate, Name: "Func", Args: args}
}

// Action returns a void-returning delegate type.
func Action(args ...*Type) *Type {
	return &Type{Kind: TypeDelegate, Name: "Action", Args: args}
}

// Anonymous returns an anonymous type with the given member names.
func Anonymous(members ...string) *Type {
	return &Type{Kind: TypeAnonymous, Members: members}
}

// IsVoid reports whether t is nil or void.
func (t *Type) IsVoid() bool { return t == nil || t.Kind == TypeVoid }

// IsPrimitive reports whether t has a C# keyword name.
func (t *Type) IsPrimitive() bool {
	if t == nil {
		return false
	}
	_, ok := primitiveNames[t.Kind]
	return ok
}

// IsNumeric reports whether t is a numeric primitive.
func (t *Type) IsNumeric() bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case TypeByte, TypeShort, TypeInt, TypeLong, TypeUInt, TypeULong, TypeFloat, TypeDouble, TypeDecimal:
		return true
	}
	return false
}

// IsReference reports whether the default value of t is null.
func (t *Type) IsReference() bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case TypeString, TypeObject, TypeClass, TypeInterface, TypeArray, TypeNullable, TypeDelegate, TypeAnonymous:
		return true
	}
	return false
}

// IsException reports whether t is Exception or derives from it.
func (t *Type) IsException() bool {
	for c := t; c != nil; c = c.Base {
		if c.Kind == TypeClass && c.Name == Exception.Name && c.Base == nil {
			return true
		}
	}
	return false
}

// IsBaseException reports whether t is exactly the root exception type.
func (t *Type) IsBaseException() bool {
	return t != nil && t.Kind == TypeClass && t.Name == Exception.Name && t.Base == nil && len(t.Args) == 0
}

// DelegateResult returns the result type of a delegate type, or nil when
// t is not a delegate.
func (t *Type) DelegateResult() *Type {
	if t == nil || t.Kind != TypeDelegate {
		return nil
	}
	if t.Name == "Func" && len(t.Args) > 0 {
		return t.Args[len(t.Args)-1]
	}
	return Void
}

// Equal reports structural equality.
func (t *Type) Equal(o *Type) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil {
		return false
	}
	if t.Kind != o.Kind || t.Name != o.Name || t.Rank != o.Rank || len(t.Args) != len(o.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	if (t.Elem != nil || o.Elem != nil) && !t.Elem.Equal(o.Elem) {
		return false
	}
	if t.Kind == TypeAnonymous {
		return strings.Join(t.Members, ",") == strings.Join(o.Members, ",")
	}
	return true
}

// Contains reports whether o occurs anywhere within t, including t itself.
func (t *Type) Contains(o *Type) bool {
	if t == nil {
		return false
	}
	if t.Equal(o) {
		return true
	}
	for _, a := range t.Args {
		if a.Contains(o) {
			return true
		}
	}
	return t.Elem.Contains(o)
}

// String returns the C#-style name of t.
func (t *Type) String() string {
	if t == nil {
		return "void"
	}
	if name, ok := primitiveNames[t.Kind]; ok {
		return name
	}
	switch t.Kind {
	case TypeArray:
		return t.Elem.String() + "[" + strings.Repeat(",", t.Rank-1) + "]"
	case TypeNullable:
		return t.Elem.String() + "?"
	case TypeAnonymous:
		return "AnonymousType"
	}
	if len(t.Args) == 0 {
		return t.Name
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return t.Name + "<" + strings.Join(args, ", ") + ">"
}

// ParamMode is the passing mode of a method parameter.
type ParamMode int

const (
	ByValue ParamMode = iota
	ByRef
	Out
)

// Param describes a method parameter.
type Param struct {
	Name string
	Type *Type
	Mode ParamMode
}

// Method describes the target of a Call.
type Method struct {
	Name      string
	Declaring *Type
	Static    bool
	// Extension marks a static method invoked with instance syntax on its
	// first argument.
	Extension   bool
	GenericArgs []*Type
	Params      []Param
	Result      *Type
}

// GenericArgsInferable reports whether every generic argument of m occurs in
// one of its parameter types, so call sites can omit them.
func (m *Method) GenericArgsInferable() bool {
	for _, g := range m.GenericArgs {
		found := false
		for _, p := range m.Params {
			if p.Type.Contains(g) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// EnumValue is a Constant value naming an enum member.
type EnumValue struct {
	Enum *Type
	Name string
}

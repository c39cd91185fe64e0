package expr

// Kind identifies the variant of a Node.
type Kind int

const (
	KindExtension Kind = iota
	KindConstant
	KindDefault
	KindParameter
	KindUnary
	KindBinary
	KindAssign
	KindConditional
	KindBlock
	KindLoop
	KindLabel
	KindGoto
	KindCall
	KindInvoke
	KindNew
	KindNewArray
	KindArrayInit
	KindListInit
	KindMemberInit
	KindMemberAccess
	KindIndex
	KindLambda
	KindQuote
	KindSwitch
	KindTry
	KindThrow
	KindTypeTest
	KindCast
	KindComment
)

var kindNames = [...]string{
	KindExtension:    "Extension",
	KindConstant:     "Constant",
	KindDefault:      "Default",
	KindParameter:    "Parameter",
	KindUnary:        "Unary",
	KindBinary:       "Binary",
	KindAssign:       "Assign",
	KindConditional:  "Conditional",
	KindBlock:        "Block",
	KindLoop:         "Loop",
	KindLabel:        "Label",
	KindGoto:         "Goto",
	KindCall:         "Call",
	KindInvoke:       "Invoke",
	KindNew:          "New",
	KindNewArray:     "NewArray",
	KindArrayInit:    "ArrayInit",
	KindListInit:     "ListInit",
	KindMemberInit:   "MemberInit",
	KindMemberAccess: "MemberAccess",
	KindIndex:        "Index",
	KindLambda:       "Lambda",
	KindQuote:        "Quote",
	KindSwitch:       "Switch",
	KindTry:          "Try",
	KindThrow:        "Throw",
	KindTypeTest:     "TypeTest",
	KindCast:         "Cast",
	KindComment:      "Comment",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// UnaryOp is the operator of a Unary node.
type UnaryOp int

const (
	Negate UnaryOp = iota
	NegateChecked
	UnaryPlus
	Not
	OnesComplement
	IsTrue
	IsFalse
	PreIncrementAssign
	PreDecrementAssign
	PostIncrementAssign
	PostDecrementAssign
	Increment
	Decrement
	ArrayLength
)

// BinaryOp is the operator of a Binary node.
type BinaryOp int

const (
	Add BinaryOp = iota
	AddChecked
	Subtract
	SubtractChecked
	Multiply
	MultiplyChecked
	Divide
	Modulo
	Power
	And
	Or
	ExclusiveOr
	AndAlso
	OrElse
	Equal
	NotEqual
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
	LeftShift
	RightShift
	Coalesce
	ArrayIndex
)

// Checked reports whether the operator is an overflow-checked variant.
func (op BinaryOp) Checked() bool {
	switch op {
	case AddChecked, SubtractChecked, MultiplyChecked:
		return true
	}
	return false
}

// AssignOp is the operator of an Assign node.
type AssignOp int

const (
	AssignPlain AssignOp = iota
	AddAssign
	AddAssignChecked
	SubtractAssign
	SubtractAssignChecked
	MultiplyAssign
	MultiplyAssignChecked
	DivideAssign
	ModuloAssign
	PowerAssign
	AndAssign
	OrAssign
	ExclusiveOrAssign
	LeftShiftAssign
	RightShiftAssign
)

// Checked reports whether the operator is an overflow-checked variant.
func (op AssignOp) Checked() bool {
	switch op {
	case AddAssignChecked, SubtractAssignChecked, MultiplyAssignChecked:
		return true
	}
	return false
}

// JumpKind distinguishes the flavours of a Goto node.
type JumpKind int

const (
	JumpGoto JumpKind = iota
	JumpReturn
	JumpBreak
	JumpContinue
)

// TypeTestOp is the operator of a TypeTest node.
type TypeTestOp int

const (
	TypeIs TypeTestOp = iota
	TypeEqual
)

// CastOp is the operator of a Cast node.
type CastOp int

const (
	Convert CastOp = iota
	ConvertChecked
	TypeAs
	Unbox
)

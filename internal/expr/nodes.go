package expr

import "fmt"

// Node is an element of an executable-code tree. Nodes are immutable once
// built; a subtree may be shared between parents.
type Node interface {
	Kind() Kind
	Type() *Type
}

// Reducible is implemented by extension nodes that can be expressed in
// terms of the built-in node kinds.
type Reducible interface {
	Node
	Reduce() Node
}

// Constant is a literal value. Value may be nil, a Go scalar, a *Type
// (rendered as typeof) or an EnumValue.
type Constant struct {
	Value any
	Typ   *Type
}

func (n *Constant) Kind() Kind  { return KindConstant }
func (n *Constant) Type() *Type { return n.Typ }

// Default is the default value of a type.
type Default struct{ Typ *Type }

func (n *Default) Kind() Kind  { return KindDefault }
func (n *Default) Type() *Type { return n.Typ }

// Parameter is a lambda parameter or a block-scoped variable. Identity is
// by pointer.
type Parameter struct {
	Name  string
	Typ   *Type
	ByRef bool
}

func (n *Parameter) Kind() Kind  { return KindParameter }
func (n *Parameter) Type() *Type { return n.Typ }

type Unary struct {
	Op      UnaryOp
	Operand Node
	Typ     *Type
}

func (n *Unary) Kind() Kind  { return KindUnary }
func (n *Unary) Type() *Type { return n.Typ }

type Binary struct {
	Op          BinaryOp
	Left, Right Node
	Typ         *Type
}

func (n *Binary) Kind() Kind  { return KindBinary }
func (n *Binary) Type() *Type { return n.Typ }

type Assign struct {
	Op     AssignOp
	Target Node
	Value  Node
}

func (n *Assign) Kind() Kind  { return KindAssign }
func (n *Assign) Type() *Type { return n.Target.Type() }

// Conditional branches on Test. IfFalse may be nil.
type Conditional struct {
	Test, IfTrue, IfFalse Node
	Typ                   *Type
}

func (n *Conditional) Kind() Kind  { return KindConditional }
func (n *Conditional) Type() *Type { return n.Typ }

// Block is a sequence of expressions with locally scoped variables. Its
// value is the value of the last expression.
type Block struct {
	Variables   []*Parameter
	Expressions []Node
	Typ         *Type
}

func (n *Block) Kind() Kind { return KindBlock }
func (n *Block) Type() *Type {
	if n.Typ != nil {
		return n.Typ
	}
	if len(n.Expressions) == 0 {
		return Void
	}
	return n.Expressions[len(n.Expressions)-1].Type()
}

// LabelTarget identifies a jump destination. Identity is by pointer.
type LabelTarget struct {
	Name string
	Typ  *Type
}

// Loop repeats Body until a jump to Break.
type Loop struct {
	Body            Node
	Break, Continue *LabelTarget
}

func (n *Loop) Kind() Kind { return KindLoop }
func (n *Loop) Type() *Type {
	if n.Break != nil && n.Break.Typ != nil {
		return n.Break.Typ
	}
	return Void
}

// Label marks a jump destination; Default is its value when reached by
// falling through.
type Label struct {
	Target  *LabelTarget
	Default Node
}

func (n *Label) Kind() Kind { return KindLabel }
func (n *Label) Type() *Type {
	if n.Target != nil && n.Target.Typ != nil {
		return n.Target.Typ
	}
	return Void
}

// Goto is a jump: goto, return, break or continue.
type Goto struct {
	Jump   JumpKind
	Target *LabelTarget
	Value  Node
}

func (n *Goto) Kind() Kind  { return KindGoto }
func (n *Goto) Type() *Type { return Void }

// Call invokes Method on Object, or statically when Object is nil.
type Call struct {
	Object Node
	Method *Method
	Args   []Node
}

func (n *Call) Kind() Kind { return KindCall }
func (n *Call) Type() *Type {
	if n.Method == nil || n.Method.Result == nil {
		return Void
	}
	return n.Method.Result
}

// Invoke calls a delegate.
type Invoke struct {
	Target Node
	Args   []Node
}

func (n *Invoke) Kind() Kind { return KindInvoke }
func (n *Invoke) Type() *Type {
	if r := n.Target.Type().DelegateResult(); r != nil {
		return r
	}
	return Object
}

// New constructs Typ. Members names the properties initialised by Args for
// anonymous types.
type New struct {
	Typ     *Type
	Args    []Node
	Members []string
}

func (n *New) Kind() Kind  { return KindNew }
func (n *New) Type() *Type { return n.Typ }

// NewArray allocates an array with the given dimension lengths.
type NewArray struct {
	Elem   *Type
	Bounds []Node
}

func (n *NewArray) Kind() Kind  { return KindNewArray }
func (n *NewArray) Type() *Type { return ArrayOfRank(n.Elem, len(n.Bounds)) }

// ArrayInit builds a one-dimensional array from Items.
type ArrayInit struct {
	Elem  *Type
	Items []Node
}

func (n *ArrayInit) Kind() Kind  { return KindArrayInit }
func (n *ArrayInit) Type() *Type { return ArrayOf(n.Elem) }

// ElementInit is one Add call of a collection initializer.
type ElementInit struct {
	AddMethod *Method
	Args      []Node
}

type ListInit struct {
	New   *New
	Inits []ElementInit
}

func (n *ListInit) Kind() Kind  { return KindListInit }
func (n *ListInit) Type() *Type { return n.New.Typ }

// BindingKind distinguishes member bindings.
type BindingKind int

const (
	BindAssign BindingKind = iota
	BindList
	BindMember
)

// Binding initialises one member of a MemberInit.
type Binding struct {
	Kind   BindingKind
	Member string
	// Value is set for BindAssign.
	Value Node
	// Inits is set for BindList.
	Inits []ElementInit
	// Bindings is set for BindMember.
	Bindings []Binding
}

type MemberInit struct {
	New      *New
	Bindings []Binding
}

func (n *MemberInit) Kind() Kind  { return KindMemberInit }
func (n *MemberInit) Type() *Type { return n.New.Typ }

// MemberAccess reads a field or property. Object is nil for static members,
// which are qualified by Declaring.
type MemberAccess struct {
	Object    Node
	Member    string
	Declaring *Type
	Typ       *Type
}

func (n *MemberAccess) Kind() Kind  { return KindMemberAccess }
func (n *MemberAccess) Type() *Type { return n.Typ }

// Index reads an indexer or array element.
type Index struct {
	Object Node
	Args   []Node
	Typ    *Type
}

func (n *Index) Kind() Kind  { return KindIndex }
func (n *Index) Type() *Type { return n.Typ }

// Lambda is a closure. Typ is its delegate type.
type Lambda struct {
	Params []*Parameter
	Body   Node
	Typ    *Type
}

func (n *Lambda) Kind() Kind { return KindLambda }
func (n *Lambda) Type() *Type {
	if n.Typ != nil {
		return n.Typ
	}
	args := make([]*Type, 0, len(n.Params)+1)
	for _, p := range n.Params {
		args = append(args, p.Typ)
	}
	if n.Body.Type().IsVoid() {
		return Action(args...)
	}
	return Func(append(args, n.Body.Type())...)
}

// ReturnType is the result type of the lambda's delegate.
func (n *Lambda) ReturnType() *Type {
	if r := n.Type().DelegateResult(); r != nil {
		return r
	}
	return n.Body.Type()
}

// Quote wraps a lambda captured as a tree rather than compiled.
type Quote struct{ Lambda *Lambda }

func (n *Quote) Kind() Kind  { return KindQuote }
func (n *Quote) Type() *Type { return Class("Expression", n.Lambda.Type()) }

type SwitchCase struct {
	Tests []Node
	Body  Node
}

type Switch struct {
	Value   Node
	Cases   []SwitchCase
	Default Node
	Typ     *Type
}

func (n *Switch) Kind() Kind  { return KindSwitch }
func (n *Switch) Type() *Type { return orVoid(n.Typ) }

// CatchBlock handles exceptions of Test. Variable and Filter are optional.
type CatchBlock struct {
	Test     *Type
	Variable *Parameter
	Filter   Node
	Body     Node
}

type Try struct {
	Body     Node
	Handlers []CatchBlock
	Finally  Node
	Fault    Node
	Typ      *Type
}

func (n *Try) Kind() Kind  { return KindTry }
func (n *Try) Type() *Type { return orVoid(n.Typ) }

// Throw raises Value; a nil Value rethrows the exception being handled.
type Throw struct {
	Value Node
	Typ   *Type
}

func (n *Throw) Kind() Kind  { return KindThrow }
func (n *Throw) Type() *Type { return orVoid(n.Typ) }

type TypeTest struct {
	Op      TypeTestOp
	Operand Node
	Test    *Type
}

func (n *TypeTest) Kind() Kind  { return KindTypeTest }
func (n *TypeTest) Type() *Type { return Bool }

type Cast struct {
	Op      CastOp
	Operand Node
	Typ     *Type
}

func (n *Cast) Kind() Kind  { return KindCast }
func (n *Cast) Type() *Type { return n.Typ }

// Comment is a free-text remark rendered on its own line(s).
type Comment struct{ Text string }

func (n *Comment) Kind() Kind  { return KindComment }
func (n *Comment) Type() *Type { return Void }

func orVoid(t *Type) *Type {
	if t == nil {
		return Void
	}
	return t
}

// Describe returns a short, single-line description of n.
func Describe(n Node) string {
	if n == nil {
		return "<nil>"
	}
	switch v := n.(type) {
	case *Parameter:
		return fmt.Sprintf("%s %s", v.Kind(), v.Name)
	case *Constant:
		return fmt.Sprintf("%s %v", v.Kind(), v.Value)
	case *Call:
		if v.Method != nil {
			return fmt.Sprintf("%s %s", v.Kind(), v.Method.Name)
		}
	case *MemberAccess:
		return fmt.Sprintf("%s %s", v.Kind(), v.Member)
	}
	return n.Kind().String()
}

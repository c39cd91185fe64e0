package expr

// Children returns the direct child nodes of n in source order. Nil
// children are omitted.
func Children(n Node) []Node {
	var out []Node
	add := func(ns ...Node) {
		for _, c := range ns {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	addInits := func(inits []ElementInit) {
		for _, in := range inits {
			add(in.Args...)
		}
	}
	var addBindings func([]Binding)
	addBindings = func(bs []Binding) {
		for _, b := range bs {
			switch b.Kind {
			case BindAssign:
				add(b.Value)
			case BindList:
				addInits(b.Inits)
			case BindMember:
				addBindings(b.Bindings)
			}
		}
	}

	switch n := n.(type) {
	case *Unary:
		add(n.Operand)
	case *Binary:
		add(n.Left, n.Right)
	case *Assign:
		add(n.Target, n.Value)
	case *Conditional:
		add(n.Test, n.IfTrue, n.IfFalse)
	case *Block:
		add(n.Expressions...)
	case *Loop:
		add(n.Body)
	case *Label:
		add(n.Default)
	case *Goto:
		add(n.Value)
	case *Call:
		add(n.Object)
		add(n.Args...)
	case *Invoke:
		add(n.Target)
		add(n.Args...)
	case *New:
		add(n.Args...)
	case *NewArray:
		add(n.Bounds...)
	case *ArrayInit:
		add(n.Items...)
	case *ListInit:
		if n.New != nil {
			add(n.New)
		}
		addInits(n.Inits)
	case *MemberInit:
		if n.New != nil {
			add(n.New)
		}
		addBindings(n.Bindings)
	case *MemberAccess:
		add(n.Object)
	case *Index:
		add(n.Object)
		add(n.Args...)
	case *Lambda:
		add(n.Body)
	case *Quote:
		if n.Lambda != nil {
			add(n.Lambda)
		}
	case *Switch:
		add(n.Value)
		for _, c := range n.Cases {
			add(c.Tests...)
			add(c.Body)
		}
		add(n.Default)
	case *Try:
		add(n.Body)
		for _, h := range n.Handlers {
			add(h.Filter, h.Body)
		}
		add(n.Finally, n.Fault)
	case *Throw:
		add(n.Value)
	case *TypeTest:
		add(n.Operand)
	case *Cast:
		add(n.Operand)
	}
	return out
}

// Walk visits n and its descendants depth-first with an explicit stack.
// Returning false from fn stops the walk.
func Walk(n Node, fn func(Node) bool) {
	if n == nil {
		return
	}
	stack := []Node{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(top) {
			return
		}
		kids := Children(top)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
}

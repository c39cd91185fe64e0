package translate

import "github.com/calumari/readex/internal/expr"

// subject writes what a member is accessed on: an instance operand, or a
// type name for static members.
func subject(c *context, object expr.Node, declaring *expr.Type) Translation {
	if object != nil {
		return c.operand(object, precPrimary, false)
	}
	if declaring != nil {
		return newTypeName(c, declaring)
	}
	return nil
}

// callTranslation writes subject.Method<T>(args).
type callTranslation struct {
	meta
	subject  Translation
	name     string
	generics *genericArgs
	args     *argumentList
}

func newCall(c *context, n *expr.Call) Translation {
	if n.Method == nil {
		return newFallback(c, n)
	}
	m := n.Method
	ct := &callTranslation{name: identifier(m.Name)}
	ct.kind, ct.typ = expr.KindCall, n.Type()

	args, params := n.Args, m.Params
	switch {
	case m.Extension && len(args) > 0:
		ct.subject = c.operand(args[0], precPrimary, false)
		args = args[1:]
		if len(params) > 0 {
			params = params[1:]
		}
	default:
		ct.subject = subject(c, n.Object, m.Declaring)
	}
	if ct.subject != nil {
		ct.add(ct.subject)
		ct.size++
	}
	ct.token(c, ct.name, TokenMethod)
	if ga := newGenericArgs(c, m); ga != nil {
		ct.generics = ga
		ct.add(ga)
	}
	ct.args = newArgumentList(c, args, params)
	ct.add(ct.args)
	return ct
}

func (ct *callTranslation) WriteTo(b *Buffer) {
	if ct.subject != nil {
		ct.subject.WriteTo(b)
		b.Write(".")
	}
	b.Method(ct.name)
	if ct.generics != nil {
		ct.generics.WriteTo(b)
	}
	ct.args.WriteTo(b)
}

// methodGroupTranslation writes a method reference standing in for a
// lambda that only forwards its parameters.
type methodGroupTranslation struct {
	meta
	subject  Translation
	name     string
	generics *genericArgs
}

func newMethodGroup(c *context, call *expr.Call) *methodGroupTranslation {
	m := call.Method
	mg := &methodGroupTranslation{name: identifier(m.Name)}
	mg.kind, mg.typ = expr.KindLambda, expr.Func(m.Result)
	mg.subject = subject(c, call.Object, m.Declaring)
	if mg.subject != nil {
		mg.add(mg.subject)
		mg.size++
	}
	mg.token(c, mg.name, TokenMethod)
	if c.settings.explicitGenericArgs && len(m.GenericArgs) > 0 {
		mg.generics = newGenericArgs(c, m)
		mg.add(mg.generics)
	}
	return mg
}

func (mg *methodGroupTranslation) WriteTo(b *Buffer) {
	if mg.subject != nil {
		mg.subject.WriteTo(b)
		b.Write(".")
	}
	b.Method(mg.name)
	if mg.generics != nil {
		mg.generics.WriteTo(b)
	}
}

// invokeTranslation writes target.Invoke(args).
type invokeTranslation struct {
	meta
	target Translation
	args   *argumentList
}

func newInvoke(c *context, n *expr.Invoke) *invokeTranslation {
	it := &invokeTranslation{target: c.operand(n.Target, precPrimary, false)}
	it.kind, it.typ = expr.KindInvoke, n.Type()
	it.args = newArgumentList(c, n.Args, nil)
	it.add(it.target, it.args)
	it.token(c, ".Invoke", TokenMethod)
	return it
}

func (it *invokeTranslation) WriteTo(b *Buffer) {
	it.target.WriteTo(b)
	b.Write(".")
	b.Method("Invoke")
	it.args.WriteTo(b)
}

// memberAccessTranslation writes subject.Member.
type memberAccessTranslation struct {
	meta
	subject Translation
	member  string
}

func newMemberAccess(c *context, n *expr.MemberAccess) *memberAccessTranslation {
	ma := &memberAccessTranslation{member: identifier(n.Member)}
	ma.kind, ma.typ = expr.KindMemberAccess, n.Typ
	ma.subject = subject(c, n.Object, n.Declaring)
	if ma.subject != nil {
		ma.add(ma.subject)
		ma.size++
	}
	ma.size += len(ma.member)
	return ma
}

func (ma *memberAccessTranslation) WriteTo(b *Buffer) {
	if ma.subject != nil {
		ma.subject.WriteTo(b)
		b.Write(".")
	}
	b.Write(ma.member)
}

// indexTranslation writes object[args].
type indexTranslation struct {
	meta
	object Translation
	args   *argumentList
}

func newIndex(c *context, n *expr.Index) *indexTranslation {
	ix := &indexTranslation{object: c.operand(n.Object, precPrimary, false)}
	ix.kind, ix.typ = expr.KindIndex, n.Typ
	ix.args = newDelimitedList(c, "[", "]", n.Args, nil)
	ix.add(ix.object, ix.args)
	return ix
}

func (ix *indexTranslation) WriteTo(b *Buffer) {
	ix.object.WriteTo(b)
	ix.args.WriteTo(b)
}

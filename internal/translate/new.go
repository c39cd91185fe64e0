package translate

import "github.com/calumari/readex/internal/expr"

// newTranslation writes new T(args), or new { A = a } for anonymous types.
type newTranslation struct {
	meta
	name *typeNameTranslation
	args *argumentList
	// members is set for anonymous types.
	members *initializerSet
}

func newNew(c *context, n *expr.New) *newTranslation {
	return buildNew(c, n, false)
}

// buildNew translates a constructor call. bare drops the empty argument
// list in front of an initializer.
func buildNew(c *context, n *expr.New, bare bool) *newTranslation {
	nt := &newTranslation{}
	nt.kind, nt.typ = expr.KindNew, n.Typ
	nt.token(c, "new ", TokenKeyword)
	if n.Typ != nil && n.Typ.Kind == expr.TypeAnonymous || len(n.Members) > 0 {
		items := make([]Translation, 0, len(n.Args))
		for i, a := range n.Args {
			name := ""
			if i < len(n.Members) {
				name = n.Members[i]
			}
			items = append(items, newMemberValue(c, name, c.translate(a)))
		}
		nt.members = newInitializerSet(c, items)
		nt.add(nt.members)
		return nt
	}
	nt.name = newTypeName(c, n.Typ)
	nt.add(nt.name)
	if !bare || len(n.Args) > 0 {
		nt.args = newArgumentList(c, n.Args, nil)
		nt.add(nt.args)
	}
	return nt
}

func (nt *newTranslation) WriteTo(b *Buffer) {
	b.Keyword("new")
	if nt.members != nil {
		nt.members.writeAfter(b)
		return
	}
	b.Space()
	nt.name.WriteTo(b)
	if nt.args != nil {
		nt.args.WriteTo(b)
	}
}

// newArrayTranslation writes new T[n] or new T[n, m].
type newArrayTranslation struct {
	meta
	elem   *typeNameTranslation
	bounds *argumentList
	suffix string
}

func newNewArray(c *context, n *expr.NewArray) *newArrayTranslation {
	na := &newArrayTranslation{}
	na.kind, na.typ = expr.KindNewArray, n.Type()
	// Jagged arrays put the allocated bounds before the element's own
	// rank specifiers: new int[5][].
	elem := n.Elem
	for elem != nil && elem.Kind == expr.TypeArray {
		na.suffix += "[" + commas(elem.Rank) + "]"
		elem = elem.Elem
	}
	na.elem = newTypeName(c, elem)
	na.bounds = newDelimitedList(c, "[", "]", n.Bounds, nil)
	na.token(c, "new ", TokenKeyword)
	na.add(na.elem, na.bounds)
	na.size += len(na.suffix)
	return na
}

func commas(rank int) string {
	s := ""
	for i := 1; i < rank; i++ {
		s += ","
	}
	return s
}

func (na *newArrayTranslation) WriteTo(b *Buffer) {
	b.Keyword("new")
	b.Space()
	na.elem.WriteTo(b)
	na.bounds.WriteTo(b)
	b.Write(na.suffix)
}

// arrayInitTranslation writes new[] { a, b } or new T[] { a, b }.
type arrayInitTranslation struct {
	meta
	elem  *typeNameTranslation
	items *initializerSet
	empty bool
}

func newArrayInit(c *context, n *expr.ArrayInit) *arrayInitTranslation {
	ai := &arrayInitTranslation{}
	ai.kind, ai.typ = expr.KindArrayInit, n.Type()
	ai.token(c, "new ", TokenKeyword)
	if len(n.Items) == 0 {
		ai.empty = true
		ai.elem = newTypeName(c, n.Elem)
		ai.add(ai.elem)
		ai.size += len("[0]")
		return ai
	}
	if !implicitlyTyped(n) {
		ai.elem = newTypeName(c, n.Elem)
		ai.add(ai.elem)
	}
	items := make([]Translation, 0, len(n.Items))
	for _, it := range n.Items {
		items = append(items, c.translate(it))
	}
	ai.items = newInitializerSet(c, items)
	ai.add(ai.items)
	ai.size += len("[]")
	return ai
}

// implicitlyTyped reports whether new[] infers the element type: every item
// already has it and at least one is not a null literal.
func implicitlyTyped(n *expr.ArrayInit) bool {
	typed := false
	for _, it := range n.Items {
		if !it.Type().Equal(n.Elem) {
			return false
		}
		if k, ok := it.(*expr.Constant); !ok || k.Value != nil {
			typed = true
		}
	}
	return typed
}

func (ai *arrayInitTranslation) WriteTo(b *Buffer) {
	b.Keyword("new")
	if ai.elem != nil {
		b.Space()
		ai.elem.WriteTo(b)
	}
	if ai.empty {
		b.Write("[0]")
		return
	}
	b.Write("[]")
	ai.items.writeAfter(b)
}

// initTranslation writes a constructor call followed by a collection or
// object initializer.
type initTranslation struct {
	meta
	ctor  *newTranslation
	items *initializerSet
}

func newListInit(c *context, n *expr.ListInit) Translation {
	if n.New == nil {
		return newFallback(c, n)
	}
	return buildInit(c, n.New, n.Kind(), elementItems(c, n.Inits))
}

func newMemberInit(c *context, n *expr.MemberInit) Translation {
	if n.New == nil {
		return newFallback(c, n)
	}
	return buildInit(c, n.New, n.Kind(), bindingItems(c, n.Bindings))
}

func buildInit(c *context, ctor *expr.New, kind expr.Kind, items []Translation) *initTranslation {
	it := &initTranslation{ctor: buildNew(c, ctor, len(items) > 0)}
	it.kind, it.typ = kind, ctor.Typ
	it.add(it.ctor)
	if len(items) > 0 {
		it.items = newInitializerSet(c, items)
		it.add(it.items)
	}
	return it
}

func (it *initTranslation) WriteTo(b *Buffer) {
	it.ctor.WriteTo(b)
	if it.items != nil {
		it.items.writeAfter(b)
	}
}

// elementItems translates collection initializer entries. An Add call with
// several arguments is written as a nested { a, b }.
func elementItems(c *context, inits []expr.ElementInit) []Translation {
	items := make([]Translation, 0, len(inits))
	for _, ei := range inits {
		if len(ei.Args) == 1 {
			items = append(items, c.translate(ei.Args[0]))
			continue
		}
		args := make([]Translation, 0, len(ei.Args))
		for _, a := range ei.Args {
			args = append(args, c.translate(a))
		}
		items = append(items, newInitializerSet(c, args))
	}
	return items
}

func bindingItems(c *context, bindings []expr.Binding) []Translation {
	items := make([]Translation, 0, len(bindings))
	for _, bd := range bindings {
		var value Translation
		switch bd.Kind {
		case expr.BindAssign:
			value = c.translate(bd.Value)
		case expr.BindList:
			value = newInitializerSet(c, elementItems(c, bd.Inits))
		case expr.BindMember:
			value = newInitializerSet(c, bindingItems(c, bd.Bindings))
		default:
			value = voidEmpty
		}
		items = append(items, newMemberValue(c, bd.Member, value))
	}
	return items
}

// memberValueTranslation writes Member = value inside an initializer.
type memberValueTranslation struct {
	meta
	name  string
	value Translation
}

func newMemberValue(c *context, name string, value Translation) Translation {
	if name == "" {
		return value
	}
	mv := &memberValueTranslation{name: identifier(name), value: value}
	mv.kind, mv.typ = expr.KindMemberInit, value.Type()
	mv.size += len(mv.name) + len(" = ")
	mv.add(value)
	return mv
}

func (mv *memberValueTranslation) WriteTo(b *Buffer) {
	b.Write(mv.name + " =")
	if set, ok := mv.value.(*initializerSet); ok {
		set.writeAfter(b)
		return
	}
	b.Space()
	mv.value.WriteTo(b)
}

// initializerSet writes { a, b } on one line, or one item per line inside
// braces when an item spans lines or the set is too long.
type initializerSet struct {
	meta
	items     []Translation
	multiline bool
}

func newInitializerSet(c *context, items []Translation) *initializerSet {
	is := &initializerSet{items: items}
	is.kind, is.typ = expr.KindListInit, expr.Void
	is.add(items...)
	is.size += len("{  }") + 2*len(items)
	is.multiline = is.multi || is.size > c.settings.lineLength
	is.multi = is.multiline
	return is
}

// writeAfter writes the set after preceding text on the same line: a space
// and the inline form, or the braces on lines of their own.
func (is *initializerSet) writeAfter(b *Buffer) {
	if !is.multiline {
		b.Space()
	}
	is.WriteTo(b)
}

func (is *initializerSet) WriteTo(b *Buffer) {
	if len(is.items) == 0 {
		b.Write("{ }")
		return
	}
	if !is.multiline {
		b.Write("{ ")
		for i, it := range is.items {
			if i > 0 {
				b.Write(", ")
			}
			it.WriteTo(b)
		}
		b.Write(" }")
		return
	}
	b.OpenBrace()
	for i, it := range is.items {
		if i > 0 {
			b.Write(",")
			b.NewLine()
		}
		it.WriteTo(b)
	}
	b.CloseBrace()
}

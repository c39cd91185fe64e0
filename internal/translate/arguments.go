package translate

import "github.com/calumari/readex/internal/expr"

// argumentList writes a delimited, comma-separated list of arguments. It
// goes one-per-line when there are more arguments than fit inline or the
// list is too long, except that a single multi-line lambda is kept in
// place.
type argumentList struct {
	meta
	open, close string
	args        []Translation
	modifiers   []string
	multiline   bool
}

func newArgumentList(c *context, args []expr.Node, params []expr.Param) *argumentList {
	return newDelimitedList(c, "(", ")", args, params)
}

func newDelimitedList(c *context, open, close string, args []expr.Node, params []expr.Param) *argumentList {
	al := &argumentList{open: open, close: close}
	al.kind, al.typ = expr.KindCall, expr.Void
	al.size += len(open) + len(close)
	for i, a := range args {
		var t Translation
		if l, ok := a.(*expr.Lambda); ok && c.analysis.CanBeMethodGroup(l) {
			t = newMethodGroup(c, l.Body.(*expr.Call))
		} else {
			t = c.translate(a)
		}
		mod := ""
		if i < len(params) {
			switch params[i].Mode {
			case expr.ByRef:
				mod = "ref "
			case expr.Out:
				mod = "out "
			}
		}
		if mod != "" {
			al.token(c, mod, TokenKeyword)
		}
		al.args = append(al.args, t)
		al.modifiers = append(al.modifiers, mod)
		al.add(t)
		if i > 0 {
			al.size += 2
		}
	}
	single := len(al.args) == 1 && isMultiStatement(al.args[0])
	al.multiline = !single && (len(al.args) > c.settings.maxInlineArgs || al.size > c.settings.lineLength || al.multi)
	if al.multiline {
		al.multi = true
	}
	return al
}

func (al *argumentList) WriteTo(b *Buffer) {
	b.Write(al.open)
	if al.multiline {
		b.Indent()
	}
	for i, a := range al.args {
		if i > 0 {
			b.Write(",")
			if !al.multiline {
				b.Space()
			}
		}
		if al.multiline {
			b.NewLine()
		}
		if al.modifiers[i] != "" {
			b.Keyword(al.modifiers[i])
		}
		a.WriteTo(b)
	}
	if al.multiline {
		b.Unindent()
	}
	b.Write(al.close)
}

// genericArgs writes <T1, T2> after a method name.
type genericArgs struct {
	meta
	names []*typeNameTranslation
}

func newGenericArgs(c *context, m *expr.Method) *genericArgs {
	if len(m.GenericArgs) == 0 || (!c.settings.explicitGenericArgs && m.GenericArgsInferable()) {
		return nil
	}
	ga := &genericArgs{}
	ga.kind, ga.typ = expr.KindConstant, expr.TypeOfType
	for i, t := range m.GenericArgs {
		tn := newTypeName(c, t)
		ga.names = append(ga.names, tn)
		ga.add(tn)
		if i > 0 {
			ga.size += 2
		}
	}
	ga.size += 2
	return ga
}

func (ga *genericArgs) WriteTo(b *Buffer) {
	if ga == nil {
		return
	}
	b.Write("<")
	for i, n := range ga.names {
		if i > 0 {
			b.Write(", ")
		}
		n.WriteTo(b)
	}
	b.Write(">")
}

package translate

import "github.com/calumari/readex/internal/expr"

// castTranslation writes (T)x, x as T or checked((T)x).
type castTranslation struct {
	meta
	operand Translation
	name    *typeNameTranslation
	as      bool
	checked bool
}

func newCast(c *context, n *expr.Cast) Translation {
	if n.Op == expr.Convert && implicitConversion(n.Operand.Type(), n.Typ) {
		return c.translate(n.Operand)
	}
	ct := &castTranslation{name: newTypeName(c, n.Typ), as: n.Op == expr.TypeAs, checked: n.Op == expr.ConvertChecked}
	ct.kind, ct.typ = expr.KindCast, n.Typ
	if ct.as {
		ct.operand = c.operand(n.Operand, precRelational, false)
		ct.token(c, " as ", TokenKeyword)
	} else {
		ct.operand = c.operand(n.Operand, precUnary, false)
		ct.size += 2
	}
	ct.add(ct.name, ct.operand)
	if ct.checked {
		ct.token(c, "checked", TokenKeyword)
		ct.size += 2
		ct.term = ct.multi
	}
	return ct
}

// implicitConversion reports conversions C# performs without a cast.
func implicitConversion(from, to *expr.Type) bool {
	if from.Equal(to) {
		return true
	}
	if to == nil {
		return false
	}
	switch to.Kind {
	case expr.TypeObject:
		return true
	case expr.TypeNullable:
		return to.Elem.Equal(from)
	}
	return false
}

func (ct *castTranslation) precedence() int {
	switch {
	case ct.checked:
		return precPrimary
	case ct.as:
		return precRelational
	}
	return precUnary
}

func (ct *castTranslation) WriteTo(b *Buffer) {
	if ct.checked {
		writeChecked(b, ct.multi, ct.writeCast)
		return
	}
	ct.writeCast(b)
}

func (ct *castTranslation) writeCast(b *Buffer) {
	if ct.as {
		ct.operand.WriteTo(b)
		b.Write(" ")
		b.Keyword("as")
		b.Write(" ")
		ct.name.WriteTo(b)
		return
	}
	b.Write("(")
	ct.name.WriteTo(b)
	b.Write(")")
	ct.operand.WriteTo(b)
}

// typeTestTranslation writes x is T or x.GetType() == typeof(T).
type typeTestTranslation struct {
	meta
	operand Translation
	name    *typeNameTranslation
	exact   bool
}

func newTypeTest(c *context, n *expr.TypeTest) *typeTestTranslation {
	tt := &typeTestTranslation{name: newTypeName(c, n.Test), exact: n.Op == expr.TypeEqual}
	tt.kind, tt.typ = expr.KindTypeTest, expr.Bool
	if tt.exact {
		tt.operand = c.operand(n.Operand, precPrimary, false)
		tt.token(c, ".GetType() == ", TokenDefault)
		tt.token(c, "typeof", TokenKeyword)
		tt.size += 2
	} else {
		tt.operand = c.operand(n.Operand, precRelational, false)
		tt.token(c, " is ", TokenKeyword)
	}
	tt.add(tt.operand, tt.name)
	return tt
}

func (tt *typeTestTranslation) precedence() int {
	if tt.exact {
		return precEquality
	}
	return precRelational
}

func (tt *typeTestTranslation) WriteTo(b *Buffer) {
	tt.operand.WriteTo(b)
	if tt.exact {
		b.Write(".")
		b.Method("GetType")
		b.Write("() == ")
		b.Keyword("typeof")
		b.Write("(")
		tt.name.WriteTo(b)
		b.Write(")")
		return
	}
	b.Write(" ")
	b.Keyword("is")
	b.Write(" ")
	tt.name.WriteTo(b)
}

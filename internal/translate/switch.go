package translate

import "github.com/calumari/readex/internal/expr"

type switchCase struct {
	tests []Translation
	body  *codeBlock
}

// switchTranslation writes a switch statement. Case bodies that can fall
// off their end get a break.
type switchTranslation struct {
	meta
	value Translation
	cases []switchCase
	def   *codeBlock
}

func newSwitch(c *context, n *expr.Switch) *switchTranslation {
	st := &switchTranslation{value: c.translate(n.Value)}
	st.kind, st.typ = expr.KindSwitch, n.Type()
	st.token(c, "switch", TokenControl)
	st.size += len(" ()")
	st.add(st.value)

	jump := true
	for _, sc := range n.Cases {
		var cs switchCase
		for _, t := range sc.Tests {
			tt := c.translate(t)
			cs.tests = append(cs.tests, tt)
			st.add(tt)
			st.token(c, "case :", TokenControl)
		}
		cs.body = newCodeBlock(c, sc.Body)
		st.add(cs.body)
		if !hasJump(cs.body) {
			st.token(c, "break;", TokenControl)
			jump = false
		}
		st.cases = append(st.cases, cs)
	}
	if def := c.translate(n.Default); !isEmpty(def) {
		st.def = wrapCodeBlock(def)
		st.add(st.def)
		st.token(c, "default:", TokenControl)
		jump = jump && hasJump(st.def)
	} else {
		jump = false
	}
	st.jump = jump
	st.multi = true
	st.term = true
	return st
}

func (st *switchTranslation) WriteTo(b *Buffer)         { st.write(b, false) }
func (st *switchTranslation) writeWithReturn(b *Buffer) { st.write(b, !st.typ.IsVoid()) }

func (st *switchTranslation) write(b *Buffer, ret bool) {
	b.Control("switch")
	b.Write(" (")
	st.value.WriteTo(b)
	b.Write(")")
	b.OpenBrace()
	for i, cs := range st.cases {
		if i > 0 {
			b.NewLine()
			b.NewLine()
		}
		for j, t := range cs.tests {
			if j > 0 {
				b.NewLine()
			}
			b.Control("case")
			b.Space()
			t.WriteTo(b)
			b.Write(":")
		}
		writeCaseBody(b, cs.body, ret)
	}
	if st.def != nil {
		if len(st.cases) > 0 {
			b.NewLine()
			b.NewLine()
		}
		b.Control("default")
		b.Write(":")
		writeCaseBody(b, st.def, ret)
	}
	b.CloseBrace()
}

func writeCaseBody(b *Buffer, body *codeBlock, ret bool) {
	b.Indent()
	b.NewLine()
	wrote, returned := false, false
	if !isEmpty(body.body) {
		wrote = true
		if ret && needsReturn(body.body) {
			body.writeWithReturn(b)
			returned = true
		} else {
			body.WriteTo(b)
		}
	}
	if !returned && !hasJump(body) {
		if wrote {
			b.NewLine()
		}
		b.Control("break")
		b.Write(";")
	}
	b.Unindent()
}

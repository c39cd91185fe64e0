package translate

import "github.com/calumari/readex/internal/expr"

// catchClause is one catch of a try statement. A nil typeName writes a
// bare catch.
type catchClause struct {
	typeName *typeNameTranslation
	variable string
	filter   Translation
	body     *codeBlock
}

// tryTranslation writes try, its catch clauses and a finally or fault
// block.
type tryTranslation struct {
	meta
	body    *codeBlock
	catches []catchClause
	finally *codeBlock
	fault   bool
}

func newTry(c *context, n *expr.Try) *tryTranslation {
	tt := &tryTranslation{body: newCodeBlock(c, n.Body).withBraces()}
	tt.kind, tt.typ = expr.KindTry, n.Type()
	tt.token(c, "try", TokenControl)
	tt.add(tt.body)

	jump := hasJump(tt.body)
	for _, h := range n.Handlers {
		cc := newCatch(c, h)
		tt.token(c, "catch", TokenControl)
		if cc.typeName != nil {
			tt.add(cc.typeName)
			tt.size += len(" ()") + len(cc.variable)
		}
		if cc.filter != nil {
			tt.token(c, " when ", TokenControl)
			tt.add(cc.filter)
			tt.size += 2
		}
		tt.add(cc.body)
		jump = jump && hasJump(cc.body)
		tt.catches = append(tt.catches, cc)
	}

	switch {
	case n.Finally != nil:
		tt.finally = newCodeBlock(c, n.Finally).withBraces()
		tt.token(c, "finally", TokenControl)
		tt.add(tt.finally)
	case n.Fault != nil:
		tt.finally = newCodeBlock(c, n.Fault).withBraces()
		tt.fault = true
		tt.token(c, "fault", TokenControl)
		tt.add(tt.finally)
	}
	tt.jump = jump
	tt.multi = true
	tt.term = true
	return tt
}

// newCatch decides the catch header. The bare form is used only when the
// handler catches every exception, ignores the exception and has no
// filter.
func newCatch(c *context, h expr.CatchBlock) catchClause {
	cc := catchClause{body: newCodeBlock(c, h.Body).withBraces()}
	test := h.Test
	if test == nil && h.Variable != nil {
		test = h.Variable.Typ
	}
	if test == nil {
		test = expr.Exception
	}
	used := h.Variable != nil && c.analysis.IsCatchVariableUsed(h.Variable)
	if h.Filter != nil {
		cc.filter = c.translate(h.Filter)
	}
	if !used && cc.filter == nil && test.IsBaseException() {
		return cc
	}
	cc.typeName = newTypeName(c, test)
	if used {
		cc.variable = identifier(c.analysis.VariableName(h.Variable))
	}
	return cc
}

func (tt *tryTranslation) WriteTo(b *Buffer)         { tt.write(b, false) }
func (tt *tryTranslation) writeWithReturn(b *Buffer) { tt.write(b, !tt.typ.IsVoid()) }

func (tt *tryTranslation) write(b *Buffer, ret bool) {
	b.Control("try")
	writeBranch(b, tt.body, ret)
	for _, cc := range tt.catches {
		b.NewLine()
		b.Control("catch")
		if cc.typeName != nil {
			b.Write(" (")
			cc.typeName.WriteTo(b)
			if cc.variable != "" {
				b.Space()
				b.Variable(cc.variable)
			}
			b.Write(")")
		}
		if cc.filter != nil {
			b.Space()
			b.Control("when")
			b.Write(" (")
			cc.filter.WriteTo(b)
			b.Write(")")
		}
		writeBranch(b, cc.body, ret)
	}
	if tt.finally != nil {
		b.NewLine()
		if tt.fault {
			b.Control("fault")
		} else {
			b.Control("finally")
		}
		tt.finally.WriteTo(b)
	}
}

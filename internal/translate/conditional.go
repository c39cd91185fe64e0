package translate

import "github.com/calumari/readex/internal/expr"

func newConditional(c *context, n *expr.Conditional) Translation {
	valued := !n.Type().IsVoid() && n.IfFalse != nil
	if valued {
		t := newTernary(c, n)
		if !isStatementOnly(t.ifTrue) && !isStatementOnly(t.ifFalse) {
			return t
		}
	}
	return newIf(c, n, valued)
}

// isStatementOnly reports whether t can only be written as a statement, so
// a conditional choosing between values must become an if statement.
func isStatementOnly(t Translation) bool {
	if p, ok := t.(*parensTranslation); ok {
		t = p.inner
	}
	switch t.(type) {
	case *blockTranslation, *ifTranslation, *loopTranslation, *switchTranslation, *tryTranslation:
		return true
	}
	return false
}

// ternaryTranslation writes test ? a : b, split over three lines when it
// is too long for one.
type ternaryTranslation struct {
	meta
	test, ifTrue, ifFalse Translation
	split                 bool
}

func newTernary(c *context, n *expr.Conditional) *ternaryTranslation {
	tt := &ternaryTranslation{}
	tt.kind, tt.typ = expr.KindConditional, n.Type()
	tt.test = c.operand(n.Test, precConditional, true)
	tt.ifTrue = c.operand(n.IfTrue, precConditional, false)
	tt.ifFalse = c.operand(n.IfFalse, precConditional, false)
	tt.add(tt.test, tt.ifTrue, tt.ifFalse)
	tt.size += len(" ? ") + len(" : ")
	tt.split = tt.size > c.settings.lineLength
	return tt
}

func (tt *ternaryTranslation) precedence() int { return precConditional }

func (tt *ternaryTranslation) WriteTo(b *Buffer) {
	tt.test.WriteTo(b)
	if !tt.split {
		b.Write(" ? ")
		tt.ifTrue.WriteTo(b)
		b.Write(" : ")
		tt.ifFalse.WriteTo(b)
		return
	}
	b.Indent()
	b.NewLine()
	b.Write("? ")
	tt.ifTrue.WriteTo(b)
	b.NewLine()
	b.Write(": ")
	tt.ifFalse.WriteTo(b)
	b.Unindent()
}

// ifTranslation writes an if statement. The else branch is either another
// if (an else-if chain), a braced block, or, when the true branch always
// jumps, the remaining statements written after the if without an else.
type ifTranslation struct {
	meta
	test    Translation
	ifTrue  *codeBlock
	elseIf  *ifTranslation
	ifFalse *codeBlock
	early   bool
}

func newIf(c *context, n *expr.Conditional, valued bool) *ifTranslation {
	it := &ifTranslation{}
	it.kind, it.typ = expr.KindConditional, expr.Void
	if valued {
		it.typ = n.Type()
	}
	it.test = c.translate(n.Test)
	it.ifTrue = newCodeBlock(c, n.IfTrue).withBraces()
	it.token(c, "if", TokenControl)
	it.size += len(" ()")
	it.add(it.test, it.ifTrue)

	ifFalse := c.translate(n.IfFalse)
	switch {
	case isEmpty(ifFalse):
	case !valued && hasJump(it.ifTrue):
		it.early = true
		it.ifFalse = wrapCodeBlock(ifFalse)
		it.add(it.ifFalse)
		it.jump = hasJump(it.ifFalse)
	default:
		if next, ok := ifFalse.(*ifTranslation); ok && !next.early {
			it.elseIf = next
			it.add(next)
			it.jump = hasJump(it.ifTrue) && hasJump(next)
		} else {
			it.ifFalse = wrapCodeBlock(ifFalse).withBraces()
			it.add(it.ifFalse)
			it.jump = hasJump(it.ifTrue) && hasJump(it.ifFalse)
		}
		it.token(c, "else ", TokenControl)
	}
	it.multi = true
	it.term = true
	return it
}

func (it *ifTranslation) WriteTo(b *Buffer)         { it.write(b, false) }
func (it *ifTranslation) writeWithReturn(b *Buffer) { it.write(b, !it.typ.IsVoid()) }

func (it *ifTranslation) write(b *Buffer, ret bool) {
	b.Control("if")
	b.Write(" (")
	it.test.WriteTo(b)
	b.Write(")")
	writeBranch(b, it.ifTrue, ret)
	switch {
	case it.elseIf != nil:
		b.NewLine()
		b.Control("else")
		b.Space()
		it.elseIf.write(b, ret)
	case it.ifFalse == nil:
	case it.early:
		b.NewLine()
		b.NewLine()
		writeBranch(b, it.ifFalse, ret)
	default:
		b.NewLine()
		b.Control("else")
		writeBranch(b, it.ifFalse, ret)
	}
}

func writeBranch(b *Buffer, cb *codeBlock, ret bool) {
	if ret {
		cb.writeWithReturn(b)
		return
	}
	cb.WriteTo(b)
}

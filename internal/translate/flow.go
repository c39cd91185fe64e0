package translate

import "github.com/calumari/readex/internal/expr"

// loopTranslation writes an infinite loop; exits are break statements or
// jumps inside the body.
type loopTranslation struct {
	meta
	body    *codeBlock
	breakTo string
}

func newLoop(c *context, n *expr.Loop) *loopTranslation {
	lt := &loopTranslation{body: newCodeBlock(c, n.Body).withBraces()}
	lt.kind, lt.typ = expr.KindLoop, n.Type()
	lt.token(c, "while", TokenControl)
	lt.token(c, "true", TokenKeyword)
	lt.size += len(" ()")
	lt.add(lt.body)
	if n.Break != nil && c.analysis.IsJumpTarget(n.Break) {
		lt.breakTo = identifier(c.analysis.LabelName(n.Break))
		lt.size += len(lt.breakTo) + 2
	}
	lt.multi = true
	lt.term = true
	return lt
}

func (lt *loopTranslation) WriteTo(b *Buffer) {
	b.Control("while")
	b.Write(" (")
	b.Keyword("true")
	b.Write(")")
	lt.body.WriteTo(b)
	if lt.breakTo != "" {
		b.NewLine()
		b.Write(lt.breakTo + ":")
	}
}

// labelTranslation writes a jump destination and the value it yields when
// reached by falling through. Labels nothing jumps to are omitted.
type labelTranslation struct {
	meta
	name  string
	value Translation
}

func newLabel(c *context, n *expr.Label) Translation {
	var value Translation
	if n.Default != nil && !n.Default.Type().IsVoid() {
		value = c.translate(n.Default)
	}
	named := n.Target != nil && c.analysis.IsJumpTarget(n.Target) && !c.analysis.IsReturnLabel(n.Target)
	if !named {
		if value == nil {
			return voidEmpty
		}
		return value
	}
	lt := &labelTranslation{name: identifier(c.analysis.LabelName(n.Target)), value: value}
	lt.kind, lt.typ = expr.KindLabel, n.Type()
	lt.size += len(lt.name) + 1
	if value != nil {
		lt.add(value)
		lt.multi = true
		lt.term = isTerminated(value)
	} else {
		lt.term = true
	}
	return lt
}

// WriteTo separates the label from preceding statements with a blank line
// unless it opens a block.
func (lt *labelTranslation) WriteTo(b *Buffer) { lt.write(b, false) }

func (lt *labelTranslation) writeWithReturn(b *Buffer) { lt.write(b, true) }

func (lt *labelTranslation) write(b *Buffer, ret bool) {
	if b.Len() > 0 && !b.EndsWith('{') {
		b.BlankLine()
	}
	b.Write(lt.name + ":")
	if lt.value == nil {
		return
	}
	b.NewLine()
	if ret {
		writeReturnStatement(b, lt.value)
		return
	}
	lt.value.WriteTo(b)
}

// gotoTranslation writes return, break, continue or goto.
type gotoTranslation struct {
	meta
	keyword string
	label   string
	value   Translation
}

func newGoto(c *context, n *expr.Goto) *gotoTranslation {
	gt := &gotoTranslation{}
	gt.kind, gt.typ = expr.KindGoto, expr.Void
	gt.jump = true

	switch {
	case n.Jump == expr.JumpReturn, n.Target != nil && c.analysis.IsReturnLabel(n.Target):
		gt.keyword = "return"
	case n.Target != nil && c.analysis.IsLoopBreak(n.Target) && n.Jump != expr.JumpContinue:
		gt.keyword = "break"
	case n.Target != nil && c.analysis.IsLoopContinue(n.Target) && n.Jump != expr.JumpBreak:
		gt.keyword = "continue"
	default:
		gt.keyword = "goto"
		if n.Target != nil {
			gt.label = identifier(c.analysis.LabelName(n.Target))
		}
	}
	gt.token(c, gt.keyword, TokenControl)
	if gt.label != "" {
		gt.size += len(gt.label) + 1
	}
	if n.Value != nil && !n.Value.Type().IsVoid() && gt.keyword == "return" {
		gt.value = c.translate(n.Value)
		gt.add(gt.value)
		gt.size++
	}
	return gt
}

func (gt *gotoTranslation) WriteTo(b *Buffer) {
	b.Control(gt.keyword)
	if gt.label != "" {
		b.Space()
		b.Write(gt.label)
	}
	if gt.value != nil {
		b.Space()
		gt.value.WriteTo(b)
	}
}

// throwTranslation writes throw with its value, or a bare throw when it
// rethrows the exception being handled.
type throwTranslation struct {
	meta
	value Translation
}

func newThrow(c *context, n *expr.Throw) *throwTranslation {
	tt := &throwTranslation{}
	tt.kind, tt.typ = expr.KindThrow, n.Type()
	tt.jump = true
	tt.token(c, "throw", TokenControl)
	if n.Value != nil && !c.analysis.IsRethrow(n) {
		tt.value = c.translate(n.Value)
		tt.add(tt.value)
		tt.size++
	}
	return tt
}

func (tt *throwTranslation) precedence() int { return precAssign }

func (tt *throwTranslation) WriteTo(b *Buffer) {
	b.Control("throw")
	if tt.value != nil {
		b.Space()
		tt.value.WriteTo(b)
	}
}

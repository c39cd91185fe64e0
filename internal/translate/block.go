package translate

import "github.com/calumari/readex/internal/expr"

// declarationGroup is one "T a, b;" line.
type declarationGroup struct {
	typeName *typeNameTranslation
	names    []string
}

// blockTranslation writes a statement sequence preceded by its variable
// declarations, grouped by type.
type blockTranslation struct {
	meta
	groups     []declarationGroup
	statements []Translation
}

// newBlock translates a block. A block with no declarations and a single
// statement degrades to that statement.
func newBlock(c *context, n *expr.Block) Translation {
	bt := &blockTranslation{}
	bt.kind, bt.typ = expr.KindBlock, n.Type()

	index := map[string]int{}
	for _, v := range n.Variables {
		if c.analysis.IsDeclaredByAssignment(v) {
			continue
		}
		key := typeKey(v.Typ)
		gi, ok := index[key]
		if !ok {
			gi = len(bt.groups)
			index[key] = gi
			bt.groups = append(bt.groups, declarationGroup{typeName: newTypeName(c, v.Typ)})
		}
		bt.groups[gi].names = append(bt.groups[gi].names, identifier(c.analysis.VariableName(v)))
	}

	for _, e := range n.Expressions {
		t := c.translate(e)
		if isEmpty(t) {
			continue
		}
		bt.statements = append(bt.statements, t)
	}

	if len(bt.groups) == 0 {
		switch len(bt.statements) {
		case 0:
			return emptyTranslation{typ: bt.typ}
		case 1:
			return bt.statements[0]
		}
	}

	for _, g := range bt.groups {
		bt.add(g.typeName)
		for _, name := range g.names {
			bt.token(c, name, TokenVariable)
			bt.size += 2
		}
		bt.size++
	}
	bt.add(bt.statements...)
	bt.size += 2 * len(bt.statements)
	bt.multi = true
	bt.term = true
	if len(bt.statements) > 0 {
		bt.jump = hasJump(bt.statements[len(bt.statements)-1])
	}
	return bt
}

func (bt *blockTranslation) WriteTo(b *Buffer)         { bt.writeStatements(b, false) }
func (bt *blockTranslation) writeWithReturn(b *Buffer) { bt.writeStatements(b, !bt.typ.IsVoid()) }

func (bt *blockTranslation) writeStatements(b *Buffer, ret bool) {
	for i, g := range bt.groups {
		if i > 0 {
			b.NewLine()
		}
		g.typeName.WriteTo(b)
		b.Space()
		for j, name := range g.names {
			if j > 0 {
				b.Write(", ")
			}
			b.Variable(name)
		}
		b.Write(";")
	}
	if len(bt.groups) > 0 && len(bt.statements) > 0 {
		b.NewLine()
		b.NewLine()
	}
	last := len(bt.statements) - 1
	for i, s := range bt.statements {
		if i > 0 {
			b.NewLine()
			if i == last && isBranching(bt.statements[i-1]) && !b.EndsWithBlankLine() {
				b.NewLine()
			}
		}
		if ret && i == last {
			writeReturnStatement(b, s)
			continue
		}
		writeStatement(b, s)
	}
}

// isBranching reports whether t is a braced control-flow statement, which
// is separated from a following final statement by a blank line. Labels
// write their own blank line in labelTranslation.write.
func isBranching(t Translation) bool {
	switch t.(type) {
	case *ifTranslation, *switchTranslation, *loopTranslation, *tryTranslation:
		return true
	}
	return false
}

// codeBlock writes a translation as a body: a statement sequence, inside
// braces when required. Options are set while it is built and fixed before
// it is written.
type codeBlock struct {
	meta
	body   Translation
	braces bool
	ret    bool
}

func newCodeBlock(c *context, n expr.Node) *codeBlock {
	return wrapCodeBlock(c.translate(n))
}

func wrapCodeBlock(body Translation) *codeBlock {
	cb := &codeBlock{body: body}
	cb.kind, cb.typ = body.Kind(), body.Type()
	cb.add(body)
	cb.term = true
	cb.jump = hasJump(body)
	return cb
}

// withBraces makes the body brace-delimited.
func (cb *codeBlock) withBraces() *codeBlock {
	if !cb.braces {
		cb.braces = true
		cb.multi = true
		cb.size += 4
	}
	return cb
}

// withReturn hands the value of the final statement back with a return
// keyword.
func (cb *codeBlock) withReturn() *codeBlock {
	if !cb.ret {
		cb.ret = true
		cb.size += len("return ")
	}
	return cb
}

func (cb *codeBlock) isEmpty() bool { return !cb.braces && isEmpty(cb.body) }

func (cb *codeBlock) WriteTo(b *Buffer) {
	if !cb.braces {
		cb.writeBody(b, cb.ret)
		return
	}
	b.OpenBrace()
	cb.writeBody(b, cb.ret)
	b.CloseBrace()
}

func (cb *codeBlock) writeWithReturn(b *Buffer) {
	if !cb.braces {
		cb.writeBody(b, true)
		return
	}
	b.OpenBrace()
	cb.writeBody(b, true)
	b.CloseBrace()
}

func (cb *codeBlock) writeBody(b *Buffer, ret bool) {
	if isEmpty(cb.body) {
		return
	}
	if ret {
		writeReturnStatement(b, cb.body)
		return
	}
	writeStatement(b, cb.body)
}

// writeInlineBraces writes an empty body as "{ }".
func writeInlineBraces(b *Buffer) { b.Write("{ }") }

package translate

import "github.com/calumari/readex/internal/expr"

var mathType = expr.Class("Math")

// binaryTranslation writes left op right.
type binaryTranslation struct {
	meta
	left, right Translation
	symbol      string
	prec        int
	checked     bool
}

func newBinary(c *context, n *expr.Binary) Translation {
	switch n.Op {
	case expr.Power:
		return newCall(c, expr.CallStatic(mathType, "Pow", expr.Double, n.Left, n.Right))
	case expr.ArrayIndex:
		return newIndex(c, &expr.Index{Object: n.Left, Args: []expr.Node{n.Right}, Typ: n.Typ})
	}
	info, ok := binaryOps[n.Op]
	if !ok {
		return newFallback(c, n)
	}
	bt := &binaryTranslation{symbol: info.symbol, prec: info.prec, checked: n.Op.Checked()}
	bt.kind, bt.typ = expr.KindBinary, n.Typ
	bt.left = c.operand(n.Left, info.prec, false)
	bt.right = c.operand(n.Right, info.prec, !regroups(n, info))
	bt.add(bt.left, bt.right)
	bt.size += len(info.symbol) + 2
	if bt.checked {
		bt.token(c, "checked", TokenKeyword)
		bt.size += 2
		bt.prec = precPrimary
		bt.term = bt.multi
	}
	return bt
}

// regroups reports whether the right operand of n can drop its parentheses
// at equal precedence: only the same associative operator on the same type.
func regroups(n *expr.Binary, info binaryInfo) bool {
	r, ok := n.Right.(*expr.Binary)
	return ok && info.assoc && r.Op == n.Op && r.Type().Equal(n.Type())
}

func (bt *binaryTranslation) precedence() int { return bt.prec }

func (bt *binaryTranslation) WriteTo(b *Buffer) {
	if !bt.checked {
		bt.writeOperation(b)
		return
	}
	writeChecked(b, bt.multi, bt.writeOperation)
}

func (bt *binaryTranslation) writeOperation(b *Buffer) {
	bt.left.WriteTo(b)
	b.Write(" " + bt.symbol + " ")
	bt.right.WriteTo(b)
}

// writeChecked wraps an overflow-checked operation in checked(...), or in
// a checked block when the operation spans several lines.
func writeChecked(b *Buffer, multiline bool, write func(*Buffer)) {
	b.Keyword("checked")
	if !multiline {
		b.Write("(")
		write(b)
		b.Write(")")
		return
	}
	b.OpenBrace()
	write(b)
	b.CloseBrace()
}

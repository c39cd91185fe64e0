package translate

import "github.com/calumari/readex/internal/expr"

// unaryTranslation writes a prefix or postfix operator around an operand.
type unaryTranslation struct {
	meta
	prefix, suffix string
	operand        Translation
	prec           int
	checked        bool
}

func newUnary(c *context, n *expr.Unary) Translation {
	switch n.Op {
	case expr.IsTrue:
		return c.translate(n.Operand)
	case expr.Increment, expr.Decrement:
		op := expr.Add
		if n.Op == expr.Decrement {
			op = expr.Subtract
		}
		return newBinary(c, &expr.Binary{Op: op, Left: n.Operand, Right: &expr.Constant{Value: 1, Typ: n.Operand.Type()}, Typ: n.Typ})
	case expr.ArrayLength:
		return newMemberAccess(c, &expr.MemberAccess{Object: n.Operand, Member: "Length", Typ: expr.Int})
	}

	u := &unaryTranslation{prec: precUnary}
	u.kind, u.typ = expr.KindUnary, n.Typ
	switch n.Op {
	case expr.Negate:
		u.prefix = "-"
	case expr.NegateChecked:
		u.prefix = "-"
		u.checked = true
	case expr.UnaryPlus:
		u.prefix = "+"
	case expr.Not, expr.IsFalse:
		u.prefix = "!"
		if t := n.Operand.Type(); t != nil && t.Kind != expr.TypeBool && !(t.Kind == expr.TypeNullable && t.Elem.Kind == expr.TypeBool) && n.Op == expr.Not {
			u.prefix = "~"
		}
	case expr.OnesComplement:
		u.prefix = "~"
	case expr.PreIncrementAssign:
		u.prefix = "++"
	case expr.PreDecrementAssign:
		u.prefix = "--"
	case expr.PostIncrementAssign:
		u.suffix = "++"
		u.prec = precPrimary
	case expr.PostDecrementAssign:
		u.suffix = "--"
		u.prec = precPrimary
	}

	u.operand = c.operand(n.Operand, u.prec, false)
	if u.prefix != "" && startsWithSign(u.operand, u.prefix[0]) {
		u.operand = newParens(u.operand)
	}
	u.add(u.operand)
	u.size += len(u.prefix) + len(u.suffix)
	if u.checked {
		u.token(c, "checked", TokenKeyword)
		u.size += 2
		u.prec = precPrimary
		u.term = u.multi
	}
	return u
}

// startsWithSign reports whether t would begin with sign, which would fuse
// with a prefix operator of the same character.
func startsWithSign(t Translation, sign byte) bool {
	switch x := t.(type) {
	case *constantTranslation:
		return len(x.text) > 0 && x.text[0] == sign
	case *unaryTranslation:
		return len(x.prefix) > 0 && x.prefix[0] == sign && !x.checked
	}
	return false
}

func (u *unaryTranslation) precedence() int { return u.prec }

func (u *unaryTranslation) WriteTo(b *Buffer) {
	if !u.checked {
		u.writeOperation(b)
		return
	}
	writeChecked(b, u.multi, u.writeOperation)
}

func (u *unaryTranslation) writeOperation(b *Buffer) {
	b.Write(u.prefix)
	u.operand.WriteTo(b)
	b.Write(u.suffix)
}

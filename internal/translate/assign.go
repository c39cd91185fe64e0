package translate

import "github.com/calumari/readex/internal/expr"

// assignTranslation writes target op value, optionally declaring the target
// variable in the same statement.
type assignTranslation struct {
	meta
	declaration Translation
	target      Translation
	symbol      string
	value       Translation
	checked     bool
}

func newAssign(c *context, n *expr.Assign) Translation {
	if n.Op == expr.PowerAssign {
		pow := expr.CallStatic(mathType, "Pow", expr.Double, n.Target, n.Value)
		return newAssign(c, &expr.Assign{Op: expr.AssignPlain, Target: n.Target, Value: pow})
	}
	symbol, ok := assignSymbols[n.Op]
	if !ok {
		return newFallback(c, n)
	}
	a := &assignTranslation{symbol: symbol, checked: n.Op.Checked()}
	a.kind, a.typ = expr.KindAssign, n.Type()
	a.target = c.translate(n.Target)
	a.value = c.operand(n.Value, precAssign, false)
	if c.analysis.IsFused(n) {
		a.declaration = declarationType(c, n.Target.Type(), n.Value)
		a.add(a.declaration)
		a.size++
	}
	a.add(a.target, a.value)
	a.size += len(symbol) + 2
	if a.checked {
		a.token(c, "checked", TokenKeyword)
		a.size += 2
		a.term = a.multi
	}
	return a
}

// declarationType returns the type written in front of a declared variable:
// var when the initial value pins the type down, otherwise the type name.
func declarationType(c *context, varType *expr.Type, value expr.Node) Translation {
	if !c.settings.explicitTypeNames && varInferable(varType, value) {
		return newFixed(c, expr.KindConstant, expr.TypeOfType, "var", TokenKeyword)
	}
	return newTypeName(c, varType)
}

func varInferable(varType *expr.Type, value expr.Node) bool {
	switch v := value.(type) {
	case *expr.Default:
		return false
	case *expr.Constant:
		if v.Value == nil {
			return false
		}
	case *expr.Lambda, *expr.Quote:
		return false
	}
	return value.Type().Equal(varType)
}

func (a *assignTranslation) precedence() int {
	if a.checked {
		return precPrimary
	}
	return precAssign
}

func (a *assignTranslation) WriteTo(b *Buffer) {
	if a.checked {
		writeChecked(b, a.multi, a.writeAssignment)
		return
	}
	a.writeAssignment(b)
}

func (a *assignTranslation) writeAssignment(b *Buffer) {
	if a.declaration != nil {
		a.declaration.WriteTo(b)
		b.Space()
	}
	a.target.WriteTo(b)
	b.Write(" " + a.symbol + " ")
	a.value.WriteTo(b)
}

package listing

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"math"

	"github.com/calumari/readex/internal/expr"
)

func (c *converter) exprs(list []ast.Expr) []expr.Node {
	out := make([]expr.Node, len(list))
	for i, e := range list {
		out[i] = c.expr(e)
	}
	return out
}

func (c *converter) typeOf(e ast.Expr) *expr.Type { return mapType(c.info.TypeOf(e)) }

func (c *converter) expr(e ast.Expr) expr.Node {
	switch e := e.(type) {
	case *ast.BasicLit:
		return c.literal(e)
	case *ast.Ident:
		return c.ident(e)
	case *ast.ParenExpr:
		return c.expr(e.X)
	case *ast.StarExpr:
		return c.expr(e.X)
	case *ast.UnaryExpr:
		return c.unary(e)
	case *ast.BinaryExpr:
		return c.binary(e)
	case *ast.CallExpr:
		return c.call(e)
	case *ast.SelectorExpr:
		return c.selector(e)
	case *ast.IndexExpr:
		if c.isInstantiation(e.X) {
			return c.expr(e.X)
		}
		return &expr.Index{Object: c.expr(e.X), Args: one(c.expr(e.Index)), Typ: c.typeOf(e)}
	case *ast.IndexListExpr:
		return c.expr(e.X)
	case *ast.SliceExpr:
		return c.slice(e)
	case *ast.CompositeLit:
		return c.composite(e)
	case *ast.FuncLit:
		return c.funcLit(e)
	case *ast.TypeAssertExpr:
		return &expr.Cast{Op: expr.Convert, Operand: c.expr(e.X), Typ: c.typeOf(e)}
	}
	return &expr.Parameter{Name: types.ExprString(e), Typ: c.typeOf(e)}
}

func (c *converter) isInstantiation(e ast.Expr) bool {
	if id, ok := ast.Unparen(e).(*ast.Ident); ok {
		_, ok := c.info.Instances[id]
		return ok
	}
	return false
}

func (c *converter) literal(lit *ast.BasicLit) expr.Node {
	tv := c.info.Types[lit]
	if lit.Kind == token.CHAR {
		if v, ok := constant.Int64Val(constant.ToInt(tv.Value)); ok {
			return &expr.Constant{Value: rune(v), Typ: expr.Char}
		}
	}
	return constantNode(tv.Value, mapType(tv.Type))
}

// constantNode converts a compile-time constant to a literal of type t.
func constantNode(v constant.Value, t *expr.Type) expr.Node {
	if v == nil {
		return &expr.Default{Typ: t}
	}
	switch v.Kind() {
	case constant.Bool:
		return &expr.Constant{Value: constant.BoolVal(v), Typ: expr.Bool}
	case constant.String:
		return &expr.Constant{Value: constant.StringVal(v), Typ: t}
	case constant.Int:
		switch t.Kind {
		case expr.TypeFloat, expr.TypeDouble:
			f, _ := constant.Float64Val(v)
			return &expr.Constant{Value: f, Typ: t}
		case expr.TypeULong:
			u, _ := constant.Uint64Val(v)
			return &expr.Constant{Value: u, Typ: t}
		case expr.TypeChar:
			i, _ := constant.Int64Val(v)
			return &expr.Constant{Value: rune(i), Typ: t}
		}
		i, exact := constant.Int64Val(v)
		if !exact {
			u, _ := constant.Uint64Val(v)
			return &expr.Constant{Value: u, Typ: expr.ULong}
		}
		if t.Kind == expr.TypeLong || i > math.MaxInt32 || i < math.MinInt32 {
			return &expr.Constant{Value: i, Typ: expr.Long}
		}
		return &expr.Constant{Value: int(i), Typ: t}
	case constant.Float:
		f, _ := constant.Float64Val(v)
		if t.Kind == expr.TypeFloat {
			return &expr.Constant{Value: float32(f), Typ: t}
		}
		return &expr.Constant{Value: f, Typ: expr.Double}
	}
	return &expr.Parameter{Name: v.String(), Typ: t}
}

func (c *converter) ident(id *ast.Ident) expr.Node {
	obj := c.info.Uses[id]
	if obj == nil {
		obj = c.info.Defs[id]
	}
	if p, ok := c.vars[obj]; ok {
		return p
	}
	switch o := obj.(type) {
	case *types.Nil:
		return &expr.Constant{Typ: expr.Object}
	case *types.Const:
		if o.Pkg() == nil {
			return constantNode(o.Val(), c.typeOf(id))
		}
		return &expr.MemberAccess{Member: o.Name(), Typ: c.typeOf(id)}
	case *types.Var, *types.Func, *types.TypeName:
		return &expr.MemberAccess{Member: o.Name(), Typ: c.typeOf(id)}
	}
	return &expr.Parameter{Name: id.Name, Typ: c.typeOf(id)}
}

var unaryOps = map[token.Token]expr.UnaryOp{
	token.SUB: expr.Negate,
	token.ADD: expr.UnaryPlus,
	token.NOT: expr.Not,
	token.XOR: expr.OnesComplement,
}

func (c *converter) unary(e *ast.UnaryExpr) expr.Node {
	if tv := c.info.Types[e]; tv.Value != nil && e.Op == token.SUB {
		if _, ok := e.X.(*ast.BasicLit); ok {
			return constantNode(tv.Value, mapType(tv.Type))
		}
	}
	x := c.expr(e.X)
	switch e.Op {
	case token.AND:
		return x
	case token.ARROW:
		return expr.CallMethod(x, "Receive", c.typeOf(e))
	}
	op, ok := unaryOps[e.Op]
	if !ok {
		return &expr.Parameter{Name: types.ExprString(e), Typ: c.typeOf(e)}
	}
	return &expr.Unary{Op: op, Operand: x, Typ: c.typeOf(e)}
}

var binaryOps = map[token.Token]expr.BinaryOp{
	token.ADD:  expr.Add,
	token.SUB:  expr.Subtract,
	token.MUL:  expr.Multiply,
	token.QUO:  expr.Divide,
	token.REM:  expr.Modulo,
	token.AND:  expr.And,
	token.OR:   expr.Or,
	token.XOR:  expr.ExclusiveOr,
	token.SHL:  expr.LeftShift,
	token.SHR:  expr.RightShift,
	token.LAND: expr.AndAlso,
	token.LOR:  expr.OrElse,
	token.EQL:  expr.Equal,
	token.NEQ:  expr.NotEqual,
	token.LSS:  expr.LessThan,
	token.LEQ:  expr.LessThanOrEqual,
	token.GTR:  expr.GreaterThan,
	token.GEQ:  expr.GreaterThanOrEqual,
}

func (c *converter) binary(e *ast.BinaryExpr) expr.Node {
	l, r := c.expr(e.X), c.expr(e.Y)
	t := c.typeOf(e)
	if e.Op == token.AND_NOT {
		return &expr.Binary{Op: expr.And, Left: l, Right: expr.MakeUnary(expr.OnesComplement, r), Typ: t}
	}
	return &expr.Binary{Op: binaryOps[e.Op], Left: l, Right: r, Typ: t}
}

func (c *converter) selector(e *ast.SelectorExpr) expr.Node {
	if sel, ok := c.info.Selections[e]; ok {
		if sel.Kind() == types.MethodExpr {
			return &expr.MemberAccess{Declaring: mapType(sel.Recv()), Member: e.Sel.Name, Typ: c.typeOf(e)}
		}
		return expr.Property(c.expr(e.X), e.Sel.Name, c.typeOf(e))
	}
	if pkg := c.packageOf(e.X); pkg != "" {
		return &expr.MemberAccess{Declaring: expr.Class(pkg), Member: e.Sel.Name, Typ: c.typeOf(e)}
	}
	return &expr.Parameter{Name: types.ExprString(e), Typ: c.typeOf(e)}
}

// packageOf returns the local name of an imported package referenced by e.
func (c *converter) packageOf(e ast.Expr) string {
	if id, ok := e.(*ast.Ident); ok {
		if pn, ok := c.info.Uses[id].(*types.PkgName); ok {
			return pn.Name()
		}
	}
	return ""
}

// slice renders s[lo:hi] with Skip and Take.
func (c *converter) slice(e *ast.SliceExpr) expr.Node {
	x := c.expr(e.X)
	t := c.typeOf(e)
	out := x
	if e.Low != nil {
		out = extension("Skip", t, out, c.expr(e.Low))
	}
	if e.High != nil {
		n := c.expr(e.High)
		if e.Low != nil {
			n = expr.MakeBinary(expr.Subtract, n, c.expr(e.Low))
		}
		out = extension("Take", t, out, n)
	}
	return out
}

// extension calls a LINQ-style extension method on its first argument.
func extension(name string, result *expr.Type, args ...expr.Node) *expr.Call {
	m := expr.StaticMethod(expr.Class("Enumerable"), name, result, args...)
	m.Extension = true
	return &expr.Call{Method: m, Args: args}
}

func (c *converter) composite(lit *ast.CompositeLit) expr.Node {
	gt := c.info.TypeOf(lit)
	t := mapType(gt)
	under := gt.Underlying()
	if p, ok := under.(*types.Pointer); ok {
		under = p.Elem().Underlying()
	}
	switch u := under.(type) {
	case *types.Struct:
		mi := &expr.MemberInit{New: &expr.New{Typ: t}}
		for i, el := range lit.Elts {
			name, value := "", el
			if kv, ok := el.(*ast.KeyValueExpr); ok {
				name, value = types.ExprString(kv.Key), kv.Value
			} else if i < u.NumFields() {
				name = u.Field(i).Name()
			}
			mi.Bindings = append(mi.Bindings, expr.Binding{Kind: expr.BindAssign, Member: name, Value: c.expr(value)})
		}
		if len(mi.Bindings) == 0 {
			return mi.New
		}
		return mi
	case *types.Map:
		li := &expr.ListInit{New: &expr.New{Typ: t}}
		add := expr.InstanceMethod(t, "Add", expr.Void)
		for _, el := range lit.Elts {
			kv, ok := el.(*ast.KeyValueExpr)
			if !ok {
				continue
			}
			li.Inits = append(li.Inits, expr.ElementInit{AddMethod: add, Args: []expr.Node{c.expr(kv.Key), c.expr(kv.Value)}})
		}
		if len(li.Inits) == 0 {
			return li.New
		}
		return li
	case *types.Slice, *types.Array:
		ai := &expr.ArrayInit{Elem: mapType(elemType(u))}
		for _, el := range lit.Elts {
			if kv, ok := el.(*ast.KeyValueExpr); ok {
				el = kv.Value
			}
			ai.Items = append(ai.Items, c.expr(el))
		}
		return ai
	}
	return &expr.New{Typ: t}
}

func (c *converter) call(e *ast.CallExpr) expr.Node {
	fun := ast.Unparen(e.Fun)
	if tv := c.info.Types[fun]; tv.IsType() {
		return c.conversion(e)
	}
	if id, ok := fun.(*ast.Ident); ok {
		if b, ok := c.info.Uses[id].(*types.Builtin); ok {
			return c.builtin(b.Name(), e)
		}
	}
	result := c.typeOf(e)
	args := c.exprs(e.Args)

	switch f := fun.(type) {
	case *ast.SelectorExpr:
		if sel, ok := c.info.Selections[f]; ok && sel.Kind() == types.MethodVal {
			recv := c.expr(f.X)
			return &expr.Call{Object: recv, Method: expr.InstanceMethod(recv.Type(), f.Sel.Name, result, args...), Args: args}
		}
		if pkg := c.packageOf(f.X); pkg != "" {
			return expr.CallStatic(expr.Class(pkg), f.Sel.Name, result, args...)
		}
	case *ast.Ident, *ast.IndexExpr, *ast.IndexListExpr:
		if id := funcIdent(f); id != nil {
			if _, ok := c.info.Uses[id].(*types.Func); ok {
				m := expr.StaticMethod(nil, id.Name, result, args...)
				if inst, ok := c.info.Instances[id]; ok {
					for i := 0; i < inst.TypeArgs.Len(); i++ {
						m.GenericArgs = append(m.GenericArgs, mapType(inst.TypeArgs.At(i)))
					}
				}
				return &expr.Call{Method: m, Args: args}
			}
		}
	}
	return &expr.Invoke{Target: c.expr(fun), Args: args}
}

func funcIdent(e ast.Expr) *ast.Ident {
	switch f := e.(type) {
	case *ast.Ident:
		return f
	case *ast.IndexExpr:
		id, _ := f.X.(*ast.Ident)
		return id
	case *ast.IndexListExpr:
		id, _ := f.X.(*ast.Ident)
		return id
	}
	return nil
}

// conversion renders T(x). Conversions of constants fold to a literal.
func (c *converter) conversion(e *ast.CallExpr) expr.Node {
	tv := c.info.Types[e]
	t := mapType(tv.Type)
	if tv.Value != nil {
		if _, ok := ast.Unparen(e.Args[0]).(*ast.BasicLit); ok {
			return constantNode(tv.Value, t)
		}
	}
	x := c.expr(e.Args[0])
	if x.Type().Equal(t) {
		return x
	}
	return &expr.Cast{Op: expr.Convert, Operand: x, Typ: t}
}

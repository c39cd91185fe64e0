package listing

import (
	"go/ast"
	"go/types"

	"github.com/calumari/readex/internal/expr"
)

var (
	console = expr.Class("Console")
	mathT   = expr.Class("Math")
	arrayT  = expr.Class("Array")
)

// builtin maps a call of a predeclared function to its closest C# form.
func (c *converter) builtin(name string, e *ast.CallExpr) expr.Node {
	t := c.typeOf(e)
	switch name {
	case "len", "cap":
		x := c.expr(e.Args[0])
		return c.length(x, c.info.TypeOf(e.Args[0]), name == "cap")
	case "append":
		args := c.exprs(e.Args)
		if len(args) == 1 {
			return args[0]
		}
		if e.Ellipsis.IsValid() {
			return extension("Concat", t, args...)
		}
		return extension("Append", t, args...)
	case "make":
		return c.make(e, t)
	case "new":
		if t.IsReference() {
			return &expr.New{Typ: t}
		}
		return &expr.Default{Typ: t}
	case "panic":
		v := c.expr(e.Args[0])
		if !isErrorType(c.info.TypeOf(e.Args[0])) {
			v = &expr.New{Typ: expr.Exception, Args: []expr.Node{v}}
		}
		return &expr.Throw{Value: v}
	case "print":
		return expr.CallStatic(console, "Write", expr.Void, c.exprs(e.Args)...)
	case "println":
		return expr.CallStatic(console, "WriteLine", expr.Void, c.exprs(e.Args)...)
	case "delete":
		return expr.CallMethod(c.expr(e.Args[0]), "Remove", expr.Bool, c.expr(e.Args[1]))
	case "clear":
		return expr.CallMethod(c.expr(e.Args[0]), "Clear", expr.Void)
	case "close":
		return expr.CallMethod(c.expr(e.Args[0]), "Close", expr.Void)
	case "copy":
		src := c.expr(e.Args[1])
		return expr.CallStatic(arrayT, "Copy", expr.Void, src, c.expr(e.Args[0]), expr.MakeUnary(expr.ArrayLength, src))
	case "min", "max":
		args := c.exprs(e.Args)
		method := "Min"
		if name == "max" {
			method = "Max"
		}
		out := args[0]
		for _, a := range args[1:] {
			out = expr.CallStatic(mathT, method, t, out, a)
		}
		return out
	case "recover":
		return &expr.Constant{Typ: expr.Object}
	}
	return expr.CallStatic(nil, name, t, c.exprs(e.Args)...)
}

// length reads the element count of x: Length for arrays and strings,
// Count for maps and channels.
func (c *converter) length(x expr.Node, t types.Type, capacity bool) expr.Node {
	switch t.Underlying().(type) {
	case *types.Map, *types.Chan:
		return expr.Property(x, "Count", expr.Int)
	case *types.Basic:
		return expr.Property(x, "Length", expr.Int)
	}
	if capacity {
		return expr.Property(x, "Capacity", expr.Int)
	}
	return expr.MakeUnary(expr.ArrayLength, x)
}

func (c *converter) make(e *ast.CallExpr, t *expr.Type) expr.Node {
	made := c.info.TypeOf(e.Args[0])
	switch made.Underlying().(type) {
	case *types.Slice:
		size := expr.Node(expr.Const(0))
		if len(e.Args) > 1 {
			size = c.expr(e.Args[1])
		}
		return &expr.NewArray{Elem: mapType(elemType(made)), Bounds: []expr.Node{size}}
	case *types.Map, *types.Chan:
		return &expr.New{Typ: t, Args: c.exprs(e.Args[1:])}
	}
	return &expr.New{Typ: t}
}

package listing

import (
	"go/ast"
	"go/types"
	"strconv"

	"github.com/calumari/readex/internal/expr"
)

// converter turns type-checked Go function bodies into expression trees.
// Variables are resolved through the type checker's objects, so shadowed
// names stay distinct.
type converter struct {
	info   *types.Info
	vars   map[types.Object]*expr.Parameter
	scopes []*scope
	fn     *funcState
}

// scope holds the names visible in one Go block. Only vars become block
// variables; params belong to the enclosing lambda.
type scope struct {
	vars, params []*expr.Parameter
}

// funcState is the part of the converter that belongs to one function
// body. Closures get their own.
type funcState struct {
	result *expr.Type
	named  []*expr.Parameter
	defers []expr.Node
	labels map[string]*expr.LabelTarget
	jumps  []*jumpScope
}

// jumpScope is an enclosing loop or switch that break or continue leave.
type jumpScope struct {
	name string
	loop bool
	brk  *expr.LabelTarget
	// cont is set when a plain continue reaches the loop; loops with a post
	// statement continue through next instead.
	cont *expr.LabelTarget
	exit *expr.LabelTarget
	next *expr.LabelTarget
}

func newConverter(info *types.Info) *converter {
	return &converter{
		info: info,
		vars: map[types.Object]*expr.Parameter{},
	}
}

// convertFunc converts a declared function or method. The receiver, when
// present, becomes the first lambda parameter.
func (c *converter) convertFunc(decl *ast.FuncDecl) *expr.Lambda {
	var fields []*ast.Field
	if decl.Recv != nil {
		fields = append(fields, decl.Recv.List...)
	}
	fields = append(fields, decl.Type.Params.List...)
	sig, _ := c.info.Defs[decl.Name].Type().(*types.Signature)
	return c.lambda(fields, decl.Type.Results, sig, decl.Body)
}

func (c *converter) funcLit(lit *ast.FuncLit) *expr.Lambda {
	sig, _ := c.info.TypeOf(lit).(*types.Signature)
	return c.lambda(lit.Type.Params.List, lit.Type.Results, sig, lit.Body)
}

func (c *converter) lambda(fields []*ast.Field, results *ast.FieldList, sig *types.Signature, body *ast.BlockStmt) *expr.Lambda {
	outer := c.fn
	c.fn = &funcState{labels: map[string]*expr.LabelTarget{}, result: expr.Void}
	if sig != nil {
		c.fn.result = resultType(sig)
	}
	defer func() { c.fn = outer }()

	c.pushScope()
	params := c.params(fields)
	var prologue []expr.Node
	if results != nil {
		for _, f := range results.List {
			for _, name := range f.Names {
				obj := c.info.Defs[name]
				if obj == nil {
					continue
				}
				p := c.declare(obj)
				c.fn.named = append(c.fn.named, p)
				prologue = append(prologue, expr.AssignTo(p, &expr.Default{Typ: p.Typ}))
			}
		}
	}
	stmts := append(prologue, c.stmts(body.List)...)
	vars := c.popScope()

	var b expr.Node
	if len(c.fn.defers) > 0 {
		b = &expr.Try{
			Body:    &expr.Block{Variables: vars, Expressions: stmts, Typ: expr.Void},
			Finally: &expr.Block{Expressions: reversed(c.fn.defers), Typ: expr.Void},
		}
	} else {
		b = finalBlock(vars, stmts)
	}

	args := make([]*expr.Type, 0, len(params)+1)
	for _, p := range params {
		args = append(args, p.Typ)
	}
	t := expr.Action(args...)
	if !c.fn.result.IsVoid() {
		t = expr.Func(append(args, c.fn.result)...)
	}
	return &expr.Lambda{Params: params, Body: b, Typ: t}
}

// finalBlock builds a function body. A trailing return becomes the
// block's value; a trailing bare return is dropped.
func finalBlock(vars []*expr.Parameter, stmts []expr.Node) *expr.Block {
	if n := len(stmts); n > 0 {
		if g, ok := stmts[n-1].(*expr.Goto); ok && g.Jump == expr.JumpReturn && g.Target == nil {
			if g.Value == nil {
				return &expr.Block{Variables: vars, Expressions: stmts[:n-1], Typ: expr.Void}
			}
			stmts[n-1] = g.Value
			return &expr.Block{Variables: vars, Expressions: stmts}
		}
	}
	return &expr.Block{Variables: vars, Expressions: stmts, Typ: expr.Void}
}

func reversed(nodes []expr.Node) []expr.Node {
	out := make([]expr.Node, len(nodes))
	for i, n := range nodes {
		out[len(nodes)-1-i] = n
	}
	return out
}

func (c *converter) params(fields []*ast.Field) []*expr.Parameter {
	var ps []*expr.Parameter
	for _, f := range fields {
		if len(f.Names) == 0 {
			ps = append(ps, expr.Var("", c.fieldType(f)))
			continue
		}
		for _, name := range f.Names {
			obj := c.info.Defs[name]
			if obj == nil || name.Name == "_" {
				ps = append(ps, expr.Var("", c.fieldType(f)))
				continue
			}
			p := c.uniqueVar(obj.Name(), mapType(obj.Type()))
			c.vars[obj] = p
			top := c.scopes[len(c.scopes)-1]
			top.params = append(top.params, p)
			ps = append(ps, p)
		}
	}
	return ps
}

func (c *converter) fieldType(f *ast.Field) *expr.Type {
	if e, ok := f.Type.(*ast.Ellipsis); ok {
		return expr.ArrayOf(mapType(c.info.TypeOf(e.Elt)))
	}
	return mapType(c.info.TypeOf(f.Type))
}

func (c *converter) pushScope() { c.scopes = append(c.scopes, &scope{}) }

func (c *converter) popScope() []*expr.Parameter {
	top := c.scopes[len(c.scopes)-1]
	c.scopes = c.scopes[:len(c.scopes)-1]
	return top.vars
}

// declare creates the variable for obj in the innermost scope.
func (c *converter) declare(obj types.Object) *expr.Parameter {
	p := c.declareName(obj.Name(), mapType(obj.Type()))
	c.vars[obj] = p
	return p
}

// declareName creates a variable in the innermost scope.
func (c *converter) declareName(name string, t *expr.Type) *expr.Parameter {
	p := c.uniqueVar(name, t)
	top := c.scopes[len(c.scopes)-1]
	top.vars = append(top.vars, p)
	return p
}

// uniqueVar returns a variable whose name is not visible from any enclosing
// scope. Taken names get a numeric suffix, since C# rejects shadowed locals.
func (c *converter) uniqueVar(name string, t *expr.Type) *expr.Parameter {
	if name != "" && c.visible(name) {
		for i := 2; ; i++ {
			if candidate := name + strconv.Itoa(i); !c.visible(candidate) {
				name = candidate
				break
			}
		}
	}
	return expr.Var(name, t)
}

// temp declares an unnamed variable, named after its type when rendered.
func (c *converter) temp(t *expr.Type) *expr.Parameter { return c.declareName("", t) }

func (c *converter) visible(name string) bool {
	for _, s := range c.scopes {
		for _, p := range s.vars {
			if p.Name == name {
				return true
			}
		}
		for _, p := range s.params {
			if p.Name == name {
				return true
			}
		}
	}
	return false
}

func (c *converter) label(name string) *expr.LabelTarget {
	l, ok := c.fn.labels[name]
	if !ok {
		l = expr.NewLabel(name, expr.Void)
		c.fn.labels[name] = l
	}
	return l
}

func (c *converter) pushJump(name string, loop, post bool) *jumpScope {
	js := &jumpScope{name: name, loop: loop, brk: expr.NewLabel("", expr.Void)}
	if loop && !post {
		js.cont = expr.NewLabel("", expr.Void)
	}
	c.fn.jumps = append(c.fn.jumps, js)
	return js
}

func (c *converter) popJump() { c.fn.jumps = c.fn.jumps[:len(c.fn.jumps)-1] }

// findJump returns the scope a break or continue leaves, and whether C#
// would pick the same scope for an unlabeled jump.
func (c *converter) findJump(name string, loopsOnly bool) (*jumpScope, bool) {
	innermost := true
	for i := len(c.fn.jumps) - 1; i >= 0; i-- {
		js := c.fn.jumps[i]
		if loopsOnly && !js.loop {
			continue
		}
		if name == "" || js.name == name {
			return js, innermost
		}
		innermost = false
	}
	return nil, false
}

func (js *jumpScope) exitLabel() *expr.LabelTarget {
	if js.exit == nil {
		js.exit = expr.NewLabel(suffixed(js.name, "End"), expr.Void)
	}
	return js.exit
}

func (js *jumpScope) nextLabel() *expr.LabelTarget {
	if js.next == nil {
		js.next = expr.NewLabel(suffixed(js.name, "Next"), expr.Void)
	}
	return js.next
}

func suffixed(name, suffix string) string {
	if name == "" {
		return ""
	}
	return name + suffix
}

// withExit appends the label a break out of js lands on, if one was used.
func withExit(nodes []expr.Node, js *jumpScope) []expr.Node {
	if js.exit != nil {
		nodes = append(nodes, &expr.Label{Target: js.exit})
	}
	return nodes
}

package listing

import (
	"go/ast"
	"go/token"
	"go/types"
	"strconv"

	"github.com/calumari/readex/internal/expr"
)

func (c *converter) stmts(list []ast.Stmt) []expr.Node {
	var out []expr.Node
	for _, s := range list {
		out = append(out, c.stmt(s)...)
	}
	return out
}

func (c *converter) stmt(s ast.Stmt) []expr.Node {
	switch s := s.(type) {
	case *ast.ExprStmt:
		return one(c.expr(s.X))
	case *ast.AssignStmt:
		return c.assign(s)
	case *ast.IncDecStmt:
		op := expr.PostIncrementAssign
		if s.Tok == token.DEC {
			op = expr.PostDecrementAssign
		}
		return one(expr.MakeUnary(op, c.expr(s.X)))
	case *ast.DeclStmt:
		return c.declStmt(s)
	case *ast.ReturnStmt:
		return one(c.returnStmt(s))
	case *ast.BlockStmt:
		return one(c.block(s.List))
	case *ast.IfStmt:
		return c.ifStmt(s)
	case *ast.ForStmt:
		return c.forStmt(s, "")
	case *ast.RangeStmt:
		return c.rangeStmt(s, "")
	case *ast.SwitchStmt:
		return c.switchStmt(s, "")
	case *ast.TypeSwitchStmt:
		return c.typeSwitchStmt(s, "")
	case *ast.BranchStmt:
		return one(c.branch(s))
	case *ast.LabeledStmt:
		return c.labeled(s)
	case *ast.DeferStmt:
		c.fn.defers = append(c.fn.defers, c.deferred(s.Call))
		return nil
	case *ast.GoStmt:
		return one(c.goStmt(s))
	case *ast.EmptyStmt:
		return nil
	case *ast.SendStmt:
		return one(unsupported("channel send"))
	case *ast.SelectStmt:
		return one(unsupported("select"))
	}
	return one(unsupported("statement"))
}

func one(n expr.Node) []expr.Node {
	if n == nil {
		return nil
	}
	return []expr.Node{n}
}

func unsupported(what string) *expr.Comment {
	return &expr.Comment{Text: "unsupported: " + what}
}

// block converts a nested statement list with its own scope.
func (c *converter) block(list []ast.Stmt) *expr.Block {
	c.pushScope()
	stmts := c.stmts(list)
	return &expr.Block{Variables: c.popScope(), Expressions: stmts, Typ: expr.Void}
}

var assignOps = map[token.Token]expr.AssignOp{
	token.ADD_ASSIGN: expr.AddAssign,
	token.SUB_ASSIGN: expr.SubtractAssign,
	token.MUL_ASSIGN: expr.MultiplyAssign,
	token.QUO_ASSIGN: expr.DivideAssign,
	token.REM_ASSIGN: expr.ModuloAssign,
	token.AND_ASSIGN: expr.AndAssign,
	token.OR_ASSIGN:  expr.OrAssign,
	token.XOR_ASSIGN: expr.ExclusiveOrAssign,
	token.SHL_ASSIGN: expr.LeftShiftAssign,
	token.SHR_ASSIGN: expr.RightShiftAssign,
}

func (c *converter) assign(s *ast.AssignStmt) []expr.Node {
	define := s.Tok == token.DEFINE
	switch {
	case s.Tok == token.AND_NOT_ASSIGN:
		value := expr.MakeUnary(expr.OnesComplement, c.expr(s.Rhs[0]))
		return one(&expr.Assign{Op: expr.AndAssign, Target: c.expr(s.Lhs[0]), Value: value})
	case s.Tok != token.ASSIGN && !define:
		return one(&expr.Assign{Op: assignOps[s.Tok], Target: c.expr(s.Lhs[0]), Value: c.expr(s.Rhs[0])})
	case len(s.Lhs) == len(s.Rhs) && len(s.Lhs) > 1 && !define:
		return c.parallelAssign(s.Lhs, s.Rhs)
	case len(s.Lhs) == len(s.Rhs):
		values := c.exprs(s.Rhs)
		var out []expr.Node
		for i, lhs := range s.Lhs {
			out = append(out, c.assignTo(lhs, values[i], define))
		}
		return out
	case len(s.Rhs) == 1:
		return c.multiAssign(s.Lhs, s.Rhs[0], define)
	}
	return one(unsupported("assignment"))
}

// parallelAssign evaluates every right-hand side before assigning any,
// which keeps swaps such as a, b = b, a correct.
func (c *converter) parallelAssign(lhs, rhs []ast.Expr) []expr.Node {
	var out []expr.Node
	temps := make([]*expr.Parameter, len(rhs))
	for i, r := range rhs {
		v := c.expr(r)
		temps[i] = c.temp(v.Type())
		out = append(out, expr.AssignTo(temps[i], v))
	}
	for i, l := range lhs {
		out = append(out, c.assignTo(l, temps[i], false))
	}
	return out
}

// target returns the node an assignment writes. The blank identifier
// becomes a C# discard.
func (c *converter) target(e ast.Expr, define bool) expr.Node {
	if id, ok := e.(*ast.Ident); ok {
		if id.Name == "_" {
			return &expr.Parameter{Name: "_", Typ: expr.Object}
		}
		if define {
			if obj := c.info.Defs[id]; obj != nil {
				return c.declare(obj)
			}
		}
	}
	return c.expr(e)
}

func (c *converter) assignTo(lhs ast.Expr, value expr.Node, define bool) expr.Node {
	return expr.AssignTo(c.target(lhs, define), value)
}

func isBlank(e ast.Expr) bool {
	id, ok := e.(*ast.Ident)
	return ok && id.Name == "_"
}

// multiAssign handles one right-hand side feeding several variables: the
// comma-ok forms and calls returning several results.
func (c *converter) multiAssign(lhs []ast.Expr, rhs ast.Expr, define bool) []expr.Node {
	switch r := ast.Unparen(rhs).(type) {
	case *ast.IndexExpr:
		if _, ok := c.info.TypeOf(r.X).Underlying().(*types.Map); ok && len(lhs) == 2 {
			return c.lookup(lhs, r, define)
		}
	case *ast.TypeAssertExpr:
		if len(lhs) == 2 {
			return c.checkedAssert(lhs, r, define)
		}
	case *ast.UnaryExpr:
		if r.Op == token.ARROW {
			return one(unsupported("channel receive"))
		}
	}

	value := c.expr(rhs)
	tuple, ok := c.info.TypeOf(rhs).(*types.Tuple)
	if !ok {
		return one(unsupported("assignment"))
	}
	tmp := c.temp(value.Type())
	out := []expr.Node{expr.AssignTo(tmp, value)}
	for i, l := range lhs {
		if isBlank(l) {
			continue
		}
		item := expr.Property(tmp, "Item"+strconv.Itoa(i+1), mapType(tuple.At(i).Type()))
		out = append(out, c.assignTo(l, item, define))
	}
	return out
}

// lookup converts v, ok := m[k] into TryGetValue.
func (c *converter) lookup(lhs []ast.Expr, ix *ast.IndexExpr, define bool) []expr.Node {
	m, k := c.expr(ix.X), c.expr(ix.Index)
	if isBlank(lhs[0]) {
		contains := expr.CallMethod(m, "ContainsKey", expr.Bool, k)
		return one(c.assignTo(lhs[1], contains, define))
	}
	v := c.target(lhs[0], define)
	method := &expr.Method{
		Name:      "TryGetValue",
		Declaring: m.Type(),
		Params:    []expr.Param{{Type: k.Type()}, {Type: v.Type(), Mode: expr.Out}},
		Result:    expr.Bool,
	}
	call := &expr.Call{Object: m, Method: method, Args: []expr.Node{k, v}}
	if isBlank(lhs[1]) {
		return one(call)
	}
	return one(c.assignTo(lhs[1], call, define))
}

// checkedAssert converts v, ok := x.(T).
func (c *converter) checkedAssert(lhs []ast.Expr, ta *ast.TypeAssertExpr, define bool) []expr.Node {
	x := c.expr(ta.X)
	t := mapType(c.info.TypeOf(ta.Type))
	var out []expr.Node
	if !isBlank(lhs[1]) {
		out = append(out, c.assignTo(lhs[1], &expr.TypeTest{Op: expr.TypeIs, Operand: x, Test: t}, define))
	}
	if !isBlank(lhs[0]) {
		var value expr.Node = &expr.Cast{Op: expr.TypeAs, Operand: x, Typ: t}
		if !t.IsReference() {
			test := &expr.TypeTest{Op: expr.TypeIs, Operand: x, Test: t}
			value = expr.Ternary(test, &expr.Cast{Op: expr.Convert, Operand: x, Typ: t}, &expr.Default{Typ: t})
		}
		out = append(out, c.assignTo(lhs[0], value, define))
	}
	return out
}

func (c *converter) declStmt(s *ast.DeclStmt) []expr.Node {
	gd, ok := s.Decl.(*ast.GenDecl)
	if !ok {
		return one(unsupported("declaration"))
	}
	if gd.Tok == token.TYPE {
		return one(unsupported("local type declaration"))
	}
	var out []expr.Node
	for _, spec := range gd.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		lhs := make([]ast.Expr, len(vs.Names))
		for i, n := range vs.Names {
			lhs[i] = n
		}
		switch {
		case len(vs.Values) == len(vs.Names):
			for i, n := range vs.Names {
				out = append(out, c.assignTo(n, c.expr(vs.Values[i]), true))
			}
		case len(vs.Values) == 1:
			out = append(out, c.multiAssign(lhs, vs.Values[0], true)...)
		default:
			for _, n := range vs.Names {
				t := c.target(n, true)
				out = append(out, expr.AssignTo(t, &expr.Default{Typ: t.Type()}))
			}
		}
	}
	return out
}

func (c *converter) returnStmt(s *ast.ReturnStmt) expr.Node {
	var value expr.Node
	switch {
	case len(s.Results) == 1:
		value = c.expr(s.Results[0])
	case len(s.Results) > 1:
		value = &expr.New{Typ: c.fn.result, Args: c.exprs(s.Results)}
	case len(c.fn.named) == 1:
		value = c.fn.named[0]
	case len(c.fn.named) > 1:
		args := make([]expr.Node, len(c.fn.named))
		for i, p := range c.fn.named {
			args[i] = p
		}
		value = &expr.New{Typ: c.fn.result, Args: args}
	}
	return &expr.Goto{Jump: expr.JumpReturn, Value: value}
}

func (c *converter) ifStmt(s *ast.IfStmt) []expr.Node {
	var out []expr.Node
	if s.Init != nil {
		out = c.stmt(s.Init)
	}
	cond := c.expr(s.Cond)
	then := c.block(s.Body.List)
	var els expr.Node
	switch e := s.Else.(type) {
	case *ast.BlockStmt:
		els = c.block(e.List)
	case *ast.IfStmt:
		chain := c.ifStmt(e)
		if len(chain) == 1 {
			els = chain[0]
		} else {
			els = &expr.Block{Expressions: chain, Typ: expr.Void}
		}
	}
	return append(out, &expr.Conditional{Test: cond, IfTrue: then, IfFalse: els, Typ: expr.Void})
}

// forStmt lowers a for statement to an unconditional loop that breaks when
// the condition fails. The post statement runs at the end of the body, so
// continue jumps to a label placed just before it.
func (c *converter) forStmt(s *ast.ForStmt, label string) []expr.Node {
	var out []expr.Node
	if s.Init != nil {
		out = c.stmt(s.Init)
	}
	js := c.pushJump(label, true, s.Post != nil)
	var body []expr.Node
	if s.Cond != nil {
		body = append(body, expr.IfThen(negate(c.expr(s.Cond)), expr.Break(js.brk)))
	}
	c.pushScope()
	body = append(body, c.stmts(s.Body.List)...)
	vars := c.popScope()
	if js.next != nil {
		body = append(body, &expr.Label{Target: js.next})
	}
	if s.Post != nil {
		body = append(body, c.stmt(s.Post)...)
	}
	c.popJump()
	loop := &expr.Loop{Body: &expr.Block{Variables: vars, Expressions: body, Typ: expr.Void}, Break: js.brk, Continue: js.cont}
	return withExit(append(out, loop), js)
}

func (c *converter) rangeStmt(s *ast.RangeStmt, label string) []expr.Node {
	xt := c.info.TypeOf(s.X)
	switch u := xt.Underlying().(type) {
	case *types.Map:
		return c.rangeMap(s, u, label)
	case *types.Basic:
		if u.Info()&types.IsInteger != 0 {
			return c.rangeIndex(s, label, nil)
		}
		if u.Info()&types.IsString != 0 {
			return c.rangeIndex(s, label, types.Typ[types.Rune])
		}
	case *types.Slice, *types.Array, *types.Pointer:
		if elem := elemType(xt); elem != nil {
			return c.rangeIndex(s, label, elem)
		}
	}
	return one(unsupported("range over " + types.TypeString(xt, nil)))
}

// rangeIndex lowers a range over a sequence, or over an integer when elem
// is nil, to a counting loop.
func (c *converter) rangeIndex(s *ast.RangeStmt, label string, elem types.Type) []expr.Node {
	define := s.Tok == token.DEFINE
	var out []expr.Node
	x := c.expr(s.X)
	if _, ok := x.(*expr.Parameter); !ok {
		tmp := c.temp(x.Type())
		out = append(out, expr.AssignTo(tmp, x))
		x = tmp
	}
	var i expr.Node
	if s.Key != nil && !isBlank(s.Key) {
		i = c.target(s.Key, define)
	} else {
		i = c.declareName("i", expr.Int)
	}
	out = append(out, expr.AssignTo(i, expr.Const(0)))

	var length expr.Node
	switch {
	case elem == nil:
		length = x
	case x.Type().Kind == expr.TypeString:
		length = expr.Property(x, "Length", expr.Int)
	default:
		length = expr.MakeUnary(expr.ArrayLength, x)
	}

	js := c.pushJump(label, true, true)
	c.pushScope()
	body := []expr.Node{expr.IfThen(expr.MakeBinary(expr.GreaterThanOrEqual, i, length), expr.Break(js.brk))}
	if elem != nil && s.Value != nil && !isBlank(s.Value) {
		item := &expr.Index{Object: x, Args: []expr.Node{i}, Typ: mapType(elem)}
		body = append(body, c.assignTo(s.Value, item, define))
	}
	body = append(body, c.stmts(s.Body.List)...)
	if js.next != nil {
		body = append(body, &expr.Label{Target: js.next})
	}
	body = append(body, expr.MakeUnary(expr.PostIncrementAssign, i))
	vars := c.popScope()
	c.popJump()
	loop := &expr.Loop{Body: &expr.Block{Variables: vars, Expressions: body, Typ: expr.Void}, Break: js.brk}
	return withExit(append(out, loop), js)
}

// rangeMap lowers a range over a map to the enumerator loop a C# foreach
// compiles to.
func (c *converter) rangeMap(s *ast.RangeStmt, m *types.Map, label string) []expr.Node {
	define := s.Tok == token.DEFINE
	pair := expr.Struct("KeyValuePair", mapType(m.Key()), mapType(m.Elem()))
	e := c.declareName("enumerator", expr.Struct("Enumerator", pair))
	out := []expr.Node{expr.AssignTo(e, expr.CallMethod(c.expr(s.X), "GetEnumerator", e.Typ))}

	js := c.pushJump(label, true, false)
	c.pushScope()
	moved := expr.CallMethod(e, "MoveNext", expr.Bool)
	body := []expr.Node{expr.IfThen(expr.MakeUnary(expr.Not, moved), expr.Break(js.brk))}
	current := expr.Property(e, "Current", pair)
	if s.Key != nil && !isBlank(s.Key) {
		body = append(body, c.assignTo(s.Key, expr.Property(current, "Key", pair.Args[0]), define))
	}
	if s.Value != nil && !isBlank(s.Value) {
		body = append(body, c.assignTo(s.Value, expr.Property(current, "Value", pair.Args[1]), define))
	}
	body = append(body, c.stmts(s.Body.List)...)
	vars := c.popScope()
	c.popJump()
	loop := &expr.Loop{Body: &expr.Block{Variables: vars, Expressions: body, Typ: expr.Void}, Break: js.brk, Continue: js.cont}
	return withExit(append(out, loop), js)
}

func (c *converter) switchStmt(s *ast.SwitchStmt, label string) []expr.Node {
	var out []expr.Node
	if s.Init != nil {
		out = c.stmt(s.Init)
	}
	js := c.pushJump(label, false, false)
	var node expr.Node
	if s.Tag == nil {
		node = c.caseChain(s.Body.List, func(cc *ast.CaseClause) expr.Node { return anyOf(c.exprs(cc.List)) }, nil)
	} else {
		node = c.switchCases(c.expr(s.Tag), s.Body.List)
	}
	c.popJump()
	if node != nil {
		out = append(out, node)
	}
	return withExit(out, js)
}

func (c *converter) switchCases(tag expr.Node, clauses []ast.Stmt) expr.Node {
	sw := &expr.Switch{Value: tag, Typ: expr.Void}
	for _, st := range clauses {
		cc := st.(*ast.CaseClause)
		body := c.caseBody(cc.Body, nil)
		if cc.List == nil {
			sw.Default = body
			continue
		}
		sw.Cases = append(sw.Cases, expr.SwitchCase{Tests: c.exprs(cc.List), Body: body})
	}
	return sw
}

// caseChain lowers switch clauses to an if/else chain; the default clause
// becomes the final else. bind, when set, prepares each clause's scope.
func (c *converter) caseChain(clauses []ast.Stmt, test func(*ast.CaseClause) expr.Node, bind func(*ast.CaseClause) []expr.Node) expr.Node {
	type branch struct{ test, body expr.Node }
	var branches []branch
	var def expr.Node
	for _, st := range clauses {
		cc := st.(*ast.CaseClause)
		var prologue func() []expr.Node
		if bind != nil {
			prologue = func() []expr.Node { return bind(cc) }
		}
		if cc.List == nil {
			def = c.caseBody(cc.Body, prologue)
			continue
		}
		branches = append(branches, branch{test: test(cc), body: c.caseBody(cc.Body, prologue)})
	}
	node := def
	for i := len(branches) - 1; i >= 0; i-- {
		node = &expr.Conditional{Test: branches[i].test, IfTrue: branches[i].body, IfFalse: node, Typ: expr.Void}
	}
	return node
}

// caseBody converts a clause body. A trailing break is implied by the
// clause end and dropped.
func (c *converter) caseBody(list []ast.Stmt, prologue func() []expr.Node) *expr.Block {
	if n := len(list); n > 0 {
		if br, ok := list[n-1].(*ast.BranchStmt); ok && br.Tok == token.BREAK && br.Label == nil {
			list = list[:n-1]
		}
	}
	c.pushScope()
	var stmts []expr.Node
	if prologue != nil {
		stmts = prologue()
	}
	stmts = append(stmts, c.stmts(list)...)
	return &expr.Block{Variables: c.popScope(), Expressions: stmts, Typ: expr.Void}
}

// typeSwitchStmt lowers a type switch to type tests. The bound variable is
// declared in each clause that uses it.
func (c *converter) typeSwitchStmt(s *ast.TypeSwitchStmt, label string) []expr.Node {
	var out []expr.Node
	if s.Init != nil {
		out = c.stmt(s.Init)
	}
	var assert *ast.TypeAssertExpr
	switch a := s.Assign.(type) {
	case *ast.AssignStmt:
		assert, _ = a.Rhs[0].(*ast.TypeAssertExpr)
	case *ast.ExprStmt:
		assert, _ = a.X.(*ast.TypeAssertExpr)
	}
	if assert == nil {
		return append(out, unsupported("type switch"))
	}
	x := c.expr(assert.X)
	if _, ok := x.(*expr.Parameter); !ok {
		tmp := c.temp(x.Type())
		out = append(out, expr.AssignTo(tmp, x))
		x = tmp
	}

	test := func(cc *ast.CaseClause) expr.Node {
		tests := make([]expr.Node, len(cc.List))
		for i, e := range cc.List {
			if c.info.Types[e].IsNil() {
				tests[i] = expr.MakeBinary(expr.Equal, x, &expr.Constant{Typ: expr.Object})
				continue
			}
			tests[i] = &expr.TypeTest{Op: expr.TypeIs, Operand: x, Test: mapType(c.info.TypeOf(e))}
		}
		return anyOf(tests)
	}
	bind := func(cc *ast.CaseClause) []expr.Node {
		obj := c.info.Implicits[cc]
		if obj == nil {
			return nil
		}
		v := c.declare(obj)
		var value expr.Node = x
		if len(cc.List) == 1 && !c.info.Types[cc.List[0]].IsNil() {
			op := expr.Convert
			if v.Typ.IsReference() {
				op = expr.TypeAs
			}
			value = &expr.Cast{Op: op, Operand: x, Typ: v.Typ}
		}
		return one(expr.AssignTo(v, value))
	}

	js := c.pushJump(label, false, false)
	node := c.caseChain(s.Body.List, test, bind)
	c.popJump()
	if node != nil {
		out = append(out, node)
	}
	return withExit(out, js)
}

func (c *converter) branch(s *ast.BranchStmt) expr.Node {
	name := ""
	if s.Label != nil {
		name = s.Label.Name
	}
	switch s.Tok {
	case token.BREAK:
		js, innermost := c.findJump(name, false)
		switch {
		case js == nil:
			return unsupported("break")
		case js.loop && innermost:
			return expr.Break(js.brk)
		}
		return expr.GotoLabel(js.exitLabel())
	case token.CONTINUE:
		js, innermost := c.findJump(name, true)
		switch {
		case js == nil:
			return unsupported("continue")
		case js.cont != nil && innermost:
			return expr.Continue(js.cont)
		}
		return expr.GotoLabel(js.nextLabel())
	case token.GOTO:
		return expr.GotoLabel(c.label(name))
	}
	return unsupported("fallthrough")
}

func (c *converter) labeled(s *ast.LabeledStmt) []expr.Node {
	name := s.Label.Name
	out := []expr.Node{&expr.Label{Target: c.label(name)}}
	switch st := s.Stmt.(type) {
	case *ast.ForStmt:
		return append(out, c.forStmt(st, name)...)
	case *ast.RangeStmt:
		return append(out, c.rangeStmt(st, name)...)
	case *ast.SwitchStmt:
		return append(out, c.switchStmt(st, name)...)
	case *ast.TypeSwitchStmt:
		return append(out, c.typeSwitchStmt(st, name)...)
	}
	return append(out, c.stmt(s.Stmt)...)
}

// deferred converts a deferred call. A deferred closure without return
// statements is inlined into the finally block.
func (c *converter) deferred(call *ast.CallExpr) expr.Node {
	if lit, ok := call.Fun.(*ast.FuncLit); ok && len(call.Args) == 0 && !hasReturn(lit.Body) {
		return c.block(lit.Body.List)
	}
	return c.expr(call)
}

func hasReturn(body *ast.BlockStmt) bool {
	found := false
	ast.Inspect(body, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.FuncLit:
			return false
		case *ast.ReturnStmt:
			found = true
		}
		return !found
	})
	return found
}

// goStmt starts the call as a task.
func (c *converter) goStmt(s *ast.GoStmt) expr.Node {
	work := &expr.Lambda{Body: c.expr(s.Call), Typ: expr.Action()}
	task := expr.Class("Task")
	return expr.CallStatic(task, "Run", task, work)
}

// negate inverts a condition, flipping comparisons rather than wrapping
// them in a not.
func negate(n expr.Node) expr.Node {
	switch v := n.(type) {
	case *expr.Unary:
		if v.Op == expr.Not && v.Type().Kind == expr.TypeBool {
			return v.Operand
		}
	case *expr.Binary:
		if op, ok := inverse[v.Op]; ok {
			return &expr.Binary{Op: op, Left: v.Left, Right: v.Right, Typ: expr.Bool}
		}
	}
	return expr.MakeUnary(expr.Not, n)
}

var inverse = map[expr.BinaryOp]expr.BinaryOp{
	expr.Equal:              expr.NotEqual,
	expr.NotEqual:           expr.Equal,
	expr.LessThan:           expr.GreaterThanOrEqual,
	expr.LessThanOrEqual:    expr.GreaterThan,
	expr.GreaterThan:        expr.LessThanOrEqual,
	expr.GreaterThanOrEqual: expr.LessThan,
}

// anyOf joins tests with ||.
func anyOf(tests []expr.Node) expr.Node {
	if len(tests) == 0 {
		return expr.Const(true)
	}
	out := tests[0]
	for _, t := range tests[1:] {
		out = expr.MakeBinary(expr.OrElse, out, t)
	}
	return out
}

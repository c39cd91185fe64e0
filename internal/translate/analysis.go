package translate

import (
	"strconv"

	"github.com/calumari/readex/internal/expr"
)

// Analysis holds the facts gathered by one walk over the input tree. It is
// read-only once Analyze returns.
type Analysis struct {
	// jumpTargets are labels reached by a jump that must name them.
	jumpTargets map[*expr.LabelTarget]bool
	loopBreaks  map[*expr.LabelTarget]bool
	loopConts   map[*expr.LabelTarget]bool
	// returnLabels end a lambda body; jumps to them are returns.
	returnLabels map[*expr.LabelTarget]bool
	labelNames  map[*expr.LabelTarget]string
	// fused are assignments written together with their variable's declaration.
	fused     map[*expr.Assign]bool
	fusedVars map[*expr.Parameter]bool
	names     map[*expr.Parameter]string
	// methodGroups are lambdas written as a bare method reference.
	methodGroups map[*expr.Lambda]bool
	usedCatchVar map[*expr.Parameter]bool
	rethrows     map[*expr.Throw]bool
}

// analyzer is the transient state of the walk.
type analyzer struct {
	a        *Analysis
	maxDepth int
	depth    int
	// seen records variables referenced so far.
	seen map[*expr.Parameter]bool
	// blankVars are unnamed variables in first-seen order.
	blankVars  []*expr.Parameter
	blankSeen  map[*expr.Parameter]bool
	labelOrder []*expr.LabelTarget
	catchVars  []*expr.Parameter
	// handled is the variable a bare throw at this point would rethrow. It
	// is nil outside handlers and inside lambdas and finally blocks.
	handled *expr.Parameter
}

// Analyze walks the tree rooted at root. It never fails: anything it cannot
// classify keeps the conservative rendering.
func Analyze(root expr.Node, s *Settings) *Analysis {
	if s == nil {
		s = NewSettings()
	}
	z := &analyzer{
		a: &Analysis{
			jumpTargets:  map[*expr.LabelTarget]bool{},
			loopBreaks:   map[*expr.LabelTarget]bool{},
			loopConts:    map[*expr.LabelTarget]bool{},
			returnLabels: map[*expr.LabelTarget]bool{},
			labelNames:   map[*expr.LabelTarget]string{},
			fused:        map[*expr.Assign]bool{},
			fusedVars:    map[*expr.Parameter]bool{},
			names:        map[*expr.Parameter]string{},
			methodGroups: map[*expr.Lambda]bool{},
			usedCatchVar: map[*expr.Parameter]bool{},
			rethrows:     map[*expr.Throw]bool{},
		},
		maxDepth:  s.maxDepth,
		seen:      map[*expr.Parameter]bool{},
		blankSeen: map[*expr.Parameter]bool{},
	}
	z.visit(root)
	z.nameBlankVariables()
	z.nameLabels()
	return z.a
}

func (z *analyzer) visitAll(ns []expr.Node) {
	for _, n := range ns {
		z.visit(n)
	}
}

func (z *analyzer) visit(n expr.Node) {
	if n == nil || z.depth >= z.maxDepth {
		return
	}
	z.depth++
	defer func() { z.depth-- }()

	switch n := n.(type) {
	case *expr.Parameter:
		z.reference(n)
	case *expr.Unary:
		z.visit(n.Operand)
	case *expr.Binary:
		z.visit(n.Left)
		z.visit(n.Right)
	case *expr.Assign:
		z.visit(n.Target)
		z.visit(n.Value)
	case *expr.Conditional:
		z.visit(n.Test)
		z.visit(n.IfTrue)
		z.visit(n.IfFalse)
	case *expr.Block:
		z.visitBlock(n)
	case *expr.Loop:
		if n.Break != nil {
			z.a.loopBreaks[n.Break] = true
		}
		if n.Continue != nil {
			z.a.loopConts[n.Continue] = true
		}
		z.visit(n.Body)
	case *expr.Label:
		z.visit(n.Default)
	case *expr.Goto:
		z.visitGoto(n)
	case *expr.Call:
		z.visit(n.Object)
		z.visitAll(n.Args)
	case *expr.Invoke:
		z.visit(n.Target)
		z.visitAll(n.Args)
	case *expr.New:
		z.visitAll(n.Args)
	case *expr.NewArray:
		z.visitAll(n.Bounds)
	case *expr.ArrayInit:
		z.visitAll(n.Items)
	case *expr.ListInit:
		if n.New != nil {
			z.visit(n.New)
		}
		z.visitInits(n.Inits)
	case *expr.MemberInit:
		if n.New != nil {
			z.visit(n.New)
		}
		z.visitBindings(n.Bindings)
	case *expr.MemberAccess:
		z.visit(n.Object)
	case *expr.Index:
		z.visit(n.Object)
		z.visitAll(n.Args)
	case *expr.Lambda:
		z.visitLambda(n)
	case *expr.Quote:
		if n.Lambda != nil {
			z.visit(n.Lambda)
		}
	case *expr.Switch:
		z.visit(n.Value)
		for _, sc := range n.Cases {
			z.visitAll(sc.Tests)
			z.visit(sc.Body)
		}
		z.visit(n.Default)
	case *expr.Try:
		z.visitTry(n)
	case *expr.Throw:
		z.visitThrow(n)
	case *expr.TypeTest:
		z.visit(n.Operand)
	case *expr.Cast:
		z.visit(n.Operand)
	case expr.Reducible:
		if r := n.Reduce(); r != nil && r != expr.Node(n) {
			z.visit(r)
		}
	}
}

func (z *analyzer) reference(p *expr.Parameter) {
	z.seen[p] = true
	for _, v := range z.catchVars {
		if v == p {
			z.a.usedCatchVar[p] = true
		}
	}
	z.declare(p)
}

// declare registers p for blank-name numbering the first time it is met.
func (z *analyzer) declare(p *expr.Parameter) {
	if isBlankName(p.Name) && !z.blankSeen[p] {
		z.blankSeen[p] = true
		z.blankVars = append(z.blankVars, p)
	}
}

// visitBlock decides declaration fusion: a variable of this block may be
// declared by its first assignment when that assignment is a statement of
// the block and nothing referenced the variable before it.
func (z *analyzer) visitBlock(b *expr.Block) {
	declared := make(map[*expr.Parameter]bool, len(b.Variables))
	for _, v := range b.Variables {
		declared[v] = true
		z.declare(v)
	}
	last := len(b.Expressions) - 1
	for i, e := range b.Expressions {
		as, ok := e.(*expr.Assign)
		if !ok || as.Op != expr.AssignPlain {
			z.visit(e)
			continue
		}
		v, ok := as.Target.(*expr.Parameter)
		if !ok || !declared[v] || z.seen[v] || (i == last && !b.Type().IsVoid()) {
			z.visit(e)
			continue
		}
		z.visit(as.Value)
		if !z.seen[v] {
			z.a.fused[as] = true
			z.a.fusedVars[v] = true
		}
		z.reference(v)
	}
}

func (z *analyzer) visitGoto(g *expr.Goto) {
	z.visit(g.Value)
	if g.Target == nil {
		return
	}
	if z.a.returnLabels[g.Target] {
		return
	}
	switch g.Jump {
	case expr.JumpReturn:
		return
	case expr.JumpBreak:
		if z.a.loopBreaks[g.Target] {
			return
		}
	case expr.JumpContinue:
		if z.a.loopConts[g.Target] {
			return
		}
	case expr.JumpGoto:
		if z.a.loopBreaks[g.Target] || z.a.loopConts[g.Target] {
			return
		}
	}
	if !z.a.jumpTargets[g.Target] {
		z.a.jumpTargets[g.Target] = true
		z.labelOrder = append(z.labelOrder, g.Target)
	}
}

// visitLambda marks lambdas whose body is a single call passing the
// lambda's own parameters through unchanged.
func (z *analyzer) visitLambda(l *expr.Lambda) {
	for _, p := range l.Params {
		z.declare(p)
	}
	if t := finalLabel(l.Body); t != nil {
		z.a.returnLabels[t] = true
	}
	outer := z.handled
	z.handled = nil
	z.visit(l.Body)
	z.handled = outer
	call, ok := l.Body.(*expr.Call)
	if !ok || call.Method == nil || len(call.Args) != len(l.Params) {
		return
	}
	for i, p := range l.Params {
		if call.Args[i] != expr.Node(p) || p.ByRef {
			return
		}
	}
	for _, p := range call.Method.Params {
		if p.Mode != expr.ByValue {
			return
		}
	}
	if call.Object != nil && referencesAny(call.Object, l.Params) {
		return
	}
	z.a.methodGroups[l] = true
}

// finalLabel returns the label a body ends with, if any.
func finalLabel(body expr.Node) *expr.LabelTarget {
	if b, ok := body.(*expr.Block); ok && len(b.Expressions) > 0 {
		body = b.Expressions[len(b.Expressions)-1]
	}
	if l, ok := body.(*expr.Label); ok {
		return l.Target
	}
	return nil
}

// visitTry visits each handler's filter before its body so a catch
// variable used only by the filter still counts as used.
func (z *analyzer) visitTry(t *expr.Try) {
	outer := z.handled
	z.visit(t.Body)
	for _, h := range t.Handlers {
		if h.Variable != nil {
			z.declare(h.Variable)
			z.catchVars = append(z.catchVars, h.Variable)
		}
		z.handled = nil
		z.visit(h.Filter)
		z.handled = h.Variable
		z.visit(h.Body)
		z.handled = outer
		if h.Variable != nil {
			z.catchVars = z.catchVars[:len(z.catchVars)-1]
		}
	}
	z.handled = nil
	z.visit(t.Finally)
	z.visit(t.Fault)
	z.handled = outer
}

// visitThrow records rethrows. Throwing the variable of the handler that
// encloses the throw directly is a rethrow and does not count as a use.
func (z *analyzer) visitThrow(t *expr.Throw) {
	if t.Value == nil {
		z.a.rethrows[t] = true
		return
	}
	if p, ok := t.Value.(*expr.Parameter); ok && p != nil && p == z.handled {
		z.a.rethrows[t] = true
		return
	}
	z.visit(t.Value)
}

func (z *analyzer) visitInits(inits []expr.ElementInit) {
	for _, in := range inits {
		z.visitAll(in.Args)
	}
}

func (z *analyzer) visitBindings(bs []expr.Binding) {
	for _, b := range bs {
		switch b.Kind {
		case expr.BindAssign:
			z.visit(b.Value)
		case expr.BindList:
			z.visitInits(b.Inits)
		case expr.BindMember:
			z.visitBindings(b.Bindings)
		}
	}
}

// nameBlankVariables numbers unnamed variables per type, in the order they
// were first seen. A lone unnamed variable of a type gets no number.
func (z *analyzer) nameBlankVariables() {
	counts := map[string]int{}
	for _, v := range z.blankVars {
		counts[typeKey(v.Typ)]++
	}
	next := map[string]int{}
	for _, v := range z.blankVars {
		key := typeKey(v.Typ)
		base := variableBaseName(v.Typ)
		if counts[key] == 1 {
			z.a.names[v] = base
			continue
		}
		next[key]++
		z.a.names[v] = base + strconv.Itoa(next[key])
	}
}

func (z *analyzer) nameLabels() {
	n := 0
	for _, t := range z.labelOrder {
		if !isBlankName(t.Name) {
			continue
		}
		n++
		z.a.labelNames[t] = "label" + strconv.Itoa(n)
	}
}

func typeKey(t *expr.Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}

func isBlankName(name string) bool {
	for _, r := range name {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}

// referencesAny reports whether any of ps occurs in the tree rooted at n.
func referencesAny(n expr.Node, ps []*expr.Parameter) bool {
	found := false
	expr.Walk(n, func(x expr.Node) bool {
		if p, ok := x.(*expr.Parameter); ok {
			for _, q := range ps {
				if p == q {
					found = true
				}
			}
		}
		return !found
	})
	return found
}

// Queries used by translations.

// IsJumpTarget reports whether a jump needs t's name.
func (a *Analysis) IsJumpTarget(t *expr.LabelTarget) bool { return a.jumpTargets[t] }

// IsLoopBreak reports whether t is the break target of a loop.
func (a *Analysis) IsLoopBreak(t *expr.LabelTarget) bool { return a.loopBreaks[t] }

// IsLoopContinue reports whether t is the continue target of a loop.
func (a *Analysis) IsLoopContinue(t *expr.LabelTarget) bool { return a.loopConts[t] }

// IsReturnLabel reports whether t ends a lambda body, so jumps to it are
// written as return statements.
func (a *Analysis) IsReturnLabel(t *expr.LabelTarget) bool { return a.returnLabels[t] }

// IsFused reports whether as declares its target variable.
func (a *Analysis) IsFused(as *expr.Assign) bool { return a.fused[as] }

// IsDeclaredByAssignment reports whether v's declaration is fused into an
// assignment.
func (a *Analysis) IsDeclaredByAssignment(v *expr.Parameter) bool { return a.fusedVars[v] }

// CanBeMethodGroup reports whether l can be written as a method reference.
func (a *Analysis) CanBeMethodGroup(l *expr.Lambda) bool { return a.methodGroups[l] }

// IsCatchVariableUsed reports whether a catch variable is read anywhere
// other than in a rethrow.
func (a *Analysis) IsCatchVariableUsed(v *expr.Parameter) bool { return a.usedCatchVar[v] }

// IsRethrow reports whether t rethrows the exception being handled.
func (a *Analysis) IsRethrow(t *expr.Throw) bool { return a.rethrows[t] }

// VariableName returns the rendered name of v.
func (a *Analysis) VariableName(v *expr.Parameter) string {
	if name, ok := a.names[v]; ok {
		return name
	}
	return v.Name
}

// LabelName returns the rendered name of t.
func (a *Analysis) LabelName(t *expr.LabelTarget) string {
	if name, ok := a.labelNames[t]; ok {
		return name
	}
	return t.Name
}

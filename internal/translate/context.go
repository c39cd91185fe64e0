package translate

import (
	"reflect"

	"github.com/calumari/readex/internal/expr"
)

// context carries the settings and analysis of one render to every
// translation constructor.
type context struct {
	settings *Settings
	analysis *Analysis
	depth    int
	// memo, when set, keeps every translation built so each node is
	// translated once. Dump walks every node and relies on it.
	memo map[expr.Node]Translation
}

func newContext(s *Settings, a *Analysis) *context {
	return &context{settings: s, analysis: a}
}

// translate builds the translation for n. Registered overrides are tried
// before the built-in translator for the node's kind.
func (c *context) translate(n expr.Node) Translation {
	if n == nil {
		return voidEmpty
	}
	if c.memo == nil || !reflect.TypeOf(n).Comparable() {
		return c.build(n)
	}
	if t, ok := c.memo[n]; ok {
		return t
	}
	t := c.build(n)
	c.memo[n] = t
	return t
}

func (c *context) build(n expr.Node) Translation {
	if c.depth >= c.settings.maxDepth {
		return newFixed(c, n.Kind(), n.Type(), "/* ... */", TokenComment)
	}
	c.depth++
	defer func() { c.depth-- }()

	if f := c.settings.override(n.Kind()); f != nil {
		if text, ok := f(n, c.render); ok {
			return newFixed(c, n.Kind(), n.Type(), text, TokenDefault)
		}
	}

	switch n := n.(type) {
	case *expr.Constant:
		return newConstant(c, n)
	case *expr.Default:
		return newDefault(c, n)
	case *expr.Parameter:
		return newParameter(c, n)
	case *expr.Unary:
		return newUnary(c, n)
	case *expr.Binary:
		return newBinary(c, n)
	case *expr.Assign:
		return newAssign(c, n)
	case *expr.Conditional:
		return newConditional(c, n)
	case *expr.Block:
		return newBlock(c, n)
	case *expr.Loop:
		return newLoop(c, n)
	case *expr.Label:
		return newLabel(c, n)
	case *expr.Goto:
		return newGoto(c, n)
	case *expr.Call:
		return newCall(c, n)
	case *expr.Invoke:
		return newInvoke(c, n)
	case *expr.New:
		return newNew(c, n)
	case *expr.NewArray:
		return newNewArray(c, n)
	case *expr.ArrayInit:
		return newArrayInit(c, n)
	case *expr.ListInit:
		return newListInit(c, n)
	case *expr.MemberInit:
		return newMemberInit(c, n)
	case *expr.MemberAccess:
		return newMemberAccess(c, n)
	case *expr.Index:
		return newIndex(c, n)
	case *expr.Lambda:
		return newLambda(c, n)
	case *expr.Quote:
		return newQuote(c, n)
	case *expr.Switch:
		return newSwitch(c, n)
	case *expr.Try:
		return newTry(c, n)
	case *expr.Throw:
		return newThrow(c, n)
	case *expr.TypeTest:
		return newTypeTest(c, n)
	case *expr.Cast:
		return newCast(c, n)
	case *expr.Comment:
		return newComment(c, n)
	case expr.Reducible:
		if r := n.Reduce(); r != nil && r != expr.Node(n) {
			return c.translate(r)
		}
	}
	return newFallback(c, n)
}

// render translates n and writes it to a string; it backs the callback
// handed to override functions.
func (c *context) render(n expr.Node) string {
	t := c.translate(n)
	b := NewBuffer(c.settings.formatter, c.settings.indent, t.Size()+t.FormattingSize())
	t.WriteTo(b)
	return b.String()
}

// operand translates n for use under an operator of precedence parent,
// adding parentheses when n binds more loosely. strict also parenthesises
// an operand of equal precedence, for the right side of non-associative
// operators.
func (c *context) operand(n expr.Node, parent int, strict bool) Translation {
	t := c.translate(n)
	return parenthesize(t, parent, strict)
}

func parenthesize(t Translation, parent int, strict bool) Translation {
	p := precedenceOf(t)
	if p < parent || (strict && p == parent) {
		return newParens(t)
	}
	return t
}

func (c *context) overhead(kind TokenKind) int { return c.settings.formatter.Overhead(kind) }

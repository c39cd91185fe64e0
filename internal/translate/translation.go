package translate

import (
	"fmt"

	"github.com/calumari/readex/internal/expr"
)

// Translation is the rendered form of one input node. It carries an
// estimate of its rendered size and the layout flags discovered while it
// was built, and writes itself without further access to the input tree.
type Translation interface {
	Kind() expr.Kind
	Type() *expr.Type
	// Size estimates the rendered character count.
	Size() int
	// FormattingSize estimates the markup the formatter will add.
	FormattingSize() int
	WriteTo(b *Buffer)
}

// meta holds the attributes shared by every translation. Constructors fill
// it in once; it is never changed afterwards.
type meta struct {
	kind    expr.Kind
	typ     *expr.Type
	size    int
	fmtSize int
	// multi marks output spanning more than one line.
	multi bool
	// term marks output that already ends its own statement.
	term bool
	// jump marks output that unconditionally transfers control.
	jump bool
}

func (m *meta) Kind() expr.Kind        { return m.kind }
func (m *meta) Type() *expr.Type       { return m.typ }
func (m *meta) Size() int              { return m.size }
func (m *meta) FormattingSize() int    { return m.fmtSize }
func (m *meta) isMultiStatement() bool { return m.multi }
func (m *meta) isTerminated() bool     { return m.term }
func (m *meta) hasJump() bool          { return m.jump }

// add accumulates the metrics of children.
func (m *meta) add(ts ...Translation) {
	for _, t := range ts {
		if t == nil {
			continue
		}
		m.size += t.Size()
		m.fmtSize += t.FormattingSize()
		if isMultiStatement(t) {
			m.multi = true
		}
	}
}

// token accounts for a token of the given kind.
func (m *meta) token(c *context, s string, kind TokenKind) {
	m.size += len(s)
	m.fmtSize += c.settings.formatter.Overhead(kind)
}

type multiStatement interface{ isMultiStatement() bool }
type terminated interface{ isTerminated() bool }
type jumping interface{ hasJump() bool }
type emptiable interface{ isEmpty() bool }

// returnWriter is implemented by translations that place the return
// keyword themselves when they end a value-producing body.
type returnWriter interface {
	writeWithReturn(b *Buffer)
}

// operand is implemented by translations whose operator precedence is lower
// than a primary expression.
type operand interface{ precedence() int }

func isMultiStatement(t Translation) bool {
	m, ok := t.(multiStatement)
	return ok && m.isMultiStatement()
}

func isTerminated(t Translation) bool {
	m, ok := t.(terminated)
	return ok && m.isTerminated()
}

func hasJump(t Translation) bool {
	m, ok := t.(jumping)
	return ok && m.hasJump()
}

func isEmpty(t Translation) bool {
	if t == nil {
		return true
	}
	m, ok := t.(emptiable)
	return ok && m.isEmpty()
}

func precedenceOf(t Translation) int {
	if o, ok := t.(operand); ok {
		return o.precedence()
	}
	return precPrimary
}

// emptyTranslation renders nothing. Instances hold no mutable state and
// are shared freely.
type emptyTranslation struct {
	typ *expr.Type
}

var voidEmpty Translation = emptyTranslation{typ: expr.Void}

func (e emptyTranslation) Kind() expr.Kind     { return expr.KindDefault }
func (e emptyTranslation) Type() *expr.Type    { return e.typ }
func (e emptyTranslation) Size() int           { return 0 }
func (e emptyTranslation) FormattingSize() int { return 0 }
func (e emptyTranslation) WriteTo(*Buffer)     {}
func (e emptyTranslation) isEmpty() bool       { return true }
func (e emptyTranslation) isTerminated() bool  { return true }

// fixedTranslation writes a pre-computed piece of text.
type fixedTranslation struct {
	meta
	text      string
	tokenKind TokenKind
}

func newFixed(c *context, kind expr.Kind, t *expr.Type, text string, tokenKind TokenKind) *fixedTranslation {
	f := &fixedTranslation{text: text, tokenKind: tokenKind}
	f.kind, f.typ = kind, t
	f.token(c, text, tokenKind)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			f.multi = true
			break
		}
	}
	return f
}

// newFallback renders a node the engine does not recognise using its own
// textual form.
func newFallback(c *context, n expr.Node) Translation {
	var text string
	if s, ok := n.(fmt.Stringer); ok {
		text = s.String()
	} else {
		text = fmt.Sprintf("%v", n)
	}
	return newFixed(c, n.Kind(), n.Type(), text, TokenDefault)
}

func (f *fixedTranslation) WriteTo(b *Buffer) { b.WriteToken(f.text, f.tokenKind) }

func (f *fixedTranslation) isEmpty() bool { return f.text == "" }

// parensTranslation wraps an operand in parentheses.
type parensTranslation struct {
	meta
	inner Translation
}

func newParens(inner Translation) *parensTranslation {
	p := &parensTranslation{inner: inner}
	p.kind, p.typ = inner.Kind(), inner.Type()
	p.add(inner)
	p.size += 2
	return p
}

func (p *parensTranslation) WriteTo(b *Buffer) {
	b.Write("(")
	p.inner.WriteTo(b)
	b.Write(")")
}

// writeStatement writes t followed by a terminator when it needs one.
func writeStatement(b *Buffer, t Translation) {
	t.WriteTo(b)
	if !isTerminated(t) && !isEmpty(t) {
		b.Write(";")
	}
}

// writeReturnStatement writes t as the final statement of a body that
// returns its value.
func writeReturnStatement(b *Buffer, t Translation) {
	if rw, ok := t.(returnWriter); ok {
		rw.writeWithReturn(b)
		return
	}
	if needsReturn(t) {
		b.Control("return")
		b.Space()
	}
	writeStatement(b, t)
}

// needsReturn reports whether t produces a value that a return keyword
// should hand back.
func needsReturn(t Translation) bool {
	if isEmpty(t) || hasJump(t) || t.Type().IsVoid() {
		return false
	}
	switch t.Kind() {
	case expr.KindComment, expr.KindThrow, expr.KindGoto:
		return false
	}
	return true
}

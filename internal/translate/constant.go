package translate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/calumari/readex/internal/expr"
)

// constantTranslation writes a literal value.
type constantTranslation struct {
	meta
	text      string
	tokenKind TokenKind
	prec      int
}

func newConstant(c *context, n *expr.Constant) Translation {
	switch v := n.Value.(type) {
	case *expr.Type:
		return newTypeOf(c, v)
	case expr.EnumValue:
		return newEnumValue(c, v)
	}
	text, kind := literal(n.Value, n.Typ)
	ct := &constantTranslation{text: text, tokenKind: kind, prec: precPrimary}
	ct.kind, ct.typ = expr.KindConstant, n.Typ
	if kind == TokenNumeric && strings.HasPrefix(text, "-") {
		ct.prec = precUnary
	}
	ct.token(c, text, kind)
	return ct
}

func (ct *constantTranslation) WriteTo(b *Buffer) { b.WriteToken(ct.text, ct.tokenKind) }
func (ct *constantTranslation) precedence() int   { return ct.prec }

// literal renders a Go value as a C#-style literal of type t.
func literal(v any, t *expr.Type) (string, TokenKind) {
	if v == nil {
		return "null", TokenKeyword
	}
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x), TokenKeyword
	case string:
		if t != nil && t.Kind == expr.TypeChar && len([]rune(x)) == 1 {
			return quoteChar([]rune(x)[0]), TokenText
		}
		return quoteString(x), TokenText
	case rune:
		if t != nil && t.Kind == expr.TypeChar {
			return quoteChar(x), TokenText
		}
	case float32:
		return floatLiteral(float64(x), 32, t), TokenNumeric
	case float64:
		return floatLiteral(x, 64, t), TokenNumeric
	}
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v) + integerSuffix(t), TokenNumeric
	}
	return fmt.Sprint(v), TokenDefault
}

func integerSuffix(t *expr.Type) string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case expr.TypeLong:
		return "L"
	case expr.TypeUInt:
		return "U"
	case expr.TypeULong:
		return "UL"
	case expr.TypeFloat:
		return "f"
	case expr.TypeDouble:
		return "d"
	case expr.TypeDecimal:
		return "m"
	}
	return ""
}

func floatLiteral(f float64, bits int, t *expr.Type) string {
	switch {
	case math.IsNaN(f):
		return typeNameOr(t, "double") + ".NaN"
	case math.IsInf(f, 1):
		return typeNameOr(t, "double") + ".PositiveInfinity"
	case math.IsInf(f, -1):
		return typeNameOr(t, "double") + ".NegativeInfinity"
	}
	s := strconv.FormatFloat(f, 'g', -1, bits)
	suffix := "d"
	if t != nil {
		switch t.Kind {
		case expr.TypeFloat:
			suffix = "f"
		case expr.TypeDecimal:
			suffix = "m"
		}
	} else if bits == 32 {
		suffix = "f"
	}
	return s + suffix
}

func typeNameOr(t *expr.Type, fallback string) string {
	if t == nil || !t.IsNumeric() {
		return fallback
	}
	return t.String()
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		writeEscaped(&b, r, '"')
	}
	b.WriteByte('"')
	return b.String()
}

func quoteChar(r rune) string {
	var b strings.Builder
	b.WriteByte('\'')
	writeEscaped(&b, r, '\'')
	b.WriteByte('\'')
	return b.String()
}

func writeEscaped(b *strings.Builder, r rune, quote rune) {
	switch r {
	case '\\':
		b.WriteString(`\\`)
	case '\n':
		b.WriteString(`\n`)
	case '\r':
		b.WriteString(`\r`)
	case '\t':
		b.WriteString(`\t`)
	case '\a':
		b.WriteString(`\a`)
	case '\b':
		b.WriteString(`\b`)
	case '\f':
		b.WriteString(`\f`)
	case '\v':
		b.WriteString(`\v`)
	case 0:
		b.WriteString(`\0`)
	case quote:
		b.WriteByte('\\')
		b.WriteRune(r)
	default:
		b.WriteRune(r)
	}
}

// typeOfTranslation writes typeof(T).
type typeOfTranslation struct {
	meta
	name *typeNameTranslation
}

func newTypeOf(c *context, t *expr.Type) *typeOfTranslation {
	to := &typeOfTranslation{name: newTypeName(c, t)}
	to.kind, to.typ = expr.KindConstant, expr.TypeOfType
	to.token(c, "typeof", TokenKeyword)
	to.add(to.name)
	to.size += 2
	return to
}

func (to *typeOfTranslation) WriteTo(b *Buffer) {
	b.Keyword("typeof")
	b.Write("(")
	to.name.WriteTo(b)
	b.Write(")")
}

// enumValueTranslation writes Enum.Member.
type enumValueTranslation struct {
	meta
	name   *typeNameTranslation
	member string
}

func newEnumValue(c *context, v expr.EnumValue) *enumValueTranslation {
	ev := &enumValueTranslation{name: newTypeName(c, v.Enum), member: v.Name}
	ev.kind, ev.typ = expr.KindConstant, v.Enum
	ev.add(ev.name)
	ev.size += 1 + len(v.Name)
	return ev
}

func (ev *enumValueTranslation) WriteTo(b *Buffer) {
	ev.name.WriteTo(b)
	b.Write(".")
	b.Write(ev.member)
}

// newDefault writes null or default(T); void defaults render nothing.
func newDefault(c *context, n *expr.Default) Translation {
	if n.Typ.IsVoid() {
		return voidEmpty
	}
	if n.Typ.IsReference() {
		return newFixed(c, expr.KindDefault, n.Typ, "null", TokenKeyword)
	}
	d := &defaultTranslation{name: newTypeName(c, n.Typ)}
	d.kind, d.typ = expr.KindDefault, n.Typ
	d.token(c, "default", TokenKeyword)
	d.add(d.name)
	d.size += 2
	return d
}

type defaultTranslation struct {
	meta
	name *typeNameTranslation
}

func (d *defaultTranslation) WriteTo(b *Buffer) {
	b.Keyword("default")
	b.Write("(")
	d.name.WriteTo(b)
	b.Write(")")
}

// parameterTranslation writes a variable or parameter name.
type parameterTranslation struct {
	meta
	name string
}

func newParameter(c *context, n *expr.Parameter) *parameterTranslation {
	p := &parameterTranslation{name: identifier(c.analysis.VariableName(n))}
	p.kind, p.typ = expr.KindParameter, n.Typ
	p.token(c, p.name, TokenVariable)
	return p
}

func (p *parameterTranslation) WriteTo(b *Buffer) { b.Variable(p.name) }

// commentTranslation writes one // line per line of text.
type commentTranslation struct {
	meta
	lines []string
}

func newComment(c *context, n *expr.Comment) *commentTranslation {
	ct := &commentTranslation{lines: strings.Split(strings.TrimRight(n.Text, "\n"), "\n")}
	ct.kind, ct.typ = expr.KindComment, expr.Void
	for _, l := range ct.lines {
		ct.token(c, "// "+strings.TrimSpace(l), TokenComment)
	}
	ct.multi = len(ct.lines) > 1
	ct.term = true
	return ct
}

func (ct *commentTranslation) WriteTo(b *Buffer) {
	for i, l := range ct.lines {
		if i > 0 {
			b.NewLine()
		}
		b.WriteToken(strings.TrimRight("// "+strings.TrimSpace(l), " "), TokenComment)
	}
}

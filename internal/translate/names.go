package translate

import (
	"strings"
	"unicode"

	"github.com/calumari/readex/internal/expr"
)

var keywords = map[string]bool{}

func init() {
	for _, k := range strings.Fields(`abstract as base bool break byte case catch char checked class const
		continue decimal default delegate do double else enum event explicit extern false finally
		fixed float for foreach goto if implicit in int interface internal is lock long namespace
		new null object operator out override params private protected public readonly ref return
		sbyte sealed short sizeof stackalloc static string struct switch this throw true try typeof
		uint ulong unchecked unsafe ushort using virtual void volatile while`) {
		keywords[k] = true
	}
}

// identifier escapes names that collide with keywords.
func identifier(name string) string {
	if keywords[name] {
		return "@" + name
	}
	return name
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// variableBaseName derives a camelCase name from a type for variables that
// have none.
func variableBaseName(t *expr.Type) string {
	if t == nil {
		return "obj"
	}
	switch t.Kind {
	case expr.TypeArray:
		return variableBaseName(t.Elem) + "Array"
	case expr.TypeNullable:
		return variableBaseName(t.Elem)
	case expr.TypeAnonymous:
		return "anonymousType"
	}
	if t.IsPrimitive() {
		return t.String()
	}
	if t.Name == "" {
		return "obj"
	}
	return lowerFirst(t.Name)
}

// typeName renders t, naming anonymous types through the settings.
func (c *context) typeName(t *expr.Type) string {
	if t == nil {
		return "void"
	}
	switch t.Kind {
	case expr.TypeArray:
		return c.typeName(t.Elem) + "[" + strings.Repeat(",", t.Rank-1) + "]"
	case expr.TypeNullable:
		return c.typeName(t.Elem) + "?"
	case expr.TypeAnonymous:
		return c.settings.anonymousTypeName(t)
	}
	if t.IsPrimitive() || len(t.Args) == 0 {
		return t.String()
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = c.typeName(a)
	}
	return t.Name + "<" + strings.Join(args, ", ") + ">"
}

// typeToken returns the rendered type name with the token kind it is
// written as.
func (c *context) typeToken(t *expr.Type) (string, TokenKind) {
	if t.IsPrimitive() {
		return t.String(), TokenKeyword
	}
	return c.typeName(t), TokenTypeName
}

// typeNameTranslation writes a type name.
type typeNameTranslation struct {
	meta
	text      string
	tokenKind TokenKind
}

func newTypeName(c *context, t *expr.Type) *typeNameTranslation {
	text, kind := c.typeToken(t)
	tn := &typeNameTranslation{text: text, tokenKind: kind}
	tn.kind, tn.typ = expr.KindConstant, expr.TypeOfType
	tn.token(c, text, kind)
	return tn
}

func (tn *typeNameTranslation) WriteTo(b *Buffer) { b.WriteToken(tn.text, tn.tokenKind) }

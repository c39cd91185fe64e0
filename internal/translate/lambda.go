package translate

import "github.com/calumari/readex/internal/expr"

// lambdaTranslation writes (a, b) => body. Bodies that are statements get
// braces; anything else is written as an expression body.
type lambdaTranslation struct {
	meta
	params []lambdaParam
	parens bool
	body   *codeBlock
}

type lambdaParam struct {
	modifier string
	typeName *typeNameTranslation
	name     string
}

func newLambda(c *context, n *expr.Lambda) *lambdaTranslation {
	lt := &lambdaTranslation{}
	lt.kind, lt.typ = expr.KindLambda, n.Type()

	typed := false
	for _, p := range n.Params {
		if p.ByRef {
			typed = true
		}
	}
	for i, p := range n.Params {
		lp := lambdaParam{name: identifier(c.analysis.VariableName(p))}
		if typed {
			if p.ByRef {
				lp.modifier = "ref "
				lt.token(c, lp.modifier, TokenKeyword)
			}
			lp.typeName = newTypeName(c, p.Typ)
			lt.add(lp.typeName)
			lt.size++
		}
		lt.token(c, lp.name, TokenVariable)
		if i > 0 {
			lt.size += 2
		}
		lt.params = append(lt.params, lp)
	}
	lt.parens = typed || len(n.Params) != 1
	if lt.parens {
		lt.size += 2
	}
	lt.size += len(" => ")

	body := c.translate(n.Body)
	lt.body = wrapCodeBlock(body)
	if !isEmpty(body) && needsBraces(body) {
		lt.body.withBraces()
		if !n.ReturnType().IsVoid() {
			lt.body.withReturn()
		}
	}
	lt.add(lt.body)
	lt.multi = lt.body.braces
	return lt
}

// needsBraces reports whether t cannot be an expression body.
func needsBraces(t Translation) bool {
	if isStatementOnly(t) || isTerminated(t) {
		return true
	}
	switch t.(type) {
	case *gotoTranslation, *labelTranslation:
		return true
	}
	return false
}

func (lt *lambdaTranslation) precedence() int { return precAssign }

func (lt *lambdaTranslation) WriteTo(b *Buffer) {
	if lt.parens {
		b.Write("(")
	}
	for i, p := range lt.params {
		if i > 0 {
			b.Write(", ")
		}
		if p.modifier != "" {
			b.Keyword(p.modifier)
		}
		if p.typeName != nil {
			p.typeName.WriteTo(b)
			b.Space()
		}
		b.Variable(p.name)
	}
	if lt.parens {
		b.Write(")")
	}
	b.Write(" =>")
	switch {
	case isEmpty(lt.body.body):
		b.Space()
		writeInlineBraces(b)
	case lt.body.braces:
		lt.body.WriteTo(b)
	default:
		b.Space()
		lt.body.body.WriteTo(b)
	}
}

// quoteTranslation writes a quoted lambda, optionally preceded by a comment
// marking it as quoted.
type quoteTranslation struct {
	meta
	lambda  *lambdaTranslation
	comment bool
}

const quoteComment = "// Quoted to induce a closure:"

func newQuote(c *context, n *expr.Quote) Translation {
	if n.Lambda == nil {
		return voidEmpty
	}
	lt := newLambda(c, n.Lambda)
	if !c.settings.quotedLambdaComments {
		return lt
	}
	qt := &quoteTranslation{lambda: lt, comment: true}
	qt.kind, qt.typ = expr.KindQuote, n.Type()
	qt.token(c, quoteComment, TokenComment)
	qt.add(lt)
	qt.multi = true
	return qt
}

func (qt *quoteTranslation) precedence() int { return precAssign }

func (qt *quoteTranslation) WriteTo(b *Buffer) {
	b.WriteToken(quoteComment, TokenComment)
	b.NewLine()
	qt.lambda.WriteTo(b)
}

package translate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calumari/readex/internal/expr"
)

func TestBuffer(t *testing.T) {
	t.Run("indentation is written lazily", func(t *testing.T) {
		b := NewBuffer(nil, "  ", 0)
		b.Write("a")
		b.Indent()
		b.NewLine()
		b.NewLine()
		b.Write("b")
		require.Equal(t, "a\n\n  b", b.String())
	})

	t.Run("embedded newlines keep the indent", func(t *testing.T) {
		b := NewBuffer(nil, "  ", 0)
		b.Indent()
		b.Write("a\nb")
		require.Equal(t, "  a\n  b", b.String())
	})

	t.Run("braces open and close on their own lines", func(t *testing.T) {
		b := NewBuffer(nil, "    ", 0)
		b.Write("if (x)")
		b.OpenBrace()
		b.Write("y;")
		b.CloseBrace()
		require.Equal(t, "if (x)\n{\n    y;\n}", b.String())
	})

	t.Run("backward queries ignore one trailing newline", func(t *testing.T) {
		b := NewBuffer(nil, "    ", 0)
		b.Write("{")
		b.NewLine()
		require.True(t, b.EndsWith('{'))
		require.False(t, b.EndsWithBlankLine())
		b.Write("x;")
		require.True(t, b.EndsWithString("x;"))
		b.BlankLine()
		require.True(t, b.EndsWithBlankLine())
		b.BlankLine()
		require.Equal(t, "{\nx;\n\n", b.String())
	})

	t.Run("blank line is not written into an empty buffer", func(t *testing.T) {
		b := NewBuffer(nil, "    ", 0)
		b.BlankLine()
		require.Zero(t, b.Len())
	})

	t.Run("formatter overhead is tracked", func(t *testing.T) {
		b := NewBuffer(HTMLFormatter{}, "    ", 0)
		b.Keyword("int")
		require.Equal(t, `<span class="kw">int</span>`, b.String())
		require.Equal(t, HTMLFormatter{}.Overhead(TokenKeyword), b.Overhead())
	})
}

func TestFormatters(t *testing.T) {
	a, b := expr.Var("a", expr.Int), expr.Var("b", expr.Int)
	lt := expr.MakeBinary(expr.LessThan, a, b)

	t.Run("html escapes and classifies tokens", func(t *testing.T) {
		out := render(t, lt, WithFormatter(HTMLFormatter{}))
		require.Equal(t, `<span class="vb">a</span> &lt; <span class="vb">b</span>`, out)
	})

	t.Run("ansi colours keywords", func(t *testing.T) {
		out := render(t, expr.Const(true), WithFormatter(ANSIFormatter{}))
		require.Equal(t, "\033[34mtrue\033[0m", out)
	})

	t.Run("estimated overhead matches what is written", func(t *testing.T) {
		n := expr.IfThen(expr.Var("p", expr.Bool), expr.CallStatic(svc, "Run", expr.Void))
		s := NewSettings(WithFormatter(HTMLFormatter{}))
		c := newContext(s, Analyze(n, s))
		tr := c.translate(n)
		buf := NewBuffer(s.formatter, s.indent, 0)
		tr.WriteTo(buf)
		require.Equal(t, tr.FormattingSize(), buf.Overhead())
	})
}

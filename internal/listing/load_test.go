package listing

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"
)

func parseFuncs(t *testing.T, src string) (map[string]*ast.FuncDecl, []string) {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "p.go", "package p\n\n"+src, 0)
	require.NoError(t, err)
	return indexFuncs([]*ast.File{f})
}

func TestIndexFuncs(t *testing.T) {
	t.Run("functions and methods are indexed by display name", func(t *testing.T) {
		_, names := parseFuncs(t, `type Box[T any] struct{ v T }

func (b *Box[T]) Get() T { return b.v }
func (Box[T]) Empty() bool { return false }
func Zeta() {}
func alpha() {}`)
		require.Equal(t, []string{"Box.Empty", "Box.Get", "Zeta", "alpha"}, names)
	})

	t.Run("declarations without bodies are skipped", func(t *testing.T) {
		decls, names := parseFuncs(t, `func external() int`)
		require.Empty(t, names)
		require.Empty(t, decls)
	})
}

func TestSelectFuncs(t *testing.T) {
	decls, all := parseFuncs(t, `func ParseConfig() {}
func Render() {}
func renderLine() {}`)

	t.Run("no names selects everything", func(t *testing.T) {
		got, err := selectFuncs(decls, all, nil)
		require.NoError(t, err)
		require.Equal(t, all, got)
	})

	t.Run("requested order is kept", func(t *testing.T) {
		got, err := selectFuncs(decls, all, []string{"renderLine", "ParseConfig"})
		require.NoError(t, err)
		require.Equal(t, []string{"renderLine", "ParseConfig"}, got)
	})

	t.Run("missing names suggest the closest match", func(t *testing.T) {
		_, err := selectFuncs(decls, all, []string{"ParseConfg"})
		require.ErrorIs(t, err, ErrFuncNotFound)
		require.ErrorContains(t, err, "ParseConfg (did you mean ParseConfig?)")
	})

	t.Run("fuzzy subsequences are suggested", func(t *testing.T) {
		_, err := selectFuncs(decls, all, []string{"rline"})
		require.ErrorContains(t, err, "did you mean renderLine?")
	})

	t.Run("unrelated names get no suggestion", func(t *testing.T) {
		_, err := selectFuncs(decls, all, []string{"zzzzzzzz"})
		require.ErrorIs(t, err, ErrFuncNotFound)
		require.NotContains(t, err.Error(), "did you mean")
	})
}

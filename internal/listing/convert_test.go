package listing

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/calumari/readex/internal/expr"
	"github.com/calumari/readex/internal/translate"
)

// convertSource type-checks src as the body of package p and converts the
// named function.
func convertSource(t *testing.T, src, name string) *expr.Lambda {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "p.go", "package p\n\n"+src, parser.ParseComments)
	require.NoError(t, err)
	info := &types.Info{
		Types:      map[ast.Expr]types.TypeAndValue{},
		Defs:       map[*ast.Ident]types.Object{},
		Uses:       map[*ast.Ident]types.Object{},
		Implicits:  map[ast.Node]types.Object{},
		Selections: map[*ast.SelectorExpr]*types.Selection{},
		Instances:  map[*ast.Ident]types.Instance{},
		Scopes:     map[ast.Node]*types.Scope{},
	}
	_, err = (&types.Config{}).Check("p", fset, []*ast.File{f}, info)
	require.NoError(t, err)
	decls, _ := indexFuncs([]*ast.File{f})
	decl, ok := decls[name]
	require.True(t, ok, "function %s not found", name)
	return newConverter(info).convertFunc(decl)
}

func renderSource(t *testing.T, src, name string) string {
	t.Helper()
	out, ok := translate.Translate(convertSource(t, src, name), translate.NewSettings())
	require.True(t, ok, "expected output")
	return out
}

func requireText(t *testing.T, want, got string) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rendered text mismatch (-want +got):\n%s", diff)
	}
}

func lines(ls ...string) string { return strings.Join(ls, "\n") }

func TestConvertFunctions(t *testing.T) {
	t.Run("single return becomes an expression lambda", func(t *testing.T) {
		src := `func Add(a, b int) int { return a + b }`
		requireText(t, "(a, b) => a + b", renderSource(t, src, "Add"))
	})

	t.Run("delegate type follows the signature", func(t *testing.T) {
		src := `func Add(a, b int) int { return a + b }`
		fn := convertSource(t, src, "Add")
		require.Equal(t, "Func<int, int, int>", fn.Type().String())

		src = `func Log(s string) { println(s) }`
		require.Equal(t, "Action<string>", convertSource(t, src, "Log").Type().String())
	})

	t.Run("early return keeps the final return last", func(t *testing.T) {
		src := `func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}`
		requireText(t, lines(
			"x =>",
			"{",
			"    if (x < 0)",
			"    {",
			"        return -x;",
			"    }",
			"",
			"    return x;",
			"}",
		), renderSource(t, src, "Abs"))
	})

	t.Run("methods take the receiver as first parameter", func(t *testing.T) {
		src := `type Point struct{ X, Y int }

func (p Point) Sum() int { return p.X + p.Y }`
		requireText(t, "p => p.X + p.Y", renderSource(t, src, "Point.Sum"))
	})

	t.Run("struct literals become object initializers", func(t *testing.T) {
		src := `type Point struct{ X, Y int }

func Origin() Point { return Point{X: 1, Y: 2} }`
		requireText(t, "() => new Point { X = 1, Y = 2 }", renderSource(t, src, "Origin"))
	})

	t.Run("closures become nested lambdas", func(t *testing.T) {
		src := `func Counter() func() int {
	n := 0
	return func() int {
		n++
		return n
	}
}`
		out := renderSource(t, src, "Counter")
		require.Contains(t, out, "var n = 0;")
		require.Contains(t, out, "return () =>")
		require.Contains(t, out, "n++;")
	})

	t.Run("several results become a tuple read by item", func(t *testing.T) {
		src := `func divmod(a, b int) (int, int) { return a / b, a % b }

func Use() int {
	q, r := divmod(7, 2)
	return q + r
}`
		require.Contains(t, renderSource(t, src, "divmod"), "ValueTuple")
		out := renderSource(t, src, "Use")
		require.Contains(t, out, "divmod(7, 2)")
		require.Contains(t, out, ".Item1")
		require.Contains(t, out, ".Item2")
	})

	t.Run("defer becomes a finally block", func(t *testing.T) {
		src := `func Guard(s []int) {
	defer println("done")
	s[0] = 1
}`
		out := renderSource(t, src, "Guard")
		require.Contains(t, out, "try")
		require.Contains(t, out, "s[0] = 1;")
		require.Contains(t, out, "finally")
		require.Contains(t, out, `Console.WriteLine("done");`)
	})
}

func TestConvertLoops(t *testing.T) {
	t.Run("range over a slice counts through the indexes", func(t *testing.T) {
		src := `func Sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}`
		requireText(t, lines(
			"xs =>",
			"{",
			"    var total = 0;",
			"    var i = 0;",
			"    while (true)",
			"    {",
			"        if (i >= xs.Length)",
			"        {",
			"            break;",
			"        }",
			"        var x = xs[i];",
			"        total += x;",
			"        i++;",
			"    }",
			"",
			"    return total;",
			"}",
		), renderSource(t, src, "Sum"))
	})

	t.Run("continue in a for loop jumps to the post statement", func(t *testing.T) {
		src := `func CountOdd(n int) int {
	count := 0
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			continue
		}
		count++
	}
	return count
}`
		out := renderSource(t, src, "CountOdd")
		require.Contains(t, out, "var i = 0;")
		require.Contains(t, out, "if (i >= n)")
		require.Contains(t, out, "goto label1;")
		require.Contains(t, out, "label1:")
		require.NotContains(t, out, "continue;")
	})

	t.Run("labeled break leaves the outer loop through a goto", func(t *testing.T) {
		src := `func Find(grid [][]int, want int) bool {
	found := false
outer:
	for _, row := range grid {
		for _, v := range row {
			if v == want {
				found = true
				break outer
			}
		}
	}
	return found
}`
		out := renderSource(t, src, "Find")
		require.Contains(t, out, "goto outerEnd;")
		require.Contains(t, out, "outerEnd:")
		require.Contains(t, out, "row[i2]")
		require.NotContains(t, out, "outer:")
	})

	t.Run("range over a map walks an enumerator", func(t *testing.T) {
		src := `func Total(m map[string]int) int {
	sum := 0
	for _, v := range m {
		sum += v
	}
	return sum
}`
		out := renderSource(t, src, "Total")
		require.Contains(t, out, "m.GetEnumerator()")
		require.Contains(t, out, "if (!enumerator.MoveNext())")
		require.Contains(t, out, "enumerator.Current.Value")
	})

	t.Run("range over an integer", func(t *testing.T) {
		src := `func Squares(n int) []int {
	out := make([]int, 0, n)
	for i := range n {
		out = append(out, i*i)
	}
	return out
}`
		out := renderSource(t, src, "Squares")
		require.Contains(t, out, "new int[0]")
		require.Contains(t, out, "if (i >= n)")
		require.Contains(t, out, "Append(")
	})
}

func TestConvertBranches(t *testing.T) {
	t.Run("tagged switch keeps its cases", func(t *testing.T) {
		src := `func Name(n int) string {
	switch n {
	case 1:
		return "one"
	case 2, 3:
		return "few"
	default:
		return "many"
	}
}`
		out := renderSource(t, src, "Name")
		require.Contains(t, out, "switch (n)")
		require.Contains(t, out, "case 1:")
		require.Contains(t, out, `return "one";`)
		require.Contains(t, out, "default:")
	})

	t.Run("type switch becomes type tests", func(t *testing.T) {
		src := `func Describe(v any) string {
	switch x := v.(type) {
	case int:
		return "int"
	case string:
		return x
	case nil:
		return "nil"
	}
	return "other"
}`
		out := renderSource(t, src, "Describe")
		require.Contains(t, out, "v is int")
		require.Contains(t, out, "v as string")
		require.Contains(t, out, "v == null")
	})

	t.Run("comma-ok map lookup uses TryGetValue", func(t *testing.T) {
		src := `func Lookup(m map[string]int, k string) int {
	if v, ok := m[k]; ok {
		return v
	}
	return -1
}`
		out := renderSource(t, src, "Lookup")
		require.Contains(t, out, "m.TryGetValue(k, out v)")
		require.Contains(t, out, "return -1;")
	})

	t.Run("panic throws", func(t *testing.T) {
		src := `func Must(err error) {
	if err != nil {
		panic(err)
	}
}

func Fail() { panic("boom") }`
		require.Contains(t, renderSource(t, src, "Must"), "throw err;")
		require.Contains(t, renderSource(t, src, "Fail"), `throw new Exception("boom")`)
	})

	t.Run("channel sends are marked unsupported", func(t *testing.T) {
		src := `func Send(ch chan int) { ch <- 1 }`
		require.Contains(t, renderSource(t, src, "Send"), "unsupported: channel send")
	})
}

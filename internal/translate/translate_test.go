package translate

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/calumari/readex/internal/expr"
)

var (
	svc     = expr.Class("Service")
	console = expr.Class("Console")
)

func call(name string, args ...expr.Node) *expr.Call {
	return expr.CallStatic(svc, name, expr.Void, args...)
}

func render(t *testing.T, n expr.Node, opts ...Option) string {
	t.Helper()
	out, ok := Translate(n, NewSettings(opts...))
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

func TestTranslateStatements(t *testing.T) {
	t.Run("three void calls render as three terminated lines in order", func(t *testing.T) {
		block := expr.MakeBlock(nil, call("Start"), call("Run"), call("Stop"))
		requireText(t, lines(
			"Service.Start();",
			"Service.Run();",
			"Service.Stop();",
		), render(t, block))
	})

	t.Run("if else-if pair renders as a chain", func(t *testing.T) {
		a, b := expr.Var("a", expr.Bool), expr.Var("b", expr.Bool)
		cond := expr.IfThenElse(a, call("DoA"), expr.IfThen(b, call("DoB")))
		requireText(t, lines(
			"if (a)",
			"{",
			"    Service.DoA();",
			"}",
			"else if (b)",
			"{",
			"    Service.DoB();",
			"}",
		), render(t, cond))
	})

	t.Run("if else with a plain alternative uses braces on both branches", func(t *testing.T) {
		a := expr.Var("a", expr.Bool)
		requireText(t, lines(
			"if (a)",
			"{",
			"    Service.DoA();",
			"}",
			"else",
			"{",
			"    Service.DoB();",
			"}",
		), render(t, expr.IfThenElse(a, call("DoA"), call("DoB"))))
	})

	t.Run("terminal then branch renders the early-return shape", func(t *testing.T) {
		a := expr.Var("a", expr.Bool)
		cond := expr.IfThenElse(a, expr.Return(nil, expr.Const(1)), call("Log"))
		requireText(t, lines(
			"if (a)",
			"{",
			"    return 1;",
			"}",
			"",
			"Service.Log();",
		), render(t, cond))
	})

	t.Run("loop with break target", func(t *testing.T) {
		i := expr.Var("i", expr.Int)
		brk := expr.NewLabel("", expr.Void)
		loop := &expr.Loop{
			Body: expr.IfThenElse(
				expr.MakeBinary(expr.LessThan, i, expr.Const(10)),
				expr.MakeUnary(expr.PostIncrementAssign, i),
				expr.Break(brk),
			),
			Break: brk,
		}
		requireText(t, lines(
			"while (true)",
			"{",
			"    if (i < 10)",
			"    {",
			"        i++;",
			"    }",
			"    else",
			"    {",
			"        break;",
			"    }",
			"}",
		), render(t, loop))
	})

	t.Run("goto names its label and the label gets a blank line", func(t *testing.T) {
		a := expr.Var("a", expr.Bool)
		skip := expr.NewLabel("skip", expr.Void)
		block := expr.MakeBlock(nil,
			expr.IfThen(a, expr.GotoLabel(skip)),
			call("Run"),
			&expr.Label{Target: skip},
		)
		requireText(t, lines(
			"if (a)",
			"{",
			"    goto skip;",
			"}",
			"Service.Run();",
			"",
			"skip:",
		), render(t, block))
	})

	t.Run("unnamed labels are numbered", func(t *testing.T) {
		a := expr.Var("a", expr.Bool)
		target := expr.NewLabel("", expr.Void)
		block := expr.MakeBlock(nil, expr.IfThen(a, expr.GotoLabel(target)), call("Run"), &expr.Label{Target: target})
		out := render(t, block)
		require.Contains(t, out, "goto label1;")
		require.Contains(t, out, "label1:")
	})

	t.Run("labels nothing jumps to are omitted", func(t *testing.T) {
		block := expr.MakeBlock(nil, call("Run"), &expr.Label{Target: expr.NewLabel("unused", expr.Void)})
		requireText(t, "Service.Run()", render(t, block))
	})

	t.Run("comments render one line per line of text", func(t *testing.T) {
		block := expr.MakeBlock(nil, &expr.Comment{Text: "first\nsecond"}, call("Run"))
		requireText(t, lines(
			"// first",
			"// second",
			"Service.Run();",
		), render(t, block))
	})
}

func TestTranslateDeclarations(t *testing.T) {
	t.Run("variables are grouped by type in first-seen order", func(t *testing.T) {
		x, name, y := expr.Var("x", expr.Int), expr.Var("name", expr.String), expr.Var("y", expr.Int)
		block := expr.MakeBlock([]*expr.Parameter{x, name, y}, call("Use", x, name, y))
		requireText(t, lines(
			"int x, y;",
			"string name;",
			"",
			"Service.Use(x, name, y);",
		), render(t, block))
	})

	t.Run("first assignment declares the variable", func(t *testing.T) {
		x := expr.Var("x", expr.Int)
		block := expr.MakeBlock([]*expr.Parameter{x}, expr.AssignTo(x, expr.Const(1)), call("Use", x))
		requireText(t, lines(
			"var x = 1;",
			"Service.Use(x);",
		), render(t, block))
		requireText(t, lines(
			"int x = 1;",
			"Service.Use(x);",
		), render(t, block, WithExplicitTypeNames()))
	})

	t.Run("a variable read before its assignment keeps a separate declaration", func(t *testing.T) {
		x := expr.Var("x", expr.Int)
		block := expr.MakeBlock([]*expr.Parameter{x}, call("Use", x), expr.AssignTo(x, expr.Const(1)), call("Use", x))
		requireText(t, lines(
			"int x;",
			"",
			"Service.Use(x);",
			"x = 1;",
			"Service.Use(x);",
		), render(t, block))
	})

	t.Run("null initial values are declared with their type", func(t *testing.T) {
		s := expr.Var("s", expr.String)
		block := expr.MakeBlock([]*expr.Parameter{s}, expr.AssignTo(s, &expr.Default{Typ: expr.String}), call("Use", s))
		requireText(t, lines(
			"string s = null;",
			"Service.Use(s);",
		), render(t, block))
	})

	t.Run("unnamed variables get per-type ordinals", func(t *testing.T) {
		s1, s2 := expr.Var("", expr.String), expr.Var("", expr.String)
		c := expr.Var("", expr.Class("Customer"))
		block := expr.MakeBlock([]*expr.Parameter{s1, s2, c}, call("Use", s1, s2, c))
		requireText(t, lines(
			"string string1, string2;",
			"Customer customer;",
			"",
			"Service.Use(string1, string2, customer);",
		), render(t, block))
	})

	t.Run("keyword names are escaped", func(t *testing.T) {
		v := expr.Var("class", expr.Int)
		requireText(t, "@class + 1", render(t, expr.MakeBinary(expr.Add, v, expr.Const(1))))
	})
}

func TestTranslateOperators(t *testing.T) {
	a, b, c := expr.Var("a", expr.Int), expr.Var("b", expr.Int), expr.Var("c", expr.Int)

	t.Run("lower precedence children are parenthesised", func(t *testing.T) {
		n := expr.MakeBinary(expr.Multiply, expr.MakeBinary(expr.Add, a, b), c)
		requireText(t, "(a + b) * c", render(t, n))
	})

	t.Run("higher precedence children are not", func(t *testing.T) {
		n := expr.MakeBinary(expr.Add, a, expr.MakeBinary(expr.Multiply, b, c))
		requireText(t, "a + b * c", render(t, n))
	})

	t.Run("left-nested subtraction needs no parentheses", func(t *testing.T) {
		n := expr.MakeBinary(expr.Subtract, expr.MakeBinary(expr.Subtract, a, b), c)
		requireText(t, "a - b - c", render(t, n))
	})

	t.Run("right-nested subtraction keeps its grouping", func(t *testing.T) {
		n := expr.MakeBinary(expr.Subtract, a, expr.MakeBinary(expr.Subtract, b, c))
		requireText(t, "a - (b - c)", render(t, n))
	})

	t.Run("a different operator at the same precedence keeps its grouping", func(t *testing.T) {
		requireText(t, "a * (b / c)", render(t, expr.MakeBinary(expr.Multiply, a, expr.MakeBinary(expr.Divide, b, c))))
		requireText(t, "a * (b % c)", render(t, expr.MakeBinary(expr.Multiply, a, expr.MakeBinary(expr.Modulo, b, c))))
		requireText(t, "a + (b - c)", render(t, expr.MakeBinary(expr.Add, a, expr.MakeBinary(expr.Subtract, b, c))))
	})

	t.Run("the same associative operator regroups freely", func(t *testing.T) {
		requireText(t, "a * b * c", render(t, expr.MakeBinary(expr.Multiply, a, expr.MakeBinary(expr.Multiply, b, c))))
		requireText(t, "a + b + c", render(t, expr.MakeBinary(expr.Add, a, expr.MakeBinary(expr.Add, b, c))))
	})

	t.Run("string concatenation keeps a nested numeric sum grouped", func(t *testing.T) {
		s := expr.Var("s", expr.String)
		n := &expr.Binary{Op: expr.Add, Left: s, Right: expr.MakeBinary(expr.Add, a, b), Typ: expr.String}
		requireText(t, "s + (a + b)", render(t, n))
	})

	t.Run("logical operators", func(t *testing.T) {
		p, q, r := expr.Var("p", expr.Bool), expr.Var("q", expr.Bool), expr.Var("r", expr.Bool)
		n := expr.MakeBinary(expr.AndAlso, expr.MakeBinary(expr.OrElse, p, q), expr.MakeUnary(expr.Not, r))
		requireText(t, "(p || q) && !r", render(t, n))
	})

	t.Run("not on an integer is a complement", func(t *testing.T) {
		requireText(t, "~a", render(t, expr.MakeUnary(expr.Not, a)))
	})

	t.Run("double negation does not fuse", func(t *testing.T) {
		n := expr.MakeUnary(expr.Negate, expr.MakeUnary(expr.Negate, a))
		requireText(t, "-(-a)", render(t, n))
	})

	t.Run("increment without assignment", func(t *testing.T) {
		requireText(t, "a + 1", render(t, expr.MakeUnary(expr.Increment, a)))
	})

	t.Run("power becomes Math.Pow", func(t *testing.T) {
		x, y := expr.Var("x", expr.Double), expr.Var("y", expr.Double)
		requireText(t, "Math.Pow(x, y)", render(t, expr.MakeBinary(expr.Power, x, y)))
	})

	t.Run("checked arithmetic", func(t *testing.T) {
		requireText(t, "checked(a + b)", render(t, expr.MakeBinary(expr.AddChecked, a, b)))
	})

	t.Run("checked arithmetic over several lines becomes a checked block", func(t *testing.T) {
		long := call("Configure", expr.Const(1), expr.Const(2), expr.Const(3), expr.Const(4))
		requireText(t, lines(
			"checked",
			"{",
			"    a + Service.Configure(",
			"        1,",
			"        2,",
			"        3,",
			"        4)",
			"}",
		), render(t, expr.MakeBinary(expr.AddChecked, a, long)))
	})

	t.Run("checked negation, assignment and cast use the block form when long", func(t *testing.T) {
		long := call("Configure", expr.Const(1), expr.Const(2), expr.Const(3), expr.Const(4))
		requireText(t, lines(
			"checked",
			"{",
			"    -Service.Configure(",
			"        1,",
			"        2,",
			"        3,",
			"        4)",
			"}",
		), render(t, &expr.Unary{Op: expr.NegateChecked, Operand: long, Typ: expr.Int}))
		require.Contains(t, render(t, &expr.Assign{Op: expr.AddAssignChecked, Target: a, Value: long}), "checked\n{\n    a += Service.Configure(")
		require.Contains(t, render(t, &expr.Cast{Op: expr.ConvertChecked, Operand: long, Typ: expr.Long}), "checked\n{\n    (long)Service.Configure(")
		requireText(t, "checked(-a)", render(t, &expr.Unary{Op: expr.NegateChecked, Operand: a, Typ: expr.Int}))
	})

	t.Run("compound assignment", func(t *testing.T) {
		requireText(t, "a += 1", render(t, &expr.Assign{Op: expr.AddAssign, Target: a, Value: expr.Const(1)}))
	})

	t.Run("array index and length", func(t *testing.T) {
		arr := expr.Var("items", expr.ArrayOf(expr.Int))
		requireText(t, "items[a]", render(t, expr.MakeBinary(expr.ArrayIndex, arr, a)))
		requireText(t, "items.Length", render(t, expr.MakeUnary(expr.ArrayLength, arr)))
	})
}

func TestTranslateTernary(t *testing.T) {
	a := expr.Var("a", expr.Bool)

	t.Run("short ternary stays on one line", func(t *testing.T) {
		requireText(t, "a ? 1 : 2", render(t, expr.Ternary(a, expr.Const(1), expr.Const(2))))
	})

	t.Run("long ternary splits with leading operators", func(t *testing.T) {
		one := expr.CallStatic(svc, strings.Repeat("First", 8), expr.Int)
		two := expr.CallStatic(svc, strings.Repeat("Second", 7), expr.Int)
		want := lines(
			"a",
			"    ? Service."+strings.Repeat("First", 8)+"()",
			"    : Service."+strings.Repeat("Second", 7)+"()",
		)
		requireText(t, want, render(t, expr.Ternary(a, one, two)))
	})

	t.Run("a ternary of exactly the line length stays on one line", func(t *testing.T) {
		// 1 + 3 + 46 + 3 + 47 = 100 characters.
		yes, no := expr.Var(strings.Repeat("y", 46), expr.Int), expr.Var(strings.Repeat("n", 47), expr.Int)
		out := render(t, expr.Ternary(a, yes, no))
		require.Len(t, out, DefaultLineLength)
		requireText(t, "a ? "+yes.Name+" : "+no.Name, out)
	})

	t.Run("one character over the line length splits", func(t *testing.T) {
		yes, no := expr.Var(strings.Repeat("y", 47), expr.Int), expr.Var(strings.Repeat("n", 47), expr.Int)
		requireText(t, lines("a", "    ? "+yes.Name, "    : "+no.Name), render(t, expr.Ternary(a, yes, no)))
	})

	t.Run("line length is configurable", func(t *testing.T) {
		out := render(t, expr.Ternary(a, expr.Const(1), expr.Const(2)), WithLineLength(4))
		requireText(t, lines("a", "    ? 1", "    : 2"), out)
	})

	t.Run("value branches that are statements become an if with returns", func(t *testing.T) {
		x := expr.Var("x", expr.Int)
		body := expr.Ternary(a,
			expr.MakeBlock(nil, call("Log"), expr.Const(1)),
			expr.Const(2),
		)
		fn := &expr.Lambda{Params: []*expr.Parameter{a, x}, Body: body}
		requireText(t, lines(
			"(a, x) =>",
			"{",
			"    if (a)",
			"    {",
			"        Service.Log();",
			"        return 1;",
			"    }",
			"    else",
			"    {",
			"        return 2;",
			"    }",
			"}",
		), render(t, fn))
	})
}

func TestTranslateSwitch(t *testing.T) {
	x := expr.Var("x", expr.Int)

	t.Run("case bodies get a break unless they jump", func(t *testing.T) {
		sw := &expr.Switch{
			Value: x,
			Cases: []expr.SwitchCase{
				{Tests: []expr.Node{expr.Const(1), expr.Const(2)}, Body: call("One")},
				{Tests: []expr.Node{expr.Const(3)}, Body: expr.Return(nil, nil)},
			},
			Default: call("Other"),
		}
		requireText(t, lines(
			"switch (x)",
			"{",
			"    case 1:",
			"    case 2:",
			"        Service.One();",
			"        break;",
			"",
			"    case 3:",
			"        return;",
			"",
			"    default:",
			"        Service.Other();",
			"        break;",
			"}",
		), render(t, sw))
	})
}

func TestTranslateTry(t *testing.T) {
	ioErr := expr.ExceptionType("IOException", nil)

	t.Run("catch of every exception with no variable is bare", func(t *testing.T) {
		try := &expr.Try{
			Body:     call("Run"),
			Handlers: []expr.CatchBlock{{Test: expr.Exception, Body: call("Log")}},
		}
		requireText(t, lines(
			"try",
			"{",
			"    Service.Run();",
			"}",
			"catch",
			"{",
			"    Service.Log();",
			"}",
		), render(t, try))
	})

	t.Run("unused variable of a specific type shows only the type", func(t *testing.T) {
		ex := expr.Var("ex", ioErr)
		try := &expr.Try{
			Body:     call("Run"),
			Handlers: []expr.CatchBlock{{Test: ioErr, Variable: ex, Body: call("Log")}},
		}
		require.Contains(t, render(t, try), "catch (IOException)\n{")
	})

	t.Run("used variable with a filter", func(t *testing.T) {
		ex := expr.Var("ex", expr.Exception)
		filter := expr.MakeBinary(expr.NotEqual, expr.Property(ex, "Message", expr.String), &expr.Default{Typ: expr.String})
		try := &expr.Try{
			Body:     call("Run"),
			Handlers: []expr.CatchBlock{{Test: expr.Exception, Variable: ex, Filter: filter, Body: call("Log", ex)}},
		}
		out := render(t, try)
		require.Contains(t, out, "catch (Exception ex) when (ex.Message != null)")
		require.Contains(t, out, "Service.Log(ex);")
	})

	t.Run("rethrowing the caught exception is a bare throw", func(t *testing.T) {
		ex := expr.Var("ex", expr.Exception)
		try := &expr.Try{
			Body:     call("Run"),
			Handlers: []expr.CatchBlock{{Variable: ex, Body: expr.MakeBlock(nil, call("Log"), &expr.Throw{Value: ex})}},
		}
		requireText(t, lines(
			"try",
			"{",
			"    Service.Run();",
			"}",
			"catch",
			"{",
			"    Service.Log();",
			"    throw;",
			"}",
		), render(t, try))
	})

	t.Run("throwing an outer catch variable from a nested handler keeps the variable", func(t *testing.T) {
		ex := expr.Var("ex", expr.Exception)
		inner := &expr.Try{
			Body:     call("Retry"),
			Handlers: []expr.CatchBlock{{Test: expr.Exception, Body: &expr.Throw{Value: ex}}},
		}
		try := &expr.Try{
			Body:     call("Run"),
			Handlers: []expr.CatchBlock{{Test: expr.Exception, Variable: ex, Body: inner}},
		}
		out := render(t, try)
		require.Contains(t, out, "catch (Exception ex)")
		require.Contains(t, out, "throw ex;")
		require.NotContains(t, out, "throw;")
	})

	t.Run("throwing a catch variable inside a lambda keeps the variable", func(t *testing.T) {
		ex := expr.Var("ex", expr.Exception)
		deferred := &expr.Lambda{Body: &expr.Throw{Value: ex}, Typ: expr.Action()}
		try := &expr.Try{
			Body:     call("Run"),
			Handlers: []expr.CatchBlock{{Test: expr.Exception, Variable: ex, Body: call("Defer", deferred)}},
		}
		out := render(t, try)
		require.Contains(t, out, "catch (Exception ex)")
		require.Contains(t, out, "throw ex")
	})

	t.Run("a try nested in the handler still rethrows bare", func(t *testing.T) {
		ex := expr.Var("ex", expr.Exception)
		inner := &expr.Try{Body: &expr.Throw{Value: ex}, Finally: call("Stop")}
		try := &expr.Try{
			Body:     call("Run"),
			Handlers: []expr.CatchBlock{{Test: expr.Exception, Variable: ex, Body: inner}},
		}
		out := render(t, try)
		require.Contains(t, out, "throw;")
		require.NotContains(t, out, "Exception ex")
	})

	t.Run("finally and fault", func(t *testing.T) {
		try := &expr.Try{Body: call("Run"), Finally: call("Stop")}
		requireText(t, lines(
			"try",
			"{",
			"    Service.Run();",
			"}",
			"finally",
			"{",
			"    Service.Stop();",
			"}",
		), render(t, try))

		fault := &expr.Try{Body: call("Run"), Fault: call("Undo")}
		require.Contains(t, render(t, fault), "fault\n{\n    Service.Undo();\n}")
	})
}

func TestTranslateLambdas(t *testing.T) {
	x := expr.Var("x", expr.Int)

	t.Run("expression body", func(t *testing.T) {
		fn := &expr.Lambda{Params: []*expr.Parameter{x}, Body: expr.MakeBinary(expr.Add, x, expr.Const(1))}
		requireText(t, "x => x + 1", render(t, fn))
	})

	t.Run("parameterless and multi-parameter lists", func(t *testing.T) {
		y := expr.Var("y", expr.Int)
		requireText(t, "() => 1", render(t, &expr.Lambda{Body: expr.Const(1)}))
		requireText(t, "(x, y) => x * y", render(t, &expr.Lambda{Params: []*expr.Parameter{x, y}, Body: expr.MakeBinary(expr.Multiply, x, y)}))
	})

	t.Run("by-ref parameters are typed", func(t *testing.T) {
		r := &expr.Parameter{Name: "r", Typ: expr.Int, ByRef: true}
		fn := &expr.Lambda{Params: []*expr.Parameter{r}, Body: &expr.Assign{Op: expr.AddAssign, Target: r, Value: expr.Const(1)}}
		requireText(t, "(ref int r) => r += 1", render(t, fn))
	})

	t.Run("block body returns its final value", func(t *testing.T) {
		y := expr.Var("y", expr.Int)
		fn := &expr.Lambda{
			Params: []*expr.Parameter{x},
			Body: expr.MakeBlock([]*expr.Parameter{y},
				expr.AssignTo(y, expr.MakeBinary(expr.Multiply, x, expr.Const(2))),
				expr.MakeBinary(expr.Add, y, expr.Const(1)),
			),
		}
		requireText(t, lines(
			"x =>",
			"{",
			"    var y = x * 2;",
			"    return y + 1;",
			"}",
		), render(t, fn))
	})

	t.Run("jumps to the final label become returns", func(t *testing.T) {
		ret := expr.NewLabel("", expr.Int)
		fn := &expr.Lambda{
			Params: []*expr.Parameter{x},
			Body: expr.MakeBlock(nil,
				expr.IfThen(expr.MakeBinary(expr.LessThan, x, expr.Const(0)), expr.Return(ret, expr.Const(0))),
				&expr.Label{Target: ret, Default: x},
			),
		}
		requireText(t, lines(
			"x =>",
			"{",
			"    if (x < 0)",
			"    {",
			"        return 0;",
			"    }",
			"",
			"    return x;",
			"}",
		), render(t, fn))
	})

	t.Run("empty body", func(t *testing.T) {
		requireText(t, "() => { }", render(t, &expr.Lambda{Body: &expr.Default{Typ: expr.Void}}))
	})

	t.Run("quoted lambdas can carry a comment", func(t *testing.T) {
		q := &expr.Quote{Lambda: &expr.Lambda{Params: []*expr.Parameter{x}, Body: x}}
		requireText(t, "x => x", render(t, q))
		requireText(t, lines("// Quoted to induce a closure:", "x => x"), render(t, q, WithQuotedLambdaComments()))
	})
}

func TestTranslateCalls(t *testing.T) {
	item := expr.Var("item", expr.String)
	list := expr.Var("list", expr.Class("List", expr.String))

	t.Run("forwarding lambda becomes a method group", func(t *testing.T) {
		fn := &expr.Lambda{Params: []*expr.Parameter{item}, Body: expr.CallStatic(console, "WriteLine", expr.Void, item)}
		requireText(t, "list.ForEach(Console.WriteLine)", render(t, expr.CallMethod(list, "ForEach", expr.Void, fn)))
	})

	t.Run("a single multi-line lambda argument stays inline", func(t *testing.T) {
		fn := &expr.Lambda{
			Params: []*expr.Parameter{item},
			Body: expr.MakeBlock(nil,
				expr.CallStatic(console, "Write", expr.Void, item),
				expr.CallStatic(console, "WriteLine", expr.Void),
			),
		}
		requireText(t, lines(
			"list.ForEach(item =>",
			"{",
			"    Console.Write(item);",
			"    Console.WriteLine();",
			"})",
		), render(t, expr.CallMethod(list, "ForEach", expr.Void, fn)))
	})

	t.Run("more arguments than fit inline go one per line", func(t *testing.T) {
		n := call("Configure", expr.Const(1), expr.Const(2), expr.Const(3), expr.Const(4))
		requireText(t, lines(
			"Service.Configure(",
			"    1,",
			"    2,",
			"    3,",
			"    4)",
		), render(t, n))
		requireText(t, "Service.Configure(1, 2, 3, 4)", render(t, n, WithMaxInlineArgs(4)))
	})

	t.Run("few arguments that are too long together go one per line", func(t *testing.T) {
		first, second := strings.Repeat("a", 60), strings.Repeat("b", 60)
		n := call("Configure", expr.Const(first), expr.Const(second))
		requireText(t, lines(
			"Service.Configure(",
			`    "`+first+`",`,
			`    "`+second+`")`,
		), render(t, n))
	})

	t.Run("out and ref arguments", func(t *testing.T) {
		s, v := expr.Var("s", expr.String), expr.Var("v", expr.Int)
		m := &expr.Method{
			Name: "TryParse", Declaring: expr.Int, Static: true, Result: expr.Bool,
			Params: []expr.Param{{Name: "s", Type: expr.String}, {Name: "result", Type: expr.Int, Mode: expr.Out}},
		}
		requireText(t, "int.TryParse(s, out v)", render(t, &expr.Call{Method: m, Args: []expr.Node{s, v}}))
	})

	t.Run("generic arguments are shown only when not inferable", func(t *testing.T) {
		tp := expr.GenericParam("T")
		inferable := &expr.Method{Name: "Echo", Declaring: svc, Static: true, GenericArgs: []*expr.Type{expr.Int},
			Params: []expr.Param{{Name: "v", Type: expr.Int}}, Result: expr.Int}
		hidden := &expr.Method{Name: "Create", Declaring: svc, Static: true, GenericArgs: []*expr.Type{tp}, Result: tp}
		echo := &expr.Call{Method: inferable, Args: []expr.Node{expr.Const(1)}}
		requireText(t, "Service.Echo(1)", render(t, echo))
		requireText(t, "Service.Echo<int>(1)", render(t, echo, WithExplicitGenericArgs()))
		requireText(t, "Service.Create<T>()", render(t, &expr.Call{Method: hidden}))
	})

	t.Run("extension methods use instance syntax", func(t *testing.T) {
		m := &expr.Method{Name: "Count", Declaring: expr.Class("Enumerable"), Static: true, Extension: true,
			Params: []expr.Param{{Name: "source", Type: list.Typ}}, Result: expr.Int}
		requireText(t, "list.Count()", render(t, &expr.Call{Method: m, Args: []expr.Node{list}}))
	})

	t.Run("delegate invocation", func(t *testing.T) {
		f := expr.Var("f", expr.Func(expr.Int, expr.Int))
		requireText(t, "f.Invoke(1)", render(t, &expr.Invoke{Target: f, Args: []expr.Node{expr.Const(1)}}))
	})

	t.Run("static members and indexers", func(t *testing.T) {
		now := &expr.MemberAccess{Member: "Now", Declaring: expr.Class("DateTime"), Typ: expr.Class("DateTime")}
		requireText(t, "DateTime.Now", render(t, now))
		requireText(t, "list[0]", render(t, &expr.Index{Object: list, Args: []expr.Node{expr.Const(0)}, Typ: expr.String}))
	})
}

func TestTranslateConstruction(t *testing.T) {
	t.Run("constructor call", func(t *testing.T) {
		requireText(t, "new Customer(\"Ann\")", render(t, &expr.New{Typ: expr.Class("Customer"), Args: []expr.Node{expr.Const("Ann")}}))
	})

	t.Run("anonymous type", func(t *testing.T) {
		n := &expr.New{Typ: expr.Anonymous("Name", "Age"), Args: []expr.Node{expr.Const("Ann"), expr.Const(30)}, Members: []string{"Name", "Age"}}
		requireText(t, `new { Name = "Ann", Age = 30 }`, render(t, n))
	})

	t.Run("collection initializer", func(t *testing.T) {
		n := &expr.ListInit{
			New:   &expr.New{Typ: expr.Class("List", expr.Int)},
			Inits: []expr.ElementInit{{Args: []expr.Node{expr.Const(1)}}, {Args: []expr.Node{expr.Const(2)}}},
		}
		requireText(t, "new List<int> { 1, 2 }", render(t, n))
	})

	t.Run("dictionary initializer nests key and value", func(t *testing.T) {
		n := &expr.ListInit{
			New:   &expr.New{Typ: expr.Class("Dictionary", expr.String, expr.Int)},
			Inits: []expr.ElementInit{{Args: []expr.Node{expr.Const("a"), expr.Const(1)}}},
		}
		requireText(t, `new Dictionary<string, int> { { "a", 1 } }`, render(t, n))
	})

	t.Run("object initializer with nested bindings", func(t *testing.T) {
		n := &expr.MemberInit{
			New: &expr.New{Typ: expr.Class("Customer")},
			Bindings: []expr.Binding{
				{Kind: expr.BindAssign, Member: "Name", Value: expr.Const("Ann")},
				{Kind: expr.BindList, Member: "Tags", Inits: []expr.ElementInit{{Args: []expr.Node{expr.Const("vip")}}}},
			},
		}
		requireText(t, `new Customer { Name = "Ann", Tags = { "vip" } }`, render(t, n))
	})

	t.Run("long initializers go one item per line", func(t *testing.T) {
		long := strings.Repeat("x", 60)
		n := &expr.ListInit{
			New:   &expr.New{Typ: expr.Class("List", expr.String)},
			Inits: []expr.ElementInit{{Args: []expr.Node{expr.Const(long)}}, {Args: []expr.Node{expr.Const(long)}}},
		}
		requireText(t, lines(
			"new List<string>",
			"{",
			`    "`+long+`",`,
			`    "`+long+`"`,
			"}",
		), render(t, n))
	})

	t.Run("arrays", func(t *testing.T) {
		requireText(t, "new int[5]", render(t, &expr.NewArray{Elem: expr.Int, Bounds: []expr.Node{expr.Const(5)}}))
		requireText(t, "new int[2, 3]", render(t, &expr.NewArray{Elem: expr.Int, Bounds: []expr.Node{expr.Const(2), expr.Const(3)}}))
		requireText(t, "new int[5][]", render(t, &expr.NewArray{Elem: expr.ArrayOf(expr.Int), Bounds: []expr.Node{expr.Const(5)}}))
		requireText(t, "new[] { 1, 2 }", render(t, &expr.ArrayInit{Elem: expr.Int, Items: []expr.Node{expr.Const(1), expr.Const(2)}}))
		requireText(t, `new string[] { null, "a" }`, render(t, &expr.ArrayInit{Elem: expr.String, Items: []expr.Node{expr.Const(nil), expr.Const("a")}}))
		requireText(t, "new int[0]", render(t, &expr.ArrayInit{Elem: expr.Int}))
	})
}

func TestTranslateConversions(t *testing.T) {
	x := expr.Var("x", expr.Int)
	o := expr.Var("o", expr.Object)

	t.Run("casts", func(t *testing.T) {
		requireText(t, "(long)x", render(t, &expr.Cast{Op: expr.Convert, Operand: x, Typ: expr.Long}))
		requireText(t, "o as string", render(t, &expr.Cast{Op: expr.TypeAs, Operand: o, Typ: expr.String}))
		requireText(t, "checked((short)x)", render(t, &expr.Cast{Op: expr.ConvertChecked, Operand: x, Typ: expr.Short}))
	})

	t.Run("implicit conversions are not written", func(t *testing.T) {
		requireText(t, "x", render(t, &expr.Cast{Op: expr.Convert, Operand: x, Typ: expr.Object}))
		requireText(t, "x", render(t, &expr.Cast{Op: expr.Convert, Operand: x, Typ: expr.NullableOf(expr.Int)}))
	})

	t.Run("type tests", func(t *testing.T) {
		requireText(t, "o is string", render(t, &expr.TypeTest{Op: expr.TypeIs, Operand: o, Test: expr.String}))
		requireText(t, "o.GetType() == typeof(string)", render(t, &expr.TypeTest{Op: expr.TypeEqual, Operand: o, Test: expr.String}))
	})
}

func TestTranslateLiterals(t *testing.T) {
	tests := []struct {
		name string
		node expr.Node
		want string
	}{
		{"null", expr.Const(nil), "null"},
		{"bool", expr.Const(true), "true"},
		{"int", expr.Const(42), "42"},
		{"long", expr.Const(int64(5)), "5L"},
		{"double", expr.Const(1.5), "1.5d"},
		{"float", expr.Const(float32(0.25)), "0.25f"},
		{"decimal", &expr.Constant{Value: 2.5, Typ: expr.Decimal}, "2.5m"},
		{"not a number", &expr.Constant{Value: math.NaN(), Typ: expr.Double}, "double.NaN"},
		{"escaped string", expr.Const("a\"b\n"), `"a\"b\n"`},
		{"char", &expr.Constant{Value: 'x', Typ: expr.Char}, "'x'"},
		{"type", expr.Const(expr.String), "typeof(string)"},
		{"enum", expr.Const(expr.EnumValue{Enum: expr.Enum("Color"), Name: "Red"}), "Color.Red"},
		{"value default", &expr.Default{Typ: expr.Int}, "default(int)"},
		{"reference default", &expr.Default{Typ: expr.String}, "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireText(t, tt.want, render(t, tt.node))
		})
	}

	t.Run("negative literals are parenthesised under unary minus", func(t *testing.T) {
		requireText(t, "-(-1)", render(t, expr.MakeUnary(expr.Negate, expr.Const(-1))))
	})
}

type custom struct{}

func (custom) Kind() expr.Kind  { return expr.KindExtension }
func (custom) Type() *expr.Type { return expr.Int }
func (custom) String() string   { return "<custom>" }

type reducible struct{}

func (reducible) Kind() expr.Kind   { return expr.KindExtension }
func (reducible) Type() *expr.Type  { return expr.Int }
func (reducible) Reduce() expr.Node { return expr.Const(7) }

func TestTranslateEngine(t *testing.T) {
	t.Run("void default renders nothing", func(t *testing.T) {
		out, ok := Translate(&expr.Default{Typ: expr.Void}, nil)
		require.False(t, ok)
		require.Empty(t, out)
	})

	t.Run("nil node renders nothing", func(t *testing.T) {
		_, ok := Translate(nil, nil)
		require.False(t, ok)
	})

	t.Run("unknown nodes fall back to their own text", func(t *testing.T) {
		requireText(t, "<custom> + 1", render(t, expr.MakeBinary(expr.Add, custom{}, expr.Const(1))))
	})

	t.Run("reducible nodes render their reduction", func(t *testing.T) {
		requireText(t, "7", render(t, reducible{}))
	})

	t.Run("overrides are tried first and may defer", func(t *testing.T) {
		override := func(n expr.Node, render func(expr.Node) string) (string, bool) {
			if c, ok := n.(*expr.Constant); ok && c.Value == 42 {
				return "Answer", true
			}
			return "", false
		}
		n := expr.MakeBinary(expr.Add, expr.Const(42), expr.Const(1))
		requireText(t, "Answer + 1", render(t, n, WithTranslator(expr.KindConstant, override)))
	})

	t.Run("overrides can render children", func(t *testing.T) {
		override := func(n expr.Node, render func(expr.Node) string) (string, bool) {
			b := n.(*expr.Binary)
			return "Add(" + render(b.Left) + ", " + render(b.Right) + ")", true
		}
		x := expr.Var("x", expr.Int)
		requireText(t, "Add(x, 1)", render(t, expr.MakeBinary(expr.Add, x, expr.Const(1)), WithTranslator(expr.KindBinary, override)))
	})

	t.Run("deep trees are cut off at the depth limit", func(t *testing.T) {
		var n expr.Node = expr.Const(1)
		for i := 0; i < 10; i++ {
			n = expr.MakeBinary(expr.Add, n, expr.Const(1))
		}
		require.Contains(t, render(t, n, WithMaxDepth(4)), "/* ... */")
	})

	t.Run("rendering is deterministic", func(t *testing.T) {
		s1, s2 := expr.Var("", expr.String), expr.Var("", expr.String)
		block := expr.MakeBlock([]*expr.Parameter{s1, s2}, call("Use", s1, s2))
		first := render(t, block)
		for i := 0; i < 5; i++ {
			require.Equal(t, first, render(t, block))
		}
	})

	t.Run("shared subtrees render at each occurrence", func(t *testing.T) {
		x := expr.Var("x", expr.Int)
		shared := expr.MakeBinary(expr.Add, x, expr.Const(1))
		requireText(t, "(x + 1) * (x + 1)", render(t, expr.MakeBinary(expr.Multiply, shared, shared)))
	})

	t.Run("custom indent", func(t *testing.T) {
		a := expr.Var("a", expr.Bool)
		requireText(t, "if (a)\n{\n\tService.Run();\n}", render(t, expr.IfThen(a, call("Run")), WithIndent("\t")))
	})

	t.Run("anonymous type names come from the namer", func(t *testing.T) {
		v := expr.Var("v", expr.Anonymous("A"))
		block := expr.MakeBlock([]*expr.Parameter{v}, call("Use", v))
		namer := func(*expr.Type) string { return "Pair" }
		require.Contains(t, render(t, block, WithAnonymousTypeNamer(namer)), "Pair v;")
	})
}

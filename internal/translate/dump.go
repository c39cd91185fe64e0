package translate

import (
	"fmt"
	"strings"

	"github.com/disiqueira/gotree"

	"github.com/calumari/readex/internal/expr"
)

// Dump renders the tree rooted at node as an indented outline, one line per
// node, annotated with the size and layout flags of the node's translation.
func Dump(node expr.Node, s *Settings) string {
	if s == nil {
		s = NewSettings()
	}
	c := newContext(s, Analyze(node, s))
	c.memo = map[expr.Node]Translation{}
	root := gotree.New(describe(c, node))
	dumpChildren(c, root, node, 0)
	return root.Print()
}

func dumpChildren(c *context, parent gotree.Tree, n expr.Node, depth int) {
	if n == nil || depth >= c.settings.maxDepth {
		return
	}
	for _, child := range expr.Children(n) {
		dumpChildren(c, parent.Add(describe(c, child)), child, depth+1)
	}
}

func describe(c *context, n expr.Node) string {
	if n == nil {
		return "<nil>"
	}
	t := c.translate(n)
	var flags []string
	if isMultiStatement(t) {
		flags = append(flags, "multi")
	}
	if isTerminated(t) {
		flags = append(flags, "terminated")
	}
	if hasJump(t) {
		flags = append(flags, "jump")
	}
	if isEmpty(t) {
		flags = append(flags, "empty")
	}
	line := fmt.Sprintf("%s : %s size=%d", expr.Describe(n), c.typeName(n.Type()), t.Size())
	if len(flags) > 0 {
		line += " [" + strings.Join(flags, " ") + "]"
	}
	return line
}

// Package translate renders executable-code trees as readable C#-style
// source text.
//
// A render runs in three steps. Analyze walks the tree once to collect the
// facts that need whole-tree context (which variables are declared where,
// which labels need names, which catch variables are used). Each node is
// then turned into a Translation that knows its approximate size and how
// it must be laid out. Finally the root Translation writes itself into a
// Buffer in a single pass.
package translate

import (
	"strings"

	"github.com/calumari/readex/internal/expr"
)

// Translate renders node. It reports false when node renders as nothing,
// such as a void default value. A nil Settings uses the defaults.
func Translate(node expr.Node, s *Settings) (string, bool) {
	if node == nil {
		return "", false
	}
	if s == nil {
		s = NewSettings()
	}
	c := newContext(s, Analyze(node, s))
	t := c.translate(node)
	if isEmpty(t) {
		return "", false
	}
	b := NewBuffer(s.formatter, s.indent, t.Size()+t.FormattingSize())
	if _, ok := t.(*blockTranslation); ok {
		writeReturnStatement(b, t)
	} else {
		t.WriteTo(b)
	}
	out := strings.TrimRight(b.String(), "\n")
	return out, out != ""
}

package translate

import "strings"

// Buffer accumulates rendered text. Indentation is tracked as a depth and
// only written immediately before the next non-empty token, so lines that
// end up empty carry no trailing whitespace.
type Buffer struct {
	sb        strings.Builder
	formatter Formatter
	unit      string
	depth     int
	lineStart bool
	overhead  int
}

// NewBuffer returns a buffer pre-sized for roughly sizeHint bytes.
func NewBuffer(f Formatter, indentUnit string, sizeHint int) *Buffer {
	if f == nil {
		f = PlainFormatter{}
	}
	b := &Buffer{formatter: f, unit: indentUnit, lineStart: true}
	if sizeHint > 0 {
		b.sb.Grow(sizeHint)
	}
	return b
}

// Write writes s as a default token.
func (b *Buffer) Write(s string) { b.WriteToken(s, TokenDefault) }

// WriteToken writes s through the formatter. Embedded newlines start new
// lines at the current indent.
func (b *Buffer) WriteToken(s string, kind TokenKind) {
	if s == "" {
		return
	}
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			b.writeLine(s, kind)
			return
		}
		b.writeLine(s[:i], kind)
		b.NewLine()
		s = s[i+1:]
	}
}

func (b *Buffer) writeLine(s string, kind TokenKind) {
	if s == "" {
		return
	}
	if b.lineStart {
		for i := 0; i < b.depth; i++ {
			b.sb.WriteString(b.unit)
		}
		b.lineStart = false
	}
	wrapped := b.formatter.Wrap(s, kind)
	b.overhead += len(wrapped) - len(s)
	b.sb.WriteString(wrapped)
}

func (b *Buffer) Keyword(s string)  { b.WriteToken(s, TokenKeyword) }
func (b *Buffer) Control(s string)  { b.WriteToken(s, TokenControl) }
func (b *Buffer) TypeName(s string) { b.WriteToken(s, TokenTypeName) }
func (b *Buffer) Variable(s string) { b.WriteToken(s, TokenVariable) }
func (b *Buffer) Method(s string)   { b.WriteToken(s, TokenMethod) }

// Space writes a single space.
func (b *Buffer) Space() { b.Write(" ") }

// NewLine ends the current line.
func (b *Buffer) NewLine() {
	b.sb.WriteByte('\n')
	b.lineStart = true
}

// BlankLine ends the current line and writes an empty one, unless the
// buffer already ends with a blank line or is empty.
func (b *Buffer) BlankLine() {
	if b.sb.Len() == 0 || b.EndsWithBlankLine() {
		return
	}
	if !b.lineStart {
		b.NewLine()
	}
	b.NewLine()
}

func (b *Buffer) Indent() { b.depth++ }

func (b *Buffer) Unindent() {
	if b.depth > 0 {
		b.depth--
	}
}

// OpenBrace writes "{" on its own line and indents.
func (b *Buffer) OpenBrace() {
	if !b.lineStart {
		b.NewLine()
	}
	b.Write("{")
	b.NewLine()
	b.Indent()
}

// CloseBrace unindents and writes "}" on its own line.
func (b *Buffer) CloseBrace() {
	b.Unindent()
	if !b.lineStart {
		b.NewLine()
	}
	b.Write("}")
}

// AtLineStart reports whether nothing has been written on the current line.
func (b *Buffer) AtLineStart() bool { return b.lineStart }

// tail returns the content without trailing spaces, tabs and at most one
// trailing newline.
func (b *Buffer) tail() string {
	s := strings.TrimRight(b.sb.String(), " \t")
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimRight(s, " \t")
}

// EndsWith reports whether the written text ends with c, ignoring trailing
// whitespace and one trailing newline.
func (b *Buffer) EndsWith(c byte) bool {
	s := b.tail()
	return s != "" && s[len(s)-1] == c
}

// EndsWithString is EndsWith for a suffix.
func (b *Buffer) EndsWithString(suffix string) bool {
	return strings.HasSuffix(b.tail(), suffix)
}

// EndsWithBlankLine reports whether the text ends with two newlines.
func (b *Buffer) EndsWithBlankLine() bool {
	return strings.HasSuffix(strings.TrimRight(b.sb.String(), " \t"), "\n\n")
}

// Overhead returns how many bytes of formatter markup have been written.
func (b *Buffer) Overhead() int { return b.overhead }

func (b *Buffer) Len() int { return b.sb.Len() }

func (b *Buffer) String() string { return b.sb.String() }

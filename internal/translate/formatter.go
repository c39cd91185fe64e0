package translate

import "golang.org/x/net/html"

// TokenKind tags a written token so a Formatter can decorate it.
type TokenKind int

const (
	TokenDefault TokenKind = iota
	TokenKeyword
	TokenTypeName
	TokenNumeric
	TokenText
	TokenComment
	TokenVariable
	TokenControl
	TokenMethod
)

var tokenClasses = [...]string{
	TokenDefault:  "",
	TokenKeyword:  "kw",
	TokenTypeName: "tn",
	TokenNumeric:  "nm",
	TokenText:     "tx",
	TokenComment:  "cm",
	TokenVariable: "vb",
	TokenControl:  "cs",
	TokenMethod:   "mn",
}

// Formatter wraps output tokens in presentation markup. Overhead reports how
// many characters Wrap adds for a kind; it feeds size estimates only.
type Formatter interface {
	Wrap(token string, kind TokenKind) string
	Overhead(kind TokenKind) int
}

// PlainFormatter writes tokens unchanged.
type PlainFormatter struct{}

func (PlainFormatter) Wrap(token string, _ TokenKind) string { return token }
func (PlainFormatter) Overhead(TokenKind) int                { return 0 }

const ansiReset = "\033[0m"

var ansiColors = [...]string{
	TokenDefault:  "",
	TokenKeyword:  "\033[34m",
	TokenTypeName: "\033[36m",
	TokenNumeric:  "\033[33m",
	TokenText:     "\033[31m",
	TokenComment:  "\033[32m",
	TokenVariable: "",
	TokenControl:  "\033[35m",
	TokenMethod:   "\033[93m",
}

// ANSIFormatter colours tokens for terminals.
type ANSIFormatter struct{}

func (ANSIFormatter) Wrap(token string, kind TokenKind) string {
	c := ansiColors[kind]
	if c == "" || token == "" {
		return token
	}
	return c + token + ansiReset
}

func (ANSIFormatter) Overhead(kind TokenKind) int {
	if c := ansiColors[kind]; c != "" {
		return len(c) + len(ansiReset)
	}
	return 0
}

// HTMLFormatter wraps tokens in spans carrying a CSS class per kind and
// escapes everything it writes.
type HTMLFormatter struct{}

func (HTMLFormatter) Wrap(token string, kind TokenKind) string {
	escaped := html.EscapeString(token)
	class := tokenClasses[kind]
	if class == "" || token == "" {
		return escaped
	}
	return `<span class="` + class + `">` + escaped + `</span>`
}

func (HTMLFormatter) Overhead(kind TokenKind) int {
	class := tokenClasses[kind]
	if class == "" {
		return 0
	}
	return len(`<span class=""></span>`) + len(class)
}

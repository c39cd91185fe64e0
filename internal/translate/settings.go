package translate

import "github.com/calumari/readex/internal/expr"

const (
	// DefaultLineLength is the estimated size above which ternaries and
	// argument lists are split across lines.
	DefaultLineLength = 100
	// DefaultMaxInlineArgs is the largest argument count written on one line.
	DefaultMaxInlineArgs = 3
	// DefaultMaxDepth bounds recursion into the input tree.
	DefaultMaxDepth = 10000
	// DefaultIndent is the indent unit.
	DefaultIndent = "    "
)

// OverrideFunc renders a node in place of the built-in translator. render
// translates a child node to text with the current settings. Returning
// false defers to the built-in translator.
type OverrideFunc func(n expr.Node, render func(expr.Node) string) (string, bool)

// Settings configures a render. Settings are immutable once built and may
// be shared between concurrent renders.
type Settings struct {
	indent               string
	explicitGenericArgs  bool
	explicitTypeNames    bool
	quotedLambdaComments bool
	anonymousTypeNamer   func(*expr.Type) string
	formatter            Formatter
	lineLength           int
	maxInlineArgs        int
	maxDepth             int
	overrides            map[expr.Kind]OverrideFunc
}

// Option configures Settings.
type Option func(*Settings)

// NewSettings returns settings with defaults applied before opts.
func NewSettings(opts ...Option) *Settings {
	s := &Settings{
		indent:        DefaultIndent,
		formatter:     PlainFormatter{},
		lineLength:    DefaultLineLength,
		maxInlineArgs: DefaultMaxInlineArgs,
		maxDepth:      DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithIndent sets the indent unit.
func WithIndent(unit string) Option { return func(s *Settings) { s.indent = unit } }

// WithExplicitGenericArgs writes generic method arguments even when they
// could be inferred.
func WithExplicitGenericArgs() Option { return func(s *Settings) { s.explicitGenericArgs = true } }

// WithExplicitTypeNames declares variables with their type name instead of
// var.
func WithExplicitTypeNames() Option { return func(s *Settings) { s.explicitTypeNames = true } }

// WithQuotedLambdaComments precedes quoted lambdas with an explanatory
// comment.
func WithQuotedLambdaComments() Option { return func(s *Settings) { s.quotedLambdaComments = true } }

// WithAnonymousTypeNamer names anonymous types where a type name must be
// written.
func WithAnonymousTypeNamer(f func(*expr.Type) string) Option {
	return func(s *Settings) { s.anonymousTypeNamer = f }
}

// WithFormatter sets the token formatter.
func WithFormatter(f Formatter) Option {
	return func(s *Settings) {
		if f != nil {
			s.formatter = f
		}
	}
}

// WithLineLength overrides DefaultLineLength.
func WithLineLength(n int) Option { return func(s *Settings) { s.lineLength = n } }

// WithMaxInlineArgs overrides DefaultMaxInlineArgs.
func WithMaxInlineArgs(n int) Option { return func(s *Settings) { s.maxInlineArgs = n } }

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(n int) Option { return func(s *Settings) { s.maxDepth = n } }

// WithTranslator registers a custom translator for a node kind. A later
// registration for the same kind replaces the earlier one.
func WithTranslator(kind expr.Kind, f OverrideFunc) Option {
	return func(s *Settings) {
		if s.overrides == nil {
			s.overrides = make(map[expr.Kind]OverrideFunc)
		}
		s.overrides[kind] = f
	}
}

func (s *Settings) override(kind expr.Kind) OverrideFunc {
	if s.overrides == nil {
		return nil
	}
	return s.overrides[kind]
}

func (s *Settings) anonymousTypeName(t *expr.Type) string {
	if s.anonymousTypeNamer != nil {
		if name := s.anonymousTypeNamer(t); name != "" {
			return name
		}
	}
	return "AnonymousType"
}

// Package listing renders the functions of a Go package as readable
// C#-style source. Each function body is converted to an expression tree
// and handed to the translate engine.
package listing

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/types"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/tools/go/packages"

	"github.com/calumari/readex/internal/translate"
)

// Session is a loaded package whose functions can be rendered on demand.
type Session struct {
	cfg       Config
	pkg       *packages.Package
	decls     map[string]*ast.FuncDecl
	names     []string
	formatter translate.Formatter
	settings  *translate.Settings
}

// Run loads cfg.Dir, renders the requested functions and writes the listing.
func Run(cfg Config) error {
	s, err := Open(cfg)
	if err != nil {
		return err
	}
	out, err := s.Listing(cfg.Funcs)
	if err != nil {
		return err
	}
	if cfg.Output == "" || cfg.Output == "-" {
		_, err = os.Stdout.Write(out)
		return err
	}
	absDir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(absDir, cfg.Output), out, 0o644)
}

// Open loads the package in cfg.Dir.
func Open(cfg Config) (*Session, error) {
	if err := ensureTemplates(); err != nil {
		return nil, err
	}
	f, err := formatterFor(cfg.Format)
	if err != nil {
		return nil, err
	}
	absDir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, err
	}
	pkgs, err := loadDir(absDir)
	if err != nil {
		return nil, err
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found in %s", absDir)
	}
	s := &Session{cfg: cfg, pkg: pkgs[0], formatter: f, settings: settingsFor(cfg, f)}
	s.decls, s.names = indexFuncs(s.pkg.Syntax)
	return s, nil
}

// Package returns the loaded package name.
func (s *Session) Package() string { return s.pkg.Name }

// Names returns every listable function, sorted.
func (s *Session) Names() []string { return s.names }

// Listing renders the named functions, or every function when names is
// empty, as a complete file.
func (s *Session) Listing(names []string) ([]byte, error) {
	selected, err := selectFuncs(s.decls, s.names, names)
	if err != nil {
		return nil, err
	}
	data := fileModel{Package: s.pkg.Name, Command: s.cfg.Command, Version: s.cfg.Version, HTML: s.html()}
	for _, name := range selected {
		data.Funcs = append(data.Funcs, s.model(name))
	}
	var out bytes.Buffer
	if err := fileTmpl.ExecuteTemplate(&out, tmplFile, data); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Func renders a single function.
func (s *Session) Func(name string) (string, error) {
	if _, err := selectFuncs(s.decls, s.names, []string{name}); err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := fileTmpl.ExecuteTemplate(&out, tmplFunc, s.model(name)); err != nil {
		return "", err
	}
	return out.String(), nil
}

func (s *Session) html() bool { return s.cfg.Format == "html" }

func (s *Session) model(name string) funcModel {
	decl := s.decls[name]
	fn := newConverter(s.pkg.TypesInfo).convertFunc(decl)
	text, _ := translate.Translate(fn, s.settings)
	m := funcModel{
		Name:     name,
		Ident:    strings.ReplaceAll(name, ".", "_"),
		Delegate: s.formatter.Wrap(fn.Type().String(), translate.TokenTypeName),
		Text:     text,
	}
	if obj := s.pkg.TypesInfo.Defs[decl.Name]; obj != nil {
		m.Signature = strings.TrimPrefix(types.TypeString(obj.Type(), types.RelativeTo(s.pkg.Types)), "func")
	}
	if decl.Doc != nil {
		m.Doc = strings.Split(strings.TrimRight(decl.Doc.Text(), "\n"), "\n")
	}
	if s.cfg.Dump {
		m.Dump = translate.Dump(fn, s.settings)
	}
	if s.html() {
		m.Signature = html.EscapeString(m.Signature)
		m.Dump = html.EscapeString(m.Dump)
		for i, line := range m.Doc {
			m.Doc[i] = html.EscapeString(line)
		}
	}
	return m
}

func formatterFor(format string) (translate.Formatter, error) {
	switch format {
	case "", "plain":
		return translate.PlainFormatter{}, nil
	case "ansi":
		return translate.ANSIFormatter{}, nil
	case "html":
		return translate.HTMLFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

func settingsFor(cfg Config, f translate.Formatter) *translate.Settings {
	opts := []translate.Option{translate.WithFormatter(f)}
	switch {
	case cfg.Indent > 0:
		opts = append(opts, translate.WithIndent(strings.Repeat(" ", cfg.Indent)))
	case cfg.Indent == 0:
		opts = append(opts, translate.WithIndent("\t"))
	}
	if cfg.ExplicitGenerics {
		opts = append(opts, translate.WithExplicitGenericArgs())
	}
	if cfg.ExplicitTypes {
		opts = append(opts, translate.WithExplicitTypeNames())
	}
	if cfg.QuoteComments {
		opts = append(opts, translate.WithQuotedLambdaComments())
	}
	return translate.NewSettings(opts...)
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/calumari/readex/internal/listing"
)

const historyFile = ".readex_history"

// deriveVersion inspects build info for module version or vcs revision.
// preference order: module semantic version -> short commit hash -> "devel".
func deriveVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			return bi.Main.Version
		}
		var revision string
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				revision = s.Value
				break
			}
		}
		if len(revision) >= 12 {
			return revision[:12]
		}
		if revision != "" {
			return revision
		}
	}
	return "devel"
}

func splitCSV(s string) []string {
	var out []string
	for p := range strings.SplitSeq(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func main() {
	var (
		dir              string
		funcsCSV         string
		output           string
		format           string
		indent           int
		explicitGenerics bool
		explicitTypes    bool
		quoteComments    bool
		dump             bool
		verbose          bool
		interactive      bool
	)
	flag.StringVar(&dir, "dir", ".", "Directory of the package to list (relative to current directory)")
	flag.StringVar(&funcsCSV, "func", "", "Comma-separated list of functions to list, Type.Method for methods (default all)")
	flag.StringVar(&output, "output", "-", "Output filename relative to -dir, or - for stdout")
	flag.StringVar(&format, "format", "plain", "Output markup: plain, ansi or html")
	flag.IntVar(&indent, "indent", 4, "Spaces per indent level; 0 indents with tabs")
	flag.BoolVar(&explicitGenerics, "explicit-generics", false, "Write generic method arguments even when they can be inferred")
	flag.BoolVar(&explicitTypes, "explicit-types", false, "Declare variables with their type instead of var")
	flag.BoolVar(&quoteComments, "quote-comments", false, "Mark quoted lambdas with a comment")
	flag.BoolVar(&dump, "dump", false, "Append the translation tree of each function")
	flag.BoolVar(&verbose, "v", false, "Log progress to stderr")
	flag.BoolVar(&interactive, "i", false, "Prompt for function names and render each one")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nReadex renders Go functions as readable C# lambdas.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s -dir=./internal/mathx -func=Abs,Vector.Len -output=mathx.cs\n", os.Args[0])
	}
	flag.Parse()

	log.SetPrefix("readex: ")
	log.SetFlags(0)
	if !verbose {
		log.SetOutput(io.Discard)
	}

	funcs := splitCSV(funcsCSV)

	// build a simplified canonical command representation instead of raw argv (which may include build cache paths)
	cmdParts := []string{"readex"}
	if dir != "." {
		cmdParts = append(cmdParts, "-dir="+dir)
	}
	if len(funcs) > 0 {
		cmdParts = append(cmdParts, "-func="+strings.Join(funcs, ","))
	}
	if output != "-" {
		cmdParts = append(cmdParts, "-output="+output)
	}
	if format != "plain" {
		cmdParts = append(cmdParts, "-format="+format)
	}
	if indent != 4 {
		cmdParts = append(cmdParts, "-indent="+strconv.Itoa(indent))
	}
	for _, f := range []struct {
		set  bool
		name string
	}{
		{explicitGenerics, "-explicit-generics"},
		{explicitTypes, "-explicit-types"},
		{quoteComments, "-quote-comments"},
		{dump, "-dump"},
	} {
		if f.set {
			cmdParts = append(cmdParts, f.name)
		}
	}

	cfg := listing.Config{
		Dir:              dir,
		Funcs:            funcs,
		Output:           output,
		Format:           format,
		Indent:           indent,
		ExplicitGenerics: explicitGenerics,
		ExplicitTypes:    explicitTypes,
		QuoteComments:    quoteComments,
		Dump:             dump,
		Command:          strings.Join(cmdParts, " "),
		Version:          deriveVersion(),
	}
	log.Printf("loading %s", dir)
	var err error
	if interactive {
		err = repl(cfg)
	} else {
		err = listing.Run(cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "readex: %v\n", err)
		os.Exit(1)
	}
	log.Printf("done")
}

// repl renders each function name typed at the prompt. Names complete on
// tab and history persists in the home directory.
func repl(cfg listing.Config) error {
	s, err := listing.Open(cfg)
	if err != nil {
		return err
	}
	log.Printf("package %s: %d functions", s.Package(), len(s.Names()))

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(func(line string) []string {
		var out []string
		for _, name := range s.Names() {
			if strings.HasPrefix(strings.ToLower(name), strings.ToLower(line)) {
				out = append(out, name)
			}
		}
		return out
	})

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	prompt := s.Package() + "> "
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		name := strings.TrimSpace(line)
		switch name {
		case "":
			continue
		case ":quit":
			return nil
		case ":list":
			fmt.Println(strings.Join(s.Names(), "\n"))
			continue
		}
		out, err := s.Func(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "readex: %v\n", err)
			continue
		}
		fmt.Print(out)
		ln.AppendHistory(name)
	}
}

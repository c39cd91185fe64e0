package listing

import (
	"errors"
	"fmt"
	"go/ast"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/tools/go/packages"
)

// ErrFuncNotFound is returned when a requested function is not declared in
// the loaded package.
var ErrFuncNotFound = errors.New("functions not found")

// loadDir loads the Go package(s) for a directory.
func loadDir(dir string) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedDeps | packages.NeedFiles | packages.NeedCompiledGoFiles,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, "./")
	if err != nil {
		return nil, err
	}
	var result []*packages.Package
	for _, p := range pkgs {
		if len(p.Errors) > 0 {
			return nil, p.Errors[0]
		}
		result = append(result, p)
	}
	return result, nil
}

// indexFuncs collects every function and method with a body, keyed by its
// display name.
func indexFuncs(files []*ast.File) (map[string]*ast.FuncDecl, []string) {
	decls := map[string]*ast.FuncDecl{}
	for _, f := range files {
		for _, d := range f.Decls {
			fd, ok := d.(*ast.FuncDecl)
			if !ok || fd.Body == nil {
				continue
			}
			decls[funcName(fd)] = fd
		}
	}
	names := make([]string, 0, len(decls))
	for name := range decls {
		names = append(names, name)
	}
	sort.Strings(names)
	return decls, names
}

// funcName is Name for functions and Type.Name for methods.
func funcName(fd *ast.FuncDecl) string {
	if fd.Recv == nil || len(fd.Recv.List) == 0 {
		return fd.Name.Name
	}
	t := fd.Recv.List[0].Type
	for {
		switch x := t.(type) {
		case *ast.StarExpr:
			t = x.X
			continue
		case *ast.IndexExpr:
			t = x.X
			continue
		case *ast.IndexListExpr:
			t = x.X
			continue
		case *ast.Ident:
			return x.Name + "." + fd.Name.Name
		}
		return fd.Name.Name
	}
}

// selectFuncs resolves names against the index, in the order given. An
// empty request selects every function.
func selectFuncs(decls map[string]*ast.FuncDecl, all []string, names []string) ([]string, error) {
	if len(names) == 0 {
		return all, nil
	}
	var missing []string
	for _, n := range names {
		if _, ok := decls[n]; !ok {
			missing = append(missing, n+suggest(n, all))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrFuncNotFound, strings.Join(missing, ", "))
	}
	return names, nil
}

// suggest returns a "did you mean" hint naming the closest candidate, or
// nothing when no candidate is close.
func suggest(name string, candidates []string) string {
	if match := closestMatch(name, candidates); match != "" {
		return fmt.Sprintf(" (did you mean %s?)", match)
	}
	return ""
}

func closestMatch(name string, candidates []string) string {
	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best, bestDist := "", len(name)/2+1
	for _, cand := range candidates {
		if d := fuzzy.LevenshteinDistance(strings.ToLower(name), strings.ToLower(cand)); d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best
}

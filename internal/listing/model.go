package listing

// Config holds settings for a listing run.
type Config struct {
	Dir              string   // directory to load ("." relative to where command invoked)
	Funcs            []string // functions to list, Type.Method for methods (empty = every function)
	Output           string   // output filename relative to Dir; "-" or empty writes to stdout
	Format           string   // plain, ansi or html
	Indent           int      // spaces per indent level; 0 indents with tabs
	ExplicitGenerics bool     // write generic arguments even when inferable
	ExplicitTypes    bool     // declare variables with their type instead of var
	QuoteComments    bool     // mark quoted lambdas with a comment
	Dump             bool     // append each function's translation tree
	Command          string   // full invocation command line
	Version          string   // readex build version
}

// fileModel is the root template model for a listing.
type fileModel struct {
	Package string
	Command string
	Version string
	HTML    bool
	Funcs   []funcModel
}

// funcModel is one rendered function.
type funcModel struct {
	Name      string   // Go name, Type.Method for methods
	Ident     string   // C# identifier the delegate is assigned to
	Signature string   // Go parameter and result list
	Doc       []string // doc comment lines
	Delegate  string   // formatted delegate type
	Text      string   // rendered lambda
	Dump      string   // translation tree, when requested
}

// Package term implements the core term model of the λΠ-calculus modulo
// rewriting: variables, the two sorts, signature references, dependent
// products and abstractions, applications, and the two kinds of mutable
// cell (metavariables and pattern variables) used by unification and rule
// matching respectively.
//
// Binders are represented in higher-order abstract syntax: a Binder wraps
// a Go closure from bound-variable values to a body term. Capture-avoidance
// is then a property of Go's own closures rather than something the term
// model has to implement by hand, and Open always produces a variable that
// cannot collide with anything already in scope.
package term

// Term is any node of the core language.
type Term interface {
	isTerm()
}

// Var is a bound-variable identity introduced by opening a Binder. Two
// occurrences of "the same" variable are the same *Var pointer; no name
// comparison is ever used for binding structure, only for display.
type Var struct {
	Hint string
	// disp is populated lazily by the pretty-printer to give stable,
	// human-readable names within one print session; it carries no
	// semantic weight.
	disp string
}

func (*Var) isTerm() {}

// NewVar allocates a fresh variable. Every call returns a distinct
// identity regardless of Hint, which is decorative only.
func NewVar(hint string) *Var {
	return &Var{Hint: hint}
}

// DisplayName returns v's stable display name, lazily assigning one
// via next (typically a small fresh-name generator) the first time a
// printer encounters this particular variable.
func (v *Var) DisplayName(next func() string) string {
	if v.disp == "" {
		v.disp = next()
	}
	return v.disp
}

// TType is the sort of small types.
type TType struct{}

func (TType) isTerm() {}

// TKind is the sort of large types; it classifies TType and products over TType.
type TKind struct{}

func (TKind) isTerm() {}

// Type and Kind are the two sort singletons.
var (
	Type Term = TType{}
	Kind Term = TKind{}
)

// SymKind distinguishes static symbols (never carry rewrite rules) from
// definable symbols (may carry rules, rewritten on application).
type SymKind int

const (
	Static SymKind = iota
	Definable
)

// Entry is the signature-independent face a term sees of a declared
// symbol: package signature owns the authoritative Entry and terms merely
// hold a pointer to it, so redeclaring a name in the signature never
// invalidates terms already built against the old entry.
type Entry struct {
	Index  int // stable index, assigned once by the owning signature, never reused
	Module string // module path of the owning signature, for cross-module references on disk
	Name   string
	Kind   SymKind
	Type   Term
	// Rules is appended to only by package signature (AttachRule); other
	// packages, such as reduce, read the field directly.
	Rules []*Rule
}

// Rule is a rewrite rule attached to a definable Entry.
type Rule struct {
	Arity  int
	NVars  int      // number of pattern variables bound by the rule
	LHS    *ArgsBinder // closed binder over NVars pattern variables -> Arity argument patterns
	RHS    *Binder     // closed binder over NVars pattern variables -> replacement term
}

// Symb is a reference to a signature entry.
type Symb struct {
	Entry *Entry
}

func (*Symb) isTerm() {}

// Product is Π(x:Dom). Cod, Cod a unary binder.
type Product struct {
	Dom Term
	Cod *Binder
}

func (*Product) isTerm() {}

// Abs is λ(x:Dom). Body, Body a unary binder.
type Abs struct {
	Dom  Term
	Body *Binder
}

func (*Abs) isTerm() {}

// App is function application. Rigid caches whether the head is already
// known to be non-reducible (a static symbol, or another rigid
// application); it is computed once at construction time by NewApp and
// never recomputed, so reduction can skip rigid spines outright.
type App struct {
	Rigid bool
	Fun   Term
	Arg   Term
}

func (*App) isTerm() {}

// NewApp builds an application and computes its Rigid flag from Fun's
// shape. Fun is inspected structurally (not unfolded) since an
// unassigned metavariable or pattern variable is never rigid and an
// assigned one is resolved by the caller before reaching here if needed.
func NewApp(fun, arg Term) *App {
	return &App{Rigid: isRigidHead(fun), Fun: fun, Arg: arg}
}

func isRigidHead(fun Term) bool {
	switch f := fun.(type) {
	case *Symb:
		return f.Entry.Kind == Static
	case *App:
		return f.Rigid
	default:
		return false
	}
}

// Spine rebuilds head applied to args left-to-right, recomputing Rigid at
// each step via NewApp.
func Spine(head Term, args []Term) Term {
	result := head
	for _, a := range args {
		result = NewApp(result, a)
	}
	return result
}

// NewProductSimple builds a non-dependent product dom -> cod, a shorthand
// for the frequent case of an ordinary function type where the codomain
// does not mention the bound variable.
func NewProductSimple(dom, cod Term) *Product {
	return &Product{Dom: dom, Cod: NewBinder1("_", func(Term) Term { return cod })}
}

// NewProduct builds a dependent product Π(hint:dom).f(hint), a
// shorthand for constructing a Product without naming its Binder
// explicitly.
func NewProduct(hint string, dom Term, f func(Term) Term) *Product {
	return &Product{Dom: dom, Cod: NewBinder1(hint, f)}
}

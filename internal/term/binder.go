package term

// Binder is a closed, hygienic binder of a fixed arity over a single
// resulting Term. Arity 1 covers Product/Abs; an arbitrary arity k
// (including 0 and 1) covers a rewrite rule's right-hand side over its
// pattern variables and a metavariable's assigned value, which
// abstracts over the k variables of its environment.
type Binder struct {
	Arity int
	Hints []string
	f     func(env []Term) Term
}

// NewBinder1 builds a unary binder from a Go function of one argument,
// the idiom used for Product and Abs.
func NewBinder1(hint string, f func(x Term) Term) *Binder {
	return &Binder{
		Arity: 1,
		Hints: []string{hint},
		f:     func(env []Term) Term { return f(env[0]) },
	}
}

// NewBinderN builds a k-ary binder directly.
func NewBinderN(hints []string, f func(env []Term) Term) *Binder {
	return &Binder{Arity: len(hints), Hints: hints, f: f}
}

// Instantiate substitutes env for the binder's bound variables. len(env)
// must equal b.Arity.
func (b *Binder) Instantiate(env ...Term) Term {
	return b.f(env)
}

// Open instantiates a unary binder with a fresh variable, returning both
// the variable and the opened body so callers can extend a typing
// context with it.
func (b *Binder) Open() (*Var, Term) {
	v := NewVar(hintOrDefault(b.Hints, 0))
	return v, b.f([]Term{v})
}

// OpenN instantiates a k-ary binder with k fresh variables.
func (b *Binder) OpenN() ([]*Var, Term) {
	vars := make([]*Var, b.Arity)
	env := make([]Term, b.Arity)
	for i := range vars {
		vars[i] = NewVar(hintOrDefault(b.Hints, i))
		env[i] = vars[i]
	}
	return vars, b.f(env)
}

// ArgsBinder is a closed k-ary binder producing a list of terms rather
// than a single term; it exists solely to type a rewrite rule's
// left-hand side, which elaborates to an argument list, not one term.
type ArgsBinder struct {
	Arity int
	Hints []string
	f     func(env []Term) []Term
}

// NewArgsBinder builds a k-ary args-binder directly.
func NewArgsBinder(hints []string, f func(env []Term) []Term) *ArgsBinder {
	return &ArgsBinder{Arity: len(hints), Hints: hints, f: f}
}

// Instantiate substitutes env for the binder's bound variables.
func (b *ArgsBinder) Instantiate(env ...Term) []Term {
	return b.f(env)
}

// OpenN instantiates with k fresh variables, as Binder.OpenN does.
func (b *ArgsBinder) OpenN() ([]*Var, []Term) {
	vars := make([]*Var, b.Arity)
	env := make([]Term, b.Arity)
	for i := range vars {
		vars[i] = NewVar(hintOrDefault(b.Hints, i))
		env[i] = vars[i]
	}
	return vars, b.f(env)
}

func hintOrDefault(hints []string, i int) string {
	if i < len(hints) && hints[i] != "" {
		return hints[i]
	}
	return "x"
}

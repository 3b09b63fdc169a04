// Package ast defines the surface syntax tree for the kernel's minimal
// concrete dialect, grounded on the shape of the teacher's ast_core.go
// (small node interfaces, an explicit Pos on every node) but reduced to
// exactly the forms spec.md §4.7/§6 need: sorts, binders, application,
// symbol declarations, definitions, rewrite rules, and the four query
// commands.
package ast

// Pos is a best-effort source location, mirroring
// internal/diagnostics.Position so surface errors can be reported with
// a file:line:column prefix.
type Pos struct {
	Line, Column int
}

// Expr is a surface term.
type Expr interface {
	exprNode()
	Position() Pos
}

type TypeSort struct{ Pos Pos }
type KindSort struct{ Pos Pos }
type Ident struct {
	Pos  Pos
	Name string
}

// Wildcard is "_" inside a rewrite rule's left-hand side (§4.7); it is
// only meaningful during rule elaboration, which replaces each
// occurrence with a fresh scoped variable. Elsewhere it is a scoping
// error.
type Wildcard struct{ Pos Pos }

// Pi is Π(Name:Dom). Cod; Name may be "_" for a non-dependent arrow.
type Pi struct {
	Pos  Pos
	Name string
	Dom  Expr
	Cod  Expr
}

// Fun is λ(Name:Dom). Body.
type Fun struct {
	Pos  Pos
	Name string
	Dom  Expr
	Body Expr
}

// App is left-to-right application Fun applied to Arg.
type App struct {
	Pos Pos
	Fun Expr
	Arg Expr
}

func (*TypeSort) exprNode() {}
func (*KindSort) exprNode() {}
func (*Ident) exprNode()    {}
func (*Wildcard) exprNode() {}
func (*Pi) exprNode()       {}
func (*Fun) exprNode()      {}
func (*App) exprNode()      {}

func (e *TypeSort) Position() Pos { return e.Pos }
func (e *KindSort) Position() Pos { return e.Pos }
func (e *Ident) Position() Pos    { return e.Pos }
func (e *Wildcard) Position() Pos { return e.Pos }
func (e *Pi) Position() Pos       { return e.Pos }
func (e *Fun) Position() Pos      { return e.Pos }
func (e *App) Position() Pos      { return e.Pos }

// Param is one entry of a rule's context: a name with an optional type
// (omitted means "insert a fresh metavariable", per §4.7).
type Param struct {
	Name string
	Type Expr // nil if omitted
}

// Decl is one top-level command (§6).
type Decl interface {
	declNode()
	Position() Pos
}

// NewSymbol is new_symbol(kind, name, type-expr).
type NewSymbol struct {
	Pos        Pos
	Name       string
	Type       Expr
	Definable  bool
}

// Define is define(name, optional type-expr, body-expr).
type Define struct {
	Pos  Pos
	Name string
	Type Expr // nil if omitted
	Body Expr
}

// Rule is one rewrite rule inside an AddRules command: a context, a
// left-hand side (an application whose head names a definable symbol),
// and a right-hand side.
type Rule struct {
	Pos     Pos
	Context []Param
	LHS     Expr
	RHS     Expr
}

// AddRules is add_rules([rule ...]).
type AddRules struct {
	Pos   Pos
	Rules []Rule
}

// Check is check(term, type).
type Check struct {
	Pos  Pos
	Term Expr
	Type Expr
}

// Infer is infer(term).
type Infer struct {
	Pos  Pos
	Term Expr
}

// Eval is evaluate(term).
type Eval struct {
	Pos  Pos
	Term Expr
}

// Convertible is check_convertible(t, u).
type Convertible struct {
	Pos  Pos
	T, U Expr
}

func (*NewSymbol) declNode()   {}
func (*Define) declNode()      {}
func (*AddRules) declNode()    {}
func (*Check) declNode()       {}
func (*Infer) declNode()       {}
func (*Eval) declNode()        {}
func (*Convertible) declNode() {}

func (d *NewSymbol) Position() Pos   { return d.Pos }
func (d *Define) Position() Pos      { return d.Pos }
func (d *AddRules) Position() Pos    { return d.Pos }
func (d *Check) Position() Pos       { return d.Pos }
func (d *Infer) Position() Pos       { return d.Pos }
func (d *Eval) Position() Pos        { return d.Pos }
func (d *Convertible) Position() Pos { return d.Pos }

package elab

import (
	"github.com/lambdapi-go/kernel/internal/ast"
	"github.com/lambdapi-go/kernel/internal/check"
	"github.com/lambdapi-go/kernel/internal/diagnostics"
	"github.com/lambdapi-go/kernel/internal/signature"
	"github.com/lambdapi-go/kernel/internal/term"
)

// Elaborated is the result of lowering one surface ast.Rule: a typing
// context over the rule's full variable list (context parameters plus
// any wildcards scoped out of the left-hand side), the two sides as
// plain core terms (ready for check.CheckRule), the definable symbol
// the rule attaches to, and the term.Rule ready for
// signature.AttachRule once the rule checker has approved it.
type Elaborated struct {
	Ctx    *check.Ctx
	LHS    term.Term
	RHS    term.Term
	Symbol *term.Entry
	Rule   *term.Rule
}

// ElaborateRule implements §4.7. Context variables whose type is
// omitted receive a fresh metavariable scoped over the variables
// already bound before them; "_" inside the left-hand side mints a
// fresh variable the same way, added to the rule's variable list after
// the explicit context.
func ElaborateRule(sig *signature.Signature, r ast.Rule) (*Elaborated, error) {
	var ctx *check.Ctx
	scope := (*Scope)(nil)
	var vars []*term.Var
	var ambient []term.Term

	for _, param := range r.Context {
		v := term.NewVar(param.Name)
		var ty term.Term
		if param.Type != nil {
			t, err := ElabExpr(sig, scope, param.Type)
			if err != nil {
				return nil, err
			}
			ty = t
		} else {
			cell := term.NewMetaCell("?"+param.Name, len(ambient))
			ty = term.NewMeta(cell, append([]term.Term(nil), ambient...))
		}
		scope = scope.Extend(param.Name, v)
		ctx = ctx.Extend(v, ty)
		vars = append(vars, v)
		ambient = append(ambient, v)
	}

	lhsTerm, scope, ctx, vars, err := elabPattern(sig, scope, ctx, vars, ambient, r.LHS)
	if err != nil {
		return nil, err
	}

	head, args := spine(lhsTerm)
	symb, ok := head.(*term.Symb)
	if !ok || symb.Entry.Kind != term.Definable {
		return nil, diagnostics.New(diagnostics.ErrPatternHeadNotDefinable, p(r.Pos), "a rewrite rule's left-hand side must have a definable symbol as its head")
	}

	rhsTerm, err := ElabExpr(sig, scope, r.RHS)
	if err != nil {
		return nil, err
	}

	hints := make([]string, len(vars))
	for i, v := range vars {
		hints[i] = v.Hint
	}
	lhsArgs := append([]term.Term(nil), args...)
	lhsBinder := term.NewArgsBinder(hints, func(env []term.Term) []term.Term {
		out := make([]term.Term, len(lhsArgs))
		for i, a := range lhsArgs {
			out[i] = term.SubstVars(a, vars, env)
		}
		return out
	})
	rhsBinder := term.CloseN(vars, rhsTerm)

	rule := &term.Rule{Arity: len(args), NVars: len(vars), LHS: lhsBinder, RHS: rhsBinder}

	return &Elaborated{Ctx: ctx, LHS: lhsTerm, RHS: rhsTerm, Symbol: symb.Entry, Rule: rule}, nil
}

// elabPattern elaborates the left-hand side, scoping each "_" it meets
// into a fresh variable threaded through scope/ctx/vars exactly like an
// explicit context entry, but with its type left as a fresh
// metavariable (a wildcard's type is never annotated).
func elabPattern(sig *signature.Signature, scope *Scope, ctx *check.Ctx, vars []*term.Var, ambient []term.Term, e ast.Expr) (term.Term, *Scope, *check.Ctx, []*term.Var, error) {
	switch x := e.(type) {
	case *ast.Wildcard:
		v := term.NewVar("_")
		cell := term.NewMetaCell("?_", len(ambient))
		ty := term.NewMeta(cell, append([]term.Term(nil), ambient...))
		ctx = ctx.Extend(v, ty)
		vars = append(vars, v)
		ambient = append(ambient, v)
		return v, scope, ctx, vars, nil
	case *ast.App:
		fn, scope, ctx, vars, err := elabPattern(sig, scope, ctx, vars, ambient, x.Fun)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		ambient = appendVars(ambient, vars)
		arg, scope, ctx, vars, err := elabPattern(sig, scope, ctx, vars, ambient, x.Arg)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return term.NewApp(fn, arg), scope, ctx, vars, nil
	default:
		t, err := ElabExpr(sig, scope, e)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return t, scope, ctx, vars, nil
	}
}

func appendVars(ambient []term.Term, vars []*term.Var) []term.Term {
	out := append([]term.Term(nil), ambient...)
	seen := make(map[*term.Var]bool, len(ambient))
	for _, a := range ambient {
		if v, ok := a.(*term.Var); ok {
			seen[v] = true
		}
	}
	for _, v := range vars {
		if !seen[v] {
			out = append(out, v)
			seen[v] = true
		}
	}
	return out
}

// spine unwinds a core App chain into its head and left-to-right
// argument list.
func spine(t term.Term) (term.Term, []term.Term) {
	var args []term.Term
	for {
		app, ok := t.(*term.App)
		if !ok {
			reverse(args)
			return t, args
		}
		args = append(args, app.Arg)
		t = app.Fun
	}
}

func reverse(ts []term.Term) {
	for i, j := 0, len(ts)-1; i < j; i, j = i+1, j-1 {
		ts[i], ts[j] = ts[j], ts[i]
	}
}

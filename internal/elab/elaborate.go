package elab

import (
	"github.com/lambdapi-go/kernel/internal/ast"
	"github.com/lambdapi-go/kernel/internal/diagnostics"
	"github.com/lambdapi-go/kernel/internal/signature"
	"github.com/lambdapi-go/kernel/internal/term"
)

// ElabExpr lowers a surface expression to a core term: identifiers
// resolve first against the lexical scope (bound variables), then the
// signature (symbol references); binders open with a fresh term.Var
// and close back up via term.Close1 once the body has been elaborated,
// since a HOAS binder is a Go closure and there is no concrete tree
// under it to elaborate in place.
func ElabExpr(sig *signature.Signature, scope *Scope, e ast.Expr) (term.Term, error) {
	switch x := e.(type) {
	case *ast.TypeSort:
		return term.Type, nil
	case *ast.KindSort:
		return term.Kind, nil
	case *ast.Wildcard:
		return nil, diagnostics.New(diagnostics.ErrWildcardOutsidePattern, p(x.Pos), "\"_\" is only valid inside a rewrite rule's left-hand side")
	case *ast.Ident:
		if t, ok := scope.Lookup(x.Name); ok {
			return t, nil
		}
		if e, ok := sig.Find(x.Name); ok {
			return &term.Symb{Entry: e}, nil
		}
		return nil, diagnostics.New(diagnostics.ErrUnboundSymbol, p(x.Pos), "unbound identifier %q", x.Name)
	case *ast.Pi:
		dom, err := ElabExpr(sig, scope, x.Dom)
		if err != nil {
			return nil, err
		}
		v := term.NewVar(x.Name)
		cod, err := ElabExpr(sig, scope.Extend(x.Name, v), x.Cod)
		if err != nil {
			return nil, err
		}
		return &term.Product{Dom: dom, Cod: term.Close1(v, cod)}, nil
	case *ast.Fun:
		dom, err := ElabExpr(sig, scope, x.Dom)
		if err != nil {
			return nil, err
		}
		v := term.NewVar(x.Name)
		body, err := ElabExpr(sig, scope.Extend(x.Name, v), x.Body)
		if err != nil {
			return nil, err
		}
		return &term.Abs{Dom: dom, Body: term.Close1(v, body)}, nil
	case *ast.App:
		fn, err := ElabExpr(sig, scope, x.Fun)
		if err != nil {
			return nil, err
		}
		arg, err := ElabExpr(sig, scope, x.Arg)
		if err != nil {
			return nil, err
		}
		return term.NewApp(fn, arg), nil
	default:
		return nil, diagnostics.New(diagnostics.ErrUnboundSymbol, p(e.Position()), "elab: unhandled expression shape %T", e)
	}
}

func p(pos ast.Pos) diagnostics.Position {
	return diagnostics.Position{Line: pos.Line, Column: pos.Column}
}

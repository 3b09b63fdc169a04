package check

import (
	"github.com/lambdapi-go/kernel/internal/conv"
	"github.com/lambdapi-go/kernel/internal/diagnostics"
	"github.com/lambdapi-go/kernel/internal/reduce"
	"github.com/lambdapi-go/kernel/internal/term"
)

// Infer computes Γ ⊢ t ⇒ A (§4.6) in strict mode: an irreducible
// disequality anywhere underneath is a failure, never a deferral.
func Infer(ctx *Ctx, t term.Term) (term.Term, error) {
	return inferC(ctx, t, nil)
}

// InferWithConstraints runs the same inference with constraint
// collection active (§4.6, "infer_with_constrs"), used only while
// typing a rewrite rule's left-hand side (§4.6.1).
func InferWithConstraints(ctx *Ctx, t term.Term) (term.Term, *conv.Constraints, error) {
	c := &conv.Constraints{}
	ty, err := inferC(ctx, t, c)
	return ty, c, err
}

func inferC(ctx *Ctx, t term.Term, c *conv.Constraints) (term.Term, error) {
	ty, err := inferRaw(ctx, t, c)
	if err != nil {
		return nil, err
	}
	return reduce.Eval(ty), nil
}

func inferRaw(ctx *Ctx, t term.Term, c *conv.Constraints) (term.Term, error) {
	t = term.Unfold(t)
	switch x := t.(type) {
	case *term.Var:
		ty, ok := ctx.Lookup(x)
		if !ok {
			return nil, diagnostics.New(diagnostics.ErrUnboundVariable, diagnostics.Position{}, "unbound variable %q", x.Hint)
		}
		return ty, nil

	case term.TType:
		return term.Kind, nil

	case *term.Symb:
		return x.Entry.Type, nil

	case *term.Product:
		v, body := x.Cod.Open()
		sort, err := inferC(ctx.Extend(v, x.Dom), body, c)
		if err != nil {
			return nil, err
		}
		if !isSort(sort) {
			return nil, diagnostics.New(diagnostics.ErrNotASort, diagnostics.Position{}, "product codomain has non-sort type")
		}
		return sort, nil

	case *term.Abs:
		v, body := x.Body.Open()
		bodyTy, err := inferC(ctx.Extend(v, x.Dom), body, c)
		if err != nil {
			return nil, err
		}
		return &term.Product{Dom: x.Dom, Cod: term.Close1(v, bodyTy)}, nil

	case *term.App:
		fTy, err := inferC(ctx, x.Fun, c)
		if err != nil {
			return nil, err
		}
		prod, err := asProduct(ctx, fTy)
		if err != nil {
			return nil, err
		}
		if err := checkC(ctx, x.Arg, prod.Dom, c); err != nil {
			return nil, err
		}
		return prod.Cod.Instantiate(x.Arg), nil

	default:
		return nil, diagnostics.New(diagnostics.ErrCannotInfer, diagnostics.Position{}, "no rule to infer a type for %T", t)
	}
}

// asProduct reduces ty to whnf and requires a Product; an unresolved
// metavariable head is forced to Π(_:?A).?B by instantiating it, per
// §4.6's application rule.
func asProduct(ctx *Ctx, ty term.Term) (*term.Product, error) {
	head, stack := reduce.Whnf(ty)
	if len(stack) != 0 {
		return nil, diagnostics.New(diagnostics.ErrApplyingNonProduct, diagnostics.Position{}, "applying a term whose type is not a product")
	}
	switch h := head.(type) {
	case *term.Product:
		return h, nil
	case *term.Meta:
		env := ctx.vars()
		domCell := term.NewMetaCell("?A", len(env))
		codCell := term.NewMetaCell("?B", len(env))
		dom := term.NewMeta(domCell, env)
		cod := term.NewMeta(codCell, env)
		prod := &term.Product{Dom: dom, Cod: term.NewBinder1("_", func(term.Term) term.Term { return cod })}
		ok, err := conv.Eq(h, prod, false)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, diagnostics.New(diagnostics.ErrApplyingNonProduct, diagnostics.Position{}, "could not force metavariable to a product type")
		}
		return prod, nil
	default:
		return nil, diagnostics.New(diagnostics.ErrApplyingNonProduct, diagnostics.Position{}, "applying a non-product type")
	}
}

func isSort(t term.Term) bool {
	switch t.(type) {
	case term.TType, term.TKind:
		return true
	default:
		return false
	}
}

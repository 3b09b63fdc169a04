package check

import (
	"github.com/lambdapi-go/kernel/internal/conv"
	"github.com/lambdapi-go/kernel/internal/diagnostics"
	"github.com/lambdapi-go/kernel/internal/reduce"
	"github.com/lambdapi-go/kernel/internal/term"
)

// Check verifies Γ ⊢ t ⇐ a (§4.6) in strict mode.
func Check(ctx *Ctx, t, a term.Term) error {
	return checkC(ctx, t, a, nil)
}

func checkC(ctx *Ctx, t, a term.Term, c *conv.Constraints) error {
	a = reduce.Eval(a)
	t = term.Unfold(t)
	switch x := t.(type) {
	case term.TType:
		if _, ok := a.(term.TKind); ok {
			return nil
		}
		return diagnostics.New(diagnostics.ErrCheckMismatch, diagnostics.Position{}, "Type has type Kind, not the expected type")

	case term.TKind:
		return diagnostics.New(diagnostics.ErrCheckMismatch, diagnostics.Position{}, "Kind is not itself typeable")

	case *term.Product:
		if !isSort(a) {
			return diagnostics.New(diagnostics.ErrCheckMismatch, diagnostics.Position{}, "a product's classifier must be Type or Kind")
		}
		if err := checkC(ctx, x.Dom, term.Type, c); err != nil {
			return err
		}
		v, body := x.Cod.Open()
		return checkC(ctx.Extend(v, x.Dom), body, a, c)

	case *term.Abs:
		prod, ok := a.(*term.Product)
		if !ok {
			return diagnostics.New(diagnostics.ErrCheckMismatch, diagnostics.Position{}, "an abstraction must be checked against a product type")
		}
		ok, err := conv.EqModulo(x.Dom, prod.Dom, c)
		if err != nil {
			return err
		}
		if !ok {
			return diagnostics.New(diagnostics.ErrCheckMismatch, diagnostics.Position{}, "abstraction domain does not match the expected product's domain")
		}
		if err := checkC(ctx, x.Dom, term.Type, c); err != nil {
			return err
		}
		v, body := x.Body.Open()
		codAtV := prod.Cod.Instantiate(v)
		return checkC(ctx.Extend(v, x.Dom), body, codAtV, c)

	default:
		inferred, err := inferC(ctx, t, c)
		if err != nil {
			return err
		}
		ok, err := conv.EqModulo(inferred, a, c)
		if err != nil {
			return err
		}
		if !ok {
			return diagnostics.New(diagnostics.ErrCheckMismatch, diagnostics.Position{}, "inferred type is not convertible to the expected type")
		}
		return nil
	}
}

// SortOfType classifies a declaration's stated type as Type or Kind
// (§4.6, the sort a symbol or variable declaration is checked against).
func SortOfType(ctx *Ctx, a term.Term) (term.Term, error) {
	if err := Check(ctx, a, term.Type); err == nil {
		return term.Type, nil
	}
	if err := Check(ctx, a, term.Kind); err == nil {
		return term.Kind, nil
	}
	return nil, diagnostics.New(diagnostics.ErrNotASort, diagnostics.Position{}, "declaration's type is neither Type nor Kind")
}

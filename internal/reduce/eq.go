package reduce

import (
	"fmt"

	"github.com/lambdapi-go/kernel/internal/term"
)

// Eq is strict, structural equality on unfolded terms, with
// α-equivalence for binders. rewrite controls whether a pattern-variable
// cell encountered on the left is permitted to assign: match.go calls
// Eq(pattern, arg, true) to match a rule's left-hand side against an
// argument, while every other caller compares two already-elaborated
// terms with rewrite set to false, where a pattern variable can only be
// a kernel bug.
//
// A metavariable cell on either side triggers instantiation rather than
// structural comparison; a failed instantiation (occurs check, or an
// environment that is not a list of variables) is reported as an error
// distinct from an ordinary "not equal" result.
func Eq(a, b term.Term, rewrite bool) (bool, error) {
	a = term.Unfold(a)
	b = term.Unfold(b)

	if pv, ok := a.(*term.PatVar); ok {
		if !rewrite {
			panic("reduce: pattern variable compared outside a rule match")
		}
		pv.Cell.AssignOnce(b)
		return true, nil
	}
	if _, ok := b.(*term.PatVar); ok {
		panic("reduce: pattern variable on the right-hand side of an equality is an invariant violation")
	}

	if ma, ok := a.(*term.Meta); ok {
		if mb, ok := b.(*term.Meta); ok && ma.Cell == mb.Cell {
			return envsEqual(ma.Env, mb.Env, rewrite)
		}
		return instantiate(ma, b)
	}
	if mb, ok := b.(*term.Meta); ok {
		return instantiate(mb, a)
	}

	switch x := a.(type) {
	case term.TType:
		_, ok := b.(term.TType)
		return ok, nil
	case term.TKind:
		_, ok := b.(term.TKind)
		return ok, nil
	case *term.Var:
		y, ok := b.(*term.Var)
		return ok && x == y, nil
	case *term.Symb:
		y, ok := b.(*term.Symb)
		return ok && x.Entry == y.Entry, nil
	case *term.Product:
		y, ok := b.(*term.Product)
		if !ok {
			return false, nil
		}
		return eqBinder1(x.Dom, x.Cod, y.Dom, y.Cod, rewrite)
	case *term.Abs:
		y, ok := b.(*term.Abs)
		if !ok {
			return false, nil
		}
		return eqBinder1(x.Dom, x.Body, y.Dom, y.Body, rewrite)
	case *term.App:
		y, ok := b.(*term.App)
		if !ok {
			return false, nil
		}
		okFun, err := Eq(x.Fun, y.Fun, rewrite)
		if err != nil || !okFun {
			return false, err
		}
		return Eq(x.Arg, y.Arg, rewrite)
	default:
		return false, fmt.Errorf("reduce: eq: unhandled term shape %T", a)
	}
}

func eqBinder1(domA term.Term, codA *term.Binder, domB term.Term, codB *term.Binder, rewrite bool) (bool, error) {
	okDom, err := Eq(domA, domB, rewrite)
	if err != nil || !okDom {
		return false, err
	}
	v, bodyA := codA.Open()
	bodyB := codB.Instantiate(v)
	return Eq(bodyA, bodyB, rewrite)
}

func envsEqual(envA, envB []term.Term, rewrite bool) (bool, error) {
	if len(envA) != len(envB) {
		return false, nil
	}
	for i := range envA {
		ok, err := Eq(envA[i], envB[i], rewrite)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

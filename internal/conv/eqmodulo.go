package conv

import (
	"github.com/lambdapi-go/kernel/internal/reduce"
	"github.com/lambdapi-go/kernel/internal/term"
)

// Pair is one deferred or pending equality between two terms.
type Pair struct {
	A, B term.Term
}

// Constraints collects the pairs deferred by EqModulo when constraint
// mode is active (§4.6, "infer_with_constrs"). A nil *Constraints means
// strict mode: an irreducible disequality is a failure rather than a
// deferral. This is the explicit parameter the §9 redesign flag asks
// for in place of a process-wide flag.
type Constraints struct {
	Pairs []Pair
}

// EqModulo is conversion: equality up to β-reduction and user rewrite
// rules (§4.5). It processes a worklist of pending pairs; each pair is
// first tried under strict equality (which already recurses through
// Product/Abstraction/Application structurally and triggers
// metavariable instantiation), then reduced with Whnf and spine-
// synchronised, and finally — for product/abstraction/application
// shapes that still agree structurally but were not resolved by either
// of the above — decomposed into sub-problems of their own so that a
// computed subterm (a type index, a domain, an argument) under an
// otherwise-rigid or otherwise-identical shape is compared modulo
// reduction rather than only by the strict test's non-reducing
// recursion.
func EqModulo(a, b term.Term, c *Constraints) (bool, error) {
	worklist := []Pair{{a, b}}
	for len(worklist) > 0 {
		p := worklist[0]
		worklist = worklist[1:]
		ok, err := step(p.A, p.B, c, &worklist)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func step(a, b term.Term, c *Constraints, worklist *[]Pair) (bool, error) {
	if ok, err := reduce.Eq(a, b, false); err != nil {
		return false, err
	} else if ok {
		return true, nil
	}

	headA, stackA := reduce.Whnf(a)
	headB, stackB := reduce.Whnf(b)

	na, nb := len(stackA), len(stackB)
	n := na
	if nb < n {
		n = nb
	}
	excessA := stackA[:na-n]
	excessB := stackB[:nb-n]
	pairedA := stackA[na-n:]
	pairedB := stackB[nb-n:]

	newHeadA := term.Spine(headA, excessA)
	newHeadB := term.Spine(headB, excessB)

	headsOK, err := reduce.Eq(newHeadA, newHeadB, false)
	if err != nil {
		return false, err
	}
	if !headsOK {
		headsOK, err = decomposeShape(newHeadA, newHeadB, worklist)
		if err != nil {
			return false, err
		}
	}
	if headsOK {
		for i := 0; i < n; i++ {
			*worklist = append(*worklist, Pair{pairedA[i], pairedB[i]})
		}
		return true, nil
	}

	if c != nil {
		c.Pairs = append(c.Pairs, Pair{a, b})
		return true, nil
	}
	return false, nil
}

// decomposeShape implements §4.5's "for structurally identical shapes
// (product/abstraction/application) that were not resolved by the
// strict test above, enqueue sub-problems": a and b share a shape but
// strict equality failed somewhere underneath, so the shape's own
// immediate children are pushed onto worklist as fresh pending pairs
// instead of being compared without reduction. Reports false, nil (not
// an error) when the shapes don't match at all.
func decomposeShape(a, b term.Term, worklist *[]Pair) (bool, error) {
	switch x := a.(type) {
	case *term.Product:
		y, ok := b.(*term.Product)
		if !ok {
			return false, nil
		}
		v, bodyA := x.Cod.Open()
		bodyB := y.Cod.Instantiate(v)
		*worklist = append(*worklist, Pair{x.Dom, y.Dom}, Pair{bodyA, bodyB})
		return true, nil
	case *term.Abs:
		y, ok := b.(*term.Abs)
		if !ok {
			return false, nil
		}
		v, bodyA := x.Body.Open()
		bodyB := y.Body.Instantiate(v)
		*worklist = append(*worklist, Pair{x.Dom, y.Dom}, Pair{bodyA, bodyB})
		return true, nil
	case *term.App:
		y, ok := b.(*term.App)
		if !ok {
			return false, nil
		}
		*worklist = append(*worklist, Pair{x.Fun, y.Fun}, Pair{x.Arg, y.Arg})
		return true, nil
	default:
		return false, nil
	}
}

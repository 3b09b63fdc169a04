package check

import (
	"github.com/lambdapi-go/kernel/internal/conv"
	"github.com/lambdapi-go/kernel/internal/diagnostics"
	"github.com/lambdapi-go/kernel/internal/reduce"
	"github.com/lambdapi-go/kernel/internal/term"
)

// CheckRule implements §4.6.1: a rewrite rule lhs -> rhs is well-typed
// only if every constraint rhs's typing needed is already entailed by
// lhs's typing, and the two sides end up at convertible types once that
// entailment is exploited as a substitution.
func CheckRule(ctx *Ctx, warn diagnostics.Warner, lhs, rhs term.Term) error {
	tL, cL, err := InferWithConstraints(ctx, lhs)
	if err != nil {
		return err
	}
	tR, cR, err := InferWithConstraints(ctx, rhs)
	if err != nil {
		return err
	}

	for _, p := range cR.Pairs {
		ok, err := conv.EqModulo(p.A, p.B, nil)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if !containsPair(cL.Pairs, p) {
			return diagnostics.New(diagnostics.ErrRuleConstraintNotEntailed, diagnostics.Position{},
				"rule's right-hand side requires a constraint the left-hand side's typing does not entail")
		}
	}

	vars, vals, err := orient(cL.Pairs, warn)
	if err != nil {
		return err
	}

	substTL := term.SubstVars(tL, vars, vals)
	substTR := term.SubstVars(tR, vars, vals)

	ok, err := conv.EqModulo(substTL, substTR, nil)
	if err != nil {
		return err
	}
	if !ok {
		return diagnostics.New(diagnostics.ErrRuleTypeMismatch, diagnostics.Position{},
			"rule's two sides do not have convertible types")
	}
	return nil
}

func containsPair(pairs []conv.Pair, p conv.Pair) bool {
	for _, q := range pairs {
		if sameTerm(q.A, p.A) && sameTerm(q.B, p.B) {
			return true
		}
		if sameTerm(q.A, p.B) && sameTerm(q.B, p.A) {
			return true
		}
	}
	return false
}

func sameTerm(a, b term.Term) bool {
	ok, err := reduce.Eq(a, b, false)
	return err == nil && ok
}

// orient turns the constraints accumulated while typing a rule's
// left-hand side into a variable substitution: a bare variable paired
// with anything is resolved directly; a pair headed by the same static
// symbol on both sides is decomposed argument-by-argument; a pair
// headed by the same definable symbol is dropped with a non-injectivity
// warning, since rewriting may map distinct arguments to the same
// result; anything else is simply unusable for substitution and
// dropped.
func orient(pairs []conv.Pair, warn diagnostics.Warner) ([]*term.Var, []term.Term, error) {
	var vars []*term.Var
	var vals []term.Term
	worklist := append([]conv.Pair(nil), pairs...)

	for len(worklist) > 0 {
		p := worklist[0]
		worklist = worklist[1:]

		if v, ok := term.Unfold(p.A).(*term.Var); ok {
			vars = append(vars, v)
			vals = append(vals, p.B)
			continue
		}
		if v, ok := term.Unfold(p.B).(*term.Var); ok {
			vars = append(vars, v)
			vals = append(vals, p.A)
			continue
		}

		headA, stackA := reduce.Whnf(p.A)
		headB, stackB := reduce.Whnf(p.B)
		symA, okA := headA.(*term.Symb)
		symB, okB := headB.(*term.Symb)
		if okA && okB && symA.Entry == symB.Entry {
			if len(stackA) != len(stackB) {
				continue
			}
			if symA.Entry.Kind == term.Definable {
				if warn != nil {
					warn.Warnf("non-injective substitution while orienting rule constraints for %s", symA.Entry.Name)
				}
				continue
			}
			for i := range stackA {
				worklist = append(worklist, conv.Pair{A: stackA[i], B: stackB[i]})
			}
			continue
		}
		// Unusable for substitution; dropped.
	}
	return vars, vals, nil
}

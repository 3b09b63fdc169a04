// Package reduce implements weak-head normalisation with user-defined
// rewrite rules (§4.3-4.4): an explicit argument stack, β-reduction, and
// first-match rewriting on definable symbols. Strict equality (needed to
// match a rule's left-hand side against an argument stack) lives here
// too rather than in package conv, since match_rules depends on it and
// conv depends on this package for whnf — putting Eq in conv would
// create an import cycle. Package conv re-exports Eq for callers who
// want both pieces of §4.5 from one place.
package reduce

import "github.com/lambdapi-go/kernel/internal/term"

// Whnf drives a term to weak-head normal form, returning the
// irreducible head together with its argument stack in left-to-right
// order. It implements the transition system of §4.3 directly.
func Whnf(t term.Term) (head term.Term, stack []term.Term) {
	t = term.Unfold(t)
	for {
		switch x := t.(type) {
		case *term.App:
			if x.Rigid {
				return t, stack
			}
			stack = append([]term.Term{x.Arg}, stack...)
			t = term.Unfold(x.Fun)
		case *term.Abs:
			if len(stack) == 0 {
				return t, stack
			}
			arg := stack[0]
			stack = stack[1:]
			t = term.Unfold(x.Body.Instantiate(arg))
		case *term.Symb:
			if x.Entry.Kind == term.Static {
				return t, stack
			}
			results := MatchRules(x.Entry, stack)
			if len(results) == 0 {
				return t, stack
			}
			best := results[0]
			t = term.Unfold(best.Term)
			stack = best.Stack
		default:
			return t, stack
		}
	}
}

// Eval performs one Whnf pass and reassembles head·stack into a single
// term, the public entry point of §4.3.
func Eval(t term.Term) term.Term {
	head, stack := Whnf(t)
	return term.Spine(head, stack)
}

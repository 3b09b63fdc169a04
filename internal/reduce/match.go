package reduce

import "github.com/lambdapi-go/kernel/internal/term"

// Warner receives the rule-overlap warning of §4.4 step 4 and §7 ("Rule
// overlap ... produce warnings only"). By default warnings are
// discarded; package pipeline installs a real sink.
type Warner interface {
	Warnf(format string, args ...interface{})
}

type discardWarner struct{}

func (discardWarner) Warnf(string, ...interface{}) {}

var warn Warner = discardWarner{}

// SetWarner installs the sink used for rule-overlap warnings.
func SetWarner(w Warner) {
	if w == nil {
		w = discardWarner{}
	}
	warn = w
}

// MatchResult is one successful match from MatchRules: the rewritten
// term and the argument stack remaining after the matched rule's
// arguments are consumed.
type MatchResult struct {
	Term  term.Term
	Stack []term.Term
}

// MatchRules implements §4.4 against a definable symbol's rule set and
// an argument stack of length k. It pre-reduces the first m arguments
// (m = the largest rule arity not exceeding k) to whnf before trying any
// rule, then tries every rule in insertion order, collecting every
// match. Whnf uses only the first; a longer result signals overlap.
func MatchRules(e *term.Entry, stack []term.Term) []MatchResult {
	k := len(stack)
	found := false
	m := 0
	for _, r := range e.Rules {
		if r.Arity <= k {
			found = true
			if r.Arity > m {
				m = r.Arity
			}
		}
	}
	if !found {
		return nil
	}

	reduced := make([]term.Term, len(stack))
	copy(reduced, stack)
	for i := 0; i < m; i++ {
		reduced[i] = Eval(stack[i])
	}

	var results []MatchResult
	for _, r := range e.Rules {
		if r.Arity > k {
			continue
		}
		cells := make([]term.Term, r.NVars)
		for i := range cells {
			cells[i] = term.NewPatVar(term.NewPatCell("$p"))
		}
		patterns := r.LHS.Instantiate(cells...)

		matched := true
		for i, p := range patterns {
			ok, err := Eq(p, reduced[i], true)
			if err != nil || !ok {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}

		rhs := r.RHS.Instantiate(cells...)
		results = append(results, MatchResult{Term: rhs, Stack: reduced[r.Arity:]})
	}

	if len(results) > 1 {
		warn.Warnf("rule overlap on %q: %d rules matched the same redex", e.Name, len(results))
	}
	return results
}

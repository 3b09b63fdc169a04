package term

// Unfold collapses any top-level assigned metavariable or pattern
// variable. If t is a metavariable applied to env and its cell holds a
// binder f, Unfold replaces t with f(env) and repeats; likewise for an
// assigned pattern variable. Every structural match on a term elsewhere
// in the kernel begins by calling Unfold — it is the only sanctioned way
// to observe a term's head. Unassigned cells and every other shape are
// returned unchanged.
func Unfold(t Term) Term {
	for {
		switch x := t.(type) {
		case *Meta:
			if x.Cell.Assigned() {
				t = x.Cell.Value().Instantiate(x.Env...)
				continue
			}
			return t
		case *PatVar:
			if x.Cell.Resolved() {
				t = x.Cell.Value()
				continue
			}
			return t
		default:
			return t
		}
	}
}

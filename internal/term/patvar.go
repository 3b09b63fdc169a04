package term

// PatCell is the mutable cell behind a pattern variable. Unlike a
// metavariable cell it holds a plain Term (no binder, no environment):
// pattern variables never escape a single rule-matching attempt, so
// there is nothing to abstract over.
type PatCell struct {
	Name  string
	value Term // nil until resolved by a successful match
}

// NewPatCell allocates a fresh, unresolved pattern-variable cell.
func NewPatCell(name string) *PatCell {
	return &PatCell{Name: name}
}

// Resolved reports whether matching has already bound this cell.
func (p *PatCell) Resolved() bool { return p.value != nil }

// Value returns the bound term, or nil if unresolved.
func (p *PatCell) Value() Term { return p.value }

// AssignOnce binds the cell during matching. Like MetaCell, a second
// assignment is a kernel bug, not a runtime condition to recover from:
// a single match attempt visits each pattern variable's binding site at
// most once by construction of the matcher.
func (p *PatCell) AssignOnce(value Term) {
	if p.value != nil {
		panic("term: pattern variable " + p.Name + " assigned twice")
	}
	p.value = value
}

// PatVar is a reference to a pattern-variable cell appearing in a
// left-hand side (where it is unresolved, awaiting a match) or in a
// right-hand side as instantiated during a successful match.
type PatVar struct {
	Cell *PatCell
}

func (*PatVar) isTerm() {}

// NewPatVar wraps a cell as a term node.
func NewPatVar(cell *PatCell) *PatVar {
	return &PatVar{Cell: cell}
}

package term

import "github.com/google/uuid"

// MetaCell is the mutable cell behind a unification metavariable. It is
// created unassigned and, once instantiated, never reassigned: the only
// legal transition is nil -> non-nil. Assignment is checked by
// AssignOnce rather than by direct field mutation so that a second
// assignment attempt anywhere in the kernel is a programming error that
// panics loudly instead of silently overwriting a solution.
//
// ID exists purely so that distinct metavariables created in the same
// print session can be told apart in diagnostics; it has no bearing on
// unification, which always works by pointer identity.
type MetaCell struct {
	ID    uuid.UUID
	Name  string
	Arity int       // the number of free variables in scope when the metavariable was created
	value *Binder // nil until assigned; arity must equal Arity
}

// NewMetaCell allocates a fresh, unassigned metavariable cell of the
// given arity.
func NewMetaCell(name string, arity int) *MetaCell {
	return &MetaCell{ID: uuid.New(), Name: name, Arity: arity}
}

// Assigned reports whether the cell already holds a value.
func (m *MetaCell) Assigned() bool { return m.value != nil }

// Value returns the assigned binder, or nil if unassigned.
func (m *MetaCell) Value() *Binder { return m.value }

// AssignOnce installs value as the cell's solution. It panics if the
// cell is already assigned: metavariable assignment is monotonic and a
// second assignment is always a bug in a caller, never a legitimate
// runtime condition.
func (m *MetaCell) AssignOnce(value *Binder) {
	if m.value != nil {
		panic("term: metavariable " + m.Name + " assigned twice")
	}
	if value.Arity != m.Arity {
		panic("term: metavariable " + m.Name + " assigned with wrong arity")
	}
	m.value = value
}

// Meta is a unification metavariable applied to an explicit environment
// of terms — the free variables in scope at the point the metavariable
// was created. The invariant is that Env always holds Var terms.
type Meta struct {
	Cell *MetaCell
	Env  []Term
}

func (*Meta) isTerm() {}

// NewMeta applies a cell to a scope environment, which must consist
// entirely of Var terms per the kernel's invariant.
func NewMeta(cell *MetaCell, env []Term) *Meta {
	return &Meta{Cell: cell, Env: env}
}

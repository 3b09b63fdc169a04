package reduce

import (
	"github.com/lambdapi-go/kernel/internal/diagnostics"
	"github.com/lambdapi-go/kernel/internal/term"
)

// instantiate solves m := t (§4.5.1). It fails if m's cell occurs in t,
// or if m's environment is not entirely made of variables (the Miller
// pattern restriction); otherwise it closes t over those variables and
// assigns the cell. There is no backtracking: AssignOnce enforces that
// an assignment, once made, is never revisited.
func instantiate(m *term.Meta, t term.Term) (bool, error) {
	vars := make([]*term.Var, len(m.Env))
	for i, e := range m.Env {
		v, ok := term.Unfold(e).(*term.Var)
		if !ok {
			return false, diagnostics.New(diagnostics.ErrNotMillerPattern, diagnostics.Position{},
				"metavariable %s: environment entry %d is not a variable (Miller pattern violated)", m.Cell.Name, i)
		}
		vars[i] = v
	}
	if term.Occurs(m.Cell, t) {
		return false, diagnostics.New(diagnostics.ErrOccursCheck, diagnostics.Position{},
			"metavariable %s occurs in its own instantiation", m.Cell.Name)
	}
	m.Cell.AssignOnce(term.CloseN(vars, t))
	return true, nil
}

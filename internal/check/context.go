// Package check implements §4.6: bidirectional type inference and
// checking over a typing context, plus the §4.6.1 rule checker.
package check

import "github.com/lambdapi-go/kernel/internal/term"

// Ctx is an immutable typing context Γ, extended one variable at a
// time; each Extend shares its parent rather than copying it, since a
// context is built up along one path of binder-openings and discarded
// on the way back out.
type Ctx struct {
	v      *term.Var
	ty     term.Term
	parent *Ctx
}

// Extend returns Γ, v:ty.
func (c *Ctx) Extend(v *term.Var, ty term.Term) *Ctx {
	return &Ctx{v: v, ty: ty, parent: c}
}

// Lookup finds v's declared type, searching innermost first.
func (c *Ctx) Lookup(v *term.Var) (term.Term, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if cur.v == v {
			return cur.ty, true
		}
	}
	return nil, false
}

// vars returns every variable currently in scope, used as the ambient
// environment when §4.6 forces an unresolved metavariable to a product.
func (c *Ctx) vars() []term.Term {
	var out []term.Term
	for cur := c; cur != nil; cur = cur.parent {
		out = append(out, cur.v)
	}
	return out
}

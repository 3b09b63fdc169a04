// Package elab lowers the surface syntax of internal/ast into
// internal/term trees against a internal/signature.Signature, and
// implements §4.7's rule elaboration: wildcard scoping, arity and
// definable-head validation, and closing both sides of a rule over its
// full variable list.
package elab

import "github.com/lambdapi-go/kernel/internal/term"

// Scope is an immutable chain of surface-name bindings, mirroring
// internal/check.Ctx's linked-list shape: elaborating a binder extends
// the scope for its body only, then discards the extension on the way
// back out.
type Scope struct {
	name   string
	term   term.Term
	parent *Scope
}

func (s *Scope) Extend(name string, t term.Term) *Scope {
	return &Scope{name: name, term: t, parent: s}
}

func (s *Scope) Lookup(name string) (term.Term, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.name == name {
			return cur.term, true
		}
	}
	return nil, false
}

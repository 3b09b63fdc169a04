// Package signature implements the per-module symbol table described in
// spec §4.2: an arena of stable-indexed entries, an ordered name→entry
// map, and the operations the kernel and frontend use to grow it.
package signature

import (
	"fmt"

	"github.com/lambdapi-go/kernel/internal/term"
)

// Warner receives non-fatal diagnostics (redeclaration, rule overlap,
// non-injective substitution) per spec §7: these are warnings, never
// errors, and the signature never refuses an operation because of one.
type Warner interface {
	Warnf(format string, args ...interface{})
}

// discardWarner is used when no Warner is supplied; it drops warnings.
type discardWarner struct{}

func (discardWarner) Warnf(string, ...interface{}) {}

// Signature owns a module path and the ordered collection of symbols
// declared within it. Entries are arena-allocated with a stable index
// (spec §9: an arena of symbol entries keyed by stable indices avoids
// pointer cycles between rule right-hand sides and their owning
// symbols) so that rules can reference arbitrary other entries,
// including their own owner, without the arena itself needing to be a
// graph.
type Signature struct {
	Path   string
	arena  []*term.Entry
	byName map[string]*term.Entry
	order  []string // insertion order of currently-live names, for deterministic iteration
	warn   Warner
}

// New creates an empty signature for the given module path.
func New(path string) *Signature {
	return &Signature{
		Path:   path,
		byName: make(map[string]*term.Entry),
		warn:   discardWarner{},
	}
}

// SetWarner installs a Warner; by default warnings are discarded.
func (s *Signature) SetWarner(w Warner) {
	if w == nil {
		w = discardWarner{}
	}
	s.warn = w
}

func (s *Signature) insert(name string, kind term.SymKind, typ term.Term) *term.Entry {
	if old, ok := s.byName[name]; ok {
		s.warn.Warnf("redeclaration of %q in module %q (was %s, kept new)", name, s.Path, kindString(old.Kind))
	} else {
		s.order = append(s.order, name)
	}
	e := &term.Entry{
		Index:  len(s.arena),
		Module: s.Path,
		Name:   name,
		Kind:   kind,
		Type:   typ,
	}
	s.arena = append(s.arena, e)
	s.byName[name] = e
	return e
}

// AddStatic declares a new static symbol: one that never carries rewrite
// rules and is reducible only by β within its arguments. Redeclaring an
// existing name is a warning, not an error, and the new entry replaces
// the old one in the name map; any term built against the shadowed
// entry keeps working since it holds the old *term.Entry pointer
// directly, not a name.
func (s *Signature) AddStatic(name string, typ term.Term) *term.Entry {
	return s.insert(name, term.Static, typ)
}

// AddDefinable declares a new definable symbol: one that may later carry
// rewrite rules via AttachRule.
func (s *Signature) AddDefinable(name string, typ term.Term) *term.Entry {
	return s.insert(name, term.Definable, typ)
}

// Find looks up a symbol by name in this signature only (no fallback to
// other modules; cross-module resolution is the frontend/loader's job).
func (s *Signature) Find(name string) (*term.Entry, bool) {
	e, ok := s.byName[name]
	return e, ok
}

// Entries returns every currently-live entry in insertion order.
func (s *Signature) Entries() []*term.Entry {
	result := make([]*term.Entry, 0, len(s.order))
	for _, name := range s.order {
		result = append(result, s.byName[name])
	}
	return result
}

// AttachRule appends rule to a definable entry's rule set, in insertion
// order. Per spec §3 invariants, the caller (the rule checker, package
// check) must have already validated the rule; Signature does not
// re-check it, only records it. Attaching to a static entry is a
// programming error, not a recoverable condition: static-ness is a
// compile-time property the rule checker must have already enforced.
func (s *Signature) AttachRule(e *term.Entry, r *term.Rule) {
	if e.Kind != term.Definable {
		panic(fmt.Sprintf("signature: cannot attach a rule to static symbol %q", e.Name))
	}
	e.Rules = append(e.Rules, r)
}

func kindString(k term.SymKind) string {
	if k == term.Static {
		return "static"
	}
	return "definable"
}

// Package conv implements §4.5: equality and conversion modulo
// reduction, with constraint collection as an explicit parameter rather
// than the source's process-wide flag (the §9 redesign flag this spec
// calls out — see DESIGN.md).
package conv

import (
	"github.com/lambdapi-go/kernel/internal/reduce"
	"github.com/lambdapi-go/kernel/internal/term"
)

// Eq is strict structural equality (§4.5), re-exported from package
// reduce: Eq has to live there so match_rules can call it without
// package reduce depending back on conv for whnf.
func Eq(a, b term.Term, rewrite bool) (bool, error) {
	return reduce.Eq(a, b, rewrite)
}

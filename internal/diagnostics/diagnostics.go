// Package diagnostics implements the error taxonomy of spec §7: a code
// per failure category, grouped by the phase of the kernel that raised
// it, plus a sink for the warnings (redeclaration, rule overlap,
// non-injective substitution) that §3 and §7 explicitly call out as
// non-fatal.
package diagnostics

import "fmt"

// Phase names the stage of the kernel pipeline a diagnostic came from.
type Phase string

const (
	PhaseScope Phase = "scope"
	PhaseSort  Phase = "sort"
	PhaseInfer Phase = "infer"
	PhaseCheck Phase = "check"
	PhaseRule  Phase = "rule"
	PhaseConv  Phase = "conv"
	PhaseUnify Phase = "unify"
)

// ErrorCode is one entry of the K### taxonomy: K1xx scoping, K2xx sort,
// K3xx inference, K4xx checking, K5xx rule elaboration/checking, K6xx
// convertibility, K7xx metavariable instantiation.
type ErrorCode string

const (
	ErrUnboundVariable      ErrorCode = "K101"
	ErrUnboundSymbol        ErrorCode = "K102"
	ErrWildcardOutsidePattern ErrorCode = "K103"
	ErrPatternHeadNotDefinable ErrorCode = "K104"

	ErrNotASort ErrorCode = "K201"

	ErrCannotInfer        ErrorCode = "K301"
	ErrApplyingNonProduct ErrorCode = "K302"

	ErrCheckMismatch ErrorCode = "K401"

	ErrRuleTypeMismatch      ErrorCode = "K501"
	ErrRuleConstraintNotEntailed ErrorCode = "K502"

	ErrNotConvertible ErrorCode = "K601"

	ErrOccursCheck     ErrorCode = "K701"
	ErrNotMillerPattern ErrorCode = "K702"
)

// Position is best-effort source location, threaded in from the surface
// layer when available; the term kernel itself is position-agnostic, so
// a zero Position is valid and simply prints nothing extra.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" && p.Line == 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// DiagnosticError is a fatal kernel error: every error above the
// kernel's lowest primitives aborts the current top-level item (§7).
type DiagnosticError struct {
	Code     ErrorCode
	Phase    Phase
	Pos      Position
	Message  string
	// Constraints is an optional entailed-constraint trail for
	// rule-checking errors. New leaves it empty, and no code in the
	// kernel fills it in.
	Constraints []string
}

func (e *DiagnosticError) Error() string {
	if pos := e.Pos.String(); pos != "" {
		return fmt.Sprintf("%s [%s] %s: %s", pos, e.Code, e.Phase, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Phase, e.Message)
}

// New builds a DiagnosticError, inferring Phase from the code's prefix.
func New(code ErrorCode, pos Position, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Phase:   phaseOf(code),
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

func phaseOf(code ErrorCode) Phase {
	if len(code) < 2 {
		return ""
	}
	switch code[1] {
	case '1':
		return PhaseScope
	case '2':
		return PhaseSort
	case '3':
		return PhaseInfer
	case '4':
		return PhaseCheck
	case '5':
		return PhaseRule
	case '6':
		return PhaseConv
	case '7':
		return PhaseUnify
	default:
		return ""
	}
}

// Warner receives a non-fatal diagnostic: redeclaration, rule overlap,
// non-injective substitution (§3, §7). Implemented directly by
// *Diagnostics below, and also satisfied structurally by
// internal/signature.Warner and internal/reduce.Warner so one sink can
// back every package's warnings.
type Warner interface {
	Warnf(format string, args ...interface{})
}

// Diagnostics collects warnings for one compilation run.
type Diagnostics struct {
	Warnings []string
}

func (d *Diagnostics) Warnf(format string, args ...interface{}) {
	d.Warnings = append(d.Warnings, fmt.Sprintf(format, args...))
}

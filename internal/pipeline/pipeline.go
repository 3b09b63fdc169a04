// Package pipeline implements spec §6: the command dispatcher a
// frontend drives one top-level item at a time. The teacher's own
// pipeline.go named a Pipeline of Processor stages run over a shared
// PipelineContext, but neither Processor nor PipelineContext exists
// anywhere in the retrieved teacher tree (the file was pulled without
// the rest of its package); this is a ground-up rewrite keeping the
// teacher's naming ("Pipeline", "Run") but giving it real command
// semantics: each top-level ast.Decl is elaborated, checked, and
// applied to the signature in one shot, with failures aborting only
// that item (§7) rather than the whole run.
package pipeline

import (
	"github.com/lambdapi-go/kernel/internal/ast"
	"github.com/lambdapi-go/kernel/internal/check"
	"github.com/lambdapi-go/kernel/internal/conv"
	"github.com/lambdapi-go/kernel/internal/diagnostics"
	"github.com/lambdapi-go/kernel/internal/elab"
	"github.com/lambdapi-go/kernel/internal/prettyprinter"
	"github.com/lambdapi-go/kernel/internal/reduce"
	"github.com/lambdapi-go/kernel/internal/signature"
	"github.com/lambdapi-go/kernel/internal/term"
)

// Result is what a command produces for a caller to display; the zero
// Result is valid for commands that only have a side effect on the
// signature (new_symbol, define, add_rules).
type Result struct {
	// Term holds the resulting term for infer (its type) and evaluate
	// (its normal form), printed via a Printer scoped to the pipeline's
	// module.
	Term term.Term
	// Convertible holds check_convertible's verdict.
	Convertible    bool
	HasTerm        bool
	HasConvertible bool
}

// String renders r the way a REPL or CLI would echo a command's
// result, using p to shorten symbols from the pipeline's own module.
func (r Result) String(p *prettyprinter.Printer) string {
	switch {
	case r.HasConvertible:
		if r.Convertible {
			return "yes"
		}
		return "no"
	case r.HasTerm:
		return p.Print(r.Term)
	default:
		return "ok"
	}
}

// Pipeline runs top-level commands against one signature, the unit §6
// calls "the current module". Top-level terms elaborate against an
// empty typing context: every free identifier must resolve to a
// binder introduced locally within the command itself (a rule's
// context, a Pi/fun) or to a signature symbol, never to a dangling
// free variable.
type Pipeline struct {
	Sig  *signature.Signature
	Warn diagnostics.Warner
}

// New builds a Pipeline over sig and installs warn as package reduce's
// rule-overlap sink. warn may be nil, in which case non-fatal
// rule-checking and rule-overlap warnings (§3, §7) are discarded.
func New(sig *signature.Signature, warn diagnostics.Warner) *Pipeline {
	reduce.SetWarner(warn)
	return &Pipeline{Sig: sig, Warn: warn}
}

// Run executes decls in order, continuing past a failing item so a
// frontend can report every item's diagnostic in one pass (the same
// "continue on errors to collect diagnostics from all stages" idiom
// the teacher's Pipeline.Run comment described, here applied to
// top-level commands instead of compiler stages). The returned slices
// are parallel to decls: results[i] is nil wherever errs[i] != nil.
func (p *Pipeline) Run(decls []ast.Decl) (results []*Result, errs []error) {
	results = make([]*Result, len(decls))
	errs = make([]error, len(decls))
	for i, d := range decls {
		results[i], errs[i] = p.Execute(d)
	}
	return results, errs
}

// Execute runs a single command (§6). new_symbol, define and
// add_rules mutate p.Sig and return a nil *Result; check returns a
// nil *Result with a nil error on success; infer and evaluate return
// a *Result carrying a term; check_convertible returns a *Result
// carrying a verdict.
func (p *Pipeline) Execute(d ast.Decl) (*Result, error) {
	switch x := d.(type) {
	case *ast.NewSymbol:
		return nil, p.newSymbol(x)
	case *ast.Define:
		return nil, p.define(x)
	case *ast.AddRules:
		return nil, p.addRules(x)
	case *ast.Check:
		return nil, p.check(x)
	case *ast.Infer:
		return p.infer(x)
	case *ast.Eval:
		return p.eval(x)
	case *ast.Convertible:
		return p.convertible(x)
	default:
		return nil, diagnostics.New(diagnostics.ErrUnboundSymbol, diagnostics.Position{}, "pipeline: unhandled command %T", d)
	}
}

func (p *Pipeline) newSymbol(x *ast.NewSymbol) error {
	ty, err := elab.ElabExpr(p.Sig, nil, x.Type)
	if err != nil {
		return err
	}
	if _, err := check.SortOfType(nil, ty); err != nil {
		return err
	}
	if x.Definable {
		p.Sig.AddDefinable(x.Name, ty)
	} else {
		p.Sig.AddStatic(x.Name, ty)
	}
	return nil
}

// define implements §6's define(name, type?, body): a definable
// symbol whose only rule is the degenerate arity-0 rule "name -> body"
// — the symbol unconditionally unfolds to body, with no arguments to
// match against.
func (p *Pipeline) define(x *ast.Define) error {
	body, err := elab.ElabExpr(p.Sig, nil, x.Body)
	if err != nil {
		return err
	}

	var ty term.Term
	if x.Type != nil {
		ty, err = elab.ElabExpr(p.Sig, nil, x.Type)
		if err != nil {
			return err
		}
		if err := check.Check(nil, body, ty); err != nil {
			return err
		}
	} else {
		ty, err = check.Infer(nil, body)
		if err != nil {
			return err
		}
	}

	entry := p.Sig.AddDefinable(x.Name, ty)
	rule := &term.Rule{
		Arity: 0,
		NVars: 0,
		LHS:   term.NewArgsBinder(nil, func([]term.Term) []term.Term { return nil }),
		RHS:   term.NewBinderN(nil, func([]term.Term) term.Term { return body }),
	}
	p.Sig.AttachRule(entry, rule)
	return nil
}

func (p *Pipeline) addRules(x *ast.AddRules) error {
	for _, r := range x.Rules {
		el, err := elab.ElaborateRule(p.Sig, r)
		if err != nil {
			return err
		}
		if err := check.CheckRule(el.Ctx, p.Warn, el.LHS, el.RHS); err != nil {
			return err
		}
		p.Sig.AttachRule(el.Symbol, el.Rule)
	}
	return nil
}

func (p *Pipeline) check(x *ast.Check) error {
	t, err := elab.ElabExpr(p.Sig, nil, x.Term)
	if err != nil {
		return err
	}
	ty, err := elab.ElabExpr(p.Sig, nil, x.Type)
	if err != nil {
		return err
	}
	return check.Check(nil, t, ty)
}

func (p *Pipeline) infer(x *ast.Infer) (*Result, error) {
	t, err := elab.ElabExpr(p.Sig, nil, x.Term)
	if err != nil {
		return nil, err
	}
	ty, err := check.Infer(nil, t)
	if err != nil {
		return nil, err
	}
	return &Result{Term: ty, HasTerm: true}, nil
}

func (p *Pipeline) eval(x *ast.Eval) (*Result, error) {
	t, err := elab.ElabExpr(p.Sig, nil, x.Term)
	if err != nil {
		return nil, err
	}
	return &Result{Term: reduce.Eval(t), HasTerm: true}, nil
}

func (p *Pipeline) convertible(x *ast.Convertible) (*Result, error) {
	t, err := elab.ElabExpr(p.Sig, nil, x.T)
	if err != nil {
		return nil, err
	}
	u, err := elab.ElabExpr(p.Sig, nil, x.U)
	if err != nil {
		return nil, err
	}
	ok, err := conv.EqModulo(t, u, nil)
	if err != nil {
		return nil, err
	}
	return &Result{Convertible: ok, HasConvertible: true}, nil
}

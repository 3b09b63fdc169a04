package elab_test

import (
	"testing"

	"github.com/lambdapi-go/kernel/internal/ast"
	"github.com/lambdapi-go/kernel/internal/check"
	"github.com/lambdapi-go/kernel/internal/elab"
	"github.com/lambdapi-go/kernel/internal/parser"
	"github.com/lambdapi-go/kernel/internal/lexer"
	"github.com/lambdapi-go/kernel/internal/reduce"
	"github.com/lambdapi-go/kernel/internal/signature"
	"github.com/lambdapi-go/kernel/internal/term"
)

func natSig(t *testing.T) (*signature.Signature, *term.Entry, *term.Entry, *term.Entry) {
	t.Helper()
	sig := signature.New("test/nat")
	nat := sig.AddStatic("Nat", term.Type)
	natT := &term.Symb{Entry: nat}
	z := sig.AddStatic("z", natT)
	s := sig.AddStatic("s", term.NewProductSimple(natT, natT))
	return sig, nat, z, s
}

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	p := parser.New(lexer.New(src))
	decls, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	inf, ok := decls[0].(*ast.Infer)
	if !ok {
		t.Fatalf("expected a single infer decl wrapping the expression")
	}
	return inf.Term
}

func TestElabSimpleApplication(t *testing.T) {
	sig, _, z, s := natSig(t)
	e := parseExpr(t, "infer s (s z).")
	got, err := elab.ElabExpr(sig, nil, e)
	if err != nil {
		t.Fatalf("elab: %v", err)
	}
	want := term.NewApp(&term.Symb{Entry: s}, term.NewApp(&term.Symb{Entry: s}, &term.Symb{Entry: z}))
	ok, err := reduce.Eq(got, want, false)
	if err != nil || !ok {
		t.Fatalf("elaborated term mismatch: %#v", got)
	}
}

func TestElaborateRuleAndCheck(t *testing.T) {
	sig, nat, z, s := natSig(t)
	natT := &term.Symb{Entry: nat}
	plus := sig.AddDefinable("+", term.NewProductSimple(natT, term.NewProductSimple(natT, natT)))

	p := parser.New(lexer.New("rules (y:Nat) + z y -> y."))
	decls, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rules := decls[0].(*ast.AddRules)

	el, err := elab.ElaborateRule(sig, rules.Rules[0])
	if err != nil {
		t.Fatalf("elaborate rule: %v", err)
	}
	if el.Symbol != plus {
		t.Fatalf("rule should attach to +")
	}
	if err := check.CheckRule(el.Ctx, nil, el.LHS, el.RHS); err != nil {
		t.Fatalf("rule should be well-typed: %v", err)
	}
	sig.AttachRule(el.Symbol, el.Rule)

	// + z z should now evaluate to z via the newly attached rule.
	sum := term.Spine(&term.Symb{Entry: plus}, []term.Term{&term.Symb{Entry: z}, &term.Symb{Entry: z}})
	got := reduce.Eval(sum)
	ok, err := reduce.Eq(got, &term.Symb{Entry: z}, false)
	if err != nil || !ok {
		t.Fatalf("+ z z should reduce to z, got %#v", got)
	}
	_ = s
}

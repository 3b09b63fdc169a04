package pipeline_test

import (
	"testing"

	"github.com/lambdapi-go/kernel/internal/lexer"
	"github.com/lambdapi-go/kernel/internal/parser"
	"github.com/lambdapi-go/kernel/internal/pipeline"
	"github.com/lambdapi-go/kernel/internal/prettyprinter"
	"github.com/lambdapi-go/kernel/internal/signature"
)

func run(t *testing.T, sig *signature.Signature, src string) ([]*pipeline.Result, []error) {
	t.Helper()
	decls, err := parser.New(lexer.New(src)).ParseProgram()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return pipeline.New(sig, nil).Run(decls)
}

func TestPipelineDeclaresAndEvaluatesNat(t *testing.T) {
	sig := signature.New("test")
	src := `
static Nat : Type.
static z : Nat.
static s : Nat -> Nat.
definable plus : Nat -> Nat -> Nat.
rules (y:Nat) plus z y -> y.
rules (x:Nat) (y:Nat) plus (s x) y -> s (plus x y).
eval plus (s z) (s (s z)).
`
	results, errs := run(t, sig, src)
	for i, err := range errs {
		if err != nil {
			t.Fatalf("decl %d: %v", i, err)
		}
	}

	last := results[len(results)-1]
	if !last.HasTerm {
		t.Fatalf("evaluate command should produce a term result")
	}
	p := prettyprinter.New("test")
	got := p.Print(last.Term)
	want := "s (s (s z))"
	if got != want {
		t.Fatalf("plus (s z) (s (s z)) = %q, want %q", got, want)
	}
}

func TestPipelineRejectsIllTypedCheck(t *testing.T) {
	sig := signature.New("test")
	src := `
static Nat : Type.
static z : Nat.
static Bool : Type.
static true : Bool.
check true : Nat.
`
	_, errs := run(t, sig, src)
	if errs[len(errs)-1] == nil {
		t.Fatalf("checking true against Nat should fail")
	}
}

func TestPipelineDefineProducesArityZeroUnfold(t *testing.T) {
	sig := signature.New("test")
	src := `
static Nat : Type.
static z : Nat.
static s : Nat -> Nat.
def one := s z.
eval one.
`
	results, errs := run(t, sig, src)
	for i, err := range errs {
		if err != nil {
			t.Fatalf("decl %d: %v", i, err)
		}
	}
	p := prettyprinter.New("test")
	got := p.Print(results[len(results)-1].Term)
	if got != "s z" {
		t.Fatalf("one should unfold to %q, got %q", "s z", got)
	}
}

func TestPipelineContinuesPastFailingItem(t *testing.T) {
	sig := signature.New("test")
	src := `
static Nat : Type.
check Nat : Nat.
static z : Nat.
infer z.
`
	results, errs := run(t, sig, src)
	if errs[1] == nil {
		t.Fatalf("checking Nat against Nat should fail (Nat : Type, not Nat : Nat)")
	}
	if errs[2] != nil {
		t.Fatalf("a later declaration should still run after an earlier failure: %v", errs[2])
	}
	if errs[3] != nil || !results[3].HasTerm {
		t.Fatalf("infer z should still succeed: %v", errs[3])
	}
}

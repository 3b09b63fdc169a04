package reduce

import (
	"testing"

	"github.com/lambdapi-go/kernel/internal/signature"
	"github.com/lambdapi-go/kernel/internal/term"
)

// natSignature builds Nat : Type, z : Nat, s : Nat -> Nat, and a
// definable + : Nat -> Nat -> Nat with the two rules of spec scenario 2:
// + z y -> y, + (s x) y -> s (+ x y).
func natSignature(t *testing.T) (sig *signature.Signature, nat, z, s, plus *term.Entry) {
	t.Helper()
	sig = signature.New("test/nat")
	nat = sig.AddStatic("Nat", term.Type)
	natT := &term.Symb{Entry: nat}
	z = sig.AddStatic("z", natT)
	s = sig.AddStatic("s", term.NewProductSimple(natT, natT))
	plus = sig.AddDefinable("+", term.NewProductSimple(natT, term.NewProductSimple(natT, natT)))

	// + z $y -> $y
	plusZ := term.NewArgsBinder([]string{"y"}, func(env []term.Term) []term.Term {
		return []term.Term{&term.Symb{Entry: z}, env[0]}
	})
	plusZRhs := term.NewBinderN([]string{"y"}, func(env []term.Term) term.Term { return env[0] })
	sig.AttachRule(plus, &term.Rule{Arity: 2, NVars: 1, LHS: plusZ, RHS: plusZRhs})

	plusS := term.NewArgsBinder([]string{"x", "y"}, func(env []term.Term) []term.Term {
		return []term.Term{
			term.NewApp(&term.Symb{Entry: s}, env[0]),
			env[1],
		}
	})
	plusSRhs := term.NewBinderN([]string{"x", "y"}, func(env []term.Term) term.Term {
		return term.NewApp(&term.Symb{Entry: s}, term.Spine(&term.Symb{Entry: plus}, []term.Term{env[0], env[1]}))
	})
	sig.AttachRule(plus, &term.Rule{Arity: 2, NVars: 2, LHS: plusS, RHS: plusSRhs})

	return sig, nat, z, s, plus
}

func sOf(s *term.Entry, n int, base term.Term) term.Term {
	t := base
	for i := 0; i < n; i++ {
		t = term.NewApp(&term.Symb{Entry: s}, t)
	}
	return t
}

func TestEvalInferScenario1(t *testing.T) {
	_, _, z, s, _ := natSignature(t)
	zero := &term.Symb{Entry: z}
	ssz := sOf(s, 2, zero)
	// s (s z) is already whnf (static head): Eval should be a no-op.
	got := Eval(ssz)
	ok, err := Eq(got, ssz, false)
	if err != nil || !ok {
		t.Fatalf("Eval(s (s z)) should be s (s z) unchanged, got %#v", got)
	}
}

func TestEvalPlusScenario2(t *testing.T) {
	_, _, z, s, plus := natSignature(t)
	zero := &term.Symb{Entry: z}
	two := sOf(s, 2, zero)
	one := sOf(s, 1, zero)

	sum := term.Spine(&term.Symb{Entry: plus}, []term.Term{two, one})
	got := Eval(sum)

	want := sOf(s, 3, zero)
	ok, err := Eq(got, want, false)
	if err != nil {
		t.Fatalf("Eq: %v", err)
	}
	if !ok {
		t.Fatalf("+ (s (s z)) (s z) should evaluate to s (s (s z)), got %#v", got)
	}
}

func TestEvalPlusConvertibleScenario2(t *testing.T) {
	_, _, z, s, plus := natSignature(t)
	zero := &term.Symb{Entry: z}
	one := sOf(s, 1, zero)

	lhs := term.Spine(&term.Symb{Entry: plus}, []term.Term{one, zero})
	got := Eval(lhs)
	ok, err := Eq(got, one, false)
	if err != nil || !ok {
		t.Fatalf("+ (s z) z should be convertible to s z, got %#v", got)
	}
}

func TestStaticHeadNeverRewrites(t *testing.T) {
	sig := signature.New("test/static")
	a := sig.AddStatic("A", term.Type)
	_ = a
	_ = sig
	// A fresh static symbol applied to an argument is already whnf.
	s := sig.AddStatic("f", term.NewProductSimple(term.Type, term.Type))
	applied := term.NewApp(&term.Symb{Entry: s}, term.Type)
	head, stack := Whnf(applied)
	symb, ok := head.(*term.Symb)
	if !ok || symb.Entry != s || len(stack) != 1 {
		t.Fatalf("static application should halt immediately with the symbol as head")
	}
}

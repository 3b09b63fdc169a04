package check_test

import (
	"testing"

	"github.com/lambdapi-go/kernel/internal/check"
	"github.com/lambdapi-go/kernel/internal/signature"
	"github.com/lambdapi-go/kernel/internal/term"
)

// natSignature builds Nat : Type, z : Nat, s : Nat -> Nat, matching the
// signature used throughout spec §8's worked scenarios.
func natSignature(t *testing.T) (nat, z, s *term.Entry) {
	t.Helper()
	sig := signature.New("test/nat")
	nat = sig.AddStatic("Nat", term.Type)
	natT := &term.Symb{Entry: nat}
	z = sig.AddStatic("z", natT)
	s = sig.AddStatic("s", term.NewProductSimple(natT, natT))
	return nat, z, s
}

// TestPolymorphicIdentity covers spec scenario 3: id : Π(A:Type).A->A
// applied to Nat and z checks against Nat, and fails against Nat->Nat.
func TestPolymorphicIdentity(t *testing.T) {
	nat, z, _ := natSignature(t)
	natT := &term.Symb{Entry: nat}

	sig := signature.New("test/id")
	idTy := term.NewProduct("A", term.Type, func(a term.Term) term.Term {
		return term.NewProductSimple(a, a)
	})
	id := sig.AddStatic("id", idTy)

	applied := term.Spine(&term.Symb{Entry: id}, []term.Term{natT, &term.Symb{Entry: z}})

	if err := check.Check(nil, applied, natT); err != nil {
		t.Fatalf("id Nat z should check against Nat, got error: %v", err)
	}

	badTarget := term.NewProductSimple(natT, natT)
	if err := check.Check(nil, applied, badTarget); err == nil {
		t.Fatalf("id Nat z should not check against Nat -> Nat")
	}
}

// TestNonLinearDependentEquality covers spec scenario 5: eq and refl
// exercise a dependently-typed product whose codomain mentions the
// bound variable twice, so the two occurrences must agree exactly.
func TestNonLinearDependentEquality(t *testing.T) {
	nat, z, s := natSignature(t)
	natT := &term.Symb{Entry: nat}
	zero := &term.Symb{Entry: z}
	one := term.NewApp(&term.Symb{Entry: s}, zero)

	sig := signature.New("test/eq")
	eqTy := term.NewProduct("A", term.Type, func(a term.Term) term.Term {
		return term.NewProductSimple(a, term.NewProductSimple(a, term.Type))
	})
	eq := sig.AddStatic("eq", eqTy)

	reflTy := term.NewProduct("A", term.Type, func(a term.Term) term.Term {
		return term.NewProduct("x", a, func(x term.Term) term.Term {
			return term.Spine(&term.Symb{Entry: eq}, []term.Term{a, x, x})
		})
	})
	refl := sig.AddStatic("refl", reflTy)

	reflNatZ := term.Spine(&term.Symb{Entry: refl}, []term.Term{natT, zero})

	okTarget := term.Spine(&term.Symb{Entry: eq}, []term.Term{natT, zero, zero})
	if err := check.Check(nil, reflNatZ, okTarget); err != nil {
		t.Fatalf("refl Nat z should check against eq Nat z z, got error: %v", err)
	}

	badTarget := term.Spine(&term.Symb{Entry: eq}, []term.Term{natT, zero, one})
	if err := check.Check(nil, reflNatZ, badTarget); err == nil {
		t.Fatalf("refl Nat z should not check against eq Nat z (s z)")
	}
}

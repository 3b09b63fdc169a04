package check_test

import (
	"testing"

	"github.com/lambdapi-go/kernel/internal/check"
	"github.com/lambdapi-go/kernel/internal/signature"
	"github.com/lambdapi-go/kernel/internal/term"
)

// TestIllTypedRuleRejected covers spec scenario 4: with f : Nat -> Nat,
// the rule f x -> x x is ill-typed because a Nat-typed variable is not
// a function, so CheckRule must reject it.
func TestIllTypedRuleRejected(t *testing.T) {
	nat, _, _ := natSignature(t)
	natT := &term.Symb{Entry: nat}

	sig := signature.New("test/f")
	f := sig.AddDefinable("f", term.NewProductSimple(natT, natT))

	x := term.NewVar("x")
	var ctx *check.Ctx
	ctx = ctx.Extend(x, natT)

	lhs := term.NewApp(&term.Symb{Entry: f}, x)
	rhs := term.NewApp(x, x)

	if err := check.CheckRule(ctx, nil, lhs, rhs); err == nil {
		t.Fatalf("f x -> x x should be rejected: x : Nat is not a function")
	}
}

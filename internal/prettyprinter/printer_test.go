package prettyprinter_test

import (
	"testing"

	"github.com/lambdapi-go/kernel/internal/prettyprinter"
	"github.com/lambdapi-go/kernel/internal/signature"
	"github.com/lambdapi-go/kernel/internal/term"
)

func TestPrintShortensCurrentModuleSymbols(t *testing.T) {
	sig := signature.New("test/nat")
	nat := sig.AddStatic("Nat", term.Type)
	natT := &term.Symb{Entry: nat}
	z := sig.AddStatic("z", natT)
	s := sig.AddStatic("s", term.NewProductSimple(natT, natT))

	other := signature.New("test/other")
	foreign := other.AddStatic("Foo", term.Type)

	applied := term.NewApp(&term.Symb{Entry: s}, term.NewApp(&term.Symb{Entry: s}, &term.Symb{Entry: z}))

	p := prettyprinter.New("test/nat")
	got := p.Print(applied)
	want := "s (s z)"
	if got != want {
		t.Fatalf("Print(s (s z)) = %q, want %q", got, want)
	}

	qualified := p.Print(&term.Symb{Entry: foreign})
	if qualified != "test/other.Foo" {
		t.Fatalf("a symbol from another module should print qualified, got %q", qualified)
	}
}

func TestPrintProductOpensBinderWithStableName(t *testing.T) {
	p := prettyprinter.New("test/mod")
	prod := term.NewProduct("A", term.Type, func(a term.Term) term.Term {
		return term.NewProductSimple(a, a)
	})
	got := p.Print(prod)
	want := "Pi (A:Type). Pi (x0:A). A"
	if got != want {
		t.Fatalf("Print(product) = %q, want %q", got, want)
	}
}

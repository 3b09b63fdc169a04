package signature

import (
	"errors"
	"testing"

	"github.com/lambdapi-go/kernel/internal/term"
)

func noResolve(module, name string) (*term.Entry, error) {
	return nil, errors.New("unexpected cross-module reference: " + module + "." + name)
}

func TestEncodeDecodeRoundTripSimple(t *testing.T) {
	sig := New("test/nat")
	nat := sig.AddStatic("Nat", term.Type)
	sig.AddDefinable("double", term.NewProductSimple(&term.Symb{Entry: nat}, &term.Symb{Entry: nat}))

	out, err := Encode(sig)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(out, noResolve)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Path != "test/nat" {
		t.Fatalf("path mismatch: got %q", got.Path)
	}
	entries := got.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "Nat" || entries[0].Kind != term.Static {
		t.Fatalf("entry 0 mismatch: %+v", entries[0])
	}
	if entries[1].Name != "double" || entries[1].Kind != term.Definable {
		t.Fatalf("entry 1 mismatch: %+v", entries[1])
	}
	prod, ok := entries[1].Type.(*term.Product)
	if !ok {
		t.Fatalf("double's type should decode to a Product, got %#v", entries[1].Type)
	}
	domSymb, ok := prod.Dom.(*term.Symb)
	if !ok || domSymb.Entry.Name != "Nat" {
		t.Fatalf("double's domain should reference the decoded Nat entry, got %#v", prod.Dom)
	}
}

func TestEncodeDecodeRoundTripWithSelfReferentialRule(t *testing.T) {
	sig := New("test/rec")
	nat := sig.AddStatic("Nat", term.Type)
	natT := &term.Symb{Entry: nat}
	rec := sig.AddDefinable("rec", term.NewProductSimple(natT, natT))

	// rule: rec($n) -> rec($n), a trivial but genuinely self-referential
	// right-hand side exercising the same-entry forward reference that the
	// placeholder-insert technique in Decode exists to support.
	lhs := term.NewArgsBinder([]string{"n"}, func(env []term.Term) []term.Term {
		return []term.Term{env[0]}
	})
	rhs := term.NewBinderN([]string{"n"}, func(env []term.Term) term.Term {
		return term.NewApp(&term.Symb{Entry: rec}, env[0])
	})
	sig.AttachRule(rec, &term.Rule{Arity: 1, NVars: 1, LHS: lhs, RHS: rhs})

	out, err := Encode(sig)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(out, noResolve)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	decodedRec, ok := got.Find("rec")
	if !ok {
		t.Fatalf("rec should be present after decode")
	}
	if len(decodedRec.Rules) != 1 {
		t.Fatalf("expected 1 rule on rec, got %d", len(decodedRec.Rules))
	}
	r := decodedRec.Rules[0]
	_, rhsTerm := r.RHS.OpenN()
	app, ok := rhsTerm.(*term.App)
	if !ok {
		t.Fatalf("rule RHS should decode to an application, got %#v", rhsTerm)
	}
	head, ok := app.Fun.(*term.Symb)
	if !ok || head.Entry != decodedRec {
		t.Fatalf("rule RHS should reference the same decoded rec entry by pointer, got %#v", app.Fun)
	}
}

func TestEncodeUnresolvedMetaFails(t *testing.T) {
	sig := New("test/bad")
	cell := term.NewMetaCell("?m", 0)
	sig.AddStatic("bad", term.NewMeta(cell, nil))

	if _, err := Encode(sig); err == nil {
		t.Fatalf("expected Encode to fail on an unresolved metavariable")
	}
}

func TestDecodeCrossModuleReference(t *testing.T) {
	foreign := New("test/foreign")
	foreignNat := foreign.AddStatic("Nat", term.Type)

	sig := New("test/importer")
	sig.AddStatic("alias", &term.Symb{Entry: foreignNat})

	out, err := Encode(sig)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	resolve := func(module, name string) (*term.Entry, error) {
		if module == "test/foreign" && name == "Nat" {
			return foreignNat, nil
		}
		return nil, errors.New("unknown reference " + module + "." + name)
	}
	got, err := Decode(out, resolve)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	alias, ok := got.Find("alias")
	if !ok {
		t.Fatalf("alias should be present")
	}
	symb, ok := alias.Type.(*term.Symb)
	if !ok || symb.Entry != foreignNat {
		t.Fatalf("alias's type should resolve to the foreign Nat entry by pointer, got %#v", alias.Type)
	}
}

func TestDecodeRejectsCorruptData(t *testing.T) {
	if _, err := Decode([]byte{0xff, 0xff, 0xff}, noResolve); err == nil {
		t.Fatalf("expected Decode to fail on corrupt input")
	}
}

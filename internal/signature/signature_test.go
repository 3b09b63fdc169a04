package signature

import (
	"testing"

	"github.com/lambdapi-go/kernel/internal/term"
)

type collectingWarner struct{ msgs []string }

func (c *collectingWarner) Warnf(format string, args ...interface{}) {
	c.msgs = append(c.msgs, format)
}

func TestAddStaticAndFind(t *testing.T) {
	sig := New("test/nat")
	nat := sig.AddStatic("Nat", term.Type)
	if nat.Index != 0 {
		t.Fatalf("first entry should have index 0, got %d", nat.Index)
	}
	found, ok := sig.Find("Nat")
	if !ok || found != nat {
		t.Fatalf("Find should return the entry just added")
	}
	if _, ok := sig.Find("Bool"); ok {
		t.Fatalf("Find should fail for an undeclared name")
	}
}

func TestRedeclarationWarnsAndReplaces(t *testing.T) {
	sig := New("test/redecl")
	w := &collectingWarner{}
	sig.SetWarner(w)

	first := sig.AddStatic("x", term.Type)
	second := sig.AddStatic("x", term.Kind)

	if len(w.msgs) != 1 {
		t.Fatalf("expected exactly one warning, got %d", len(w.msgs))
	}
	found, _ := sig.Find("x")
	if found != second {
		t.Fatalf("Find should resolve to the newest declaration")
	}
	if found == first {
		t.Fatalf("the old entry should no longer be reachable by name")
	}
	// The old entry keeps its own identity even though it is shadowed,
	// so a term built before the redeclaration stays valid.
	ref := &term.Symb{Entry: first}
	if ref.Entry.Type != term.Type {
		t.Fatalf("shadowed entry must retain its original type")
	}
}

func TestAttachRuleToStaticPanics(t *testing.T) {
	sig := New("test/panics")
	e := sig.AddStatic("s", term.Type)
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic attaching a rule to a static symbol")
		}
	}()
	sig.AttachRule(e, &term.Rule{})
}

func TestEntriesPreservesInsertionOrder(t *testing.T) {
	sig := New("test/order")
	sig.AddStatic("a", term.Type)
	sig.AddStatic("b", term.Type)
	sig.AddDefinable("c", term.Type)

	names := []string{}
	for _, e := range sig.Entries() {
		names = append(names, e.Name)
	}
	want := []string{"a", "b", "c"}
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("Entries() order mismatch: got %v, want %v", names, want)
		}
	}
}

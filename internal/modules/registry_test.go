package modules_test

import (
	"testing"

	"github.com/lambdapi-go/kernel/internal/modules"
	"github.com/lambdapi-go/kernel/internal/signature"
	"github.com/lambdapi-go/kernel/internal/term"
)

func TestRegistryReturnsSameObjectOnRepeatLoad(t *testing.T) {
	reg := modules.NewRegistry()
	compileCount := 0
	compile := func(path string) (*signature.Signature, error) {
		compileCount++
		sig := signature.New(path)
		sig.AddStatic("A", term.Type)
		return sig, nil
	}

	first, err := reg.Load("m/a", compile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, err := reg.Load("m/a", compile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if first != second {
		t.Fatalf("repeated Load for the same path must return the same signature object")
	}
	if compileCount != 1 {
		t.Fatalf("compile should run exactly once, ran %d times", compileCount)
	}
}

func TestRegistryDetectsImportCycle(t *testing.T) {
	reg := modules.NewRegistry()
	var compile modules.Compiler
	compile = func(path string) (*signature.Signature, error) {
		if path == "m/a" {
			return reg.Load("m/b", compile)
		}
		return reg.Load("m/a", compile)
	}
	if _, err := reg.Load("m/a", compile); err == nil {
		t.Fatalf("expected an import-cycle error")
	}
}

func TestResolverFindsSymbolInLoadedModule(t *testing.T) {
	reg := modules.NewRegistry()
	foreign, err := reg.Load("m/foreign", func(path string) (*signature.Signature, error) {
		sig := signature.New(path)
		sig.AddStatic("Nat", term.Type)
		return sig, nil
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	wantEntry, _ := foreign.Find("Nat")

	resolve := reg.Resolver()
	got, err := resolve("m/foreign", "Nat")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != wantEntry {
		t.Fatalf("resolver should return the exact same *term.Entry")
	}
}

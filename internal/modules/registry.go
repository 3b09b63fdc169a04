// Package modules implements the §5/§6 module loader: a compilation
// stack for cycle detection, a Registry guaranteeing that repeated
// loads of the same module path return the same *signature.Signature
// object, and (cache.go) an on-disk cache of already-compiled
// signatures so a process restart does not force recompiling every
// transitive dependency.
package modules

import (
	"fmt"

	"github.com/lambdapi-go/kernel/internal/signature"
	"github.com/lambdapi-go/kernel/internal/term"
)

// Compiler compiles a module from source given its path; it is the
// frontend's callback, invoked by the Registry only on a cache miss.
type Compiler func(path string) (*signature.Signature, error)

// Registry is the process-wide "registry mapping module paths to
// already-loaded signatures" of §5. It also carries the compilation
// stack used to detect import cycles, since both live for the
// lifetime of one compilation run.
type Registry struct {
	loaded  map[string]*signature.Signature
	stack   []string
	onStack map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{loaded: make(map[string]*signature.Signature), onStack: make(map[string]bool)}
}

// Load returns path's signature, compiling it via compile on first
// request. Repeated calls for the same path return the identical
// object (§6's "the kernel requires only that repeated calls for the
// same path return the same signature object").
func (r *Registry) Load(path string, compile Compiler) (*signature.Signature, error) {
	if sig, ok := r.loaded[path]; ok {
		return sig, nil
	}
	if r.onStack[path] {
		return nil, fmt.Errorf("modules: import cycle: %s is already being compiled (%v)", path, r.stack)
	}
	r.stack = append(r.stack, path)
	r.onStack[path] = true
	defer func() {
		r.stack = r.stack[:len(r.stack)-1]
		delete(r.onStack, path)
	}()

	sig, err := compile(path)
	if err != nil {
		return nil, err
	}
	r.loaded[path] = sig
	return sig, nil
}

// Get returns an already-loaded signature without compiling, for use
// building a Resolver over modules known to have loaded earlier in
// dependency order.
func (r *Registry) Get(path string) (*signature.Signature, bool) {
	sig, ok := r.loaded[path]
	return sig, ok
}

// Resolver builds a signature.Resolver resolving cross-module symbol
// references against everything this Registry has already loaded; a
// module's own object-file decode only ever references modules loaded
// earlier in the compilation stack, so this is always sufficient.
func (r *Registry) Resolver() signature.Resolver {
	return r.resolve
}

func (r *Registry) resolve(module, name string) (*term.Entry, error) {
	sig, ok := r.loaded[module]
	if !ok {
		return nil, fmt.Errorf("modules: cannot resolve %s.%s: module %q is not loaded", module, name, module)
	}
	e, ok := sig.Find(name)
	if !ok {
		return nil, fmt.Errorf("modules: module %q has no symbol %q", module, name)
	}
	return e, nil
}

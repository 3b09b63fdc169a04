package signature

import (
	"fmt"

	"github.com/lambdapi-go/kernel/internal/term"
	"google.golang.org/protobuf/encoding/protowire"
)

// The on-disk object-file format (spec §6 "External interfaces —
// signature persistence") is a small hand-rolled tag/length/value
// encoding built directly on protowire's varint and length-delimited
// primitives, without a .proto schema: the kernel has no RPC surface to
// justify pulling in protoc-generated stubs (see DESIGN.md), but the
// wire-format primitives themselves are exactly the right tool for a
// compact, self-delimiting binary container.
const (
	tagType = iota
	tagKind
	tagVar
	tagSymbol
	tagProduct
	tagAbs
	tagApp
)

func wrapBytes(b []byte) []byte { return protowire.AppendBytes(nil, b) }

func unwrapBytes(b []byte) (content, rest []byte, err error) {
	content, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, nil, fmt.Errorf("signature: corrupt length-delimited field")
	}
	return content, b[n:], nil
}

func appendVarint(dst []byte, v uint64) []byte { return protowire.AppendVarint(dst, v) }

func consumeVarint(b []byte) (uint64, []byte, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, nil, fmt.Errorf("signature: corrupt varint field")
	}
	return v, b[n:], nil
}

// encodeCtx tracks, during one term's encoding, the stack of markers in
// scope so that both ordinary bound variables (pushed by Product/Abs)
// and rule pattern-variable markers (passed in up front) can be found by
// pointer identity and turned into a depth or index on the wire.
// Pattern markers and bound variables share one namespace here: nothing
// in the wire format needs to distinguish them beyond the position they
// occupy, since decode always rebuilds the right kind of node from
// context (Product/Abs bodies vs. a rule's own argument/result terms).
type encodeCtx struct {
	scope []term.Term
}

func (c *encodeCtx) depthOf(v term.Term) (int, bool) {
	for i := len(c.scope) - 1; i >= 0; i-- {
		if c.scope[i] == v {
			return len(c.scope) - 1 - i, true
		}
	}
	return 0, false
}

func (c *encodeCtx) push(v term.Term) { c.scope = append(c.scope, v) }
func (c *encodeCtx) pop()             { c.scope = c.scope[:len(c.scope)-1] }

func (c *encodeCtx) encodeTerm(t term.Term) []byte {
	t = term.Unfold(t)
	switch x := t.(type) {
	case term.TType:
		return appendVarint(nil, tagType)
	case term.TKind:
		return appendVarint(nil, tagKind)
	case *term.Var:
		depth, ok := c.depthOf(x)
		if !ok {
			panic("signature: cannot encode a term with a variable free outside its binder or rule scope")
		}
		return appendVarint(appendVarint(nil, tagVar), uint64(depth))
	case *term.Symb:
		out := appendVarint(nil, tagSymbol)
		out = append(out, wrapBytes([]byte(x.Entry.Module))...)
		out = append(out, wrapBytes([]byte(x.Entry.Name))...)
		return out
	case *term.Product:
		domB := c.encodeTerm(x.Dom)
		v, body := x.Cod.Open()
		c.push(v)
		bodyB := c.encodeTerm(body)
		c.pop()
		out := appendVarint(nil, tagProduct)
		out = append(out, wrapBytes(domB)...)
		out = append(out, wrapBytes(bodyB)...)
		out = append(out, wrapBytes([]byte(hint0(x.Cod.Hints)))...)
		return out
	case *term.Abs:
		domB := c.encodeTerm(x.Dom)
		v, body := x.Body.Open()
		c.push(v)
		bodyB := c.encodeTerm(body)
		c.pop()
		out := appendVarint(nil, tagAbs)
		out = append(out, wrapBytes(domB)...)
		out = append(out, wrapBytes(bodyB)...)
		out = append(out, wrapBytes([]byte(hint0(x.Body.Hints)))...)
		return out
	case *term.App:
		funB := c.encodeTerm(x.Fun)
		argB := c.encodeTerm(x.Arg)
		out := appendVarint(nil, tagApp)
		out = append(out, wrapBytes(funB)...)
		out = append(out, wrapBytes(argB)...)
		return out
	case *term.Meta:
		panic("signature: cannot encode an unresolved metavariable; a signature stores only fully type-checked, closed terms")
	case *term.PatVar:
		panic("signature: cannot encode a bare pattern variable outside a rule's own LHS/RHS")
	default:
		panic("signature: unencodable term node")
	}
}

func hint0(hints []string) string {
	if len(hints) > 0 {
		return hints[0]
	}
	return "x"
}

// Resolver looks up a symbol entry by (module path, name), resolving
// cross-module references encountered while decoding. Decoding the
// module currently being loaded resolves against its own partial arena
// first; Resolver is only consulted for foreign-module references,
// mirroring the external "load_signature" collaborator of spec §6.
type Resolver func(module, name string) (*term.Entry, error)

// decodeTerm rebuilds a term from its wire encoding. Eager parts (a
// Product/Abs's domain, a symbol reference, the overall tag/length
// structure) are validated on the spot; the body of a binder is decoded
// again each time something opens or instantiates it, since
// reconstructing a HOAS binder from a flat encoding is inherently a
// closure capturing the bytes to decode later. A malformed encoding
// surfaces as a panic. Panics from the eager parts are caught at the
// Decode API boundary; a malformed binder body or rule side panics only
// when it is later opened or instantiated, outside Decode.
func decodeTerm(b []byte, scope []term.Term, selfPath string, self *Signature, resolve Resolver) term.Term {
	tag, b, err := consumeVarint(b)
	must(err)
	switch tag {
	case tagType:
		return term.Type
	case tagKind:
		return term.Kind
	case tagVar:
		depth, _, err := consumeVarint(b)
		must(err)
		idx := len(scope) - 1 - int(depth)
		if idx < 0 || idx >= len(scope) {
			panic(fmt.Errorf("signature: variable depth %d out of range", depth))
		}
		return scope[idx]
	case tagSymbol:
		modB, rest, err := unwrapBytes(b)
		must(err)
		nameB, _, err := unwrapBytes(rest)
		must(err)
		module, name := string(modB), string(nameB)
		if module == selfPath {
			e, ok := self.Find(name)
			if !ok {
				panic(fmt.Errorf("signature: forward reference to %q not yet declared in %q", name, module))
			}
			return &term.Symb{Entry: e}
		}
		e, err := resolve(module, name)
		must(err)
		return &term.Symb{Entry: e}
	case tagProduct, tagAbs:
		domB, rest, err := unwrapBytes(b)
		must(err)
		bodyB, rest, err := unwrapBytes(rest)
		must(err)
		hintB, _, err := unwrapBytes(rest)
		must(err)
		dom := decodeTerm(domB, scope, selfPath, self, resolve)
		hint := string(hintB)
		binder := term.NewBinder1(hint, func(x term.Term) term.Term {
			extended := append(append([]term.Term{}, scope...), x)
			return decodeTerm(bodyB, extended, selfPath, self, resolve)
		})
		if tag == tagProduct {
			return &term.Product{Dom: dom, Cod: binder}
		}
		return &term.Abs{Dom: dom, Body: binder}
	case tagApp:
		funB, rest, err := unwrapBytes(b)
		must(err)
		argB, _, err := unwrapBytes(rest)
		must(err)
		fun := decodeTerm(funB, scope, selfPath, self, resolve)
		arg := decodeTerm(argB, scope, selfPath, self, resolve)
		return term.NewApp(fun, arg)
	default:
		panic(fmt.Errorf("signature: unknown term tag %d", tag))
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

const (
	entryStatic    = 0
	entryDefinable = 1
)

// Encode serializes a signature to the binary object-file format. It
// fails only if the signature contains a term that violates a kernel
// invariant (an open term, an unresolved metavariable) — which should
// never happen for a signature built solely through AddStatic,
// AddDefinable, and a rule checker that already passed.
func Encode(sig *Signature) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			if e, ok := r.(error); ok {
				err = fmt.Errorf("signature: encode failed: %w", e)
			} else {
				err = fmt.Errorf("signature: encode failed: %v", r)
			}
		}
	}()

	out = append(out, wrapBytes([]byte(sig.Path))...)
	entries := sig.Entries()
	out = appendVarint(out, uint64(len(entries)))
	for _, e := range entries {
		kindByte := entryStatic
		if e.Kind == term.Definable {
			kindByte = entryDefinable
		}
		out = appendVarint(out, uint64(kindByte))
		out = append(out, wrapBytes([]byte(e.Name))...)

		ctx := &encodeCtx{}
		typeB := ctx.encodeTerm(e.Type)
		out = append(out, wrapBytes(typeB)...)

		out = appendVarint(out, uint64(len(e.Rules)))
		for _, r := range e.Rules {
			out = appendVarint(out, uint64(r.Arity))
			out = appendVarint(out, uint64(r.NVars))

			markers := make([]term.Term, r.NVars)
			for i := range markers {
				markers[i] = term.NewVar("$p")
			}
			lhsArgs := r.LHS.Instantiate(markers...)
			rhsTerm := r.RHS.Instantiate(markers...)

			rctx := &encodeCtx{scope: append([]term.Term{}, markers...)}
			for _, a := range lhsArgs {
				out = append(out, wrapBytes(rctx.encodeTerm(a))...)
			}
			out = append(out, wrapBytes(rctx.encodeTerm(rhsTerm))...)
		}
	}
	return out, nil
}

// Decode deserializes a signature previously produced by Encode.
// resolve is consulted for any reference to a symbol from a different
// module; pass a resolver backed by the module registry (see package
// modules) to support cross-module rules and types.
func Decode(data []byte, resolve Resolver) (sig *Signature, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("signature: decode failed: %w", e)
			} else {
				err = fmt.Errorf("signature: decode failed: %v", r)
			}
			sig = nil
		}
	}()

	pathB, rest, err := unwrapBytes(data)
	if err != nil {
		return nil, err
	}
	path := string(pathB)
	sig = New(path)

	count, rest, err := consumeVarint(rest)
	if err != nil {
		return nil, err
	}

	for i := uint64(0); i < count; i++ {
		var kindByte uint64
		kindByte, rest, err = consumeVarint(rest)
		if err != nil {
			return nil, err
		}
		var nameB []byte
		nameB, rest, err = unwrapBytes(rest)
		if err != nil {
			return nil, err
		}
		name := string(nameB)

		var typeB []byte
		typeB, rest, err = unwrapBytes(rest)
		if err != nil {
			return nil, err
		}

		kind := term.Static
		if kindByte == entryDefinable {
			kind = term.Definable
		}
		// Placeholder type so self-references within the entry's own
		// type (or later rules) can already find this entry by name;
		// the real type is filled in immediately below.
		e := sig.insert(name, kind, term.Type)
		e.Type = decodeTerm(typeB, nil, path, sig, resolve)

		var ruleCount uint64
		ruleCount, rest, err = consumeVarint(rest)
		if err != nil {
			return nil, err
		}
		for j := uint64(0); j < ruleCount; j++ {
			var arity, nvars uint64
			arity, rest, err = consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			nvars, rest, err = consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			argBytes := make([][]byte, arity)
			for k := range argBytes {
				argBytes[k], rest, err = unwrapBytes(rest)
				if err != nil {
					return nil, err
				}
			}
			var rhsBytes []byte
			rhsBytes, rest, err = unwrapBytes(rest)
			if err != nil {
				return nil, err
			}

			hints := make([]string, nvars)
			for k := range hints {
				hints[k] = "$p"
			}
			lhs := term.NewArgsBinder(hints, func(env []term.Term) []term.Term {
				results := make([]term.Term, len(argBytes))
				for k, ab := range argBytes {
					results[k] = decodeTerm(ab, env, path, sig, resolve)
				}
				return results
			})
			rhs := term.NewBinderN(hints, func(env []term.Term) term.Term {
				return decodeTerm(rhsBytes, env, path, sig, resolve)
			})
			sig.AttachRule(e, &term.Rule{Arity: int(arity), NVars: int(nvars), LHS: lhs, RHS: rhs})
		}
	}
	return sig, nil
}

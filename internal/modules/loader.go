package modules

import (
	"os"

	"github.com/lambdapi-go/kernel/internal/signature"
)

// Loader ties a Registry to an on-disk Cache and a source Compiler,
// implementing §6's load_signature(current, path): a cache hit at a
// matching mtime decodes the cached object file instead of invoking
// compile, and a miss compiles from source and writes the cache back.
type Loader struct {
	Registry *Registry
	Cache    *Cache
	Compile  Compiler
}

// Load resolves path to a signature, preferring the on-disk cache (if
// present) over recompiling srcPath from scratch.
func (l *Loader) Load(path, srcPath string) (*signature.Signature, error) {
	return l.Registry.Load(path, func(path string) (*signature.Signature, error) {
		if l.Cache == nil {
			return l.Compile(path)
		}
		info, err := os.Stat(srcPath)
		if err != nil {
			return l.Compile(path)
		}
		mtime := info.ModTime().UnixNano()
		if blob, ok, err := l.Cache.Get(path, mtime); err == nil && ok {
			if sig, err := signature.Decode(blob, l.Registry.Resolver()); err == nil {
				return sig, nil
			}
		}
		sig, err := l.Compile(path)
		if err != nil {
			return nil, err
		}
		if blob, err := signature.Encode(sig); err == nil {
			_ = l.Cache.Put(path, mtime, blob)
		}
		return sig, nil
	})
}

package modules

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lambdapi-go/kernel/internal/config"
	"github.com/lambdapi-go/kernel/internal/utils"
)

// SourceResolver turns a module path (as it appears on the right-hand
// side of an import, or as given on a CLI invocation) into the
// on-disk source file to compile, searching a fixed list of
// directories the way a KernelConfig.SearchPaths entry does.
type SourceResolver struct {
	SearchPaths []string
}

// Resolve finds path's source file: path itself if it already names a
// file with a recognized extension, otherwise path plus each
// SourceFileExtensions suffix tried in each search directory in turn.
func (r *SourceResolver) Resolve(baseDir, path string) (srcPath, modulePath string, err error) {
	path = utils.ResolveImportPath(baseDir, path)
	modulePath = utils.ExtractModuleName(path)

	if config.HasSourceExt(path) {
		if _, statErr := os.Stat(path); statErr == nil {
			return path, modulePath, nil
		}
	}

	dirs := append([]string{utils.GetModuleDir(path)}, r.SearchPaths...)
	for _, dir := range dirs {
		for _, ext := range config.SourceFileExtensions {
			candidate := filepath.Join(dir, modulePath+ext)
			if _, statErr := os.Stat(candidate); statErr == nil {
				return candidate, modulePath, nil
			}
		}
	}
	return "", "", fmt.Errorf("modules: cannot find source for %q in %v", path, dirs)
}

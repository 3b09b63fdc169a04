// Package utils holds small path helpers shared by the module loader
// and its CLI driver, adapted from the teacher's own utils package
// (which did the same job for its own import resolver).
package utils

import (
	"path/filepath"

	"github.com/lambdapi-go/kernel/internal/config"
)

// ResolveImportPath resolves an import path relative to a base
// directory if it starts with a dot; otherwise it is returned as is
// (e.g. a flat module path with no directory component).
func ResolveImportPath(baseDir, importPath string) string {
	if len(importPath) > 0 && importPath[0] == '.' {
		if baseDir != "." && baseDir != "" {
			return filepath.Join(baseDir, importPath)
		}
	}
	return importPath
}

// ExtractModuleName derives a module name from a source file path: the
// base filename with any recognized source extension trimmed.
func ExtractModuleName(path string) string {
	name := filepath.Base(path)
	return config.TrimSourceExt(name)
}

// GetModuleDir returns the directory a module's sibling files (its
// object-file cache, other files of a multi-file module) live in: a
// source file's own directory, or the path itself if it has no
// recognized source extension.
func GetModuleDir(path string) string {
	if config.HasSourceExt(path) {
		return filepath.Dir(path)
	}
	return path
}

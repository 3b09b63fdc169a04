// Command kernel is the CLI entry point of spec §A.3: it drives
// internal/pipeline over a source file's sequence of top-level
// commands (§6 — new_symbol, define, add_rules, check, infer,
// evaluate, check_convertible map 1:1 onto the file's decls) and,
// given a module path instead of a file, exercises the §5/§6 module
// loader (compile, with an on-disk signature cache). Flag parsing is
// manual, matching the teacher's own cmd/funxy/main.go rather than a
// flag-package framework.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/lambdapi-go/kernel/internal/config"
	"github.com/lambdapi-go/kernel/internal/diagnostics"
	"github.com/lambdapi-go/kernel/internal/lexer"
	"github.com/lambdapi-go/kernel/internal/modules"
	"github.com/lambdapi-go/kernel/internal/parser"
	"github.com/lambdapi-go/kernel/internal/pipeline"
	"github.com/lambdapi-go/kernel/internal/prettyprinter"
	"github.com/lambdapi-go/kernel/internal/signature"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	if os.Getenv("KERNEL_TEST_MODE") == "1" {
		config.IsTestMode = true
	}

	switch os.Args[1] {
	case "compile":
		runCompile(os.Args[2:])
	case "-help", "--help", "help":
		usage()
	default:
		runFile(os.Args[1:])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  kernel <file>                run every command in <file> against a fresh signature")
	fmt.Fprintln(os.Stderr, "  kernel compile <module> [-search dir]... [-cache path]")
	fmt.Fprintln(os.Stderr, "                                load <module> through the module registry, printing its symbols")
}

// runFile implements the common case: one file holds a sequence of §6
// commands (new_symbol/define/add_rules/check/infer/evaluate/
// check_convertible, spelled as static/definable/def/rules/check/
// infer/eval/convertible in internal/parser's dialect), executed
// in order against one fresh signature.
func runFile(args []string) {
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		fatal("reading %s: %v", path, err)
	}

	decls, err := parser.New(lexer.New(string(src))).ParseProgram()
	if err != nil {
		fatal("%s: %v", path, err)
	}

	modPath := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	sig := signature.New(modPath)
	diags := &diagnostics.Diagnostics{}
	sig.SetWarner(diags)

	p := pipeline.New(sig, diags)
	results, errs := p.Run(decls)

	pp := prettyprinter.New(modPath)
	failed := false
	for i, err := range errs {
		if err != nil {
			failed = true
			fmt.Fprintf(os.Stderr, "%s:%d: error: %v\n", path, decls[i].Position().Line, err)
			continue
		}
		if results[i] != nil {
			fmt.Println(results[i].String(pp))
		}
	}
	for _, w := range diags.Warnings {
		fmt.Fprintf(os.Stderr, "%s: warning: %s\n", path, w)
	}
	if failed {
		os.Exit(1)
	}
}

// runCompile drives the §5/§6 module loader: resolve module on the
// given search paths, compile it (through a Compiler callback that
// parses and runs the file the same way runFile does), and report its declared
// symbols. A SQLite cache keeps repeat compiles of the same module
// path across process runs cheap.
func runCompile(args []string) {
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}
	modPath := args[0]
	var searchPaths []string
	cachePath := ""
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "-search":
			i++
			if i < len(args) {
				searchPaths = append(searchPaths, args[i])
			}
		case "-cache":
			i++
			if i < len(args) {
				cachePath = args[i]
			}
		}
	}

	resolver := &modules.SourceResolver{SearchPaths: searchPaths}
	reg := modules.NewRegistry()

	var cache *modules.Cache
	if cachePath != "" {
		c, err := modules.OpenCache(cachePath)
		if err != nil {
			fatal("opening cache: %v", err)
		}
		defer c.Close()
		cache = c
	}

	var compile modules.Compiler
	compile = func(path string) (*signature.Signature, error) {
		srcPath, name, err := resolver.Resolve(".", path)
		if err != nil {
			return nil, err
		}
		src, err := os.ReadFile(srcPath)
		if err != nil {
			return nil, err
		}
		decls, err := parser.New(lexer.New(string(src))).ParseProgram()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", srcPath, err)
		}
		sig := signature.New(name)
		p := pipeline.New(sig, nil)
		_, errs := p.Run(decls)
		for _, e := range errs {
			if e != nil {
				return nil, e
			}
		}
		return sig, nil
	}

	loader := &modules.Loader{Registry: reg, Cache: cache, Compile: compile}
	srcPath, name, err := resolver.Resolve(".", modPath)
	if err != nil {
		fatal("%v", err)
	}
	sig, err := loader.Load(name, srcPath)
	if err != nil {
		fatal("%v", err)
	}

	pp := prettyprinter.New(name)
	for _, e := range sig.Entries() {
		fmt.Printf("%s : %s\n", e.Name, pp.Print(e.Type))
	}
}

// colorize reports whether stderr output should carry ANSI color,
// mirroring the teacher's own TTY/TERM detection in builtins_term.go.
func colorize() bool {
	fd := os.Stderr.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

func fatal(format string, args ...interface{}) {
	prefix := "kernel: "
	if colorize() {
		prefix = "\033[31mkernel:\033[0m "
	}
	fmt.Fprintf(os.Stderr, prefix+format+"\n", args...)
	os.Exit(1)
}

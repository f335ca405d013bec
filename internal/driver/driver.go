// Package driver implements the compile pipeline shared by cmd/velac and
// internal/drivertest: lex, parse, resolve, infer, monomorphize, lower,
// optimize. Factored out of the CLI so the `// Expect :` end-to-end test
// harness can run the same pipeline against an io.Writer instead of
// os.Stdout, following ailang's separation between cmd/ailang/main.go
// (thin CLI) and internal/repl (the reusable engine the CLI wraps).
package driver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/config"
	"github.com/velalang/velac/internal/infer"
	"github.com/velalang/velac/internal/ir"
	"github.com/velalang/velac/internal/lexer"
	"github.com/velalang/velac/internal/lower"
	"github.com/velalang/velac/internal/mono"
	"github.com/velalang/velac/internal/parser"
	"github.com/velalang/velac/internal/report"
	"github.com/velalang/velac/internal/resolve"
	"github.com/velalang/velac/internal/symbol"
	"github.com/velalang/velac/internal/typedast"
	"github.com/velalang/velac/internal/types"
)

// Exit codes per spec.md §6.
const (
	ExitOK    = 0
	ExitError = 65
)

// Options configures one Compile invocation.
type Options struct {
	DumpPath   string // if set, write the AST/typed-AST dump here
	EmitIR     bool   // if set, print the textual IR to stdout
	ConfigPath string // if empty, defaults to velac.yaml next to the source
	SkipIRFile bool   // if true, never write lowered.ir (used by tests)
}

// Compile runs the full pipeline against the source at path, writing
// compiler output to stdout and diagnostics to stderr, and returns the
// process exit code the caller should use.
func Compile(path string, opts Options, stdout, stderr io.Writer) int {
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "error: cannot read %s: %v\n", path, err)
		return ExitError
	}
	return CompileSource(path, raw, opts, stdout, stderr)
}

// CompileSource runs the pipeline against already-read source bytes,
// reporting diagnostics as if they came from path. Split out from Compile
// so tests can exercise the pipeline against in-memory fixtures without
// touching the filesystem for the input side.
func CompileSource(path string, raw []byte, opts Options, stdout, stderr io.Writer) int {
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = filepath.Join(filepath.Dir(path), "velac.yaml")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitError
	}

	src := lexer.Normalize(raw)
	symbols := symbol.NewTable()
	rep := report.New(path)

	p := parser.New(src, symbols, rep)
	prog := p.ParseProgram()
	if rep.HasErrors() {
		rep.Emit(stderr)
		return ExitError
	}

	res := resolve.New(symbols)
	if !res.Resolve(prog, rep) || rep.HasErrors() {
		rep.Emit(stderr)
		return ExitError
	}

	alloc := types.NewAllocator()
	env := types.NewEnv(symbols, alloc)
	typedProg, ok := infer.Run(prog, env, rep)
	if !ok {
		rep.Emit(stderr)
		if opts.DumpPath != "" {
			writeDump(stderr, opts.DumpPath, ast.Dump(prog, symbols))
		}
		return ExitError
	}

	if opts.DumpPath != "" {
		writeDump(stderr, opts.DumpPath, typedast.Dump(typedProg, symbols))
	}

	specialized := mono.Run(typedProg, symbols)

	irProg := lower.Lower(specialized, symbols)
	irProg = lower.Optimize(irProg)

	dumped := ir.Dump(irProg, symbols)
	if !opts.SkipIRFile {
		if err := os.WriteFile("lowered.ir", []byte(dumped), 0o644); err != nil {
			fmt.Fprintf(stderr, "error: failed to write lowered.ir: %v\n", err)
			return ExitError
		}
	}

	if opts.EmitIR || cfg.EmitIR {
		fmt.Fprintln(stdout, dumped)
	}

	fmt.Fprintf(stdout, "compiled %s\n", path)
	return ExitOK
}

func writeDump(stderr io.Writer, path, content string) {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		fmt.Fprintf(stderr, "warning: failed to write dump to %s: %v\n", path, err)
	}
}

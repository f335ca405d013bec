// Command velac is the compiler driver's CLI: flag parsing, color output,
// and the REPL wrap internal/driver's pipeline, following ailang's
// cmd/ailang/main.go (flag-based dispatch, fatih/color output) and
// internal/repl/repl.go (peterh/liner REPL) for CLI shape.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/driver"
	"github.com/velalang/velac/internal/lexer"
	"github.com/velalang/velac/internal/parser"
	"github.com/velalang/velac/internal/report"
	"github.com/velalang/velac/internal/symbol"
)

var (
	red  = color.New(color.FgRed).SprintFunc()
	bold = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		dumpPath   = flag.String("d", "", "dump the AST (or typed AST, once inference succeeds) to FILE")
		dumpPathLF = flag.String("dump", "", "long form of -d")
		emitIR     = flag.Bool("emit-ir", false, "print the textual IR to stdout after lowering")
		configPath = flag.String("config", "", "path to velac.yaml (defaults to velac.yaml next to the source file)")
	)
	flag.Parse()

	// color.NoColor already defaults from the NO_COLOR/terminal heuristics
	// fatih/color applies internally; gate explicitly on stdout being a
	// real terminal so piped/redirected output never carries escapes.
	color.NoColor = !isatty.IsTerminal(os.Stdout.Fd())

	dump := *dumpPath
	if dump == "" {
		dump = *dumpPathLF
	}

	if flag.NArg() == 0 {
		runREPL()
		return
	}

	code := driver.Compile(flag.Arg(0), driver.Options{
		DumpPath:   dump,
		EmitIR:     *emitIR,
		ConfigPath: *configPath,
	}, os.Stdout, os.Stderr)
	os.Exit(code)
}

// runREPL starts a line-oriented REPL: each line is lexed and parsed
// independently and the resulting AST (or a diagnostic) is printed, per
// spec.md §6. It never runs inference, since a REPL line is rarely a
// complete, self-contained program with every name and struct in scope.
func runREPL() {
	fmt.Printf("%s\n", bold("velac"))
	fmt.Println("Type an expression or declaration; Ctrl-D to exit.")

	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(true)

	symbols := symbol.NewTable()

	for {
		input, err := line.Prompt("velac> ")
		if err == io.EOF {
			fmt.Println()
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
			continue
		}
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		rep := report.New("<repl>")
		p := parser.New(lexer.Normalize([]byte(input)), symbols, rep)
		prog := p.ParseProgram()
		if rep.HasErrors() {
			rep.Emit(os.Stderr)
			continue
		}
		fmt.Print(ast.Dump(prog, symbols))
	}
}

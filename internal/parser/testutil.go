package parser

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/report"
	"github.com/velalang/velac/internal/symbol"
)

// update controls whether golden files are regenerated or compared.
// Usage: go test -update ./internal/parser
var update = flag.Bool("update", false, "update golden files")

// goldenCompare parses src, dumps the resulting tree, and compares it
// against testdata/parser/<name>.golden.
func goldenCompare(t *testing.T, name, src string) {
	t.Helper()

	symbols := symbol.NewTable()
	rep := report.New(name + ".vl")
	prog := New([]byte(src), symbols, rep).ParseProgram()
	if rep.HasErrors() {
		t.Fatalf("unexpected parse errors for %s: %v", name, rep.Diagnostics())
	}
	got := ast.Dump(prog, symbols)

	path := filepath.Join("testdata", "parser", name+".golden")

	if *update {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			t.Fatalf("failed to write golden file %s: %v", path, err)
		}
		t.Logf("updated golden file: %s", path)
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v\nrun with -update to create it", path, err)
	}

	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Errorf("golden mismatch for %s (-want +got):\n%s", name, diff)
	}
}

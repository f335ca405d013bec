// Package drivertest implements the `// Expect :` end-to-end test
// convention from spec.md §6: a fixture source file is scanned for
// comments of the form `// Expect : <substring>`, the file is compiled
// with internal/driver, and each expected substring must appear in the
// compiler's output (stdout or stderr; the two streams are not told
// apart). Grounded on ailang's testutil/golden.go pattern of a
// small package-level helper consumed directly by ordinary _test.go
// files, rather than a standalone test-runner binary.
package drivertest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/velalang/velac/internal/driver"
)

const marker = "// Expect :"

// Expectations scans src line by line and returns the text following each
// `// Expect :` marker, in source order.
func Expectations(src []byte) []string {
	var want []string
	for _, line := range strings.Split(string(src), "\n") {
		idx := strings.Index(line, marker)
		if idx == -1 {
			continue
		}
		want = append(want, strings.TrimSpace(line[idx+len(marker):]))
	}
	return want
}

// Run compiles src through internal/driver and fails t unless every
// `// Expect :` marker's text appears in the captured stdout or stderr. It never
// writes lowered.ir, so fixtures never pollute the working directory.
func Run(t *testing.T, path string, src []byte) {
	t.Helper()

	want := Expectations(src)
	if len(want) == 0 {
		t.Fatalf("fixture %s has no `// Expect :` markers", path)
	}

	var stdout, stderr bytes.Buffer
	driver.CompileSource(path, src, driver.Options{SkipIRFile: true, EmitIR: true}, &stdout, &stderr)

	combined := stdout.String() + stderr.String()
	for _, w := range want {
		if !strings.Contains(combined, w) {
			t.Errorf("fixture %s: expected output to contain %q, got:\n%s", path, w, combined)
		}
	}
}

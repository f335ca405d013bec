// Package report implements the diagnostic reporter shared by every
// compiler phase, following the ailang internal/errors.Report convention
// of a single structured value per diagnostic (phase, message, span)
// trimmed to this compiler's synchronous, single-file scope.
package report

import (
	"fmt"
	"io"

	"github.com/velalang/velac/internal/ast"
)

// Diagnostic is one reported error.
type Diagnostic struct {
	Phase   string
	Message string
	Span    ast.Span
}

// Reporter accumulates diagnostics across a single compilation. The lex,
// parse, resolve and typecheck phases share one Reporter so the driver can
// emit every collected error before exiting; monomorphization and lowering
// take no Reporter and report nothing.
type Reporter struct {
	file        string
	diagnostics []Diagnostic
}

// New creates a Reporter for the named source file (used only for display).
func New(file string) *Reporter {
	return &Reporter{file: file}
}

// Error records a diagnostic. It never stops the caller; phases decide for
// themselves whether to keep recovering after an error is recorded.
func (r *Reporter) Error(phase, message string, span ast.Span) {
	r.diagnostics = append(r.diagnostics, Diagnostic{Phase: phase, Message: message, Span: span})
}

// Errorf is a convenience wrapper around Error with fmt.Sprintf formatting.
func (r *Reporter) Errorf(phase string, span ast.Span, format string, args ...interface{}) {
	r.Error(phase, fmt.Sprintf(format, args...), span)
}

// HasErrors reports whether any diagnostic has been recorded.
func (r *Reporter) HasErrors() bool {
	return len(r.diagnostics) > 0
}

// Diagnostics returns the diagnostics recorded so far, in report order.
func (r *Reporter) Diagnostics() []Diagnostic {
	return r.diagnostics
}

// Pop removes the most recently recorded diagnostic, if any. Used by
// inference to undo a speculative error when a fallback rule (e.g. the
// string-concatenation retry for `+`) later succeeds.
func (r *Reporter) Pop() {
	if len(r.diagnostics) > 0 {
		r.diagnostics = r.diagnostics[:len(r.diagnostics)-1]
	}
}

// Emit writes every collected diagnostic to w, one per line, with file
// position. The driver calls this before exiting non-zero.
func (r *Reporter) Emit(w io.Writer) {
	for _, d := range r.diagnostics {
		fmt.Fprintf(w, "%s:%s: %s error: %s\n", r.file, d.Span.Start, d.Phase, d.Message)
	}
}

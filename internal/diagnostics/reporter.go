// Package diagnostics formats structured reports about instruction-layer
// findings — simplification traces, invariant violations — in the same
// Rust-like styled register the teacher's own error reporter uses for
// source diagnostics, adapted for a layer with no source spans of its own.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"circuitir/internal/ssa"
)

// Level is the severity of a Diagnostic.
type Level string

const (
	Error Level = "error"
	Warn  Level = "warning"
	Note  Level = "note"
)

// Diagnostic is a single structured finding: a classification or
// simplification outcome, located by call stack rather than by file
// position (this layer has no lexical source of its own; internal/textir
// attaches real positions when one exists).
type Diagnostic struct {
	Level     Level
	Code      string
	Message   string
	CallStack ssa.CallStack
	Notes     []string
}

// Reporter formats Diagnostics for a terminal.
type Reporter struct{}

// NewReporter returns a Reporter. It carries no state: unlike the teacher's
// source-backed reporter, nothing here depends on file content.
func NewReporter() *Reporter { return &Reporter{} }

func (r *Reporter) levelColor(level Level) func(a ...interface{}) string {
	switch level {
	case Error:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case Warn:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	default:
		return color.New(color.FgCyan, color.Bold).SprintFunc()
	}
}

// Format renders d the way the teacher's FormatError renders a
// CompilerError: a colored header line, then the call stack as "-->"
// location lines, then any notes.
func (r *Reporter) Format(d Diagnostic) string {
	var out strings.Builder
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	levelColor := r.levelColor(d.Level)

	if d.Code != "" {
		out.WriteString(fmt.Sprintf("%s[%s]: %s\n", levelColor(string(d.Level)), d.Code, bold(d.Message)))
	} else {
		out.WriteString(fmt.Sprintf("%s: %s\n", levelColor(string(d.Level)), bold(d.Message)))
	}

	for _, frame := range d.CallStack {
		out.WriteString(fmt.Sprintf("  %s %s:%d\n", dim("-->"), frame.File, frame.Line))
	}

	for _, note := range d.Notes {
		noteLabel := color.New(color.FgCyan).SprintFunc()
		out.WriteString(fmt.Sprintf("  %s %s: %s\n", dim("="), noteLabel("note"), note))
	}

	return out.String()
}

// SimplifyDiagnostic builds the Diagnostic describing a single
// Simplify(...) outcome, keyed by the SimplifyResult variant returned. It
// returns false for SimplifyNone, which is not diagnostic-worthy.
func SimplifyDiagnostic(result ssa.SimplifyResult, callStack ssa.CallStack) (Diagnostic, bool) {
	switch {
	case ssa.IsNone(result):
		return Diagnostic{}, false
	case ssa.IsRemove(result):
		return Diagnostic{Level: Note, Code: CodeRemoved, Message: "instruction removed", CallStack: callStack}, true
	case mustInstructions(result):
		return Diagnostic{Level: Note, Code: CodeSimplifiedToInstructions, Message: "instruction rewritten", CallStack: callStack}, true
	default:
		return Diagnostic{Level: Note, Code: CodeSimplifiedToValue, Message: "instruction folded to a value", CallStack: callStack}, true
	}
}

func mustInstructions(result ssa.SimplifyResult) bool {
	_, ok := ssa.Instructions(result)
	return ok
}

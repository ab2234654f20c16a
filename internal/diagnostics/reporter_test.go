package diagnostics_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/fatih/color"

	"circuitir/internal/dfg"
	"circuitir/internal/diagnostics"
	"circuitir/internal/ssa"
)

func init() { color.NoColor = true }

// TestFormatIncludesCallStackFrames covers the shape of a rendered
// Diagnostic: the message on the header line, one "-->" line per call
// stack frame in order, and a trailing note line.
func TestFormatIncludesCallStackFrames(t *testing.T) {
	r := diagnostics.NewReporter()
	d := diagnostics.Diagnostic{
		Level:   diagnostics.Warn,
		Code:    diagnostics.CodeDanglingOperand,
		Message: "operand has no definition",
		CallStack: ssa.CallStack{
			{File: "outer.cir", Line: 3},
			{File: "inner.cir", Line: 9},
		},
		Notes: []string{"check the producing instruction"},
	}

	out := r.Format(d)

	if !strings.Contains(out, diagnostics.CodeDanglingOperand) {
		t.Errorf("Format output missing code, got %q", out)
	}
	if !strings.Contains(out, "operand has no definition") {
		t.Errorf("Format output missing message, got %q", out)
	}
	if !strings.Contains(out, "outer.cir:3") || !strings.Contains(out, "inner.cir:9") {
		t.Errorf("Format output missing call stack frames, got %q", out)
	}
	outerIdx := strings.Index(out, "outer.cir:3")
	innerIdx := strings.Index(out, "inner.cir:9")
	if outerIdx == -1 || innerIdx == -1 || outerIdx > innerIdx {
		t.Errorf("call stack frames out of order in %q", out)
	}
	if !strings.Contains(out, "check the producing instruction") {
		t.Errorf("Format output missing note, got %q", out)
	}
}

// TestSimplifyDiagnosticVariants covers three branches of
// SimplifyDiagnostic's dispatch over the SimplifyResult variants: none (no
// diagnostic), remove, and folded-to-a-value. The rewritten-to-instructions
// branch is not exercised here.
func TestSimplifyDiagnosticVariants(t *testing.T) {
	g := dfg.New()
	block := ssa.BasicBlockId(0)
	c1 := g.AddParam(block, ssa.Bool())
	c2 := g.AddParam(block, ssa.Bool())

	noneResult := ssa.Simplify(&ssa.Not{Value: c1}, g, block, g.Block(block), nil, nil)
	if _, ok := diagnostics.SimplifyDiagnostic(noneResult, nil); ok {
		t.Errorf("SimplifyNone should not produce a diagnostic, got one for %#v", noneResult)
	}

	g.Block(block).Push(&ssa.EnableSideEffectsIf{Condition: c1})
	removeResult := ssa.Simplify(&ssa.EnableSideEffectsIf{Condition: c2}, g, block, g.Block(block), nil, nil)
	removeDiag, ok := diagnostics.SimplifyDiagnostic(removeResult, nil)
	if !ok || removeDiag.Code != diagnostics.CodeRemoved {
		t.Errorf("coalesced EnableSideEffectsIf should produce a %s diagnostic, got %#v", diagnostics.CodeRemoved, removeDiag)
	}

	u8 := ssa.Unsigned(8)
	c := g.MakeConstant(big.NewInt(0x0F), u8)
	foldedResult := ssa.Simplify(&ssa.Not{Value: c}, g, block, g.Block(block), nil, nil)
	foldedDiag, ok := diagnostics.SimplifyDiagnostic(foldedResult, nil)
	if !ok || foldedDiag.Code != diagnostics.CodeSimplifiedToValue {
		t.Errorf("constant-folded Not should produce a %s diagnostic, got %#v", diagnostics.CodeSimplifiedToValue, foldedDiag)
	}
}

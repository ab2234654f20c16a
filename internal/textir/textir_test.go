package textir_test

import (
	"strings"
	"testing"

	"circuitir/internal/ssa"
	"circuitir/internal/textir"
)

const sampleSource = `
fn f(a: field, b: field) -> field {
block entry(a: field, b: field):
    c = add a, b
    d = not c
    return d
}
`

// TestParseBuildPrintRoundTrip parses a small function, lowers it to real
// instructions against a DataFlowGraph, and checks the printer renders the
// expected value ids and mnemonics back out.
func TestParseBuildPrintRoundTrip(t *testing.T) {
	prog, err := textir.ParseString("sample.cir", sampleSource)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	if prog.Function.Name != "f" {
		t.Fatalf("parsed function name = %q, want %q", prog.Function.Name, "f")
	}
	if len(prog.Function.Blocks) != 1 {
		t.Fatalf("parsed %d blocks, want 1", len(prog.Function.Blocks))
	}

	built, err := textir.Build(prog)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(built.Blocks) != 1 {
		t.Fatalf("built %d blocks, want 1", len(built.Blocks))
	}

	block := built.Graph.Block(built.Blocks[0])
	if len(block.Params) != 2 {
		t.Fatalf("entry block has %d params, want 2", len(block.Params))
	}
	if len(block.Instructions) != 2 {
		t.Fatalf("entry block has %d instructions, want 2 (add, not)", len(block.Instructions))
	}
	add, ok := block.Instructions[0].(*ssa.Binary)
	if !ok || add.Op != ssa.Add {
		t.Fatalf("first instruction = %#v, want Binary{Add}", block.Instructions[0])
	}
	not, ok := block.Instructions[1].(*ssa.Not)
	if !ok {
		t.Fatalf("second instruction = %#v, want Not", block.Instructions[1])
	}
	if not.Value != ssa.ValueId(2) {
		t.Fatalf("Not should read the add's result value id (v2), got %v", not.Value)
	}

	ret, ok := block.Terminator.(*ssa.Return)
	if !ok || len(ret.Values) != 1 {
		t.Fatalf("terminator = %#v, want Return with one value", block.Terminator)
	}

	out := textir.Print(built)
	for _, want := range []string{"block b0(v0, v1):", "add v0, v1", "not v2", "return v3"} {
		if !strings.Contains(out, want) {
			t.Errorf("printed output missing %q, got:\n%s", want, out)
		}
	}
}

// TestBuildFileRecordsPositions covers BuildFile's source-position
// tracking: the add instruction's (block, index) key maps back to the line
// it was parsed from, tagged with the given filename.
func TestBuildFileRecordsPositions(t *testing.T) {
	prog, err := textir.ParseString("pos.cir", sampleSource)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	built, err := textir.BuildFile(prog, "pos.cir")
	if err != nil {
		t.Fatalf("BuildFile failed: %v", err)
	}
	key := textir.InstrKey{Block: built.Blocks[0], Index: 0}
	pos, ok := built.Positions[key]
	if !ok {
		t.Fatalf("expected a recorded position for the first instruction, got none: %#v", built.Positions)
	}
	if pos.File != "pos.cir" || pos.Line == 0 {
		t.Errorf("unexpected position for the first instruction: %#v", pos)
	}
}

// TestParseStringReportsSyntaxError covers the caret-style parse error
// path: an invalid program produces a non-nil error.
func TestParseStringReportsSyntaxError(t *testing.T) {
	_, err := textir.ParseString("bad.cir", "fn f( { block entry(): return }")
	if err == nil {
		t.Fatal("expected a parse error for malformed input, got nil")
	}
}

// TestBuildRejectsUndefinedValue covers the lookup failure path: a
// statement referencing a name no earlier statement or parameter bound
// fails to build.
func TestBuildRejectsUndefinedValue(t *testing.T) {
	prog, err := textir.ParseString("undef.cir", `
fn g(a: field) -> field {
block entry(a: field):
    d = not missing
    return d
}
`)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	if _, err := textir.Build(prog); err == nil {
		t.Fatal("expected Build to reject a reference to an undefined value")
	}
}

package dfg_test

import (
	"math/big"
	"testing"
	"time"

	"circuitir/internal/dfg"
	"circuitir/internal/ssa"
	"circuitir/internal/ssa/blackbox"
)

// TestMakeConstantInterning covers spec §6's "equal constants share an id":
// two MakeConstant calls with the same reduced value and type return the
// same ValueId.
func TestMakeConstantInterning(t *testing.T) {
	g := dfg.New()
	u32 := ssa.Unsigned(32)

	a := g.MakeConstant(big.NewInt(7), u32)
	b := g.MakeConstant(big.NewInt(7), u32)
	if a != b {
		t.Fatalf("MakeConstant(7, u32) twice gave different ids: %v != %v", a, b)
	}

	c := g.MakeConstant(big.NewInt(7), ssa.Field())
	if a == c {
		t.Fatal("MakeConstant(7, u32) and MakeConstant(7, field) must not collide")
	}
}

// TestMakeConstantReducesUnsigned covers the unsigned wraparound behavior
// ReduceUnsigned implements: a value outside [0, 2^bitSize) is folded to its
// canonical representative before interning, so the overflowing and
// pre-reduced literals are the same constant.
func TestMakeConstantReducesUnsigned(t *testing.T) {
	g := dfg.New()
	u8 := ssa.Unsigned(8)

	wrapped := g.MakeConstant(big.NewInt(256+5), u8)
	plain := g.MakeConstant(big.NewInt(5), u8)
	if wrapped != plain {
		t.Fatal("MakeConstant(256+5, u8) should intern to the same id as MakeConstant(5, u8)")
	}

	val, ok := g.GetNumericConstant(wrapped)
	if !ok || val.Cmp(big.NewInt(5)) != 0 {
		t.Fatalf("GetNumericConstant(wrapped) = %v, want 5", val)
	}
}

// TestMakeConstantReducesField covers the same reduction for field elements,
// against the BN254 scalar modulus ReduceField uses.
func TestMakeConstantReducesField(t *testing.T) {
	g := dfg.New()
	over := new(big.Int).Add(dfg.FieldModulus(), big.NewInt(3))

	a := g.MakeConstant(over, ssa.Field())
	b := g.MakeConstant(big.NewInt(3), ssa.Field())
	if a != b {
		t.Fatal("a field constant one modulus over should intern identically to its reduced form")
	}
}

// TestResolveFollowsAliasChain covers spec §6's alias-resolution
// collaborator: Resolve follows a chain of SetAlias links to its final
// representative, including a chain of length > 1.
func TestResolveFollowsAliasChain(t *testing.T) {
	g := dfg.New()
	block := ssa.BasicBlockId(0)
	root := g.AddParam(block, ssa.Field())
	mid := g.AddParam(block, ssa.Field())
	leaf := g.AddParam(block, ssa.Field())

	g.SetAlias(leaf, mid)
	g.SetAlias(mid, root)

	if got := g.Resolve(leaf); got != root {
		t.Fatalf("Resolve(leaf) = %v, want root %v", got, root)
	}
	if got := g.Resolve(root); got != root {
		t.Fatalf("Resolve(root) should be a no-op, got %v", got)
	}
}

// TestResolveCycleSafe covers the cycle-safety guarantee: a self-referential
// alias chain must terminate rather than loop forever.
func TestResolveCycleSafe(t *testing.T) {
	g := dfg.New()
	block := ssa.BasicBlockId(0)
	a := g.AddParam(block, ssa.Field())
	b := g.AddParam(block, ssa.Field())

	g.SetAlias(a, b)
	g.SetAlias(b, a)

	done := make(chan ssa.ValueId, 1)
	go func() { done <- g.Resolve(a) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Resolve did not terminate on a cyclic alias chain")
	}
}

// TestInsertInstructionAndResultsSideEffecting covers resultCountOf's
// zero-result variants: Store, Constrain, RangeCheck, EnableSideEffectsIf,
// IncrementRc, and DecrementRc all return an invalid primary id and no
// extra results.
func TestInsertInstructionAndResultsSideEffecting(t *testing.T) {
	g := dfg.New()
	block := ssa.BasicBlockId(0)
	v := g.AddParam(block, ssa.Field())

	sideEffecting := []ssa.Instruction{
		&ssa.Store{Address: v, Value: v},
		&ssa.Constrain{LHS: v, RHS: v},
		&ssa.RangeCheck{Value: v, MaxBitSize: 8},
		&ssa.EnableSideEffectsIf{Condition: v},
		&ssa.IncrementRc{Value: v},
		&ssa.DecrementRc{Value: v},
	}
	for _, instr := range sideEffecting {
		id, extra := g.InsertInstructionAndResults(instr, block, nil, nil)
		if id != ssa.Invalid || len(extra) != 0 {
			t.Errorf("%#v: expected zero results, got id=%v extra=%v", instr, id, extra)
		}
	}
}

// TestInsertInstructionAndResultsSingleResult covers the common case: a
// pure instruction gets exactly one fresh, distinct result id per call.
func TestInsertInstructionAndResultsSingleResult(t *testing.T) {
	g := dfg.New()
	block := ssa.BasicBlockId(0)
	v := g.AddParam(block, ssa.Field())

	id1, extra1 := g.InsertInstructionAndResults(&ssa.Not{Value: v}, block, nil, nil)
	id2, extra2 := g.InsertInstructionAndResults(&ssa.Not{Value: v}, block, nil, nil)
	if len(extra1) != 0 || len(extra2) != 0 {
		t.Fatalf("Not should produce exactly one result, got extras %v, %v", extra1, extra2)
	}
	if id1 == id2 {
		t.Fatal("two separate insertions must get distinct result ids")
	}
	if _, ok := g.DefiningInstruction(id1); !ok {
		t.Fatal("DefiningInstruction should find the instruction that produced id1")
	}
}

// TestCalleeKindBlackBoxWhitelist covers the CalleeKind classification the
// MultiScalarMul/EmbeddedCurveAdd whitelist (scenario E6) depends on.
func TestCalleeKindBlackBoxWhitelist(t *testing.T) {
	g := dfg.New()

	msm := g.MakeIntrinsic(ssa.IntrinsicBlackBox(blackbox.MultiScalarMul))
	if got := g.CalleeKind(msm); got != ssa.CalleeIntrinsicBlackBoxMultiScalarMul {
		t.Errorf("CalleeKind(MultiScalarMul) = %v, want CalleeIntrinsicBlackBoxMultiScalarMul", got)
	}

	eca := g.MakeIntrinsic(ssa.IntrinsicBlackBox(blackbox.EmbeddedCurveAdd))
	if got := g.CalleeKind(eca); got != ssa.CalleeIntrinsicBlackBoxEmbeddedCurveAdd {
		t.Errorf("CalleeKind(EmbeddedCurveAdd) = %v, want CalleeIntrinsicBlackBoxEmbeddedCurveAdd", got)
	}

	plain := g.MakeIntrinsic(ssa.IntrinsicArrayLen)
	if got := g.CalleeKind(plain); got != ssa.CalleeIntrinsic {
		t.Errorf("CalleeKind(array_len) = %v, want CalleeIntrinsic", got)
	}

	fn := g.MakeFunction("main", ssa.Field())
	if got := g.CalleeKind(fn); got != ssa.CalleeUserFunction {
		t.Errorf("CalleeKind(user function) = %v, want CalleeUserFunction", got)
	}
}

// TestIsSafeIndex covers the constant-in-bounds collaborator IsSafeIndex,
// which backs out-of-bounds detection for ArrayGet/ArraySet.
func TestIsSafeIndex(t *testing.T) {
	g := dfg.New()
	block := ssa.BasicBlockId(0)
	fieldType := ssa.Field()
	arrType := &ssa.ArrayType{Element: fieldType, Length: 3}
	a, bb, c := g.AddParam(block, fieldType), g.AddParam(block, fieldType), g.AddParam(block, fieldType)
	arr, _ := g.InsertInstructionAndResults(&ssa.MakeArray{Elements: []ssa.ValueId{a, bb, c}, Typ: arrType}, block, nil, nil)

	inBounds := g.MakeConstant(big.NewInt(2), ssa.Unsigned(32))
	outOfBounds := g.MakeConstant(big.NewInt(3), ssa.Unsigned(32))
	dynamic := g.AddParam(block, ssa.Unsigned(32))

	if !g.IsSafeIndex(inBounds, arr) {
		t.Error("index 2 into a length-3 array should be safe")
	}
	if g.IsSafeIndex(outOfBounds, arr) {
		t.Error("index 3 into a length-3 array should not be safe")
	}
	if g.IsSafeIndex(dynamic, arr) {
		t.Error("a non-constant index should not be safe")
	}
}

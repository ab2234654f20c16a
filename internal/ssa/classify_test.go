package ssa_test

import (
	"math/big"
	"testing"

	"circuitir/internal/dfg"
	"circuitir/internal/ssa"
	"circuitir/internal/ssa/blackbox"
)

// TestDivByZeroConstantNotEliminable covers scenario E5.
func TestDivByZeroConstantNotEliminable(t *testing.T) {
	g := dfg.New()
	block := ssa.BasicBlockId(0)
	u32 := ssa.Unsigned(32)
	x := g.AddParam(block, u32)
	zero := g.MakeConstant(big.NewInt(0), u32)

	instr := &ssa.Binary{Op: ssa.Div, LHS: x, RHS: zero}
	if ssa.CanEliminateIfUnused(instr, g) {
		t.Error("Binary(Div, x, 0) must report can_eliminate_if_unused = false")
	}
}

// TestMultiScalarMulWhitelist covers scenario E6: a call to the
// MultiScalarMul black box simultaneously has side effects and is
// eliminable when unused.
func TestMultiScalarMulWhitelist(t *testing.T) {
	g := dfg.New()
	block := ssa.BasicBlockId(0)
	intrinsic := ssa.IntrinsicBlackBox(blackbox.MultiScalarMul)
	callee := g.MakeIntrinsic(intrinsic)
	arg := g.AddParam(block, ssa.Field())

	if !intrinsic.HasSideEffects() {
		t.Fatal("MultiScalarMul must report has_side_effects = true")
	}

	call := &ssa.Call{Func: callee, Args: []ssa.ValueId{arg}}
	if !ssa.CanEliminateIfUnused(call, g) {
		t.Error("Call to MultiScalarMul with an unused result must report can_eliminate_if_unused = true")
	}
}

// TestPredicateCoherence covers universal property 3: for every variant,
// can_be_deduplicated(dfg, false) implies !requires_acir_gen_predicate(dfg),
// modulo the three always-false cases and MakeArray.
func TestPredicateCoherence(t *testing.T) {
	g := dfg.New()
	block := ssa.BasicBlockId(0)
	u32 := ssa.Unsigned(32)
	x := g.AddParam(block, u32)
	y := g.AddParam(block, u32)

	instrs := []ssa.Instruction{
		&ssa.Binary{Op: ssa.Add, LHS: x, RHS: y},
		&ssa.Binary{Op: ssa.Div, LHS: x, RHS: y},
		&ssa.Cast{Value: x, Type: ssa.Field()},
		&ssa.Not{Value: x},
	}

	for _, instr := range instrs {
		dedup := ssa.CanBeDeduplicated(instr, g, false)
		predicate := ssa.RequiresAcirGenPredicate(instr, g)
		if dedup && predicate {
			t.Errorf("%#v: can_be_deduplicated(false) and requires_acir_gen_predicate both true", instr)
		}
	}
}

package dfg

import "circuitir/internal/ssa"

// mergeNumericValues is the "value-merger utility" collaborator the IfElse
// simplification rule calls when neither branch is provably dead (spec §4.4
// IfElse bullet, original ValueMerger::merge_numeric_values). It builds the
// standard arithmetic mux for two numeric branches guarded by a 0/1
// condition:
//
//	merged = elseValue + thenCond * (thenValue - elseValue)
//
// which equals thenValue when thenCond is 1 and elseValue when thenCond is
// 0. elseCond is accepted to match the original's two-condition call shape
// (the then/else condition pair, which a caller with access to the
// negation may already have split apart) but is not needed by this
// construction.
func mergeNumericValues(g *DataFlowGraph, block ssa.BasicBlockId, thenCond, elseCond, thenValue, elseValue ssa.ValueId) ssa.ValueId {
	_ = elseCond

	diffID, _ := g.InsertInstructionAndResults(ssa.NewBinary(ssa.Sub, thenValue, elseValue), block, nil, nil)
	scaledID, _ := g.InsertInstructionAndResults(ssa.NewBinary(ssa.Mul, thenCond, diffID), block, nil, nil)
	mergedID, _ := g.InsertInstructionAndResults(ssa.NewBinary(ssa.Add, elseValue, scaledID), block, nil, nil)
	return mergedID
}
